package workflow

import (
	"sync"

	"github.com/enetx/g"
)

// Interface compliance check.
var (
	_ Workflow = (*StateMachine)(nil)
	_ Workflow = (*SyncStateMachine)(nil)
)

// SyncStateMachine is a thread-safe wrapper around a StateMachine.
// Registration takes the write lock; queries and executions share the read lock.
// It does not serialize executions against the same object: callers that
// execute transitions on one object from several goroutines must coordinate
// access to that object themselves.
type SyncStateMachine struct {
	sm *StateMachine
	mu sync.RWMutex
}

// AddStateInfo is the thread-safe version of StateMachine.AddStateInfo.
func (ss *SyncStateMachine) AddStateInfo(state State, info Info) *SyncStateMachine {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	ss.sm.AddStateInfo(state, info)
	return ss
}

// AddTransition is the thread-safe version of StateMachine.AddTransition.
func (ss *SyncStateMachine) AddTransition(id ID, from, to State, cb Callback, info ...Info) *SyncStateMachine {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	ss.sm.AddTransition(id, from, to, cb, info...)
	return ss
}

// Freeze is the thread-safe version of StateMachine.Freeze.
func (ss *SyncStateMachine) Freeze() *SyncStateMachine {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	ss.sm.Freeze()
	return ss
}

// Execute is the thread-safe version of StateMachine.Execute.
// Guards and the callback run while the read lock is held, so they must not
// register transitions on the same machine.
func (ss *SyncStateMachine) Execute(obj Object, id ID, guards ...Guard) error {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	return ss.sm.Execute(obj, id, guards...)
}

// StateOf is the thread-safe version of StateMachine.StateOf.
func (ss *SyncStateMachine) StateOf(obj Object) State {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	return ss.sm.StateOf(obj)
}

// Transitions is the thread-safe version of StateMachine.Transitions.
func (ss *SyncStateMachine) Transitions(obj Object) g.Slice[Transition] {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	return ss.sm.Transitions(obj)
}

// TransitionsFrom is the thread-safe version of StateMachine.TransitionsFrom.
func (ss *SyncStateMachine) TransitionsFrom(from State) g.Slice[Transition] {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	return ss.sm.TransitionsFrom(from)
}

// StateInfo is the thread-safe version of StateMachine.StateInfo.
func (ss *SyncStateMachine) StateInfo(state State) g.Option[Info] {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	return ss.sm.StateInfo(state)
}

// States is the thread-safe version of StateMachine.States.
func (ss *SyncStateMachine) States() g.Slice[State] {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	return ss.sm.States()
}

// ToDOT is the thread-safe version of StateMachine.ToDOT.
func (ss *SyncStateMachine) ToDOT() g.String {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	return ss.sm.ToDOT()
}
