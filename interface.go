package workflow

import "github.com/enetx/g"

// Workflow is the query and execution surface shared by StateMachine and SyncStateMachine.
type Workflow interface {
	Execute(Object, ID, ...Guard) error
	StateOf(Object) State
	Transitions(Object) g.Slice[Transition]
	TransitionsFrom(State) g.Slice[Transition]
	StateInfo(State) g.Option[Info]
	States() g.Slice[State]
	ToDOT() g.String
}
