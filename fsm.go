// Package workflow provides an embeddable finite state machine that drives
// content-workflow transitions on caller-owned objects. A StateMachine keeps an
// ordered table of transitions, lists the legal moves for an object's current
// state and executes a named transition: guards first, then the transition
// callback, then the write of the object's state attribute. Each source state
// may also carry a catch-all transition that matches any otherwise unknown ID.
package workflow

import (
	"github.com/enetx/g"
	"github.com/enetx/g/cmp"
	"go.uber.org/zap"
)

// New creates an empty StateMachine that reads and writes the attribute attr
// on context objects and assumes initial for objects that lack it.
func New(attr g.String, initial State, opts ...Option) *StateMachine {
	sm := &StateMachine{
		attr:        attr,
		initial:     initial,
		transitions: g.NewSlice[Transition](),
		index:       g.NewMap[Key, int](),
		states:      g.NewMap[State, Info](),
		logger:      zap.NewNop(),
	}

	for _, opt := range opts {
		opt(sm)
	}

	return sm
}

// NewFromTable creates a StateMachine from a flat (from, id) -> (to, callback)
// table. The result is the same as calling AddTransition for every entry.
// Entries are registered ordered by source state, then by ID.
func NewFromTable(attr g.String, table Table, initial State, opts ...Option) *StateMachine {
	sm := New(attr, initial, opts...)

	keys := table.Keys()
	keys.SortBy(func(a, b Key) cmp.Ordering {
		if a.From != b.From {
			return cmp.Cmp(a.From, b.From)
		}

		return cmp.Cmp(a.ID, b.ID)
	})

	for _, key := range keys {
		target := table[key]
		sm.AddTransition(key.ID, key.From, target.To, target.Callback)
	}

	return sm
}

// WithLogger sets the logger used to report executions. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(sm *StateMachine) {
		if logger != nil {
			sm.logger = logger
		}
	}
}

// WithStateInfo registers metadata for a state at construction time.
func WithStateInfo(state State, info Info) Option {
	return func(sm *StateMachine) { sm.AddStateInfo(state, info) }
}

// Attr returns the name of the state attribute.
func (sm *StateMachine) Attr() g.String { return sm.attr }

// Initial returns the state assumed for objects without a state attribute.
func (sm *StateMachine) Initial() State { return sm.initial }

// AddStateInfo merges info into the metadata of state, creating the entry if
// needed. Existing keys not present in info are kept.
func (sm *StateMachine) AddStateInfo(state State, info Info) *StateMachine {
	sm.mustNotBeFrozen()

	existing := sm.ensureState(state)
	for k, v := range info {
		existing[k] = v
	}

	return sm
}

// AddTransition appends a transition. Both states become known to the machine.
// Registering the same (from, id) pair twice is not rejected: lookups resolve to
// the first registration. Passing CatchAll as id registers the catch-all for from.
func (sm *StateMachine) AddTransition(id ID, from, to State, cb Callback, info ...Info) *StateMachine {
	sm.mustNotBeFrozen()

	meta := make(Info)
	for _, i := range info {
		for k, v := range i {
			meta[k] = v
		}
	}

	sm.transitions.Push(Transition{ID: id, From: from, To: to, Callback: cb, Info: meta})

	key := Key{From: from, ID: id}
	if _, ok := sm.index[key]; !ok {
		sm.index[key] = len(sm.transitions) - 1
	}

	sm.ensureState(from)
	sm.ensureState(to)

	return sm
}

func (sm *StateMachine) ensureState(state State) Info {
	if info, ok := sm.states[state]; ok {
		return info
	}

	info := make(Info)
	sm.states[state] = info
	sm.order.Push(state)

	return info
}

// StateInfo returns a copy of the metadata registered for state.
func (sm *StateMachine) StateInfo(state State) g.Option[Info] {
	if info, ok := sm.states[state]; ok {
		return g.Some(cloneInfo(info))
	}

	return g.None[Info]()
}

// States returns every known state in the order it was first registered.
func (sm *StateMachine) States() g.Slice[State] { return sm.order.Clone() }

// StateOf returns the effective state of obj: its state attribute, or the
// initial state when the attribute is absent.
func (sm *StateMachine) StateOf(obj Object) State {
	return obj.GetAttr(sm.attr).UnwrapOr(sm.initial)
}

// Transitions returns, in registration order, every transition leaving the
// effective state of obj. Catch-all transitions are included.
func (sm *StateMachine) Transitions(obj Object) g.Slice[Transition] {
	return sm.TransitionsFrom(sm.StateOf(obj))
}

// TransitionsFrom returns, in registration order, every transition leaving from.
func (sm *StateMachine) TransitionsFrom(from State) g.Slice[Transition] {
	result := sm.transitions.
		Iter().
		Exclude(func(t Transition) bool { return t.From != from }).
		Collect()

	for i, t := range result {
		result[i] = t.clone()
	}

	return result
}

// lookup finds the exact (from, id) transition, falling back to the catch-all of from.
func (sm *StateMachine) lookup(from State, id ID) g.Option[Transition] {
	if i, ok := sm.index[Key{From: from, ID: id}]; ok {
		return g.Some(sm.transitions[i].clone())
	}

	if i, ok := sm.index[Key{From: from, ID: CatchAll}]; ok {
		return g.Some(sm.transitions[i].clone())
	}

	return g.None[Transition]()
}

// Execute performs transition id on obj.
//
// The transition is looked up by (effective state, id), falling back to the
// catch-all of the effective state. Guards run in order, then the transition
// callback, and only then is the state attribute written. Errors from guards,
// the callback and Object.SetAttr are returned unchanged and leave the state
// attribute as it was. When nothing matches, Execute returns *ErrNoTransition.
func (sm *StateMachine) Execute(obj Object, id ID, guards ...Guard) error {
	from := sm.StateOf(obj)

	match := sm.lookup(from, id)
	if match.IsNone() {
		sm.logger.Debug("no transition",
			zap.String("from", string(from)),
			zap.String("id", string(id)))

		return &ErrNoTransition{From: from, ID: id}
	}

	t := match.Some()

	for _, guard := range guards {
		if guard == nil {
			continue
		}

		if err := guard(obj, t); err != nil {
			sm.logger.Debug("transition vetoed by guard",
				zap.String("from", string(t.From)),
				zap.String("to", string(t.To)),
				zap.String("id", string(id)),
				zap.Error(err))

			return err
		}
	}

	if t.Callback != nil {
		if err := t.Callback(obj, t); err != nil {
			sm.logger.Debug("transition callback failed",
				zap.String("from", string(t.From)),
				zap.String("to", string(t.To)),
				zap.String("id", string(id)),
				zap.Error(err))

			return err
		}
	}

	if err := obj.SetAttr(sm.attr, t.To); err != nil {
		return err
	}

	sm.logger.Debug("transition executed",
		zap.String("from", string(t.From)),
		zap.String("to", string(t.To)),
		zap.String("id", string(id)),
		zap.Bool("catch_all", t.IsCatchAll()))

	return nil
}

// Freeze finalizes the definition. Any later registration panics with ErrFrozen.
func (sm *StateMachine) Freeze() *StateMachine {
	sm.frozen = true
	return sm
}

// Frozen reports whether Freeze has been called.
func (sm *StateMachine) Frozen() bool { return sm.frozen }

func (sm *StateMachine) mustNotBeFrozen() {
	if sm.frozen {
		panic(ErrFrozen)
	}
}

// Clone returns an unfrozen copy of the definition that can be extended
// without affecting sm.
func (sm *StateMachine) Clone() *StateMachine {
	c := &StateMachine{
		attr:        sm.attr,
		initial:     sm.initial,
		transitions: g.NewSlice[Transition](),
		index:       g.NewMap[Key, int](),
		states:      g.NewMap[State, Info](),
		order:       sm.order.Clone(),
		logger:      sm.logger,
	}

	for _, t := range sm.transitions {
		c.transitions.Push(t.clone())
	}

	for k, i := range sm.index {
		c.index[k] = i
	}

	for state, info := range sm.states {
		c.states[state] = cloneInfo(info)
	}

	return c
}

// Sync wraps sm for use across goroutines.
func (sm *StateMachine) Sync() *SyncStateMachine { return &SyncStateMachine{sm: sm} }
