package workflow

import (
	"github.com/enetx/g"
	"go.uber.org/zap"
)

type (
	// State is a value of the state attribute on a context object.
	State g.String
	// ID names a transition. The zero ID is the catch-all.
	ID g.String

	// Info is an extensible annotation bag attached to states and transitions.
	Info = g.Map[g.String, any]

	// Callback is invoked with the context object and the matched transition
	// before the state attribute is written. A non-nil error aborts the transition.
	Callback func(obj Object, t Transition) error
	// Guard vetoes a transition by returning a non-nil error. Its error is
	// returned to the caller of Execute unchanged.
	Guard func(obj Object, t Transition) error

	// Key identifies a transition for exact lookup.
	Key struct {
		From State
		ID   ID
	}

	// Target is the right-hand side of a flat transition table entry.
	Target struct {
		To       State
		Callback Callback
	}

	// Table is a flat transition table accepted by NewFromTable.
	Table = g.Map[Key, Target]

	// Transition is a single legal move between two states.
	Transition struct {
		ID       ID
		From     State
		To       State
		Callback Callback
		Info     Info
	}

	// StateMachine holds an ordered transition table and the name of the
	// attribute it reads and writes on context objects.
	StateMachine struct {
		attr        g.String
		initial     State
		transitions g.Slice[Transition]
		index       g.Map[Key, int]
		states      g.Map[State, Info]
		order       g.Slice[State]
		frozen      bool
		logger      *zap.Logger
	}

	// Option configures a StateMachine at construction time.
	Option func(*StateMachine)
)

// CatchAll is the transition ID matched when no exact (from, id) pair exists.
const CatchAll ID = ""

// IsCatchAll reports whether t is the catch-all transition of its source state.
func (t Transition) IsCatchAll() bool { return t.ID == CatchAll }

// clone copies t so that callers cannot reach the registered Info map.
func (t Transition) clone() Transition {
	t.Info = cloneInfo(t.Info)
	return t
}

func cloneInfo(info Info) Info {
	c := make(Info, len(info))
	for k, v := range info {
		c[k] = v
	}

	return c
}

// StateChange adapts a callback written in the (from, to, id, object) form.
func StateChange(fn func(from, to State, id ID, obj Object) error) Callback {
	return func(obj Object, t Transition) error { return fn(t.From, t.To, t.ID, obj) }
}
