package workflow

import (
	"github.com/enetx/g"
	"github.com/enetx/g/cmp"
)

// ToDOT generates a DOT language string representation of the workflow for visualization.
// Catch-all transitions are labeled "*"; transitions with a callback are drawn bold.
func (sm *StateMachine) ToDOT() g.String {
	b := g.NewBuilder()

	b.WriteString("digraph Workflow {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString(
		"  node [shape=circle, style=filled, fillcolor=\"#f8f8f8\", color=\"#444444\", fontname=\"Helvetica\"];\n",
	)
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")

	b.WriteString("  __start [shape=point, style=invis];\n")
	b.WriteString(g.Format("  __start -> \"{}\" [label=\" initial\"];\n\n", escape(sm.initial)))

	type edge struct {
		labels   g.Slice[g.String]
		callback bool
	}

	pairs := g.NewSlice[g.Pair[State, State]]()
	grouped := g.NewMap[g.Pair[State, State], *edge]()
	outgoing := g.NewSet[State]()

	for _, t := range sm.transitions {
		key := g.Pair[State, State]{Key: t.From, Value: t.To}
		outgoing.Insert(t.From)

		label := escape(t.ID)
		if t.IsCatchAll() {
			label = "*"
		}

		e, ok := grouped[key]
		if !ok {
			e = new(edge)
			grouped[key] = e
			pairs.Push(key)
		}

		e.labels.Push(label)
		e.callback = e.callback || t.Callback != nil
	}

	states := sm.order.Clone()
	if _, ok := sm.states[sm.initial]; !ok {
		states = g.SliceOf(sm.initial).Append(states...)
	}

	for _, state := range states {
		var attrs g.Slice[g.String]
		attrs.Push(g.Format("label=\"{}\"", escape(state)))

		switch {
		case state == sm.initial:
			attrs.Push("fillcolor=\"#90ee90\"")
		case !outgoing.Contains(state):
			attrs.Push("fillcolor=\"#d3d3d3\"", "shape=doublecircle")
		}

		if info, ok := sm.states[state]; ok && len(info) > 0 {
			keys := info.Keys()
			keys.SortBy(cmp.Cmp)

			for i, k := range keys {
				keys[i] = escape(k)
			}

			attrs.Push(g.Format("tooltip=\"{}\"", keys.Join("\\n")))
		}

		b.WriteString(g.Format("  \"{}\" [{}];\n", escape(state), attrs.Join(", ")))
	}

	b.WriteByte('\n')

	for _, pair := range pairs {
		e := grouped[pair]

		var attrs g.Slice[g.String]
		attrs.Push(g.Format("label=\" {} \"", e.labels.Join("\\n")))

		if e.callback {
			attrs.Push("style=bold")
		}

		b.WriteString(g.Format("  \"{}\" -> \"{}\" [{}];\n", escape(pair.Key), escape(pair.Value), attrs.Join(", ")))
	}

	b.WriteString("}\n")

	return b.String()
}

// escape makes s safe inside a quoted DOT string.
func escape[T ~string](s T) g.String {
	return g.String(s).ReplaceAll(`\`, `\\`).ReplaceAll(`"`, `\"`)
}
