package workflow_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/enetx/workflow"
)

func TestStateMachine_ToDOT(t *testing.T) {
	noop := func(workflow.Object, workflow.Transition) error { return nil }

	sm := reviewWorkflow(nil).
		AddTransition(workflow.CatchAll, "pending", "published", nil).
		AddTransition("archive", "published", "archived", noop).
		AddStateInfo("pending", workflow.Info{"title": "Pending", "color": "yellow"})

	dot := string(sm.ToDOT())

	assert.True(t, strings.HasPrefix(dot, "digraph Workflow {\n"))
	assert.Contains(t, dot, `__start -> "pending" [label=" initial"];`)
	assert.Contains(t, dot, `"pending" [label="pending", fillcolor="#90ee90", tooltip="color\ntitle"];`)
	assert.Contains(t, dot, `"archived" [label="archived", fillcolor="#d3d3d3", shape=doublecircle];`)
	assert.Contains(t, dot, `"pending" -> "published" [label=" publish\n* "];`)
	assert.Contains(t, dot, `"published" -> "archived" [label=" archive ", style=bold];`)

	assert.Less(t,
		strings.Index(dot, `"pending" -> "published"`),
		strings.Index(dot, `"pending" -> "private"`))
}

func TestStateMachine_ToDOTUnknownInitial(t *testing.T) {
	sm := workflow.New("state", "new").
		AddTransition("go", "a", "b", nil)

	dot := string(sm.ToDOT())

	assert.Contains(t, dot, `"new" [label="new", fillcolor="#90ee90"];`)
	assert.Less(t, strings.Index(dot, `"new" [label="new"`), strings.Index(dot, `"a" [`))
}

func TestStateMachine_ToDOTEscapesNames(t *testing.T) {
	sm := workflow.New("state", `say "hi"`).
		AddTransition(`go\"now`, `say "hi"`, `back\slash`, nil).
		AddStateInfo(`back\slash`, workflow.Info{`quote"key`: 1})

	dot := string(sm.ToDOT())

	assert.Contains(t, dot, `__start -> "say \"hi\"" [label=" initial"];`)
	assert.Contains(t, dot, `"say \"hi\"" [label="say \"hi\"", fillcolor="#90ee90"];`)
	assert.Contains(t, dot, `"back\\slash" [label="back\\slash", fillcolor="#d3d3d3", shape=doublecircle, tooltip="quote\"key"];`)
	assert.Contains(t, dot, `"say \"hi\"" -> "back\\slash" [label=" go\\\"now "];`)
}
