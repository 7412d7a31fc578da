package workflow

import (
	"encoding/json"

	"github.com/enetx/g"
)

// transitionJSON is the rendered form of a Transition. Callbacks are reported
// by presence only.
type transitionJSON struct {
	ID          ID    `json:"id"`
	From        State `json:"from_state"`
	To          State `json:"to_state"`
	CatchAll    bool  `json:"catch_all"`
	HasCallback bool  `json:"has_callback"`
	Info        Info  `json:"info"`
}

// MarshalJSON implements the json.Marshaler interface.
func (t Transition) MarshalJSON() ([]byte, error) {
	info := t.Info
	if info == nil {
		info = g.NewMap[g.String, any]()
	}

	return json.Marshal(transitionJSON{
		ID:          t.ID,
		From:        t.From,
		To:          t.To,
		CatchAll:    t.IsCatchAll(),
		HasCallback: t.Callback != nil,
		Info:        info,
	})
}
