package gemini

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	vo "github.com/crosszan/gemini-web/vo/gemini_vo"
)

// envelopeView exposes the envelope body through named accessors instead of
// magic indices scattered through the protocol code. The outer envelope is
// load-bearing, but every field here is best-effort: a missing or misshapen
// field yields the zero value (or the caller's fallback), never an error,
// so minor upstream drift degrades one field instead of the whole exchange.
type envelopeView struct {
	body gjson.Result
}

// Content returns the primary answer text: candidate 0, its text list,
// first entry.
func (v envelopeView) Content() string {
	return v.body.Get("4.0.1.0").String()
}

// ConversationID returns the new conversation id, or fallback when absent
func (v envelopeView) ConversationID(fallback string) string {
	if r := v.body.Get("1.0"); r.Type == gjson.String {
		return r.String()
	}
	return fallback
}

// ResponseID returns the new response id, or fallback when absent
func (v envelopeView) ResponseID(fallback string) string {
	if r := v.body.Get("1.1"); r.Type == gjson.String {
		return r.String()
	}
	return fallback
}

// Metadata returns the opaque side-channel blob, uninterpreted
func (v envelopeView) Metadata() json.RawMessage {
	r := v.body.Get("3")
	if !r.Exists() || r.Type == gjson.Null {
		return nil
	}
	return json.RawMessage(r.Raw)
}

// TextQuery returns the echoed input text
func (v envelopeView) TextQuery() string {
	return v.body.Get("2.0").String()
}

// Choices returns the alternative answers in server order. Candidates
// shorter than two elements are skipped; missing id or text defaults empty.
func (v envelopeView) Choices() []vo.Choice {
	var choices []vo.Choice
	v.body.Get("4").ForEach(func(_, candidate gjson.Result) bool {
		if !candidate.IsArray() || len(candidate.Array()) <= 1 {
			return true
		}
		choices = append(choices, vo.Choice{
			ID:      candidate.Get("0").String(),
			Content: candidate.Get("1.0").String(),
		})
		return true
	})
	return choices
}

// ChoiceID returns the new default choice id: the first choice's id, or
// fallback when the candidate list is empty.
func (v envelopeView) ChoiceID(choices []vo.Choice, fallback string) string {
	if len(choices) > 0 {
		return choices[0].ID
	}
	return fallback
}
