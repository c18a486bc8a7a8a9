// Package geminivo defines value objects for the Gemini web chat client
package geminivo

import (
	"encoding/json"
)

// ChatResponse is the structured result of one ask exchange
type ChatResponse struct {
	// Content is the primary answer text.
	Content string `json:"content"`
	// ConversationID identifies the conversation this turn belongs to.
	ConversationID string `json:"conversation_id"`
	// ResponseID identifies this turn's response.
	ResponseID string `json:"response_id"`
	// FactualityQueries is an opaque metadata blob passed through uninterpreted.
	FactualityQueries json.RawMessage `json:"factuality_queries,omitempty"`
	// TextQuery echoes the input text as the server saw it.
	TextQuery string `json:"text_query"`
	// Choices lists the alternative answers for this turn, in server order.
	Choices []Choice `json:"choices"`
	// Error reports whether the exchange failed.
	Error bool `json:"error"`
}

// Choice is one alternative answer for a single turn
type Choice struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// SavedConversation is the on-disk record for a named conversation
type SavedConversation struct {
	ConversationName string `json:"conversation_name"`
	ReqID            uint32 `json:"_reqid"`
	ConversationID   string `json:"conversation_id"`
	ResponseID       string `json:"response_id"`
	ChoiceID         string `json:"choice_id"`
	Token            string `json:"SNlM0e"`
	ModelName        string `json:"model_name"`
	// Timestamp is seconds since epoch, as a string.
	Timestamp string `json:"timestamp"`
}

// CookieEntry is one record of a browser cookie export file
type CookieEntry struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
