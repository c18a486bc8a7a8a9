package rpc

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// EncodeAskRequest builds the double-encoded f.req envelope for one exchange.
// The message payload is serialized once, then wrapped as [null, <payload>]
// and serialized again - the frontend service expects the inner structure as
// an escaped string, not as nested JSON.
//
// Payload shape: [[message], attachment, [conversation_id, response_id, choice_id]]
// where attachment is null or [[[asset_id, 1]]].
func EncodeAskRequest(message, assetID, conversationID, responseID, choiceID string) (string, error) {
	var attachment any
	if assetID != "" {
		attachment = []any{[]any{[]any{assetID, 1}}}
	}

	payload := []any{
		[]any{message},
		attachment,
		[]any{conversationID, responseID, choiceID},
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode message payload: %w", err)
	}

	envelope := []any{nil, string(payloadJSON)}
	envelopeJSON, err := json.Marshal(envelope)
	if err != nil {
		return "", fmt.Errorf("failed to encode request envelope: %w", err)
	}

	return string(envelopeJSON), nil
}

// BuildGenerateURL constructs the generate endpoint URL with its three
// query parameters: the frontend build id, the request nonce, and the
// chunked response-type marker.
func BuildGenerateURL(base string, reqID uint32) string {
	params := url.Values{}
	params.Set("bl", ClientBuildID)
	params.Set("_reqid", fmt.Sprintf("%d", reqID))
	params.Set("rt", "c")

	return base + "?" + params.Encode()
}

// BuildRequestBody creates the form-encoded body carrying the envelope and
// the session token.
func BuildRequestBody(fReq, token string) string {
	form := url.Values{}
	form.Set("f.req", fReq)
	form.Set("at", token)
	return form.Encode()
}
