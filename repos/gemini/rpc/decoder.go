package rpc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	// ErrTruncatedResponse means the response had too few lines to carry an envelope
	ErrTruncatedResponse = errors.New("unexpected response format")

	// ErrNoEnvelope means no line carried a usable wrb.fr envelope body
	ErrNoEnvelope = errors.New("failed to parse response body: no valid data found")
)

// DecodeEnvelope locates the envelope body inside raw generate-endpoint text.
//
// The response is a stream of lines mixing byte counts, the )]} security
// prefix, and JSON arrays. The answer payload sits in a sub-array tagged
// "wrb.fr" whose element 2 is a JSON document serialized as a string; that
// inner document is the envelope body when it has more than 4 elements and
// element 4 is non-null.
func DecodeEnvelope(text string) (gjson.Result, error) {
	lines := strings.Split(text, "\n")
	if len(lines) < 3 {
		snippet := text
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return gjson.Result{}, fmt.Errorf("%w, content: %s...", ErrTruncatedResponse, snippet)
	}

	for _, line := range lines {
		if line == "" || line == securityPrefix {
			continue
		}

		if strings.HasPrefix(line, securityPrefix) {
			if len(line) > 4 {
				line = strings.TrimSpace(line[4:])
			} else {
				continue
			}
		}

		if !strings.HasPrefix(line, "[") || !gjson.Valid(line) {
			continue
		}

		parsed := gjson.Parse(line)
		if !parsed.IsArray() {
			continue
		}

		var body gjson.Result
		found := false
		parsed.ForEach(func(_, part gjson.Result) bool {
			candidate, ok := envelopeBody(part)
			if !ok {
				return true
			}
			body = candidate
			found = true
			return false
		})

		if found {
			return body, nil
		}
	}

	return gjson.Result{}, ErrNoEnvelope
}

// envelopeBody checks one sub-array for the wrb.fr tag and extracts the
// inner document if it qualifies as an envelope body.
func envelopeBody(part gjson.Result) (gjson.Result, bool) {
	if !part.IsArray() {
		return gjson.Result{}, false
	}

	arr := part.Array()
	if len(arr) <= 2 || arr[0].String() != "wrb.fr" {
		return gjson.Result{}, false
	}

	inner := arr[2]
	if inner.Type != gjson.String {
		return gjson.Result{}, false
	}

	body := gjson.Parse(inner.String())
	if !body.IsArray() {
		return gjson.Result{}, false
	}

	fields := body.Array()
	if len(fields) > 4 && fields[4].Type != gjson.Null {
		return body, true
	}

	return gjson.Result{}, false
}
