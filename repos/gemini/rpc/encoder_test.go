package rpc

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeAskRequest(t *testing.T) {
	fReq, err := EncodeAskRequest("Hello", "", "c1", "r1", "ch1")
	require.NoError(t, err)

	var outer []json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(fReq), &outer))
	require.Len(t, outer, 2)
	assert.Equal(t, "null", string(outer[0]))

	// Element 1 is the payload serialized as a string.
	var payloadJSON string
	require.NoError(t, json.Unmarshal(outer[1], &payloadJSON))

	var payload []any
	require.NoError(t, json.Unmarshal([]byte(payloadJSON), &payload))
	require.Len(t, payload, 3)

	assert.Equal(t, []any{"Hello"}, payload[0])
	assert.Nil(t, payload[1])
	assert.Equal(t, []any{"c1", "r1", "ch1"}, payload[2])
}

func TestEncodeAskRequestWithAttachment(t *testing.T) {
	fReq, err := EncodeAskRequest("Look at this", "asset-42", "", "", "")
	require.NoError(t, err)

	var outer []json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(fReq), &outer))

	var payloadJSON string
	require.NoError(t, json.Unmarshal(outer[1], &payloadJSON))

	var payload []any
	require.NoError(t, json.Unmarshal([]byte(payloadJSON), &payload))

	attachment := payload[1].([]any)
	inner := attachment[0].([]any)[0].([]any)
	assert.Equal(t, "asset-42", inner[0])
	assert.Equal(t, float64(1), inner[1])
}

func TestBuildGenerateURL(t *testing.T) {
	raw := BuildGenerateURL("https://example.com/generate", 1234567)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(raw, "https://example.com/generate?"))
	assert.Equal(t, ClientBuildID, u.Query().Get("bl"))
	assert.Equal(t, "1234567", u.Query().Get("_reqid"))
	assert.Equal(t, "c", u.Query().Get("rt"))
}

func TestBuildRequestBody(t *testing.T) {
	body := BuildRequestBody(`[null,"payload"]`, "token-abc")

	form, err := url.ParseQuery(body)
	require.NoError(t, err)
	assert.Equal(t, `[null,"payload"]`, form.Get("f.req"))
	assert.Equal(t, "token-abc", form.Get("at"))
}
