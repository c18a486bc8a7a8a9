package gemini

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCookieFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cookies.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadCookies(t *testing.T) {
	path := writeCookieFile(t, `[
		{"name": "__Secure-1PSID", "value": "psid-value"},
		{"name": "__Secure-1PSIDTS", "value": "psidts-value"},
		{"name": "OTHER", "value": "ignored"}
	]`)

	psid, psidts, err := LoadCookies(path)
	require.NoError(t, err)
	assert.Equal(t, "psid-value", psid)
	assert.Equal(t, "psidts-value", psidts)
}

func TestLoadCookiesCaseInsensitive(t *testing.T) {
	path := writeCookieFile(t, `[
		{"name": "__secure-1psid", "value": "a"},
		{"name": "__SECURE-1PSIDTS", "value": "b"}
	]`)

	psid, psidts, err := LoadCookies(path)
	require.NoError(t, err)
	assert.Equal(t, "a", psid)
	assert.Equal(t, "b", psidts)
}

func TestLoadCookiesMissingPSID(t *testing.T) {
	path := writeCookieFile(t, `[{"name": "__Secure-1PSIDTS", "value": "b"}]`)

	_, _, err := LoadCookies(path)
	require.ErrorIs(t, err, ErrCookie)
	assert.Contains(t, err.Error(), "__Secure-1PSID ")
}

func TestLoadCookiesMissingPSIDTS(t *testing.T) {
	path := writeCookieFile(t, `[{"name": "__Secure-1PSID", "value": "a"}]`)

	_, _, err := LoadCookies(path)
	require.ErrorIs(t, err, ErrCookie)
	assert.Contains(t, err.Error(), "__Secure-1PSIDTS")
}

func TestLoadCookiesMalformedJSON(t *testing.T) {
	path := writeCookieFile(t, `{not json`)

	_, _, err := LoadCookies(path)
	require.ErrorIs(t, err, ErrCookie)
}

func TestLoadCookiesFileNotFound(t *testing.T) {
	_, _, err := LoadCookies(filepath.Join(t.TempDir(), "nope.json"))
	require.ErrorIs(t, err, ErrCookie)
}

func TestExtractToken(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"double quotes", `window.WIZ = {"SNlM0e":"abc123","x":1};`, "abc123"},
		{"single quotes", `{'SNlM0e':'tok-9'}`, "tok-9"},
		{"spaced colon", `"SNlM0e" : "spaced"`, "spaced"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := extractToken(tc.body)
			require.NoError(t, err)
			assert.Equal(t, tc.want, token)
		})
	}
}

func TestExtractTokenMissing(t *testing.T) {
	_, err := extractToken("<html>nothing useful</html>")
	require.ErrorIs(t, err, ErrParse)
	assert.Contains(t, err.Error(), "check cookie validity")
}

func TestExtractTokenRateLimitHeuristic(t *testing.T) {
	_, err := extractToken("<html>Error 429 Too Many Requests</html>")
	require.ErrorIs(t, err, ErrParse)
	assert.Contains(t, err.Error(), "rate limit")
}

func TestIsLoginPage(t *testing.T) {
	assert.True(t, isLoginPage(`<div id="identifier-shown">`))
	assert.True(t, isLoginPage(`href="https://accounts.google.com/v3/signin/SignIn?continue=x"`))
	assert.True(t, isLoginPage(`<title>Sign in - Google Accounts</title>`))
	assert.False(t, isLoginPage(`<a href="https://google.com">home</a>`))
}
