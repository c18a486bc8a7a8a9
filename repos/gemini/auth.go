package gemini

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	vo "github.com/crosszan/gemini-web/vo/gemini_vo"
)

// tokenPattern captures the SNlM0e session token embedded in the served
// HTML/JS. Both quote styles appear in the wild.
var tokenPattern = regexp.MustCompile(`["']SNlM0e["']\s*:\s*["']([^"']+)["']`)

// loginPageMarkers are literal substrings of the Google sign-in page. The
// server returns them with HTTP 200, so status alone cannot detect a
// cookie-expired redirect.
var loginPageMarkers = []string{
	`"identifier-shown"`,
	"SignIn?continue",
	"Sign in - Google Accounts",
}

// LoadCookies reads a browser cookie export file and returns the
// __Secure-1PSID and __Secure-1PSIDTS values.
//
// The file is a JSON array of {name, value} records; names are matched
// case-insensitively.
func LoadCookies(cookiePath string) (psid string, psidts string, err error) {
	data, err := os.ReadFile(cookiePath)
	if err != nil {
		return "", "", fmt.Errorf("%w: cookie file not found at path: %s", ErrCookie, cookiePath)
	}

	var entries []vo.CookieEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return "", "", fmt.Errorf("%w: invalid JSON format in cookie file: %v", ErrCookie, err)
	}

	for _, entry := range entries {
		switch strings.ToUpper(entry.Name) {
		case "__SECURE-1PSID":
			psid = entry.Value
		case "__SECURE-1PSIDTS":
			psidts = entry.Value
		}
	}

	if psid == "" {
		return "", "", fmt.Errorf("%w: required cookie __Secure-1PSID not found", ErrCookie)
	}
	if psidts == "" {
		return "", "", fmt.Errorf("%w: required cookie __Secure-1PSIDTS not found", ErrCookie)
	}

	return psid, psidts, nil
}

// extractToken pulls the session token out of the init page body
func extractToken(body string) (string, error) {
	matches := tokenPattern.FindStringSubmatch(body)
	if len(matches) < 2 {
		if strings.Contains(body, "429") {
			return "", fmt.Errorf("%w: SNlM0e not found, rate limit likely exceeded", ErrParse)
		}
		return "", fmt.Errorf("%w: SNlM0e value not found in response, check cookie validity", ErrParse)
	}
	return matches[1], nil
}

// isLoginPage reports whether the body is a sign-in redirect
func isLoginPage(body string) bool {
	for _, marker := range loginPageMarkers {
		if strings.Contains(body, marker) {
			return true
		}
	}
	return false
}
