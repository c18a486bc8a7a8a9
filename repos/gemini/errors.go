package gemini

import "errors"

// Error taxonomy for the client. Every failure surfaced by this package
// wraps exactly one of these sentinels; match with errors.Is.
var (
	// ErrAuthentication means cookies are invalid or expired, or the server
	// served a login page instead of the app.
	ErrAuthentication = errors.New("authentication failed")

	// ErrNetwork is a transport-level failure or non-success HTTP status.
	ErrNetwork = errors.New("network error")

	// ErrParse means the response shape was malformed or unrecognized.
	ErrParse = errors.New("parse error")

	// ErrTimeout means an outbound call exceeded the configured timeout.
	ErrTimeout = errors.New("request timed out")

	// ErrCookie means the cookie file is missing, malformed, or incomplete.
	ErrCookie = errors.New("cookie error")

	// ErrNotInitialized means an exchange was attempted before the session
	// token was acquired.
	ErrNotInitialized = errors.New("client not initialized")

	// ErrUpload means an attachment transfer failed.
	ErrUpload = errors.New("upload failed")
)
