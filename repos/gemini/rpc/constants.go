// Package rpc implements the Gemini web app's wire protocol
package rpc

const (
	// InitURL is the app homepage serving the session token
	InitURL = "https://gemini.google.com/app"

	// GenerateURL is the conversational endpoint
	GenerateURL = "https://gemini.google.com/_/BardChatUi/data/assistant.lamda.BardFrontendService/StreamGenerate"

	// RotateCookiesURL refreshes the __Secure-1PSIDTS cookie
	RotateCookiesURL = "https://accounts.google.com/RotateCookies"

	// UploadURL receives file attachments
	UploadURL = "https://content-push.googleapis.com/upload"

	// ClientBuildID is the web frontend build the requests impersonate
	ClientBuildID = "boq_assistant-bard-web-server_20240625.13_p0"

	// RotateCookiesBody is the fixed payload RotateCookies expects
	RotateCookiesBody = `[000,"-0000000000000000000"]`

	// ModelConfigHeader carries the opaque per-model configuration blob
	ModelConfigHeader = "x-goog-ext-525001261-jspb"

	// securityPrefix is prepended to generate responses by Google
	securityPrefix = ")]}"
)

// ChatHeaders is the browser-impersonating header set for init and generate
// requests. The Chrome UA is load-bearing: other agents get a login redirect.
var ChatHeaders = map[string]string{
	"Content-Type":       "application/x-www-form-urlencoded;charset=utf-8",
	"Host":               "gemini.google.com",
	"Origin":             "https://gemini.google.com",
	"Referer":            "https://gemini.google.com/",
	"X-Same-Domain":      "1",
	"User-Agent":         "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":             "*/*",
	"Accept-Language":    "en-US,en;q=0.9",
	"Sec-Ch-Ua":          `"Not_A Brand";v="8", "Chromium";v="120", "Google Chrome";v="120"`,
	"Sec-Ch-Ua-Mobile":   "?0",
	"Sec-Ch-Ua-Platform": `"Windows"`,
	"Sec-Fetch-Dest":     "empty",
	"Sec-Fetch-Mode":     "cors",
	"Sec-Fetch-Site":     "same-origin",
}

// RotateCookiesHeaders is deliberately minimal: no browser headers
var RotateCookiesHeaders = map[string]string{
	"Content-Type": "application/json",
}

// UploadHeaders for the content-push endpoint
var UploadHeaders = map[string]string{
	"Push-ID": "feeds/mcudyrk2a4khkz",
}
