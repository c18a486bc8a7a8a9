// Package gemini implements an unofficial client for the Gemini web app.
//
// Authentication rides on exported browser cookies (__Secure-1PSID and
// __Secure-1PSIDTS); the client bootstraps an anti-automation session token
// from the served app page, threads conversation state across turns, and
// decodes the app's unversioned JSON-in-text wire format.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/crosszan/gemini-web/repos/gemini/rpc"
	vo "github.com/crosszan/gemini-web/vo/gemini_vo"
)

const defaultTimeout = 30 * time.Second

// Endpoints groups the wire endpoint URLs. Production values are the fixed
// literals in the rpc package; tests override them with stub servers.
type Endpoints struct {
	Init          string
	Generate      string
	RotateCookies string
	Upload        string
}

func defaultEndpoints() Endpoints {
	return Endpoints{
		Init:          rpc.InitURL,
		Generate:      rpc.GenerateURL,
		RotateCookies: rpc.RotateCookiesURL,
		Upload:        rpc.UploadURL,
	}
}

// Chatbot is a conversational session against the Gemini web app.
//
// A Chatbot is NOT safe for concurrent exchanges: the request nonce and the
// continuation triple are read before the round trip and written after it,
// so callers must serialize Ask calls per instance. Separate instances are
// fully independent and may run in parallel.
type Chatbot struct {
	httpClient *http.Client
	endpoints  Endpoints
	uploader   Uploader
	logger     *zap.Logger

	psid   string
	psidts string
	token  string

	conversationID string
	responseID     string
	choiceID       string
	reqID          uint32

	model   vo.Model
	proxy   string
	timeout time.Duration
}

// Option configures a Chatbot during construction
type Option func(*Chatbot)

// WithTimeout sets the uniform timeout applied to every outbound call
// (default 30s).
func WithTimeout(d time.Duration) Option {
	return func(c *Chatbot) {
		c.timeout = d
	}
}

// WithProxy routes all outbound calls through the given proxy URL
func WithProxy(proxyURL string) Option {
	return func(c *Chatbot) {
		c.proxy = proxyURL
	}
}

// WithLogger attaches a logger; without it the client is silent
func WithLogger(logger *zap.Logger) Option {
	return func(c *Chatbot) {
		c.logger = logger
	}
}

// WithEndpoints overrides the wire endpoint URLs
func WithEndpoints(e Endpoints) Option {
	return func(c *Chatbot) {
		c.endpoints = e
	}
}

// WithUploader replaces the attachment upload collaborator
func WithUploader(u Uploader) Option {
	return func(c *Chatbot) {
		c.uploader = u
	}
}

// NewChatbot builds a session from the two browser cookies and acquires the
// session token. A missing __Secure-1PSIDTS triggers a best-effort cookie
// rotation before token acquisition; a missing __Secure-1PSID fails
// immediately.
func NewChatbot(ctx context.Context, psid, psidts string, model vo.Model, opts ...Option) (*Chatbot, error) {
	if psid == "" {
		return nil, fmt.Errorf("%w: __Secure-1PSID cookie is required", ErrAuthentication)
	}

	c := &Chatbot{
		endpoints: defaultEndpoints(),
		logger:    zap.NewNop(),
		psid:      psid,
		psidts:    psidts,
		reqID:     seedReqID(),
		model:     model,
		timeout:   defaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		transport := &http.Transport{}
		if c.proxy != "" {
			proxyURL, err := url.Parse(c.proxy)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid proxy URL: %v", ErrNetwork, err)
			}
			transport.Proxy = http.ProxyURL(proxyURL)
		}
		c.httpClient = &http.Client{
			Timeout:   c.timeout,
			Transport: transport,
		}
	}

	if c.uploader == nil {
		c.uploader = &assetUploader{
			httpClient: c.httpClient,
			uploadURL:  c.endpoints.Upload,
		}
	}

	token, err := c.fetchToken(ctx)
	if err != nil {
		return nil, err
	}
	c.token = token
	c.logger.Debug("session token acquired", zap.String("model", c.model.Name()))

	return c, nil
}

// fetchToken performs the session-init GET and extracts the SNlM0e token
func (c *Chatbot) fetchToken(ctx context.Context) (string, error) {
	// PSIDTS goes stale quickly; try to refresh it first. Failure here is
	// non-blocking: the init request may still succeed on PSID alone.
	if c.psidts == "" {
		if _, err := c.rotateCookies(ctx); err != nil {
			c.logger.Warn("best-effort cookie rotation failed", zap.Error(err))
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoints.Init, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	c.applyChatHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", wrapTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read init response: %v", ErrNetwork, err)
	}
	text := string(body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return "", fmt.Errorf("%w: status %d, check cookies", ErrAuthentication, resp.StatusCode)
		}
		return "", fmt.Errorf("%w: HTTP error: %d", ErrParse, resp.StatusCode)
	}

	// The server answers an expired session with HTTP 200 and a sign-in
	// page, so the body has to be inspected even on success.
	if isLoginPage(text) {
		return "", fmt.Errorf("%w: cookies might be invalid or expired", ErrAuthentication)
	}

	return extractToken(text)
}

// rotateCookies refreshes __Secure-1PSIDTS. A non-success status or a
// response without the cookie returns no update and no error; this call is
// never fatal to its consumers.
func (c *Chatbot) rotateCookies(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoints.RotateCookies,
		strings.NewReader(rpc.RotateCookiesBody))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	c.applyHeaders(req, rpc.RotateCookiesHeaders)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", wrapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", nil
	}

	for _, cookie := range resp.Cookies() {
		if cookie.Name == "__Secure-1PSIDTS" {
			c.psidts = cookie.Value
			return cookie.Value, nil
		}
	}

	return "", nil
}

// Ask sends one message and returns the decoded reply. Attachment is
// optional binary data uploaded before the exchange; an upload failure
// aborts the exchange with session state untouched.
func (c *Chatbot) Ask(ctx context.Context, message string, attachment []byte) (*vo.ChatResponse, error) {
	if c.token == "" {
		return nil, fmt.Errorf("%w: session token is missing", ErrNotInitialized)
	}

	var assetID string
	if len(attachment) > 0 {
		id, err := c.uploader.Upload(ctx, attachment)
		if err != nil {
			return nil, err
		}
		assetID = id
	}

	fReq, err := rpc.EncodeAskRequest(message, assetID, c.conversationID, c.responseID, c.choiceID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	reqURL := rpc.BuildGenerateURL(c.endpoints.Generate, c.reqID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL,
		strings.NewReader(rpc.BuildRequestBody(fReq, c.token)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	c.applyChatHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, wrapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: generate request failed with status %d", ErrNetwork, resp.StatusCode)
	}

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read generate response: %v", ErrNetwork, err)
	}

	return c.decodeReply(string(text))
}

// decodeReply reconstructs a reply from raw response text and commits the
// new continuation triple and the advanced nonce. State is only mutated
// here, after a full successful round trip.
func (c *Chatbot) decodeReply(text string) (*vo.ChatResponse, error) {
	body, err := rpc.DecodeEnvelope(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrParse, err)
	}

	view := envelopeView{body: body}
	choices := view.Choices()

	reply := &vo.ChatResponse{
		Content:           view.Content(),
		ConversationID:    view.ConversationID(c.conversationID),
		ResponseID:        view.ResponseID(c.responseID),
		FactualityQueries: view.Metadata(),
		TextQuery:         view.TextQuery(),
		Choices:           choices,
		Error:             false,
	}

	if view.ConversationID("") == "" && c.conversationID != "" {
		c.logger.Warn("envelope missing continuation ids, keeping previous values")
	}

	c.conversationID = reply.ConversationID
	c.responseID = reply.ResponseID
	c.choiceID = view.ChoiceID(choices, c.choiceID)
	c.reqID += advanceDelta()

	c.logger.Debug("exchange complete",
		zap.String("conversation_id", c.conversationID),
		zap.Int("choices", len(choices)))

	return reply, nil
}

// Reset clears the continuation triple and reseeds the nonce, starting a
// fresh conversation while keeping authentication valid.
func (c *Chatbot) Reset() {
	c.conversationID = ""
	c.responseID = ""
	c.choiceID = ""
	c.reqID = seedReqID()
}

// ConversationID returns the current conversation id
func (c *Chatbot) ConversationID() string {
	return c.conversationID
}

// Model returns the selected model
func (c *Chatbot) Model() vo.Model {
	return c.model
}

// applyHeaders sets a header catalog plus the cookie header
func (c *Chatbot) applyHeaders(req *http.Request, headers map[string]string) {
	for k, v := range headers {
		if k == "Host" {
			req.Host = v
			continue
		}
		req.Header.Set(k, v)
	}

	req.Header.Set("Cookie", c.cookieHeader())
}

// applyChatHeaders adds the browser catalog and the per-model configuration
// header; used by init and generate requests only.
func (c *Chatbot) applyChatHeaders(req *http.Request) {
	c.applyHeaders(req, rpc.ChatHeaders)

	if blob, ok := c.model.ConfigHeader(); ok {
		req.Header.Set(rpc.ModelConfigHeader, blob)
	}
}

// cookieHeader formats the held session cookies
func (c *Chatbot) cookieHeader() string {
	header := "__Secure-1PSID=" + c.psid
	if c.psidts != "" {
		header += "; __Secure-1PSIDTS=" + c.psidts
	}
	return header
}

// seedReqID picks a random starting nonce in the range the web app uses
func seedReqID() uint32 {
	return uint32(1000000 + rand.IntN(9000000-1000000))
}

// advanceDelta returns a small random nonce increment; a fixed step would
// be a detectable automation signature.
func advanceDelta() uint32 {
	return uint32(1000 + rand.IntN(8000))
}

// wrapTransportError classifies a transport failure as timeout or network
func wrapTransportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrNetwork, err)
}
