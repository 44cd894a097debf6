// Package mcp provides a minimal streamable HTTP implementation of
// context7.Connector and context7.Session for talking to MCP servers.
package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/context7"
	"github.com/google/uuid"
	"github.com/tmaxmax/go-sse"
	"golang.org/x/time/rate"
)

// DefaultTimeout is the default timeout for a single MCP request.
const DefaultTimeout = 30 * time.Second

// DefaultMaxResponseSize is the default limit for a single event-stream
// message.
const DefaultMaxResponseSize = 8 << 20

// closeTimeout bounds the session teardown request.
const closeTimeout = 5 * time.Second

// maxErrorBody limits how much of an error response body is kept.
const maxErrorBody = 1024

// ErrSessionClosed is returned by calls on a closed session.
var ErrSessionClosed = errors.New("mcp: session closed")

// Compile-time interface verification.
var (
	_ context7.Connector = (*Connector)(nil)
	_ context7.Session   = (*Session)(nil)
)

// Connector establishes MCP sessions over streamable HTTP.
type Connector struct {
	client          *http.Client
	timeout         time.Duration
	rps             float64
	maxResponseSize int
	clientName      string
	clientVersion   string
}

// Option configures a Connector.
type Option func(*Connector)

// WithHTTPClient sets the HTTP client used for requests. The client's
// timeout is left untouched.
func WithHTTPClient(c *http.Client) Option {
	return func(conn *Connector) {
		conn.client = c
	}
}

// WithTimeout sets the timeout for each HTTP request.
// Defaults to DefaultTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(conn *Connector) {
		conn.timeout = d
	}
}

// WithRateLimit limits requests per session to rps per second.
// Zero disables limiting.
func WithRateLimit(rps float64) Option {
	return func(conn *Connector) {
		conn.rps = rps
	}
}

// WithMaxResponseSize limits the size of a single event-stream message.
// Defaults to DefaultMaxResponseSize (8MB) if not specified.
func WithMaxResponseSize(n int) Option {
	return func(conn *Connector) {
		conn.maxResponseSize = n
	}
}

// WithClientInfo sets the client name and version sent on initialize.
func WithClientInfo(name, version string) Option {
	return func(conn *Connector) {
		conn.clientName = name
		conn.clientVersion = version
	}
}

// NewConnector creates a new Connector.
func NewConnector(opts ...Option) *Connector {
	c := &Connector{
		timeout:         DefaultTimeout,
		maxResponseSize: DefaultMaxResponseSize,
		clientName:      "context7-go",
		clientVersion:   "1.0.0",
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.client == nil {
		c.client = &http.Client{
			Timeout: c.timeout,
		}
	}

	return c
}

// Connect opens a session with the server and performs the initialize
// handshake.
func (c *Connector) Connect(ctx context.Context, def context7.ServerDefinition) (context7.Session, error) {
	if def.Transport != context7.TransportHTTP {
		return nil, context7.Errorf(context7.EINVALID, "unsupported transport %q", def.Transport)
	}

	s := &Session{
		client:          c.client,
		url:             def.URL,
		headers:         def.Headers,
		maxResponseSize: c.maxResponseSize,
		clientName:      c.clientName,
		clientVersion:   c.clientVersion,
	}
	if c.rps > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(c.rps), 1)
	}

	if err := s.initialize(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Session is an initialized MCP session over streamable HTTP.
type Session struct {
	client          *http.Client
	url             string
	headers         map[string]string
	limiter         *rate.Limiter
	maxResponseSize int
	clientName      string
	clientVersion   string

	mu              sync.Mutex
	sessionID       string
	protocolVersion string
	serverInfo      ServerInfo

	closed atomic.Bool
}

// ServerInfo returns the server information reported on initialize.
func (s *Session) ServerInfo() ServerInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.serverInfo
}

// SessionID returns the session ID assigned by the server, if any.
func (s *Session) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

func (s *Session) initialize(ctx context.Context) error {
	resp, err := s.call(ctx, MethodInitialize, map[string]any{
		"protocolVersion": ProtocolVersion,
		"capabilities":    map[string]any{},
		"clientInfo": map[string]any{
			"name":    s.clientName,
			"version": s.clientVersion,
		},
	})
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	var result initializeResult
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		return fmt.Errorf("initialize: decode result: %w", err)
	}

	s.mu.Lock()
	s.protocolVersion = result.ProtocolVersion
	s.serverInfo = result.ServerInfo
	s.serverInfo.ProtocolVersion = result.ProtocolVersion
	s.mu.Unlock()

	if err := s.notify(ctx, MethodInitialized); err != nil {
		return fmt.Errorf("initialized notification: %w", err)
	}
	return nil
}

// CallTool invokes a tool and returns its result. Tool results flagged
// with isError are returned as *ToolError.
func (s *Session) CallTool(ctx context.Context, name string, args map[string]any) (context7.CallResult, error) {
	params := map[string]any{"name": name}
	if args != nil {
		params["arguments"] = args
	}

	resp, err := s.call(ctx, MethodToolsCall, params)
	if err != nil {
		return nil, fmt.Errorf("call tool %q: %w", name, err)
	}

	var result Result
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		return nil, fmt.Errorf("call tool %q: decode result: %w", name, err)
	}
	if result.IsError {
		text, _ := result.Text()
		return nil, &ToolError{Tool: name, Message: text}
	}
	return &result, nil
}

// Close terminates the session on the server. Calling Close again is a
// no-op. Servers that do not support explicit termination are ignored.
func (s *Session) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	defer s.client.CloseIdleConnections()

	sessionID := s.SessionID()
	if sessionID == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.url, nil)
	if err != nil {
		return err
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("terminate session: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode < 300:
	case resp.StatusCode == http.StatusMethodNotAllowed, resp.StatusCode == http.StatusNotFound:
	default:
		return fmt.Errorf("terminate session: %w", readStatusError(resp))
	}
	return nil
}

// call sends a JSON-RPC request and waits for its response.
func (s *Session) call(ctx context.Context, method string, params any) (*Response, error) {
	if s.closed.Load() {
		return nil, ErrSessionClosed
	}

	id := uuid.NewString()
	body, err := marshalRequest(json.RawMessage(strconv.Quote(id)), method, params)
	if err != nil {
		return nil, err
	}

	httpResp, err := s.post(ctx, body)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	if sid := httpResp.Header.Get(HeaderSessionID); sid != "" {
		s.mu.Lock()
		s.sessionID = sid
		s.mu.Unlock()
	}

	resp, err := readResponse(httpResp, id, s.maxResponseSize)
	if err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	return resp, nil
}

// notify sends a JSON-RPC notification. The server answers without a body.
func (s *Session) notify(ctx context.Context, method string) error {
	body, err := marshalRequest(nil, method, nil)
	if err != nil {
		return err
	}

	resp, err := s.post(ctx, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// post sends a request body to the server, honoring the rate limit.
// Non-2xx responses are returned as *StatusError.
func (s *Session) post(ctx context.Context, body []byte) (*http.Response, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, readStatusError(resp)
	}
	return resp, nil
}

// setHeaders adds definition and session headers to req.
func (s *Session) setHeaders(req *http.Request) {
	for k, v := range s.headers {
		req.Header.Set(k, v)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessionID != "" {
		req.Header.Set(HeaderSessionID, s.sessionID)
	}
	if s.protocolVersion != "" {
		req.Header.Set(HeaderProtocolVersion, s.protocolVersion)
	}
}

func marshalRequest(id json.RawMessage, method string, params any) ([]byte, error) {
	req := Request{
		JSONRPC: "2.0",
		ID:      id,
		Method:  method,
	}
	if params != nil {
		raw, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("marshal params: %w", err)
		}
		req.Params = raw
	}

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	return data, nil
}

// readResponse decodes the response to request id from either a JSON body
// or an event stream. maxEventSize bounds a single event; zero keeps the
// go-sse default.
func readResponse(resp *http.Response, id string, maxEventSize int) (*Response, error) {
	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType == "text/event-stream" {
		return readEventStream(resp.Body, id, maxEventSize)
	}

	var r Response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	// Errors for unparseable requests carry a null id.
	if !r.hasID(id) && r.Error == nil {
		return nil, fmt.Errorf("response id %s does not match request %q", r.ID, id)
	}
	return &r, nil
}

// readEventStream returns the first message event answering request id.
// Server requests and notifications on the stream are skipped.
func readEventStream(body io.Reader, id string, maxEventSize int) (*Response, error) {
	var config *sse.ReadConfig
	if maxEventSize > 0 {
		config = &sse.ReadConfig{
			MaxEventSize: maxEventSize,
		}
	}

	for ev, err := range sse.Read(body, config) {
		if err != nil {
			return nil, fmt.Errorf("read event stream: %w", err)
		}
		if ev.Type != "" && ev.Type != "message" {
			continue
		}

		var r Response
		if err := json.Unmarshal([]byte(ev.Data), &r); err != nil {
			continue
		}
		if r.hasID(id) {
			return &r, nil
		}
	}
	return nil, fmt.Errorf("event stream ended without a response to %q", id)
}

func readStatusError(resp *http.Response) *StatusError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}
