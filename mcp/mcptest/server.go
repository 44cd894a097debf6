// Package mcptest provides an in-process MCP server for tests, in the
// spirit of net/http/httptest.
package mcptest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/fwojciec/context7/mcp"
)

// SessionID is the session ID assigned by the test server.
const SessionID = "mcptest-session"

// ToolFunc handles a tools/call request for a single tool.
type ToolFunc func(args map[string]any) (*mcp.Result, *mcp.Error)

// Call records a request received by the server.
type Call struct {
	Method string
	Tool   string
	Args   map[string]any
	Header http.Header
}

// Server is a streamable HTTP MCP server backed by httptest.Server.
type Server struct {
	*httptest.Server

	tools       map[string]ToolFunc
	eventStream bool

	mu         sync.Mutex
	calls      []Call
	terminated bool
}

// Option configures a Server.
type Option func(*Server)

// WithEventStream makes the server answer requests with text/event-stream
// bodies instead of application/json.
func WithEventStream() Option {
	return func(s *Server) {
		s.eventStream = true
	}
}

// NewServer starts a server exposing tools. Callers must Close it.
func NewServer(tools map[string]ToolFunc, opts ...Option) *Server {
	s := &Server{tools: tools}
	for _, opt := range opts {
		opt(s)
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// Calls returns the requests received so far.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// ToolCalls returns the tools/call requests received so far.
func (s *Server) ToolCalls() []Call {
	var calls []Call
	for _, c := range s.Calls() {
		if c.Method == mcp.MethodToolsCall {
			calls = append(calls, c)
		}
	}
	return calls
}

// Terminated reports whether a client deleted the session.
func (s *Server) Terminated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terminated
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodDelete:
		s.mu.Lock()
		s.terminated = true
		s.mu.Unlock()
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodPost:
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req mcp.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.write(w, mcp.Response{JSONRPC: "2.0", Error: &mcp.Error{Code: mcp.CodeParseError, Message: "invalid JSON"}})
		return
	}

	call := Call{Method: req.Method, Header: r.Header.Clone()}
	var params struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	}
	if req.Method == mcp.MethodToolsCall {
		_ = json.Unmarshal(req.Params, &params)
		call.Tool = params.Name
		call.Args = params.Arguments
	}
	s.mu.Lock()
	s.calls = append(s.calls, call)
	s.mu.Unlock()

	// Notifications are acknowledged without a body.
	if len(req.ID) == 0 {
		w.WriteHeader(http.StatusAccepted)
		return
	}

	resp := mcp.Response{JSONRPC: "2.0", ID: req.ID}
	switch req.Method {
	case mcp.MethodInitialize:
		w.Header().Set(mcp.HeaderSessionID, SessionID)
		resp.Result = mustMarshal(map[string]any{
			"protocolVersion": mcp.ProtocolVersion,
			"capabilities":    map[string]any{"tools": map[string]any{}},
			"serverInfo":      map[string]any{"name": "mcptest", "version": "1.0.0"},
		})
	case mcp.MethodToolsCall:
		tool, ok := s.tools[params.Name]
		if !ok {
			resp.Error = &mcp.Error{Code: mcp.CodeInvalidParams, Message: fmt.Sprintf("unknown tool %q", params.Name)}
			break
		}
		result, rpcErr := tool(params.Arguments)
		if rpcErr != nil {
			resp.Error = rpcErr
			break
		}
		resp.Result = mustMarshal(result)
	default:
		resp.Error = &mcp.Error{Code: mcp.CodeMethodNotFound, Message: "method not found"}
	}
	s.write(w, resp)
}

func (s *Server) write(w http.ResponseWriter, resp mcp.Response) {
	data := mustMarshal(resp)
	if s.eventStream {
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprintf(w, "event: message\ndata: %s\n\n", data)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}

// TextResult returns a tool result with a single text content item.
func TextResult(text string) *mcp.Result {
	return &mcp.Result{Content: []mcp.Content{{Type: "text", Text: text}}}
}
