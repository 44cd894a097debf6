package mock

import (
	"context"

	"github.com/fwojciec/context7"
)

// Compile-time interface verification.
var (
	_ context7.Session    = (*Session)(nil)
	_ context7.Connector  = (*Connector)(nil)
	_ context7.CallResult = (*CallResult)(nil)
)

// Session is a mock implementation of context7.Session.
type Session struct {
	CallToolFn func(ctx context.Context, name string, args map[string]any) (context7.CallResult, error)
	CloseFn    func() error
}

func (s *Session) CallTool(ctx context.Context, name string, args map[string]any) (context7.CallResult, error) {
	return s.CallToolFn(ctx, name, args)
}

func (s *Session) Close() error {
	return s.CloseFn()
}

// Connector is a mock implementation of context7.Connector.
type Connector struct {
	ConnectFn func(ctx context.Context, def context7.ServerDefinition) (context7.Session, error)
}

func (c *Connector) Connect(ctx context.Context, def context7.ServerDefinition) (context7.Session, error) {
	return c.ConnectFn(ctx, def)
}

// CallResult is a mock implementation of context7.CallResult.
// A nil Fn field behaves as an absent view.
type CallResult struct {
	JSONFn     func(v any) bool
	MarkdownFn func() (string, bool)
	TextFn     func() (string, bool)
}

func (r *CallResult) JSON(v any) bool {
	if r.JSONFn == nil {
		return false
	}
	return r.JSONFn(v)
}

func (r *CallResult) Markdown() (string, bool) {
	if r.MarkdownFn == nil {
		return "", false
	}
	return r.MarkdownFn()
}

func (r *CallResult) Text() (string, bool) {
	if r.TextFn == nil {
		return "", false
	}
	return r.TextFn()
}
