package context7

import (
	"context"
	"fmt"
	"sync/atomic"
)

// Ensure Client implements DocsClient at compile time.
var _ DocsClient = (*Client)(nil)

// Client is a DocsClient that forwards calls to a Context7 MCP session.
// A Client owns its session and must not share it with other clients.
type Client struct {
	def     ServerDefinition
	session Session
	closed  atomic.Bool
}

// ClientOption configures a Client.
type ClientOption func(*ServerDefinition)

// WithEndpoint overrides the server URL. An empty url keeps DefaultURL.
func WithEndpoint(url string) ClientOption {
	return func(d *ServerDefinition) {
		if url != "" {
			d.URL = url
		}
	}
}

// NewClient builds the Context7 server definition and connects to it.
// An empty apiKey connects unauthenticated. Connection errors are returned
// to the caller.
func NewClient(ctx context.Context, connector Connector, apiKey string, opts ...ClientOption) (*Client, error) {
	def := NewServerDefinition(apiKey)
	for _, opt := range opts {
		opt(&def)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}

	session, err := connector.Connect(ctx, def)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", def.Name, err)
	}

	return &Client{def: def, session: session}, nil
}

// ServerDefinition returns the definition the client connected with.
func (c *Client) ServerDefinition() ServerDefinition {
	return c.def
}

// ResolveLibrary resolves a library name to a Context7 library ID.
func (c *Client) ResolveLibrary(ctx context.Context, name, query string) (*LibraryResolution, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, Errorf(EINVALID, "library name required")
	}
	if query == "" {
		query = name + " documentation"
	}

	result, err := c.session.CallTool(ctx, ToolResolveLibraryID, map[string]any{
		"libraryName": name,
		"query":       query,
	})
	if err != nil {
		return nil, err
	}

	libraryID, ok := ExtractLibraryID(result)
	if !ok {
		return nil, Errorf(ENOTFOUND, "unable to resolve library %q via Context7", name)
	}

	return &LibraryResolution{
		LibraryID:  libraryID,
		Candidates: matchingCandidates(ExtractCandidates(result), libraryID),
	}, nil
}

// matchingCandidates returns candidates unchanged when one of them carries
// libraryID, and an empty slice otherwise. The latter happens when the ID
// came from the text view rather than the structured candidates.
func matchingCandidates(candidates []LibraryCandidate, libraryID string) []LibraryCandidate {
	for _, c := range candidates {
		if c.ID == libraryID {
			return candidates
		}
	}
	return []LibraryCandidate{}
}

// QueryDocs returns documentation for a resolved library ID. The markdown
// body is preferred over plain text; an empty body yields "".
func (c *Client) QueryDocs(ctx context.Context, libraryID, query string) (string, error) {
	if err := c.checkOpen(); err != nil {
		return "", err
	}
	if libraryID == "" {
		return "", Errorf(EINVALID, "library ID required")
	}

	result, err := c.session.CallTool(ctx, ToolQueryDocs, map[string]any{
		"libraryId": libraryID,
		"query":     query,
	})
	if err != nil {
		return "", err
	}

	if md, ok := result.Markdown(); ok {
		return md, nil
	}
	if text, ok := result.Text(); ok {
		return text, nil
	}
	return "", nil
}

// QueryHeadlines returns only the markdown headings of the documentation.
func (c *Client) QueryHeadlines(ctx context.Context, libraryID, query string) (string, error) {
	docs, err := c.QueryDocs(ctx, libraryID, query)
	if err != nil {
		return "", err
	}
	return ExtractHeadlines(docs), nil
}

// Close shuts down the session. Calling Close again is a no-op.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.session.Close()
}

func (c *Client) checkOpen() error {
	if c.closed.Load() {
		return Errorf(ECLOSED, "context7 client is closed")
	}
	return nil
}
