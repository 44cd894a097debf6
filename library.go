package context7

import "context"

// Tool names exposed by the Context7 MCP server.
const (
	ToolResolveLibraryID = "resolve-library-id"
	ToolQueryDocs        = "query-docs"
)

// LibraryCandidate is one possible match returned for a library name query.
type LibraryCandidate struct {
	ID            string   `json:"context7CompatibleLibraryID"`
	Title         string   `json:"title,omitempty"`
	Description   string   `json:"description,omitempty"`
	TotalSnippets int      `json:"totalSnippets,omitempty"`
	TrustScore    float64  `json:"trustScore,omitempty"`
	Versions      []string `json:"versions,omitempty"`
}

// LibraryResolution is the outcome of resolving a library name.
//
// When Candidates is non-empty, LibraryID matches the ID of one of them.
// Candidates is empty, never nil, when the server answered with prose.
type LibraryResolution struct {
	LibraryID  string             `json:"libraryId"`
	Candidates []LibraryCandidate `json:"candidates"`
}

// DocsClient resolves libraries and queries their documentation.
type DocsClient interface {
	// ResolveLibrary resolves a library name (e.g. "react") to a Context7
	// library ID. An empty query is replaced by "<name> documentation".
	// Returns ENOTFOUND if no library ID can be extracted from the response.
	ResolveLibrary(ctx context.Context, name, query string) (*LibraryResolution, error)

	// QueryDocs returns documentation for a resolved library.
	// An empty string is a valid result.
	QueryDocs(ctx context.Context, libraryID, query string) (string, error)

	// QueryHeadlines returns only the markdown headings of QueryDocs.
	QueryHeadlines(ctx context.Context, libraryID, query string) (string, error)

	// Close shuts down the underlying session. Operations other than Close
	// return ECLOSED afterwards.
	Close() error
}

// CallResult is the response of a single remote tool call. It exposes
// alternative views of the same payload; the transport owns it.
type CallResult interface {
	// JSON decodes the structured payload into v and reports whether a
	// structured payload was present and decoded.
	JSON(v any) bool

	// Markdown returns the markdown body, if the result carries one.
	Markdown() (string, bool)

	// Text returns the plain text body, if the result carries one.
	Text() (string, bool)
}

// Session is an established connection to a remote tool server.
type Session interface {
	// CallTool invokes a named tool with the given arguments.
	CallTool(ctx context.Context, name string, args map[string]any) (CallResult, error)

	// Close releases the session.
	Close() error
}

// Connector establishes sessions from server definitions.
type Connector interface {
	Connect(ctx context.Context, def ServerDefinition) (Session, error)
}
