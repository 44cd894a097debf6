package context7

// DefaultURL is the endpoint of the hosted Context7 MCP server.
const DefaultURL = "https://mcp.context7.com/mcp"

// TransportKind identifies how a server is reached.
type TransportKind string

// TransportKind constants.
const (
	TransportHTTP TransportKind = "http"
)

// ServerDefinition describes how to reach a remote MCP server.
type ServerDefinition struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Transport   TransportKind     `json:"transport"`
	URL         string            `json:"url"`
	Headers     map[string]string `json:"headers,omitempty"`
}

// NewServerDefinition returns the definition for the Context7 server.
// A non-empty apiKey is sent as a bearer token; without one the server
// applies stricter rate limits.
func NewServerDefinition(apiKey string) ServerDefinition {
	def := ServerDefinition{
		Name:        "context7",
		Description: "Context7 documentation MCP",
		Transport:   TransportHTTP,
		URL:         DefaultURL,
	}
	if apiKey != "" {
		def.Headers = map[string]string{"Authorization": "Bearer " + apiKey}
	}
	return def
}

// Validate returns an error if the definition contains invalid fields.
func (d *ServerDefinition) Validate() error {
	if d.Name == "" {
		return Errorf(EINVALID, "server name required")
	}
	if d.URL == "" {
		return Errorf(EINVALID, "server URL required")
	}
	return nil
}
