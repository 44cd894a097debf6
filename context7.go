// Package context7 resolves software libraries to Context7 library IDs and
// fetches their documentation through the Context7 MCP server.
//
// This package contains domain types, interfaces, and the pure response
// handling logic, following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., mcp/, slog/, otel/).
package context7
