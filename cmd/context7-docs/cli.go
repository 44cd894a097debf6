package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/context7"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Client context7.DocsClient
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Headlines bool          `help:"Print only the markdown headlines of the documentation"`
	Endpoint  string        `env:"CONTEXT7_URL" help:"Context7 MCP endpoint (default: ${default_url})"`
	Timeout   time.Duration `short:"t" default:"30s" help:"Timeout per MCP request"`
	RateLimit float64       `name:"rate-limit" default:"10" help:"Requests per second when CONTEXT7_API_KEY is not set (0 disables)"`
	Verbose   bool          `short:"v" help:"Log MCP traffic to stderr and list all candidates"`
	Trace     bool          `help:"Print OpenTelemetry spans to stderr"`
	Library   string        `arg:"" optional:"" default:"react" help:"Library name to resolve"`
	Query     string        `arg:"" optional:"" help:"Documentation query (default: <library> overview and getting started)"`
}

// DocsCmd resolves a library and prints its documentation.
type DocsCmd struct {
	Library   string
	Query     string
	Headlines bool
	Verbose   bool
}
