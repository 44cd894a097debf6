package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/context7"
	"github.com/fwojciec/context7/mcp"
	c7otel "github.com/fwojciec/context7/otel"
	c7slog "github.com/fwojciec/context7/slog"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Version is reported to the server as the client version.
var Version = "dev"

const missingKeyWarning = "No CONTEXT7_API_KEY set; requests will be rate-limited. See .env.example for setup."

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Connector opens MCP sessions. Defaults to a streamable HTTP connector
	// configured from the command line.
	Connector context7.Connector
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("context7-docs"),
		kong.Description("Resolve a library and query its documentation via Context7"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{"default_url": context7.DefaultURL},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	logger := slog.New(slog.DiscardHandler)
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	var otelOpts []c7otel.Option
	if cli.Trace {
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(stderr), stdouttrace.WithPrettyPrint())
		if err != nil {
			return fmt.Errorf("failed to create trace exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
		defer func() { _ = tp.Shutdown(context.WithoutCancel(ctx)) }()
		otelOpts = append(otelOpts, c7otel.WithTracerProvider(tp))
	}

	apiKey, ok := context7.LookupEnv(stdout, context7.EnvAPIKey, missingKeyWarning)

	connector := m.Connector
	if connector == nil {
		opts := []mcp.Option{
			mcp.WithTimeout(cli.Timeout),
			mcp.WithClientInfo("context7-docs", Version),
		}
		if !ok {
			opts = append(opts, mcp.WithRateLimit(cli.RateLimit))
		}
		connector = mcp.NewConnector(opts...)
	}

	client, err := context7.NewClient(ctx,
		c7slog.NewLoggingConnector(connector, logger),
		apiKey,
		context7.WithEndpoint(cli.Endpoint),
	)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", context7.ErrorMessage(err))
		return err
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Client: c7otel.NewTracingClient(c7slog.NewLoggingClient(client, logger), otelOpts...),
	}

	cmd := &DocsCmd{
		Library:   cli.Library,
		Query:     cli.Query,
		Headlines: cli.Headlines,
		Verbose:   cli.Verbose,
	}
	return cmd.Run(deps)
}
