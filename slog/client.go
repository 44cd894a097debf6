// Package slog provides log/slog decorators for context7 interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/context7"
)

// Ensure LoggingClient implements context7.DocsClient.
var _ context7.DocsClient = (*LoggingClient)(nil)

// LoggingClient wraps a DocsClient with logging.
type LoggingClient struct {
	next   context7.DocsClient
	logger *slog.Logger
}

// NewLoggingClient creates a new LoggingClient.
func NewLoggingClient(next context7.DocsClient, logger *slog.Logger) *LoggingClient {
	return &LoggingClient{next: next, logger: logger}
}

// ResolveLibrary delegates to the wrapped client and logs the resolution.
func (c *LoggingClient) ResolveLibrary(ctx context.Context, name, query string) (res *context7.LibraryResolution, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"name", name,
			"query", query,
			"duration", time.Since(begin),
			"err", err,
		}
		if res != nil {
			attrs = append(attrs, "library_id", res.LibraryID, "candidates", len(res.Candidates))
		}
		c.logger.Info("resolve library", attrs...)
	}(time.Now())
	return c.next.ResolveLibrary(ctx, name, query)
}

// QueryDocs delegates to the wrapped client and logs the query.
func (c *LoggingClient) QueryDocs(ctx context.Context, libraryID, query string) (docs string, err error) {
	defer func(begin time.Time) {
		c.logger.Info("query docs",
			"library_id", libraryID,
			"query", query,
			"bytes", len(docs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.QueryDocs(ctx, libraryID, query)
}

// QueryHeadlines delegates to the wrapped client and logs the query.
func (c *LoggingClient) QueryHeadlines(ctx context.Context, libraryID, query string) (headlines string, err error) {
	defer func(begin time.Time) {
		c.logger.Info("query headlines",
			"library_id", libraryID,
			"query", query,
			"bytes", len(headlines),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.QueryHeadlines(ctx, libraryID, query)
}

// Close delegates to the wrapped client.
func (c *LoggingClient) Close() error {
	err := c.next.Close()
	c.logger.Debug("close client", "err", err)
	return err
}
