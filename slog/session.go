package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/context7"
)

// Compile-time interface verification.
var (
	_ context7.Connector = (*LoggingConnector)(nil)
	_ context7.Session   = (*LoggingSession)(nil)
)

// LoggingConnector wraps a Connector with debug logging. Sessions it
// returns are wrapped with LoggingSession.
type LoggingConnector struct {
	next   context7.Connector
	logger *slog.Logger
}

// NewLoggingConnector creates a new LoggingConnector.
func NewLoggingConnector(next context7.Connector, logger *slog.Logger) *LoggingConnector {
	return &LoggingConnector{next: next, logger: logger}
}

// Connect delegates to the wrapped connector and logs the handshake.
func (c *LoggingConnector) Connect(ctx context.Context, def context7.ServerDefinition) (context7.Session, error) {
	begin := time.Now()
	session, err := c.next.Connect(ctx, def)
	c.logger.Debug("connect",
		"server", def.Name,
		"url", def.URL,
		"authenticated", def.Headers["Authorization"] != "",
		"duration", time.Since(begin),
		"err", err,
	)
	if err != nil {
		return nil, err
	}
	return NewLoggingSession(session, c.logger), nil
}

// LoggingSession wraps a Session with debug logging of tool calls.
type LoggingSession struct {
	next   context7.Session
	logger *slog.Logger
}

// NewLoggingSession creates a new LoggingSession.
func NewLoggingSession(next context7.Session, logger *slog.Logger) *LoggingSession {
	return &LoggingSession{next: next, logger: logger}
}

// CallTool delegates to the wrapped session and logs the call.
func (s *LoggingSession) CallTool(ctx context.Context, name string, args map[string]any) (result context7.CallResult, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("call tool",
			"tool", name,
			"args", args,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CallTool(ctx, name, args)
}

// Close delegates to the wrapped session.
func (s *LoggingSession) Close() error {
	err := s.next.Close()
	s.logger.Debug("close session", "err", err)
	return err
}
