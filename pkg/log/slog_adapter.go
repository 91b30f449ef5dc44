package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes traffic events to an slog.Logger. Useful during
// development when events should show up in the console log.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates an adapter writing to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event at Debug level, or Warn when it carries an error.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("kind", event.Kind.String()),
	}
	if event.ClientID != "" {
		attrs = append(attrs, slog.String("client_id", event.ClientID))
	}
	if event.Topic != "" {
		attrs = append(attrs, slog.String("topic", event.Topic))
	}
	if event.Size > 0 {
		attrs = append(attrs, slog.Int("size", event.Size))
	}

	level := slog.LevelDebug
	if event.Err != "" {
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("error", event.Err))
	}

	a.logger.LogAttrs(context.Background(), level, "traffic", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
