package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// SlogManager manages slog-based logging for the CLI and the pipeline.
type SlogManager struct {
	logger *slog.Logger
	level  slog.Level
}

// NewSlogManager creates a new slog-based logging manager.
func NewSlogManager() *SlogManager {
	return &SlogManager{level: slog.LevelInfo}
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup initializes the logging system. Records go to console and file,
// whichever are non-nil; with neither, records are discarded.
func (m *SlogManager) Setup(console io.Writer, file io.Writer, level string) {
	m.level = parseLevel(level)

	handlerOpts := &slog.HandlerOptions{
		Level: m.level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.UTC().Format(time.RFC3339))
				}
			}
			return a
		},
	}

	var handlers []slog.Handler
	if console != nil {
		handlers = append(handlers, slog.NewTextHandler(console, handlerOpts))
	}
	if file != nil {
		handlers = append(handlers, slog.NewTextHandler(file, handlerOpts))
	}

	m.logger = slog.New(NewMultiHandler(handlers...))
	m.logger.Debug("Logging initialized", "level", m.level.String())
}

// Logger returns the configured slog.Logger.
func (m *SlogManager) Logger() *slog.Logger {
	if m.logger == nil {
		// Return a default logger if Setup hasn't been called
		return slog.Default()
	}
	return m.logger
}

// Level returns the active minimum level.
func (m *SlogManager) Level() slog.Level {
	return m.level
}

// Discard returns a logger that drops every record. Handy as a default for
// components built without a logger.
func Discard() *slog.Logger {
	return slog.New(NewMultiHandler())
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
