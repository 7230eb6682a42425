package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// ConsoleOptions holds configuration for console logging.
type ConsoleOptions struct {
	Level           log.Level
	Formatter       log.Formatter
	ReportTimestamp bool
	Prefix          string
}

// DefaultConsoleOptions returns default options for console logging.
func DefaultConsoleOptions() ConsoleOptions {
	return ConsoleOptions{
		Level:     log.InfoLevel,
		Formatter: log.TextFormatter,
		Prefix:    "taskbot",
	}
}

// NewConsole creates a leveled logger writing to w.
func NewConsole(w io.Writer, opts ConsoleOptions) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           opts.Level,
		Formatter:       opts.Formatter,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          opts.Prefix,
	})
}

// NewConsoleFromConfig creates a logger from string configuration values.
func NewConsoleFromConfig(w io.Writer, level, format string) *log.Logger {
	opts := DefaultConsoleOptions()
	opts.Level = ParseLevel(level)
	opts.Formatter = ParseFormatter(format)
	return NewConsole(w, opts)
}

// ParseLevel parses a log level name. Unknown names yield info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter parses a formatter name. Unknown names yield text.
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// ConsoleWriter writes events through a charmbracelet logger.
type ConsoleWriter struct {
	logger *log.Logger
}

// NewConsoleWriter wraps logger as an EventWriter.
func NewConsoleWriter(logger *log.Logger) *ConsoleWriter {
	return &ConsoleWriter{logger: logger}
}

// Write logs event at a level matching its type.
func (c *ConsoleWriter) Write(event Event) error {
	fields := eventFields(event)
	switch event.Type {
	case EventError:
		c.logger.Error(eventMessage(event), fields...)
	case EventUnknown:
		c.logger.Warn(eventMessage(event), fields...)
	default:
		c.logger.Debug(eventMessage(event), fields...)
	}
	return nil
}

func eventFields(event Event) []any {
	var fields []any
	if event.Source != "" {
		fields = append(fields, "source", event.Source)
	}
	if event.Command != "" {
		fields = append(fields, "command", event.Command)
	}
	if event.Task != "" {
		fields = append(fields, "task", event.Task)
	}
	if event.Error != "" {
		fields = append(fields, "err", event.Error)
	}
	return fields
}

func eventMessage(event Event) string {
	switch event.Type {
	case EventCommand:
		return "handled"
	case EventUnknown:
		return "unknown command"
	case EventUsage:
		return "usage"
	case EventError:
		return "command failed"
	case EventStart:
		return "session started"
	default:
		return event.Type
	}
}
