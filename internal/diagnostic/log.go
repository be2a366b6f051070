package diagnostic

import (
	"context"
	"log/slog"
)

// LogSink writes events to a slog.Logger: info events at Info, warnings at
// Warn and errors at Error.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a sink on logger. A nil logger discards everything.
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &LogSink{logger: logger}
}

// Emit implements Sink.
func (s *LogSink) Emit(e Event) {
	attrs := []slog.Attr{
		slog.String("code", e.Code),
		slog.String("key", e.RecordKey),
	}

	switch e.Code {
	case CodeReplaced:
		attrs = append(attrs, slog.String("journal", e.Original), slog.String("replacement", e.Resolved))
	case CodeNotFound:
		attrs = append(attrs, slog.String("journal", e.Normalized))
	case CodeDuplicateKey:
		attrs = append(attrs, slog.Int("line", e.Line), slog.Int("previous_line", e.PreviousLine))
	}

	s.logger.LogAttrs(context.Background(), e.Severity.level(), e.Message(), attrs...)
}

func (s Severity) level() slog.Level {
	switch s {
	case SeverityError:
		return slog.LevelError
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
