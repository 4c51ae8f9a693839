package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// LevelFatal marks unrecoverable ledger inconsistencies. The process keeps
// running; the level only ranks the record above errors.
const LevelFatal = slog.Level(12)

// SetupJSON sets slog's default logger to use JSON output at the given level.
func SetupJSON(level slog.Level) {
	slog.SetDefault(NewJSON(os.Stdout, level))
}

// NewJSON builds a JSON logger writing to w that renders LevelFatal as "FATAL".
func NewJSON(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(
		slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: replaceLevel,
		}),
	)
}

// Fatal logs msg at LevelFatal.
func Fatal(ctx context.Context, logger *slog.Logger, msg string, args ...any) {
	logger.Log(ctx, LevelFatal, msg, args...)
}

func replaceLevel(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}

	lvl, ok := a.Value.Any().(slog.Level)
	if ok && lvl >= LevelFatal {
		a.Value = slog.StringValue("FATAL")
	}

	return a
}
