// Package middleware provides wrappers around generator collaborators.
package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/cyuria/way2/way2gen/format"
)

// LoggingFormatter wraps a formatter so every call is logged using slog.
// It logs the start and end of each call, including duration, sizes and
// error status.
func LoggingFormatter(next format.Formatter, logger *slog.Logger) format.Formatter {
	if logger == nil {
		logger = slog.Default()
	}

	return format.Func(func(ctx context.Context, src []byte) ([]byte, error) {
		start := time.Now()
		unit := slog.String("unit", format.Unit(ctx))

		logger.DebugContext(ctx, "format started", unit, slog.Int("bytes_in", len(src)))

		out, err := next.Format(ctx, src)
		duration := time.Since(start)

		if err != nil {
			logger.ErrorContext(ctx, "format failed",
				unit,
				slog.Duration("duration", duration),
				slog.Any("error", err),
			)
		} else {
			logger.DebugContext(ctx, "format completed",
				unit,
				slog.Duration("duration", duration),
				slog.Int("bytes_in", len(src)),
				slog.Int("bytes_out", len(out)),
			)
		}

		return out, err
	})
}
