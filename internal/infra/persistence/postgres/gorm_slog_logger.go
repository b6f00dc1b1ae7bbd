package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// slowQueryThreshold marks queries worth a warning. Checkout holds row locks,
// so anything slower shows up as cart contention.
const slowQueryThreshold = 200 * time.Millisecond

// queryLogger writes GORM output to the request-scoped slog logger when one
// is on the context, so SQL lines carry the request id.
type queryLogger struct {
	fallback *slog.Logger
	level    logger.LogLevel
	slow     time.Duration
}

// NewGormLogger routes GORM output through slog. Debug mode logs every query.
func NewGormLogger(baseLogger *slog.Logger, debug bool) logger.Interface {
	level := logger.Warn
	if debug {
		level = logger.Info
	}

	return &queryLogger{fallback: baseLogger, level: level, slow: slowQueryThreshold}
}

func (l *queryLogger) LogMode(level logger.LogLevel) logger.Interface {
	cloned := *l
	cloned.level = level

	return &cloned
}

func (l *queryLogger) Info(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Info, slog.LevelInfo, msg, args)
}

func (l *queryLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Warn, slog.LevelWarn, msg, args)
}

func (l *queryLogger) Error(ctx context.Context, msg string, args ...any) {
	l.printf(ctx, logger.Error, slog.LevelError, msg, args)
}

func (l *queryLogger) printf(ctx context.Context, min logger.LogLevel, level slog.Level, msg string, args []any) {
	if l.level < min {
		return
	}
	if log := l.log(ctx); log != nil {
		log.LogAttrs(ctx, level, "gorm", slog.String("message", fmt.Sprintf(msg, args...)))
	}
}

func (l *queryLogger) log(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return l.fallback
	}

	return deliverycontext.GetLoggerOrDefault(ctx, l.fallback)
}

// Trace classifies each statement: constraint rejections are business outcomes
// (duplicate review, duplicate stock unit) and stay at debug; missing rows are
// not logged; other errors, slow queries and debug-mode queries are.
func (l *queryLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	log := l.log(ctx)
	if log == nil || l.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	level, msg, ok := l.classify(err, elapsed)
	if !ok {
		return
	}

	sql, rows := fc()
	attrs := []slog.Attr{
		slog.Duration("elapsed", elapsed),
		slog.Int64("rows", rows),
		slog.String("sql", sql),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}

	log.LogAttrs(ctx, level, msg, attrs...)
}

func (l *queryLogger) classify(err error, elapsed time.Duration) (slog.Level, string, bool) {
	switch {
	case errors.IsAny(err, gorm.ErrDuplicatedKey, gorm.ErrForeignKeyViolated):
		return slog.LevelDebug, "query rejected by constraint", true
	case errors.Is(err, gorm.ErrRecordNotFound):
		return 0, "", false
	case err != nil:
		return slog.LevelError, "query failed", l.level >= logger.Error
	case l.slow > 0 && elapsed > l.slow:
		return slog.LevelWarn, "slow query", l.level >= logger.Warn
	default:
		return slog.LevelInfo, "query", l.level >= logger.Info
	}
}
