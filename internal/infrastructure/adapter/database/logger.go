package database

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/capsule-market/backend/internal/domain/port/core"
)

// GormLogger adapts the application logger to gorm's logger interface
// so query logs land in the same structured output as everything else.
type GormLogger struct {
	logger        core.Logger
	slowThreshold time.Duration
}

// NewGormLogger wraps logger for gorm. Queries slower than slowThreshold
// are logged at warn level.
func NewGormLogger(logger core.Logger, slowThreshold time.Duration) *GormLogger {
	if slowThreshold <= 0 {
		slowThreshold = 200 * time.Millisecond
	}
	return &GormLogger{logger: logger, slowThreshold: slowThreshold}
}

// LogMode is a no-op since the level is controlled by the application logger.
func (l *GormLogger) LogMode(gormlogger.LogLevel) gormlogger.Interface {
	return l
}

func (l *GormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	l.logger.Info(msg, map[string]any{"args": args})
}

func (l *GormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	l.logger.Warn(msg, map[string]any{"args": args})
}

func (l *GormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	l.logger.Error(msg, map[string]any{"args": args})
}

// Trace logs completed queries. Record-not-found is expected flow and
// is skipped to keep the logs readable.
func (l *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	fields := map[string]any{
		"elapsed_ms": elapsed.Milliseconds(),
		"rows":       rows,
		"sql":        sql,
	}

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		fields["error"] = err.Error()
		l.logger.Error("query failed", fields)
	case elapsed > l.slowThreshold:
		l.logger.Warn("slow query", fields)
	default:
		l.logger.Debug("query executed", fields)
	}
}
