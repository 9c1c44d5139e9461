package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSlowThreshold = 200 * time.Millisecond

// GormLogger routes GORM output through zap. Statements run with a request
// context are logged on the request logger, so they carry request_id,
// user_id and the active trace.
type GormLogger struct {
	base          *zap.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
	skipNotFound  bool
}

// GormLoggerOption configures a GormLogger
type GormLoggerOption func(*GormLogger)

// WithSlowThreshold sets the duration above which a statement is logged as
// slow. Zero disables slow statement logging.
func WithSlowThreshold(threshold time.Duration) GormLoggerOption {
	return func(l *GormLogger) {
		l.slowThreshold = threshold
	}
}

// WithIgnoreRecordNotFoundError controls whether gorm.ErrRecordNotFound is
// logged as an error. It is ignored by default since repositories map it to
// a not found domain error.
func WithIgnoreRecordNotFoundError(ignore bool) GormLoggerOption {
	return func(l *GormLogger) {
		l.skipNotFound = ignore
	}
}

func NewGormLogger(base *zap.Logger, level gormlogger.LogLevel, opts ...GormLoggerOption) *GormLogger {
	gl := &GormLogger{
		base:          base.Named("gorm"),
		level:         level,
		slowThreshold: defaultSlowThreshold,
		skipNotFound:  true,
	}
	for _, opt := range opts {
		opt(gl)
	}
	return gl
}

// LogMode implements gormlogger.Interface
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

// loggerFor prefers the request logger carried by ctx
func (l *GormLogger) loggerFor(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if reqLog, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
			return WithTraceContext(ctx, reqLog.Named("gorm"))
		}
		return WithTraceContext(ctx, l.base)
	}
	return l.base
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		l.loggerFor(ctx).Info(fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		l.loggerFor(ctx).Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		l.loggerFor(ctx).Error(fmt.Sprintf(msg, data...))
	}
}

// Trace logs one executed statement: failures at error level, slow
// statements at warn level and everything else at debug level.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	failed := err != nil && !(l.skipNotFound && errors.Is(err, gormlogger.ErrRecordNotFound))
	slow := l.slowThreshold > 0 && elapsed > l.slowThreshold

	var (
		write func(string, ...zap.Field)
		msg   string
		log   = l.loggerFor(ctx)
	)
	switch {
	case failed && l.level >= gormlogger.Error:
		write, msg = log.Error, "sql failed"
	case slow && l.level >= gormlogger.Warn:
		write, msg = log.Warn, "slow sql"
	case l.level >= gormlogger.Info:
		write, msg = log.Debug, "sql"
	default:
		return
	}

	sql, rows := fc()
	fields := []zap.Field{
		zap.String("sql", sql),
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
	}
	if failed {
		fields = append(fields, zap.Error(err))
	}
	if slow {
		fields = append(fields, zap.Duration("threshold", l.slowThreshold))
	}
	write(msg, fields...)
}

// MapGormLogLevel converts a configured log level into GORM's level. Debug
// and info both enable statement tracing; unknown values fall back to warn.
func MapGormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
