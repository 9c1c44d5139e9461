package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool // include bind variables in db.statement
	SlowQueryThresh time.Duration
	DBName          string
}

// DefaultDBTracingConfig returns the database tracing defaults
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{SlowQueryThresh: 200 * time.Millisecond}
}

// registerAround registers before and after callbacks around every
// built-in GORM operation under the given prefix
func registerAround(db *gorm.DB, prefix string, before, after func(*gorm.DB)) error {
	cb := db.Callback()
	type pair struct {
		op   string
		reg  func(string) error
		post func(string) error
	}
	pairs := []pair{
		{"create",
			func(n string) error { return cb.Create().Before("gorm:create").Register(n, before) },
			func(n string) error { return cb.Create().After("gorm:create").Register(n, after) }},
		{"query",
			func(n string) error { return cb.Query().Before("gorm:query").Register(n, before) },
			func(n string) error { return cb.Query().After("gorm:query").Register(n, after) }},
		{"update",
			func(n string) error { return cb.Update().Before("gorm:update").Register(n, before) },
			func(n string) error { return cb.Update().After("gorm:update").Register(n, after) }},
		{"delete",
			func(n string) error { return cb.Delete().Before("gorm:delete").Register(n, before) },
			func(n string) error { return cb.Delete().After("gorm:delete").Register(n, after) }},
		{"row",
			func(n string) error { return cb.Row().Before("gorm:row").Register(n, before) },
			func(n string) error { return cb.Row().After("gorm:row").Register(n, after) }},
		{"raw",
			func(n string) error { return cb.Raw().Before("gorm:raw").Register(n, before) },
			func(n string) error { return cb.Raw().After("gorm:raw").Register(n, after) }},
	}
	for _, p := range pairs {
		if before != nil {
			if err := p.reg(prefix + ":before_" + p.op); err != nil {
				return err
			}
		}
		if after != nil {
			if err := p.post(prefix + ":after_" + p.op); err != nil {
				return err
			}
		}
	}
	return nil
}

type contextKey string

const queryStartTimeKey contextKey = "otel_query_start_time"

func markQueryStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartTimeKey, time.Now())
	}
}

func queryElapsed(db *gorm.DB) (time.Duration, bool) {
	if db.Statement.Context == nil {
		return 0, false
	}
	start, ok := db.Statement.Context.Value(queryStartTimeKey).(time.Time)
	if !ok {
		return 0, false
	}
	return time.Since(start), true
}

// DBTracingPlugin registers otelgorm spans plus slow query and error
// annotations on the active span.
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracingPlugin creates a new DBTracingPlugin
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = DefaultDBTracingConfig().SlowQueryThresh
	}
	return &DBTracingPlugin{config: cfg, logger: logger}
}

// Register installs the plugin on db. It is a no-op when disabled.
func (p *DBTracingPlugin) Register(db *gorm.DB) error {
	if !p.config.Enabled {
		return nil
	}

	opts := []otelgorm.Option{}
	if p.config.DBName != "" {
		opts = append(opts, otelgorm.WithDBName(p.config.DBName))
	}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}
	if err := registerAround(db, "otel_timing", markQueryStart, p.annotateSpan); err != nil {
		return err
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
	)
	return nil
}

func (p *DBTracingPlugin) annotateSpan(db *gorm.DB) {
	if db.Statement.Context == nil {
		return
	}
	span := trace.SpanFromContext(db.Statement.Context)
	if !span.IsRecording() {
		return
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	if elapsed, ok := queryElapsed(db); ok && elapsed > p.config.SlowQueryThresh {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
		span.AddEvent("slow_query_warning", trace.WithAttributes(
			attribute.Int64("duration_ms", elapsed.Milliseconds()),
			attribute.Int64("threshold_ms", p.config.SlowQueryThresh.Milliseconds()),
		))
	}
}
