package main

import (
	"context"
	"errors"

	"github.com/shopdesk/backend/internal/infrastructure/config"
	"github.com/shopdesk/backend/internal/infrastructure/persistence"
	"github.com/shopdesk/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// observability holds the OpenTelemetry providers and the profiler. Every
// member is a no-op when its switch is off.
type observability struct {
	tracer   *telemetry.TracerProvider
	meter    *telemetry.MeterProvider
	logs     *telemetry.LoggerProvider
	profiler *telemetry.Profiler
	db       *telemetry.DBMetrics
}

func setupObservability(ctx context.Context, cfg *config.Config, log *zap.Logger) (*observability, *zap.Logger, error) {
	tc := cfg.Telemetry
	obs := &observability{}

	var err error
	obs.tracer, err = telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           tc.Enabled,
		CollectorEndpoint: tc.CollectorEndpoint,
		SamplingRatio:     tc.SamplingRatio,
		ServiceName:       tc.ServiceName,
		ServiceVersion:    version,
		Insecure:          tc.Insecure,
	}, log)
	if err != nil {
		return nil, log, err
	}

	obs.meter, err = telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           tc.MetricsEnabled,
		CollectorEndpoint: tc.CollectorEndpoint,
		ServiceName:       tc.ServiceName,
		ServiceVersion:    version,
		Insecure:          tc.Insecure,
	}, log)
	if err != nil {
		return nil, log, err
	}

	obs.logs, err = telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           tc.LogsEnabled,
		CollectorEndpoint: tc.CollectorEndpoint,
		ServiceName:       tc.ServiceName,
		ServiceVersion:    version,
		Insecure:          tc.Insecure,
	}, log)
	if err != nil {
		return nil, log, err
	}
	log = telemetry.Bridge(log, obs.logs)

	profilerCfg := telemetry.DefaultProfilerConfig(tc.PyroscopeAddress, tc.ServiceName)
	profilerCfg.Enabled = tc.ProfilingEnabled
	profilerCfg.Tags = map[string]string{"env": cfg.App.Env, "version": version}
	obs.profiler, err = telemetry.NewProfiler(profilerCfg, log)
	if err != nil {
		return nil, log, err
	}
	if obs.profiler.IsEnabled() && obs.tracer.IsEnabled() {
		if err := obs.tracer.EnableSpanProfiles(); err != nil {
			log.Warn("Span profiles unavailable", zap.Error(err))
		}
	}

	return obs, log, nil
}

// instrumentDatabase adds query tracing and pool metrics to db
func (o *observability) instrumentDatabase(ctx context.Context, cfg *config.Config, db *persistence.Database, log *zap.Logger) {
	tc := cfg.Telemetry
	if tc.Enabled && tc.DBTraceEnabled {
		plugin := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:         true,
			LogFullSQL:      tc.DBLogFullSQL,
			SlowQueryThresh: tc.DBSlowQueryThresh,
			DBName:          cfg.Database.DBName,
		}, log)
		if err := plugin.Register(db.DB); err != nil {
			log.Warn("Database tracing disabled", zap.Error(err))
		}
	}

	if !o.meter.IsEnabled() {
		return
	}
	metrics, err := telemetry.NewDBMetrics(o.meter.Meter("shopdesk.db"), telemetry.DBMetricsConfig{
		SlowQueryThreshold: tc.DBSlowQueryThresh,
	}, log)
	if err != nil {
		log.Warn("Database metrics disabled", zap.Error(err))
		return
	}
	if err := metrics.Instrument(db.DB); err != nil {
		log.Warn("Database metrics disabled", zap.Error(err))
		return
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		metrics.StartPoolStatsCollection(ctx, sqlDB)
	}
	o.db = metrics
}

func (o *observability) shutdown(ctx context.Context) error {
	if o.db != nil {
		o.db.Stop()
	}
	return errors.Join(
		o.profiler.Stop(),
		o.tracer.Shutdown(ctx),
		o.meter.Shutdown(ctx),
		o.logs.Shutdown(ctx),
	)
}
