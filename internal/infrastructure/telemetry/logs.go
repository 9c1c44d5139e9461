package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogsConfig struct {
	Enabled           bool
	CollectorEndpoint string
	ServiceName       string
	ServiceVersion    string
	Insecure          bool
}

// LoggerProvider owns the OTLP log pipeline that zap entries are bridged
// into.
type LoggerProvider struct {
	pipeline
	sdk     *sdklog.LoggerProvider
	service string
}

func NewLoggerProvider(ctx context.Context, cfg LogsConfig, logger *zap.Logger) (*LoggerProvider, error) {
	lp := &LoggerProvider{pipeline: pipeline{signal: "logs", logger: logger}, service: cfg.ServiceName}
	if !cfg.Enabled {
		logger.Info("Log export disabled")
		return lp, nil
	}

	opts := []otlploggrpc.Option{otlploggrpc.WithEndpoint(cfg.CollectorEndpoint)}
	if cfg.Insecure {
		opts = append(opts, otlploggrpc.WithInsecure())
	}
	exporter, err := otlploggrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create log exporter: %w", err)
	}
	res, err := newResource(cfg.ServiceName, cfg.ServiceVersion)
	if err != nil {
		return nil, err
	}

	lp.install(sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
	))
	logger.Info("Log export enabled", zap.String("collector_endpoint", cfg.CollectorEndpoint))
	return lp, nil
}

func (lp *LoggerProvider) install(sdk *sdklog.LoggerProvider) {
	lp.sdk = sdk
	lp.attach(sdk.ForceFlush, sdk.Shutdown)
	global.SetLoggerProvider(sdk)
}

// IsEnabled reports whether log records leave the process
func (lp *LoggerProvider) IsEnabled() bool {
	return lp.running()
}

// NewZapOTELCore returns a zap core that forwards entries at or above
// level to lp. A nil or disabled provider yields a no-op core.
func NewZapOTELCore(lp *LoggerProvider, level zapcore.Level) zapcore.Core {
	if lp == nil || !lp.IsEnabled() {
		return zapcore.NewNopCore()
	}
	return minLevelCore{
		Core: otelzap.NewCore(lp.service, otelzap.WithLoggerProvider(lp.sdk)),
		min:  level,
	}
}

// minLevelCore drops entries below min before they reach the bridge, which
// would otherwise accept every level.
type minLevelCore struct {
	zapcore.Core
	min zapcore.Level
}

func (c minLevelCore) Enabled(lvl zapcore.Level) bool {
	return lvl >= c.min && c.Core.Enabled(lvl)
}

func (c minLevelCore) Check(entry zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if entry.Level < c.min {
		return ce
	}
	return c.Core.Check(entry, ce)
}

func (c minLevelCore) With(fields []zapcore.Field) zapcore.Core {
	return minLevelCore{Core: c.Core.With(fields), min: c.min}
}

// Bridge tees logger into the OTLP log pipeline at the logger's own level.
// Output to the original destination is unchanged; with a disabled
// provider logger is returned as is.
func Bridge(logger *zap.Logger, lp *LoggerProvider) *zap.Logger {
	if lp == nil || !lp.IsEnabled() {
		return logger
	}
	otelCore := NewZapOTELCore(lp, zapcore.LevelOf(logger.Core()))
	return logger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, otelCore)
	}))
}
