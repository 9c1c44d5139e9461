package telemetry

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/grafana/pyroscope-go"
	"go.uber.org/zap"
)

// ProfilerConfig holds Pyroscope continuous profiling configuration.
type ProfilerConfig struct {
	Enabled         bool
	ServerAddress   string
	ApplicationName string
	Tags            map[string]string

	ProfileMemory     bool // alloc and in-use objects and space
	ProfileGoroutines bool
	ProfileContention bool // mutex and block profiles
}

// DefaultProfilerConfig returns a configuration with CPU, memory and
// goroutine profiles enabled
func DefaultProfilerConfig(address, application string) ProfilerConfig {
	return ProfilerConfig{
		Enabled:           address != "",
		ServerAddress:     address,
		ApplicationName:   application,
		ProfileMemory:     true,
		ProfileGoroutines: true,
	}
}

const contentionRate = 5

// Profiler wraps the Pyroscope profiler with lifecycle management.
type Profiler struct {
	profiler *pyroscope.Profiler
	logger   *zap.Logger
	config   ProfilerConfig
	mu       sync.Mutex
	stopped  bool
}

// NewProfiler starts a Pyroscope profiler. A disabled config yields a no-op
// profiler.
func NewProfiler(cfg ProfilerConfig, logger *zap.Logger) (*Profiler, error) {
	p := &Profiler{logger: logger, config: cfg}
	if !cfg.Enabled {
		logger.Info("Continuous profiling disabled")
		return p, nil
	}
	if cfg.ServerAddress == "" {
		return nil, errors.New("profiler server address is required when profiling is enabled")
	}
	if cfg.ApplicationName == "" {
		return nil, errors.New("profiler application name is required when profiling is enabled")
	}

	if cfg.ProfileContention {
		runtime.SetMutexProfileFraction(contentionRate)
		runtime.SetBlockProfileRate(contentionRate)
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: cfg.ApplicationName,
		ServerAddress:   cfg.ServerAddress,
		Logger:          pyroscopeLogger{logger: logger.Named("pyroscope").Sugar()},
		Tags:            profileTags(cfg.Tags),
		ProfileTypes:    profileTypes(cfg),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start Pyroscope profiler: %w", err)
	}
	p.profiler = profiler

	logger.Info("Pyroscope profiler started",
		zap.String("server_address", cfg.ServerAddress),
		zap.String("application_name", cfg.ApplicationName),
	)
	return p, nil
}

func profileTypes(cfg ProfilerConfig) []pyroscope.ProfileType {
	types := []pyroscope.ProfileType{pyroscope.ProfileCPU}
	if cfg.ProfileMemory {
		types = append(types,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
		)
	}
	if cfg.ProfileGoroutines {
		types = append(types, pyroscope.ProfileGoroutines)
	}
	if cfg.ProfileContention {
		types = append(types,
			pyroscope.ProfileMutexCount,
			pyroscope.ProfileMutexDuration,
			pyroscope.ProfileBlockCount,
			pyroscope.ProfileBlockDuration,
		)
	}
	return types
}

func profileTags(extra map[string]string) map[string]string {
	tags := make(map[string]string, len(extra)+2)
	if hostname := os.Getenv("HOSTNAME"); hostname != "" {
		tags["hostname"] = hostname
	}
	if pod := os.Getenv("POD_NAME"); pod != "" {
		tags["pod"] = pod
	}
	for k, v := range extra {
		tags[k] = v
	}
	return tags
}

// Stop flushes and stops the profiler. It is safe to call more than once.
func (p *Profiler) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.profiler == nil || p.stopped {
		return nil
	}
	p.stopped = true

	if err := p.profiler.Stop(); err != nil {
		return fmt.Errorf("failed to stop Pyroscope profiler: %w", err)
	}
	p.logger.Info("Pyroscope profiler stopped")
	return nil
}

// IsEnabled returns whether the profiler is running
func (p *Profiler) IsEnabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.profiler != nil && !p.stopped
}

type pyroscopeLogger struct {
	logger *zap.SugaredLogger
}

func (l pyroscopeLogger) Infof(format string, args ...any)  { l.logger.Debugf(format, args...) }
func (l pyroscopeLogger) Debugf(format string, args ...any) { l.logger.Debugf(format, args...) }
func (l pyroscopeLogger) Errorf(format string, args ...any) { l.logger.Errorf(format, args...) }
