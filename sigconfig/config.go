// Package sigconfig resolves dispatcher defaults from the environment,
// following the viper-based loader convention in moligarch-AsaExchange's
// config package: a typed Config struct, sensible hardcoded defaults, and
// an env-var prefix so every knob can be overridden without a config file.
package sigconfig

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the resolved defaults. Within this repository only
// cmd/sigbench reads it, for BenchmarkIterations; NewAutoDispatcher and
// NewConnectionEvaluator do not consult it.
type Config struct {
	// LogLevel is a zerolog level name ("debug", "info", "warn", "error",
	// "disabled"). No package in this repository applies it to a logger.
	LogLevel string

	// AutoDispatchPollInterval is a poll interval in the form
	// WithPollInterval accepts. NewAutoDispatcher does not read it; its own
	// default is 250ms.
	AutoDispatchPollInterval time.Duration

	// BenchmarkIterations is the default sample size cmd/sigbench takes
	// per scenario when the caller does not override it with a flag.
	BenchmarkIterations int
}

// Default returns the configuration sigconfig falls back to when no
// environment variable overrides a field.
func Default() Config {
	return Config{
		LogLevel:                 "disabled",
		AutoDispatchPollInterval: 250 * time.Millisecond,
		BenchmarkIterations:      1000,
	}
}

// Load resolves Config from environment variables prefixed SIGCORE_
// (SIGCORE_LOG_LEVEL, SIGCORE_AUTO_DISPATCH_POLL_INTERVAL,
// SIGCORE_BENCHMARK_ITERATIONS), falling back to Default for anything
// unset.
func Load() (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetEnvPrefix("SIGCORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("auto_dispatch_poll_interval", cfg.AutoDispatchPollInterval)
	v.SetDefault("benchmark_iterations", cfg.BenchmarkIterations)

	cfg.LogLevel = v.GetString("log_level")
	cfg.BenchmarkIterations = v.GetInt("benchmark_iterations")
	cfg.AutoDispatchPollInterval = v.GetDuration("auto_dispatch_poll_interval")

	return cfg, nil
}
