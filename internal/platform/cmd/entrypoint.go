// Package cmd holds helpers shared by eventline command entry points.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/louisbranch/eventline/internal/platform/config"
	"github.com/louisbranch/eventline/internal/platform/otel"
	"github.com/rs/zerolog"
)

const defaultOTelShutdownTimeout = 5 * time.Second

// ServiceEvent names the event server for telemetry and CLI output.
const ServiceEvent = "event"

// ConfigFileEnv names the variable that points at an optional YAML file.
const ConfigFileEnv = config.EnvPrefix + "CONFIG"

// RunOptions controls shared entrypoint behavior for service commands.
type RunOptions struct {
	// ShutdownTimeout sets the timeout used when stopping telemetry.
	ShutdownTimeout time.Duration
	// Logger receives telemetry shutdown failures. Nil discards them.
	Logger *zerolog.Logger
}

// ParseConfig layers configuration sources onto cfg, which must already hold
// the built-in defaults: the YAML file named by -config or EVENTLINE_CONFIG,
// then the environment, then the remaining flags.
//
// Flags must be registered on fs with cfg's current field values as their
// defaults; ParseConfig re-applies only the flags that were set explicitly.
func ParseConfig[T any](cfg *T, fs *flag.FlagSet, args []string) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	if fs == nil {
		return errors.New("flag parser is required")
	}
	configPath := fs.String("config", os.Getenv(ConfigFileEnv), "path to a YAML config file")
	if err := ParseArgs(fs, args); err != nil {
		return err
	}
	explicit := explicitFlags(fs)
	if err := config.LoadFile(*configPath, cfg); err != nil {
		return err
	}
	if err := config.ParseEnv(cfg); err != nil {
		return err
	}
	return reapplyFlags(fs, explicit)
}

// ParseArgs parses command-line flags.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// explicitFlags snapshots the values of flags set on the command line.
func explicitFlags(fs *flag.FlagSet) map[string]string {
	values := map[string]string{}
	fs.Visit(func(f *flag.Flag) {
		if f.Name != "config" {
			values[f.Name] = f.Value.String()
		}
	})
	return values
}

// reapplyFlags writes explicitly set flags back into their targets so they
// win over file and environment values.
func reapplyFlags(fs *flag.FlagSet, values map[string]string) error {
	for name, value := range values {
		if err := fs.Set(name, value); err != nil {
			return fmt.Errorf("reapply flag -%s: %w", name, err)
		}
	}
	return nil
}

// RunWithTelemetry configures observability and executes a service run loop.
func RunWithTelemetry(ctx context.Context, service string, options RunOptions, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return fmt.Errorf("service name is required")
	}
	if run == nil {
		return fmt.Errorf("run function is required")
	}
	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return err
	}
	defer func() {
		shutdownTimeout := options.ShutdownTimeout
		if shutdownTimeout <= 0 {
			shutdownTimeout = defaultOTelShutdownTimeout
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil && options.Logger != nil {
			options.Logger.Warn().Err(err).Str("service", service).Msg("otel shutdown")
		}
	}()
	return run(ctx)
}
