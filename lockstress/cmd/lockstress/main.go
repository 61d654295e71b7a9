//go:build !solution

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"github.com/Rogov-KS/rwlock/lockmetrics"
	"github.com/Rogov-KS/rwlock/lockstress"
	"github.com/Rogov-KS/rwlock/rwlock"
)

type options struct {
	configPath  string
	metricsAddr string
	logLevel    string
	linger      time.Duration
	cfg         lockstress.Config
}

// bindWorkloadFlags регистрирует флаги, переопределяющие значения из конфига
func bindWorkloadFlags(fs *pflag.FlagSet, cfg *lockstress.Config) {
	fs.IntVar(&cfg.Readers, "readers", cfg.Readers, "number of reader goroutines")
	fs.IntVar(&cfg.Writers, "writers", cfg.Writers, "number of writer goroutines")
	fs.DurationVar(&cfg.Duration, "duration", cfg.Duration, "length of the run")
	fs.DurationVar(&cfg.HoldTime, "hold", cfg.HoldTime, "time a hold is kept")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "timeout of timed acquisitions")
	fs.IntVar(&cfg.ReentrantDepth, "depth", cfg.ReentrantDepth, "nested write holds per write")
	fs.IntVar(&cfg.DowngradeEvery, "downgrade-every", cfg.DowngradeEvery, "downgrade every n-th write, 0 disables")
	fs.IntVar(&cfg.CancelEvery, "cancel-every", cfg.CancelEvery, "cancel every n-th acquisition, 0 disables")
	fs.DurationVar(&cfg.CheckInterval, "check-interval", cfg.CheckInterval, "period of lock state checks")
}

// overrideFromFlags copies explicitly set flags over the loaded config.
func overrideFromFlags(fs *pflag.FlagSet, flags, loaded *lockstress.Config) {
	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "readers":
			loaded.Readers = flags.Readers
		case "writers":
			loaded.Writers = flags.Writers
		case "duration":
			loaded.Duration = flags.Duration
		case "hold":
			loaded.HoldTime = flags.HoldTime
		case "timeout":
			loaded.Timeout = flags.Timeout
		case "depth":
			loaded.ReentrantDepth = flags.ReentrantDepth
		case "downgrade-every":
			loaded.DowngradeEvery = flags.DowngradeEvery
		case "cancel-every":
			loaded.CancelEvery = flags.CancelEvery
		case "check-interval":
			loaded.CheckInterval = flags.CheckInterval
		}
	})
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	return cfg.Build()
}

func newRunCommand() *cobra.Command {
	opts := options{cfg: lockstress.DefaultConfig()}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a concurrent workload against one lock and check its guarantees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := opts.cfg
			if opts.configPath != "" {
				loaded, err := lockstress.LoadConfig(opts.configPath)
				if err != nil {
					return err
				}
				overrideFromFlags(cmd.Flags(), &opts.cfg, &loaded)
				cfg = loaded
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid workload: %w", err)
			}

			logger, err := newLogger(opts.logLevel)
			if err != nil {
				return fmt.Errorf("log level: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cmd, opts, cfg, logger)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&opts.configPath, "config", "", "path to a .yaml workload")
	fs.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve /metrics and /debug/lock on this address")
	fs.StringVar(&opts.logLevel, "log-level", "info", "debug, info, warn or error")
	fs.DurationVar(&opts.linger, "linger", 0, "keep the metrics server up after the run")
	bindWorkloadFlags(fs, &opts.cfg)
	return cmd
}

func run(ctx context.Context, cmd *cobra.Command, opts options, cfg lockstress.Config, logger *zap.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	lock := rwlock.New(
		rwlock.WithLogger(logger.Named("rwlock")),
		rwlock.WithObserver(lockmetrics.New(reg, "stress")),
	)

	if opts.metricsAddr != "" {
		srv := &http.Server{
			Addr:         opts.metricsAddr,
			Handler:      lockstress.NewHandler(lock, reg, logger.Named("http")),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("metrics server shutdown", zap.Error(err))
			}
		}()
		logger.Info("serving metrics", zap.String("addr", opts.metricsAddr))
	}

	rep, runErr := lockstress.NewRunner(cfg, lock, logger).Run(ctx)

	out, err := yaml.Marshal(rep)
	if err != nil {
		return err
	}
	if _, err := cmd.OutOrStdout().Write(out); err != nil {
		return err
	}

	if opts.metricsAddr != "" && opts.linger > 0 {
		select {
		case <-ctx.Done():
		case <-time.After(opts.linger):
		}
	}
	return runErr
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "lockstress",
		Short:         "Stress tool for the reentrant read-write lock",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCommand())
	return root
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "lockstress:", err)
		os.Exit(1)
	}
}
