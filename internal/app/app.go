package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/flowchain/internal/driver"
	"github.com/vk/flowchain/internal/ledger"
	"github.com/vk/flowchain/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	driver   *driver.Driver
	ledger   *ledger.Ledger
	config   *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// When no job modules are passed, the built-in set is registered.
func NewApp(outW io.Writer, cfg *Config, jobs ...registry.Module) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(jobs) == 0 {
		jobs = coreJobs
	}
	for _, mod := range jobs {
		mod.Register(reg)
	}
	logger.Debug("All job modules registered.", "count", len(jobs))

	opts := []driver.Option{
		driver.WithOut(outW),
		driver.WithWorkDir(cfg.WorkDir),
	}

	var led *ledger.Ledger
	if cfg.LedgerPath != "" {
		var err error
		led, err = ledger.Open(cfg.LedgerPath)
		if err != nil {
			return nil, fmt.Errorf("opening run ledger: %w", err)
		}
		logger.Debug("Run ledger opened.", "path", cfg.LedgerPath, "runID", led.RunID())
		opts = append(opts, driver.WithLedger(led))
	}

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		driver:   driver.New(reg, opts...),
		ledger:   led,
		config:   cfg,
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Driver returns the application's chain driver. This is primarily for
// embedders that preregister a job constructor.
func (a *App) Driver() *driver.Driver {
	return a.driver
}

// Close releases resources held by the App.
func (a *App) Close() error {
	if a.ledger != nil {
		return a.ledger.Close()
	}
	return nil
}
