package app

import (
	"context"
	"fmt"

	"github.com/vk/flowchain/internal/ctxlog"
	"github.com/vk/flowchain/internal/engine"
	"github.com/vk/flowchain/internal/mode"
)

// Run executes the main application logic: resolve the execution mode, then
// the root job, then drive the chain to completion.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	engineConfig := engine.NewConfig()
	m, jobArgs, err := mode.Resolve(a.config.JobArgs, engineConfig)
	if err != nil {
		return fmt.Errorf("resolving execution mode: %w", err)
	}
	ctx = mode.WithContext(ctx, m)
	a.logger.Info("Execution mode resolved.", "mode", m.Kind.String(), "configFiles", len(engineConfig.Files()))

	root, err := a.driver.ResolveJob(jobArgs)
	if err != nil {
		return err
	}
	a.logger.Info("Job resolved.", "job", root.Name(), "kind", root.Kind().String())

	if err := a.driver.Execute(ctx, root); err != nil {
		return err
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
