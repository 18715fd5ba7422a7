package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/flowchain/internal/app"
	"github.com/vk/flowchain/internal/cli"
	"github.com/vk/flowchain/internal/diagnostics"
)

// main is the entrypoint for the flowchain driver.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. Any failure escaping the application is enriched here — once, at
// the outermost boundary — with remediation advice and a reference link,
// keeping the original error as the wrapped cause.
func run(outW io.Writer, argv []string) error {
	appConfig, shouldExit, err := cli.Parse(argv, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	flowchainApp, err := app.NewApp(outW, appConfig)
	if err != nil {
		return err
	}
	defer flowchainApp.Close()

	enricher := diagnostics.NewEnricher(app.Remediations(), nil)
	return enricher.Wrap(flowchainApp.Run(context.Background()))
}
