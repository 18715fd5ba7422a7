// Package cli parses the driver's own command-line options, leaving the job
// argument stream untouched for mode and job resolution.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/flowchain/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
//
// Flag parsing stops at the first non-flag token, so driver options must come
// before the job name and the job's own --key value arguments pass through
// verbatim.
func Parse(argv []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("flowchain", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
flowchain - a driver for chains of dependent dataflow jobs.

Usage:
  flowchain [options] <jobName> --local|--hdfs [--key value ...]

Job flags:
  --tool.graph             write DOT graph files instead of executing
  --scalding.flowstats     write the statistics JSON file (optional filename value)
  --scalding.nocounters    suppress custom counter output

Engine options (stripped before job resolution):
  -conf <path>             load an HCL engine config file or directory
  -D key=value             set one engine config override

Options:
`)
		flagSet.PrintDefaults()
	}

	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	ledgerFlag := flagSet.String("ledger", "", "Path to a SQLite run-history database. Empty disables the ledger.")
	workDirFlag := flagSet.String("workdir", ".", "Directory that graph and statistics artifacts are written to.")

	if err := flagSet.Parse(argv); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return nil, false, &ExitError{Code: 2, Message: "a job name is required"}
	}

	return &app.Config{
		LogLevel:   logLevel,
		LogFormat:  logFormat,
		LedgerPath: *ledgerFlag,
		WorkDir:    *workDirFlag,
		JobArgs:    flagSet.Args(),
	}, false, nil
}
