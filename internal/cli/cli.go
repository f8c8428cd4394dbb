package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/vk/infragrid/internal/app"
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

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("infragrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
infragrid - A declarative infrastructure reconciliation tool.

Usage:
  infragrid [options] [STACK_PATH]

Arguments:
  STACK_PATH
    Path to a single .hcl stack file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	stackFlag := flagSet.String("stack", "", "Path to the stack file or directory.")
	sFlag := flagSet.String("s", "", "Path to the stack file or directory (shorthand).")
	providerFlag := flagSet.String("provider", "mem", "Provider adapter to reconcile against. Options: 'mem' or 'aws'.")
	regionFlag := flagSet.String("region", "", "Cloud region for the aws provider.")
	destroyFlag := flagSet.Bool("destroy", false, "Destroy every managed resource in reverse dependency order.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text', 'json' or 'pretty'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", 10, "Number of concurrent workers for the executor.")
	providerTimeoutFlag := flagSet.Duration("provider-timeout", 2*time.Minute, "Timeout for a single provider call. 0 disables the limit.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *stackFlag != "" {
		path = *stackFlag
	} else if *sFlag != "" {
		path = *sFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Stack path determined.", "path", path)

	if path == "" {
		slog.Debug("No stack path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	switch logFormat {
	case "text", "json", "pretty":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text', 'json' or 'pretty'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		StackPath:       path,
		Provider:        strings.ToLower(*providerFlag),
		Region:          *regionFlag,
		Destroy:         *destroyFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		WorkerCount:     *workersFlag,
		ProviderTimeout: *providerTimeoutFlag,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
