package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/texo/internal/app"
	"github.com/vk/texo/internal/formula"
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
	flagSet := flag.NewFlagSet("texo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
Texo - an XBRL taxonomy metadata extraction tool.

Usage:
  texo [options] [SNAPSHOT_PATH]

Arguments:
  SNAPSHOT_PATH
    Path to a single .hcl taxonomy snapshot or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	snapshotFlag := flagSet.String("snapshot", "", "Path to the taxonomy snapshot file or directory.")
	sFlag := flagSet.String("s", "", "Path to the taxonomy snapshot file or directory (shorthand).")
	outFlag := flagSet.String("out", "", "Path for the JSON result. '-' or empty writes to stdout.")
	servePortFlag := flagSet.Int("serve-port", 0, "Port for the HTTP result server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	maxDepthFlag := flagSet.Int("max-depth", formula.DefaultMaxDepth, "Maximum recursion depth for formula hierarchies.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *snapshotFlag != "" {
		path = *snapshotFlag
	} else if *sFlag != "" {
		path = *sFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Snapshot path determined.", "path", path)

	if path == "" {
		slog.Debug("No snapshot path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

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
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		SnapshotPath: path,
		OutPath:      *outFlag,
		ServePort:    *servePortFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
		MaxDepth:     *maxDepthFlag,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
