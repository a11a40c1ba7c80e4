package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/molload/internal/app"
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
	flagSet := flag.NewFlagSet("molload", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
molload - identify and load molecular structure files.

Usage:
  molload [options] PATH

Arguments:
  PATH
    A file, a directory of files, or an http://, https://, or ftp:// URL.
    Names ending in .gz or .bz2 are decompressed transparently.

Options:
`)
		flagSet.PrintDefaults()
	}

	structureFlag := flagSet.Bool("structure", false, "Ask formats with a non-Structure default result to return a Structure.")
	natomFlag := flagSet.Int("natom", 0, "Atom count, for formats with no embedded count (e.g. Amber mdcrd).")
	hasboxFlag := flagSet.Bool("hasbox", false, "The coordinate file carries unit cell dimensions.")
	skipBondsFlag := flagSet.Bool("skip-bonds", false, "Skip bond searching for formats without bond information.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	if path == "" {
		slog.Debug("No path provided, printing usage and exiting.")
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
		Path:      path,
		LogFormat: logFormat,
		LogLevel:  logLevel,
		Structure: *structureFlag,
		HasBox:    *hasboxFlag,
		SkipBonds: *skipBondsFlag,
		NAtom:     *natomFlag,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "path", path)
	return config, false, nil
}
