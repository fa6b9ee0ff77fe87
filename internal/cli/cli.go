package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/plangraph/internal/app"
	"github.com/specialistvlad/plangraph/internal/hclconfig"
	"github.com/specialistvlad/plangraph/internal/planfile"
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
	flagSet := flag.NewFlagSet("plangraph", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
plangraph - Rebuilds the operator graph of a query plan.

Usage:
  plangraph [options] PLAN_PATH

Arguments:
  PLAN_PATH
    Path to a plan in the indented text notation or the JSON adjacency map.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to an optional HCL configuration file.")
	formatFlag := flagSet.String("format", string(planfile.FormatAuto), "Plan encoding. Options: 'auto', 'text' or 'json'.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	checkCyclesFlag := flagSet.Bool("check-cycles", false, "Fail on cyclic JSON plans and print relations in dependency order.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No plan path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("expected a single PLAN_PATH, got %d arguments", flagSet.NArg())}
	}

	var set app.Overrides
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			set.Format = true
		case "log-format":
			set.LogFormat = true
		case "log-level":
			set.LogLevel = true
		case "check-cycles":
			set.CheckCycles = true
		}
	})

	cfg := app.Config{
		PlanPath:    flagSet.Arg(0),
		ConfigPath:  *configFlag,
		Format:      planfile.Format(*formatFlag),
		LogFormat:   *logFormatFlag,
		LogLevel:    *logLevelFlag,
		CheckCycles: *checkCyclesFlag,
	}

	if cfg.ConfigPath != "" {
		file, err := hclconfig.Load(context.Background(), cfg.ConfigPath)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		cfg.ApplyFile(file, set)
		slog.Debug("Configuration file applied.", "path", cfg.ConfigPath)
	}

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
