package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/plangraph/internal/hclconfig"
	"github.com/specialistvlad/plangraph/internal/planfile"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	PlanPath   string
	ConfigPath string // optional HCL file

	Format      planfile.Format
	LogFormat   string
	LogLevel    string
	CheckCycles bool
}

// NewConfig validates cfg and returns a copy with normalized values.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.PlanPath == "" {
		return nil, errors.New("PlanPath is a required configuration field and cannot be empty")
	}

	format, err := planfile.ParseFormat(string(cfg.Format))
	if err != nil {
		return nil, err
	}
	cfg.Format = format

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, errors.New("invalid log-format: must be 'text' or 'json'")
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "":
		cfg.LogLevel = "info"
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	return &cfg, nil
}

// Overrides names the fields set explicitly on the command line. Those win
// over values from the configuration file.
type Overrides struct {
	Format      bool
	LogFormat   bool
	LogLevel    bool
	CheckCycles bool
}

// ApplyFile copies the values present in file into cfg, except for fields
// marked in set.
func (cfg *Config) ApplyFile(file *hclconfig.File, set Overrides) {
	if file == nil {
		return
	}
	if file.Log != nil {
		if file.Log.Level != nil && !set.LogLevel {
			cfg.LogLevel = *file.Log.Level
		}
		if file.Log.Format != nil && !set.LogFormat {
			cfg.LogFormat = *file.Log.Format
		}
	}
	if file.Plan != nil {
		if file.Plan.Format != nil && !set.Format {
			cfg.Format = planfile.Format(*file.Plan.Format)
		}
		if file.Plan.CheckCycles != nil && !set.CheckCycles {
			cfg.CheckCycles = *file.Plan.CheckCycles
		}
	}
}
