// Package hclconfig loads the optional plangraph configuration file written
// in HCL. The file may reference the process environment through the `env`
// variable, e.g. `level = env.PLANGRAPH_LOG_LEVEL`.
package hclconfig

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/plangraph/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// File is the decoded configuration. Unset attributes stay nil so callers
// can tell them apart from explicit values.
type File struct {
	Log  *LogBlock  `hcl:"log,block"`
	Plan *PlanBlock `hcl:"plan,block"`
}

// LogBlock configures the application logger.
type LogBlock struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}

// PlanBlock configures how plans are read and checked.
type PlanBlock struct {
	Format      *string `hcl:"format,optional"`
	CheckCycles *bool   `hcl:"check_cycles,optional"`
}

// Load parses and decodes the configuration file at path using the current
// process environment.
func Load(ctx context.Context, path string) (*File, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL config loader started.", "path", path)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	cfg, err := decode(hclFile, os.Environ())
	if err != nil {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, err)
	}

	logger.Debug("HCL config loading complete.", "path", path, "has_log", cfg.Log != nil, "has_plan", cfg.Plan != nil)
	return cfg, nil
}

// Parse decodes configuration source held in memory. env uses the
// os.Environ "KEY=value" form.
func Parse(src []byte, filename string, env []string) (*File, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return decode(hclFile, env)
}

func decode(hclFile *hcl.File, env []string) (*File, error) {
	var cfg File
	diags := gohcl.DecodeBody(hclFile.Body, evalContext(env), &cfg)
	if diags.HasErrors() {
		return nil, diags
	}
	return &cfg, nil
}

// evalContext exposes env as an object of string attributes.
func evalContext(env []string) *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(env))
	for _, kv := range env {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}
