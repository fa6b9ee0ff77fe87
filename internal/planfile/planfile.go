// Package planfile reads a query plan from disk in either of its two
// encodings: the indented textual notation or the JSON adjacency map.
package planfile

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/specialistvlad/plangraph/internal/ctxlog"
)

// Format selects how a plan file is decoded.
type Format string

const (
	FormatAuto Format = "auto"
	FormatText Format = "text"
	FormatJSON Format = "json"
)

var json = jsoniter.Config{
	UseNumber:   true,
	SortMapKeys: true,
}.Froze()

// ParseFormat validates a user supplied format name. The empty string means
// FormatAuto.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatAuto, nil
	case FormatAuto, FormatText, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("invalid plan format %q: must be 'auto', 'text' or 'json'", s)
	}
}

// Plan is the decoded content of a plan file. Exactly one of Lines and JSON
// is set, matching Format.
type Plan struct {
	Path   string
	Format Format
	Lines  []string
	JSON   map[string]any
}

// Load reads the file at path and decodes it. With FormatAuto a file whose
// first non-space byte is '{' is treated as JSON, anything else as text.
func Load(ctx context.Context, path string, format Format) (*Plan, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading plan file.", "path", path, "format", format)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file %s: %w", path, err)
	}

	plan, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to decode plan file %s: %w", path, err)
	}
	plan.Path = path

	logger.Debug("Plan file loaded.", "path", path, "format", plan.Format, "lines", len(plan.Lines), "json_nodes", len(plan.JSON))
	return plan, nil
}

// Decode is Load without the file system.
func Decode(data []byte, format Format) (*Plan, error) {
	if format == "" || format == FormatAuto {
		format = Detect(data)
	}

	switch format {
	case FormatText:
		return &Plan{Format: FormatText, Lines: splitLines(data)}, nil
	case FormatJSON:
		raw := map[string]any{}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("invalid JSON plan: %w", err)
		}
		return &Plan{Format: FormatJSON, JSON: raw}, nil
	default:
		return nil, fmt.Errorf("unsupported plan format %q", format)
	}
}

// Detect guesses the encoding of data.
func Detect(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatText
}

func splitLines(data []byte) []string {
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
