// Package cost parses the cumulative cost descriptors attached to nodes of a
// JSON query plan.
//
// A descriptor is either the trivial-cost sentinel `{tiny}` or a braced list
// of five value/unit pairs in a fixed order:
//
//	{20988.07 rows, 409286.37 cpu, 132200.0 io, 132200.2 network, 139603.2 memory}
//
// Anything else is reported as a *MalformedCostError. An unparsable cost
// means the engine changed its output format, so callers are expected to
// fail the build rather than default the value.
package cost

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/viant/parsly"
)

const tinyText = "{tiny}"

// units lists the unit labels in the order the engine prints them.
var units = [...]string{"rows", "cpu", "io", "network", "memory"}

// Cumulative is the optimizer's estimated cost of a plan subtree.
// The zero value is the trivial cost.
type Cumulative struct {
	Rows    float64
	CPU     float64
	IO      float64
	Network float64
	Memory  float64
}

// IsTrivial reports whether every component is zero.
func (c Cumulative) IsTrivial() bool {
	return c == Cumulative{}
}

func (c Cumulative) fields() [5]float64 {
	return [5]float64{c.Rows, c.CPU, c.IO, c.Network, c.Memory}
}

// String renders the cost in the engine's descriptor notation.
func (c Cumulative) String() string {
	if c.IsTrivial() {
		return tinyText
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for i, v := range c.fields() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
		sb.WriteByte(' ')
		sb.WriteString(units[i])
	}
	sb.WriteByte('}')
	return sb.String()
}

// MalformedCostError is returned when a descriptor matches neither the
// sentinel nor the five-field grammar.
type MalformedCostError struct {
	Text   string
	Reason string
}

func (e *MalformedCostError) Error() string {
	return fmt.Sprintf("malformed cost %q: %s", e.Text, e.Reason)
}

// Parse converts a cost descriptor into a Cumulative value.
func Parse(text string) (Cumulative, error) {
	malformed := func(format string, args ...any) (Cumulative, error) {
		return Cumulative{}, &MalformedCostError{Text: text, Reason: fmt.Sprintf(format, args...)}
	}

	cursor := parsly.NewCursor("", []byte(text), 0)
	matched := cursor.MatchAfterOptional(whitespaceMatcher, tinyMatcher, openMatcher)
	switch matched.Code {
	case tinyToken:
		if !atEnd(cursor) {
			return malformed("unexpected text after %s at offset %d", tinyText, cursor.Pos)
		}
		return Cumulative{}, nil
	case openToken:
	case parsly.EOF:
		return malformed("empty descriptor")
	default:
		return malformed("expected '{' at offset %d", cursor.Pos)
	}

	var values [5]float64
	for i, unit := range units {
		if i > 0 {
			matched = cursor.MatchAfterOptional(whitespaceMatcher, commaMatcher)
			if matched.Code != commaToken {
				return malformed("expected ',' before %s at offset %d", unit, cursor.Pos)
			}
		}

		matched = cursor.MatchAfterOptional(whitespaceMatcher, numberMatcher)
		if matched.Code != numberToken {
			return malformed("expected number for %s at offset %d", unit, cursor.Pos)
		}
		raw := matched.Text(cursor)
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsInf(value, 0) || math.IsNaN(value) {
			return malformed("%s value %q is not a finite number", unit, raw)
		}
		values[i] = value

		matched = cursor.MatchAfterOptional(whitespaceMatcher, unitMatcher)
		if matched.Code != unitToken {
			return malformed("expected unit %q at offset %d", unit, cursor.Pos)
		}
		if label := matched.Text(cursor); label != unit {
			return malformed("expected unit %q, got %q", unit, label)
		}
	}

	matched = cursor.MatchAfterOptional(whitespaceMatcher, closeMatcher)
	if matched.Code != closeToken {
		return malformed("expected '}' at offset %d", cursor.Pos)
	}
	if !atEnd(cursor) {
		return malformed("unexpected text after '}' at offset %d", cursor.Pos)
	}

	return Cumulative{
		Rows:    values[0],
		CPU:     values[1],
		IO:      values[2],
		Network: values[3],
		Memory:  values[4],
	}, nil
}

// atEnd reports whether only whitespace remains after the cursor.
func atEnd(cursor *parsly.Cursor) bool {
	for i := cursor.Pos; i < cursor.InputSize; i++ {
		if !isSpace(cursor.Input[i]) {
			return false
		}
	}
	return true
}
