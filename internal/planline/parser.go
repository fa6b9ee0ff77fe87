package planline

import (
	"strings"
)

// scanState is the state of the property scanner inside the parentheses of
// a plan line.
type scanState int

const (
	// stateIdle ignores everything until a space starts a property name.
	stateIdle scanState = iota
	// stateName accumulates a property name up to '='.
	stateName
	// stateAwaitValue skips to the '[' that opens the value.
	stateAwaitValue
	// stateValue accumulates a value until its brackets balance.
	stateValue
)

// ParseLine parses one line of the indented plan notation. It never fails:
// malformed or unterminated lines are consumed best-effort up to the end of
// the string.
func ParseLine(line string) Record {
	rec := Record{Properties: make(map[string]string)}

	for rec.Indent < len(line) && line[rec.Indent] == ' ' {
		rec.Indent++
	}

	rest := line[rec.Indent:]
	open := strings.IndexByte(rest, '(')
	if open < 0 {
		rec.TypeName = strings.TrimSpace(rest)
		return rec
	}
	rec.TypeName = strings.TrimSpace(rest[:open])
	scanProperties(rest[open+1:], rec.Properties)
	return rec
}

// scanProperties walks the text following the opening parenthesis of a line
// and stores every name=[value] pair into props. Parentheses are balanced
// across the whole span, including inside values; the span ends when the
// balance returns to zero.
func scanProperties(span string, props map[string]string) {
	var (
		state      = stateName
		parens     = 1
		nameStart  = 0
		name       string
		valueStart int
		opened     int
		closed     int
		end        = len(span)
	)

	for i := 0; i < len(span); i++ {
		c := span[i]
		switch c {
		case '(':
			parens++
		case ')':
			parens--
		}
		if parens == 0 {
			end = i
			break
		}

		switch state {
		case stateValue:
			switch c {
			case '[':
				opened++
			case ']':
				closed++
				if closed == opened {
					props[name] = strings.TrimSpace(span[valueStart:i])
					state = stateIdle
				}
			}
		case stateAwaitValue:
			switch c {
			case '[':
				state = stateValue
				valueStart = i + 1
				opened, closed = 1, 0
			case ' ':
				state, nameStart = stateName, i+1
			}
		case stateName:
			switch c {
			case '=':
				name = strings.TrimSpace(span[nameStart:i])
				state = stateAwaitValue
			case ' ':
				nameStart = i + 1
			}
		case stateIdle:
			if c == ' ' {
				state, nameStart = stateName, i+1
			}
		}
	}

	if state == stateValue {
		// Unterminated value: keep what was captured.
		props[name] = strings.TrimSpace(span[valueStart:end])
	}
}

// ParseLines parses every non-blank line of a plan. Trailing carriage
// returns are dropped and IDs are assigned in order starting at zero.
func ParseLines(lines []string) []Record {
	records := make([]Record, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec := ParseLine(line)
		rec.ID = len(records)
		records = append(records, rec)
	}
	return records
}
