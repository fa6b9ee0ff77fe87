// Package planline parses single lines of the indented textual plan notation.
//
// A line has the shape
//
//	<spaces><TypeName>(<prop1>=[<val1>], <prop2>=[<val2>], ...)
//
// where the number of leading spaces encodes the nesting depth (two spaces
// per level) and property values are delimited by square brackets that may
// themselves nest and contain parentheses.
package planline

// Record is the result of parsing one plan line.
type Record struct {
	// ID is the position of the line among the non-blank lines of its plan.
	ID int
	// TypeName is the operator name, e.g. ScanCrel or LogicalFilter.
	TypeName string
	// Indent is the number of leading spaces.
	Indent int
	// Properties maps property names to their captured (trimmed) values.
	Properties map[string]string
}

// Property returns the value of a property and whether it was present.
func (r Record) Property(name string) (string, bool) {
	v, ok := r.Properties[name]
	return v, ok
}
