package plannode

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Scan reads a table.
type Scan struct {
	base
	// SplitCount is the number of splits read, or -1 when not reported.
	SplitCount int
	// Columns lists the projected columns as printed by the engine.
	Columns []string
	Table   string
	// Snapshot is the table snapshot id, or -1 when not reported.
	Snapshot int64
}

func newScan(b base) (*Scan, error) {
	n := &Scan{base: b, SplitCount: -1, Snapshot: -1}
	if v, ok := b.properties["splits"]; ok {
		splits, err := strconv.Atoi(v)
		if err != nil {
			return nil, &MissingRequiredPropertyError{Type: b.typeName, Property: "splits", Value: v, Err: err}
		}
		n.SplitCount = splits
	}
	if v, ok := b.properties["snapshot"]; ok {
		snapshot, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, &MissingRequiredPropertyError{Type: b.typeName, Property: "snapshot", Value: v, Err: err}
		}
		n.Snapshot = snapshot
	}
	if v, ok := b.properties["columns"]; ok && v != "" {
		n.Columns = strings.Split(v, ", ")
	}
	n.Table = b.properties["table"]
	return n, nil
}

// Filter drops rows not matching Condition.
type Filter struct {
	base
	Condition string
}

func newFilter(b base) *Filter {
	return &Filter{base: b, Condition: b.properties["condition"]}
}

// Join combines the rows of its two inputs.
type Join struct {
	base
	JoinType  string
	Condition string
}

func newJoin(b base) *Join {
	return &Join{
		base:      b,
		JoinType:  b.properties["joinType"],
		Condition: b.properties["condition"],
	}
}

// SortKey is one ordering column of a Sort.
type SortKey struct {
	Field     string
	Direction string
}

// Sort orders its input. Keys are recovered from the sortN/dirN property
// pairs in index order.
type Sort struct {
	base
	Keys []SortKey
}

func newSort(b base) *Sort {
	var indexes []int
	for name := range b.properties {
		idx, ok := strings.CutPrefix(name, "sort")
		if !ok {
			continue
		}
		if i, err := strconv.Atoi(idx); err == nil {
			indexes = append(indexes, i)
		}
	}
	sort.Ints(indexes)

	n := &Sort{base: b}
	for _, i := range indexes {
		n.Keys = append(n.Keys, SortKey{
			Field:     b.properties[fmt.Sprintf("sort%d", i)],
			Direction: b.properties[fmt.Sprintf("dir%d", i)],
		})
	}
	return n
}

// MissingRequiredPropertyError is returned when a property that must be
// numeric is present with a non-numeric value.
type MissingRequiredPropertyError struct {
	Type     string
	Property string
	Value    string
	Err      error
}

func (e *MissingRequiredPropertyError) Error() string {
	return fmt.Sprintf("%s: property %q is not a valid number: %q", e.Type, e.Property, e.Value)
}

func (e *MissingRequiredPropertyError) Unwrap() error {
	return e.Err
}
