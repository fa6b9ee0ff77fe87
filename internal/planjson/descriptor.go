package planjson

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Descriptor is one entry of a JSON plan, keyed by operator id.
type Descriptor struct {
	Op             string
	Values         map[string]any
	Inputs         []string
	RowCount       float64
	CumulativeCost string
}

// DescriptorError reports a descriptor that does not have the expected shape.
type DescriptorError struct {
	ID     string
	Field  string
	Reason string
}

func (e *DescriptorError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("plan node %s: %s", e.ID, e.Reason)
	}
	return fmt.Sprintf("plan node %s: field %q: %s", e.ID, e.Field, e.Reason)
}

// Decode walks an already decoded JSON object (node id -> descriptor object)
// and converts it into typed descriptors. Unknown fields are ignored; absent
// fields keep their zero value.
func Decode(raw map[string]any) (map[string]Descriptor, error) {
	nodes := make(map[string]Descriptor, len(raw))
	for id, v := range raw {
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, &DescriptorError{ID: id, Reason: fmt.Sprintf("expected an object, got %T", v)}
		}
		d, err := decodeDescriptor(id, obj)
		if err != nil {
			return nil, err
		}
		nodes[id] = d
	}
	return nodes, nil
}

func decodeDescriptor(id string, obj map[string]any) (Descriptor, error) {
	var d Descriptor
	fieldErr := func(field, format string, args ...any) error {
		return &DescriptorError{ID: id, Field: field, Reason: fmt.Sprintf(format, args...)}
	}

	if v, ok := obj["op"]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return d, fieldErr("op", "expected a string, got %T", v)
		}
		d.Op = s
	}

	if v, ok := obj["values"]; ok && v != nil {
		m, ok := v.(map[string]any)
		if !ok {
			return d, fieldErr("values", "expected an object, got %T", v)
		}
		d.Values = m
	}

	if v, ok := obj["inputs"]; ok && v != nil {
		list, ok := v.([]any)
		if !ok {
			return d, fieldErr("inputs", "expected an array, got %T", v)
		}
		d.Inputs = make([]string, 0, len(list))
		for i, item := range list {
			s, ok := item.(string)
			if !ok {
				return d, fieldErr("inputs", "element %d: expected a string, got %T", i, item)
			}
			d.Inputs = append(d.Inputs, s)
		}
	}

	if v, ok := obj["rowCount"]; ok && v != nil {
		f, err := toFloat(v)
		if err != nil {
			return d, fieldErr("rowCount", "%v", err)
		}
		d.RowCount = f
	}

	if v, ok := obj["cumulativeCost"]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return d, fieldErr("cumulativeCost", "expected a string, got %T", v)
		}
		d.CumulativeCost = s
	}

	return d, nil
}

// toFloat accepts the number representations a JSON decoder may produce.
func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case interface{ Float64() (float64, error) }:
		return n.Float64()
	case string:
		return strconv.ParseFloat(n, 64)
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}
