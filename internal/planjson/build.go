// Package planjson builds a linked graph of plan relations from the JSON
// encoding of a query plan.
//
// The JSON plan is an object keyed by operator id. Each entry names the
// operator, its attribute values, its estimated row count, a textual
// cumulative cost and the ids of the operators feeding it (`inputs`). Build
// turns that adjacency map into relations with both directions linked:
// Upstream holds the inputs of a relation and Downstream the relations that
// consume it.
package planjson

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/specialistvlad/plangraph/internal/cost"
	"github.com/specialistvlad/plangraph/internal/ctxlog"
	"github.com/specialistvlad/plangraph/internal/nodeid"
)

// DanglingInputError is returned when a descriptor lists an input id that is
// not part of the plan.
type DanglingInputError struct {
	ID    string
	Input string
}

func (e *DanglingInputError) Error() string {
	return fmt.Sprintf("plan node %s: input %q does not exist", e.ID, e.Input)
}

// Build links the descriptors of one plan into a Graph. Every id yields
// exactly one *Relation; the registry backing that guarantee belongs to the
// returned Graph and is never shared between builds. An empty or nil map
// yields an empty graph.
func Build(ctx context.Context, nodes map[string]Descriptor) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting plan graph construction.", "node_count", len(nodes))

	g := newGraph(len(nodes))
	if len(nodes) == 0 {
		logger.Debug("Build: No nodes, returning empty graph.")
		return g, nil
	}

	ids := make([]string, 0, len(nodes))
	for id := range nodes {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, nodeid.Compare)
	consumers := consumerIndex(nodes, ids)

	// First pass: create every relation and its downstream links.
	b := &builder{nodes: nodes, consumers: consumers, graph: g}
	for _, id := range ids {
		if _, err := b.ensure(id); err != nil {
			return nil, err
		}
	}
	logger.Debug("Build: Relation creation complete.", "relation_count", len(g.byID))

	// Second pass: resolve upstream links through the registry.
	for _, id := range ids {
		r := g.byID[id]
		for _, input := range nodes[id].Inputs {
			up, ok := g.byID[input]
			if !ok {
				return nil, &DanglingInputError{ID: id, Input: input}
			}
			r.Upstream = append(r.Upstream, up)
		}
		g.relations = append(g.relations, r)
	}
	logger.Debug("Build: Upstream linking complete.")

	logger.Debug("Build: Plan graph construction successful.", "relation_count", len(g.relations))
	return g, nil
}

// consumerIndex maps every id to the ids whose inputs reference it, in the
// given id order. A consumer listing the same input twice appears once.
func consumerIndex(nodes map[string]Descriptor, ids []string) map[string][]string {
	consumers := make(map[string][]string, len(ids))
	for _, id := range ids {
		seen := make(map[string]struct{}, len(nodes[id].Inputs))
		for _, input := range nodes[id].Inputs {
			if _, dup := seen[input]; dup {
				continue
			}
			seen[input] = struct{}{}
			consumers[input] = append(consumers[input], id)
		}
	}
	return consumers
}

// builder holds the state of one Build call.
type builder struct {
	nodes     map[string]Descriptor
	consumers map[string][]string
	graph     *Graph
}

// ensure returns the relation registered for id, creating it first if
// needed. A new relation is registered before its consumers are created so
// that cycles walked from either direction resolve to the same instance.
func (b *builder) ensure(id string) (*Relation, error) {
	if r, ok := b.graph.byID[id]; ok {
		return r, nil
	}

	d := b.nodes[id]
	c, err := cost.Parse(d.CumulativeCost)
	if err != nil {
		return nil, fmt.Errorf("plan node %s: %w", id, err)
	}

	r := &Relation{
		ID:       id,
		Name:     nodeid.Unquote(id),
		Op:       d.Op,
		Values:   maps.Clone(d.Values),
		RowCount: d.RowCount,
		Cost:     c,
	}
	if op, err := nodeid.Parse(id); err == nil {
		r.Operator = &op
	}
	b.graph.byID[id] = r

	for _, consumer := range b.consumers[id] {
		down, err := b.ensure(consumer)
		if err != nil {
			return nil, err
		}
		r.Downstream = append(r.Downstream, down)
	}
	return r, nil
}
