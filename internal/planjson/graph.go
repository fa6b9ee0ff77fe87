package planjson

import (
	"fmt"
	"slices"

	"github.com/specialistvlad/plangraph/internal/cost"
	"github.com/specialistvlad/plangraph/internal/nodeid"
)

// Relation is one operator of a JSON plan with its links resolved.
// Upstream and Downstream point at relations owned by the same Graph.
type Relation struct {
	// ID is the key of the operator in the JSON plan, as given.
	ID string
	// Name is the display name: the id without wrapping quotes.
	Name string
	Op   string
	// Values holds the operator attributes exactly as decoded.
	Values   map[string]any
	RowCount float64
	Cost     cost.Cumulative
	// Operator is the parsed `MM-OO` id, or nil when the id has another form.
	Operator *nodeid.OperatorID

	Downstream []*Relation
	Upstream   []*Relation
}

func (r *Relation) String() string {
	return fmt.Sprintf("%s %s", r.Name, r.Op)
}

// Graph owns the relations of one plan, one instance per id.
type Graph struct {
	relations []*Relation
	byID      map[string]*Relation
}

func newGraph(size int) *Graph {
	return &Graph{
		relations: make([]*Relation, 0, size),
		byID:      make(map[string]*Relation, size),
	}
}

// Relations returns every relation in operator order.
func (g *Graph) Relations() []*Relation {
	return slices.Clone(g.relations)
}

// Relation looks up the relation registered for id.
func (g *Graph) Relation(id string) (*Relation, bool) {
	r, ok := g.byID[id]
	return r, ok
}

// Len returns the number of relations.
func (g *Graph) Len() int {
	return len(g.relations)
}

// Sources returns the relations without inputs, typically scans.
func (g *Graph) Sources() []*Relation {
	var out []*Relation
	for _, r := range g.relations {
		if len(r.Upstream) == 0 {
			out = append(out, r)
		}
	}
	return out
}

// Sinks returns the relations nothing consumes, typically the plan root.
func (g *Graph) Sinks() []*Relation {
	var out []*Relation
	for _, r := range g.relations {
		if len(r.Downstream) == 0 {
			out = append(out, r)
		}
	}
	return out
}

// DetectCycles checks the graph for any cycles. It returns a non-nil error
// if a cycle is found, naming the first relation found on the cycle.
func (g *Graph) DetectCycles() error {
	// Classic depth-first search with three sets of relations:
	// permanent: fully visited and not part of a cycle.
	// temporary: on the recursion stack of the current traversal.
	// unvisited: all other relations.
	permanent := make(map[*Relation]bool, len(g.relations))
	temporary := make(map[*Relation]bool)

	var visit func(r *Relation) error
	visit = func(r *Relation) error {
		if permanent[r] {
			return nil
		}
		if temporary[r] {
			return fmt.Errorf("cycle detected involving plan node '%s'", r.Name)
		}

		temporary[r] = true
		for _, down := range r.Downstream {
			if err := visit(down); err != nil {
				return err
			}
		}
		delete(temporary, r)
		permanent[r] = true
		return nil
	}

	for _, r := range g.relations {
		if err := visit(r); err != nil {
			return err
		}
	}
	return nil
}

// TopologicalOrder returns the relations ordered so that every relation
// comes after all of its inputs. Ties keep operator order. It fails when the
// graph has a cycle.
func (g *Graph) TopologicalOrder() ([]*Relation, error) {
	pending := make(map[*Relation]int, len(g.relations))
	var ready []*Relation
	for _, r := range g.relations {
		pending[r] = len(distinct(r.Upstream))
		if pending[r] == 0 {
			ready = append(ready, r)
		}
	}

	order := make([]*Relation, 0, len(g.relations))
	for len(ready) > 0 {
		r := ready[0]
		ready = ready[1:]
		order = append(order, r)
		for _, down := range r.Downstream {
			pending[down]--
			if pending[down] == 0 {
				ready = append(ready, down)
			}
		}
	}

	if len(order) != len(g.relations) {
		return nil, fmt.Errorf("plan graph has a cycle: ordered %d of %d relations", len(order), len(g.relations))
	}
	return order, nil
}

func distinct(rs []*Relation) []*Relation {
	seen := make(map[*Relation]struct{}, len(rs))
	out := rs[:0:0]
	for _, r := range rs {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}
