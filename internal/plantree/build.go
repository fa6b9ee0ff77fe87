// Package plantree reconstructs a plan tree from the records of an indented
// textual plan.
//
// Nesting is encoded only by indentation: a record M is a direct child of N
// when M follows N, no record in between is indented at or above N, and M is
// indented exactly one level (two spaces) deeper than N. Records that skip a
// level are left out of the tree, and records following the root's subtree
// are ignored.
package plantree

import (
	"context"
	"fmt"

	"github.com/specialistvlad/plangraph/internal/ctxlog"
	"github.com/specialistvlad/plangraph/internal/planline"
	"github.com/specialistvlad/plangraph/internal/plannode"
)

// IndentStep is the number of spaces per nesting level.
const IndentStep = 2

// Build turns the ordered records of one plan into a tree. The first record
// is the root. An empty input yields a nil root and no error.
func Build(ctx context.Context, records []planline.Record) (plannode.Node, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting plan tree construction.", "record_count", len(records))
	if len(records) == 0 {
		logger.Debug("Build: No records, returning empty tree.")
		return nil, nil
	}

	// First pass: assign every record its parent.
	children, inTree := link(records)
	included := 0
	for _, ok := range inTree {
		if ok {
			included++
		}
	}
	logger.Debug("Build: Record linking complete.", "included", included, "excluded", len(records)-included)

	// Second pass: build nodes bottom-up. Children always follow their
	// parent, so walking backwards sees every child before its parent.
	nodes := make([]plannode.Node, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		if !inTree[i] {
			continue
		}
		kids := make([]plannode.Node, 0, len(children[i]))
		for _, c := range children[i] {
			kids = append(kids, nodes[c])
			nodes[c] = nil
		}
		rec := records[i]
		n, err := plannode.New(rec.TypeName, rec.Properties, kids)
		if err != nil {
			return nil, fmt.Errorf("building node %d (%s): %w", rec.ID, rec.TypeName, err)
		}
		nodes[i] = n
	}

	logger.Debug("Build: Plan tree construction successful.", "node_count", included)
	return nodes[0], nil
}

// BuildLines parses raw plan lines and builds their tree.
func BuildLines(ctx context.Context, lines []string) (plannode.Node, error) {
	return Build(ctx, planline.ParseLines(lines))
}
