package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/plangraph/internal/ctxlog"
	"github.com/specialistvlad/plangraph/internal/planfile"
	"github.com/specialistvlad/plangraph/internal/planjson"
	"github.com/specialistvlad/plangraph/internal/planline"
	"github.com/specialistvlad/plangraph/internal/plannode"
	"github.com/specialistvlad/plangraph/internal/plantree"
)

// Run loads the configured plan file, reconstructs its graph and writes the
// result to the output writer. When the plan path is a directory every plan
// file below it is processed in turn, each preceded by a `# path` header.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	paths, err := planfile.Find(a.config.PlanPath)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		a.logger.Warn("No plan files found.", "path", a.config.PlanPath)
		return nil
	}
	a.logger.Debug("Plan files discovered.", "count", len(paths))

	for _, path := range paths {
		if len(paths) > 1 {
			if _, err := fmt.Fprintf(a.outW, "# %s\n", path); err != nil {
				return err
			}
		}
		if err := a.runFile(ctx, path); err != nil {
			return err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) runFile(ctx context.Context, path string) error {
	plan, err := planfile.Load(ctx, path, a.config.Format)
	if err != nil {
		return err
	}

	switch plan.Format {
	case planfile.FormatText:
		err = a.runText(ctx, plan)
	case planfile.FormatJSON:
		err = a.runJSON(ctx, plan)
	default:
		err = fmt.Errorf("unsupported plan format %q", plan.Format)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func (a *App) runText(ctx context.Context, plan *planfile.Plan) error {
	records := planline.ParseLines(plan.Lines)
	root, err := plantree.Build(ctx, records)
	if err != nil {
		return fmt.Errorf("failed to build plan tree: %w", err)
	}
	if root == nil {
		a.logger.Warn("Plan contains no operators, nothing to print.", "path", plan.Path)
		return nil
	}

	reachable := plannode.Count(root)
	if skipped := len(records) - reachable; skipped > 0 {
		a.logger.Warn("Some plan lines are not part of the tree.", "skipped", skipped)
	}
	a.logger.Info("Plan tree built.", "nodes", reachable)

	return plantree.Dump(a.outW, root)
}

func (a *App) runJSON(ctx context.Context, plan *planfile.Plan) error {
	nodes, err := planjson.Decode(plan.JSON)
	if err != nil {
		return fmt.Errorf("failed to decode plan graph: %w", err)
	}
	graph, err := planjson.Build(ctx, nodes)
	if err != nil {
		return fmt.Errorf("failed to build plan graph: %w", err)
	}
	a.logger.Info("Plan graph built.", "relations", graph.Len(), "sources", len(graph.Sources()), "sinks", len(graph.Sinks()))

	relations := graph.Relations()
	if a.config.CheckCycles {
		if err := graph.DetectCycles(); err != nil {
			return fmt.Errorf("plan graph validation failed: %w", err)
		}
		if relations, err = graph.TopologicalOrder(); err != nil {
			return fmt.Errorf("plan graph validation failed: %w", err)
		}
		a.logger.Debug("Plan graph is acyclic.")
	}

	return planjson.Dump(a.outW, relations)
}
