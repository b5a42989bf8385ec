package dominators

import (
	"context"

	"github.com/flowdom/perf-analysis/pkg/utils"
)

// ComputeDominators runs the full pipeline end to end: it verifies the
// graph, builds the LCA oracle, buckets arcs under it (Prepare), then runs
// the GD2 engine. It returns the immediate-dominator vector: idom[v] is the
// immediate dominator of node v, with idom[Root] == Root.
//
// log may be nil, in which case the package's global logger is used.
func ComputeDominators(ctx context.Context, g *FlowGraph, log utils.Logger) ([]int, error) {
	if log == nil {
		log = utils.GetGlobalLogger()
	}

	normalized, err := Verify(g, log)
	if err != nil {
		return nil, err
	}

	lca := NewLCAOracle(g.Root, g.N, g.Parents)
	prepared := Prepare(g, normalized, lca, log)

	engine := NewEngine(g, prepared, log)
	return engine.Run(ctx)
}
