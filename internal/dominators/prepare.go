package dominators

import "github.com/flowdom/perf-analysis/pkg/utils"

// PreparedGraph holds the per-node in-degree totals and LCA-bucketed arc
// lists GD2 consumes.
type PreparedGraph struct {
	Total []int
	Arcs  [][]Edge // Arcs[u] = normalized arcs whose LCA is u
}

// Prepare builds total[] (in-degree of each node under the normalized
// edges) and arcs[] (each normalized arc bucketed under its LCA): an arc
// is delivered to the engine at its LCA because that is the earliest
// post-order position at which both endpoints' clusters are simultaneously
// available.
func Prepare(g *FlowGraph, normalized []Edge, lca *LCAOracle, log utils.Logger) *PreparedGraph {
	if log == nil {
		log = utils.GetGlobalLogger()
	}

	total := make([]int, g.N)
	arcs := make([][]Edge, g.N)

	for _, e := range normalized {
		total[e.Dst]++
		u := lca.Lookup(e.Src, e.Dst)
		arcs[u] = append(arcs[u], e)
	}

	log.Debug("dominators: prepared %d arc buckets", len(normalized))
	return &PreparedGraph{Total: total, Arcs: arcs}
}
