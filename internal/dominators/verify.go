package dominators

import (
	"github.com/flowdom/perf-analysis/pkg/collections"
	"github.com/flowdom/perf-analysis/pkg/utils"
)

// Verify normalizes g.Edges (drops self-loops and duplicate arcs), checks
// that every node can reach the root via Parents, confirms every tree edge
// is present in the normalized edges, and validates that Postorder (and,
// if supplied, Preorder) are consistent traversals of the parent tree. It
// returns the normalized edge list.
//
// log may be nil, in which case the package's global logger is used.
func Verify(g *FlowGraph, log utils.Logger) ([]Edge, error) {
	if log == nil {
		log = utils.GetGlobalLogger()
	}
	log.Debug("dominators: verifying graph with %d nodes, %d raw edges", g.N, len(g.Edges))

	if err := checkReachability(g); err != nil {
		log.Error("dominators: reachability check failed: %v", err)
		return nil, err
	}

	normalized := normalizeEdges(g)
	log.Debug("dominators: normalized to %d edges", len(normalized))

	if err := checkTreeEdgesPresent(g, normalized); err != nil {
		log.Error("dominators: tree-edge check failed: %v", err)
		return nil, err
	}

	if err := checkPostorder(g); err != nil {
		log.Error("dominators: post-order check failed: %v", err)
		return nil, err
	}

	if g.Preorder != nil {
		if err := checkPreorder(g); err != nil {
			log.Error("dominators: pre-order check failed: %v", err)
			return nil, err
		}
	}

	return normalized, nil
}

// checkReachability walks Parents from each non-root node, bounding the
// walk at N steps so a cycle in Parents surfaces as NotReachable instead of
// looping forever. Already-resolved nodes are memoized in a bit vector so
// the combined cost across all nodes is O(N).
func checkReachability(g *FlowGraph) error {
	reachesRoot := collections.NewBitset(g.N)
	reachesRoot.Set(g.Root)

	path := make([]int, 0, g.N)
	for v := 0; v < g.N; v++ {
		if v == g.Root || reachesRoot.Test(v) {
			continue
		}
		path = path[:0]
		cur := v
		steps := 0
		for !reachesRoot.Test(cur) {
			if cur == g.Root {
				break
			}
			path = append(path, cur)
			cur = g.Parents[cur]
			steps++
			if steps > g.N {
				return ErrNotReachable(v)
			}
		}
		for _, p := range path {
			reachesRoot.Set(p)
		}
	}
	return nil
}

// normalizeEdges discards self-loops and any arc whose destination has
// already appeared for the same source.
func normalizeEdges(g *FlowGraph) []Edge {
	seenDst := make([]map[int]bool, g.N)
	out := make([]Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		if e.Src == e.Dst {
			continue
		}
		if seenDst[e.Src] == nil {
			seenDst[e.Src] = make(map[int]bool)
		}
		if seenDst[e.Src][e.Dst] {
			continue
		}
		seenDst[e.Src][e.Dst] = true
		out = append(out, e)
	}
	return out
}

func checkTreeEdgesPresent(g *FlowGraph, normalized []Edge) error {
	present := make([]map[int]bool, g.N)
	for _, e := range normalized {
		if present[e.Src] == nil {
			present[e.Src] = make(map[int]bool)
		}
		present[e.Src][e.Dst] = true
	}
	for v := 0; v < g.N; v++ {
		if v == g.Root {
			continue
		}
		p := g.Parents[v]
		if !present[p][v] {
			return ErrTreeEdgeMissing(p, v)
		}
	}
	return nil
}

func checkPostorder(g *FlowGraph) error {
	visited := collections.NewBitset(g.N)
	var last int
	for i := 0; i < g.N; i++ {
		v := g.Postorder[i]
		if v != g.Root && visited.Test(g.Parents[v]) {
			return ErrPostOrderViolation(v)
		}
		visited.Set(v)
		last = v
	}
	if last != g.Root {
		return ErrRootNotLast(last, g.Root)
	}
	return nil
}

// checkPreorder walks Preorder in reverse. Since a child's preorder
// position always exceeds its parent's, walking from the last position to
// the first visits every child strictly before its parent — the same
// bottom-up shape checkPostorder validates — so the check is the same one,
// applied to the reversed array: when processing v, parents[v] must not
// yet be visited, and the node reached last (preorder position 0) must be
// the root.
func checkPreorder(g *FlowGraph) error {
	visited := collections.NewBitset(g.N)
	var last int
	for i := g.N - 1; i >= 0; i-- {
		v := g.Preorder[i]
		if v != g.Root && visited.Test(g.Parents[v]) {
			return ErrPreOrderViolation(v)
		}
		visited.Set(v)
		last = v
	}
	if last != g.Root {
		return ErrRootNotLast(last, g.Root)
	}
	return nil
}
