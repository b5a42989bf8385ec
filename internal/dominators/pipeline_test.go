package dominators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func graphWithRootSentinel(root, n int, parents []int, postorder []int, edges []Edge) *FlowGraph {
	parents[root] = root
	return &FlowGraph{
		Root:      root,
		N:         n,
		Parents:   parents,
		Postorder: postorder,
		Edges:     edges,
	}
}

// TestComputeDominators_Scenarios covers a handful of canonical flow-graph
// shapes: a chain, a diamond, a loop with a back edge, and a shared join.
func TestComputeDominators_Scenarios(t *testing.T) {
	t.Run("A singleton", func(t *testing.T) {
		g := graphWithRootSentinel(0, 1, []int{0}, []int{0}, nil)
		idom, err := ComputeDominators(context.Background(), g, nil)
		require.NoError(t, err)
		assert.Equal(t, []int{0}, idom)
	})

	t.Run("B chain", func(t *testing.T) {
		g := graphWithRootSentinel(0, 5, []int{0, 0, 1, 2, 3},
			[]int{4, 3, 2, 1, 0},
			[]Edge{{0, 1}, {1, 2}, {2, 3}, {3, 4}})
		idom, err := ComputeDominators(context.Background(), g, nil)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 0, 1, 2, 3}, idom)
	})

	t.Run("C diamond", func(t *testing.T) {
		g := graphWithRootSentinel(0, 4, []int{0, 0, 0, 1},
			[]int{2, 3, 1, 0},
			[]Edge{{0, 1}, {0, 2}, {1, 3}, {2, 3}})
		idom, err := ComputeDominators(context.Background(), g, nil)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 0, 0, 0}, idom)
	})

	t.Run("D loop back", func(t *testing.T) {
		g := graphWithRootSentinel(0, 4, []int{0, 0, 1, 2},
			[]int{3, 2, 1, 0},
			[]Edge{{0, 1}, {1, 2}, {2, 1}, {2, 3}})
		idom, err := ComputeDominators(context.Background(), g, nil)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 0, 1, 2}, idom)
	})

	t.Run("E shared join", func(t *testing.T) {
		g := graphWithRootSentinel(0, 6, []int{0, 0, 0, 1, 3, 4},
			[]int{5, 4, 3, 2, 1, 0},
			[]Edge{{0, 1}, {0, 2}, {1, 3}, {2, 3}, {3, 4}, {4, 5}, {3, 5}})
		idom, err := ComputeDominators(context.Background(), g, nil)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 0, 0, 0, 3, 3}, idom)
	})
}

// TestComputeDominators_Dominance brute-forces the defining dominance
// property: deleting idom[v] from the normalized edges must make v
// unreachable from the root.
func TestComputeDominators_Dominance(t *testing.T) {
	g := graphWithRootSentinel(0, 6, []int{0, 0, 0, 1, 3, 4},
		[]int{5, 4, 3, 2, 1, 0},
		[]Edge{{0, 1}, {0, 2}, {1, 3}, {2, 3}, {3, 4}, {4, 5}, {3, 5}})

	idom, err := ComputeDominators(context.Background(), g, nil)
	require.NoError(t, err)

	normalized, err := Verify(g, nil)
	require.NoError(t, err)

	for v := 1; v < g.N; v++ {
		assert.False(t, reachableAvoiding(g, normalized, v, idom[v]),
			"node %d should be unreachable once idom %d is removed", v, idom[v])
	}
}

// reachableAvoiding reports whether target is reachable from the root using
// normalized without ever passing through avoid.
func reachableAvoiding(g *FlowGraph, normalized []Edge, target, avoid int) bool {
	adj := make(map[int][]int)
	for _, e := range normalized {
		adj[e.Src] = append(adj[e.Src], e.Dst)
	}

	visited := make(map[int]bool)
	stack := []int{g.Root}
	visited[g.Root] = true
	for len(stack) > 0 {
		n := len(stack) - 1
		v := stack[n]
		stack = stack[:n]
		if v == target {
			return true
		}
		if v == avoid {
			continue
		}
		for _, w := range adj[v] {
			if !visited[w] {
				visited[w] = true
				stack = append(stack, w)
			}
		}
	}
	return false
}

// TestComputeDominators_AgreesWithBruteForce cross-checks the GD2 engine
// against a direct iterative dataflow dominator computation on a handful of
// random small flow graphs.
func TestComputeDominators_AgreesWithBruteForce(t *testing.T) {
	for seed := 0; seed < 20; seed++ {
		g := randomFlowGraph(seed, 12)
		got, err := ComputeDominators(context.Background(), g, nil)
		require.NoError(t, err)

		normalized, err := Verify(g, nil)
		require.NoError(t, err)

		want := bruteForceDominators(g, normalized)
		assert.Equal(t, want, got, "seed %d", seed)
	}
}

// randomFlowGraph builds a small, deterministic pseudo-random flow graph
// with a valid spanning tree and post-order, for cross-checking GD2 against
// a reference dataflow computation.
func randomFlowGraph(seed, n int) *FlowGraph {
	// Deterministic xorshift so tests never depend on math/rand's global
	// state or time-seeded output.
	state := uint32(seed*2654435761 + 1)
	next := func(mod int) int {
		state ^= state << 13
		state ^= state >> 17
		state ^= state << 5
		return int(state % uint32(mod))
	}

	parents := make([]int, n)
	postorder := make([]int, 0, n)
	var emit func(v int)
	children := make([][]int, n)
	for v := 1; v < n; v++ {
		p := next(v)
		parents[v] = p
		children[p] = append(children[p], v)
	}
	emit = func(v int) {
		for _, c := range children[v] {
			emit(c)
		}
		postorder = append(postorder, v)
	}
	emit(0)

	edges := []Edge{}
	for v := 1; v < n; v++ {
		edges = append(edges, Edge{Src: parents[v], Dst: v})
	}
	extra := next(n)
	for i := 0; i < extra; i++ {
		src := next(n)
		dst := next(n)
		if src != dst {
			edges = append(edges, Edge{Src: src, Dst: dst})
		}
	}

	return graphWithRootSentinel(0, n, parents, postorder, edges)
}

// bruteForceDominators computes idom via the textbook iterative dataflow
// fixed point: dom(root) = {root}; dom(v) = {v} ∪ ⋂ dom(pred) over reachable
// predecessors, iterated to a fixed point. idom(v) is v's dominator closest
// to v (the unique one not dominating any other dominator of v).
func bruteForceDominators(g *FlowGraph, normalized []Edge) []int {
	preds := make([][]int, g.N)
	for _, e := range normalized {
		preds[e.Dst] = append(preds[e.Dst], e.Src)
	}

	reachable := make([]bool, g.N)
	reachable[g.Root] = true
	{
		adj := make(map[int][]int)
		for _, e := range normalized {
			adj[e.Src] = append(adj[e.Src], e.Dst)
		}
		stack := []int{g.Root}
		for len(stack) > 0 {
			n := len(stack) - 1
			v := stack[n]
			stack = stack[:n]
			for _, w := range adj[v] {
				if !reachable[w] {
					reachable[w] = true
					stack = append(stack, w)
				}
			}
		}
	}

	all := make(map[int]bool, g.N)
	for v := 0; v < g.N; v++ {
		all[v] = true
	}

	dom := make([]map[int]bool, g.N)
	for v := 0; v < g.N; v++ {
		if v == g.Root {
			dom[v] = map[int]bool{g.Root: true}
		} else {
			dom[v] = all
		}
	}

	changed := true
	for changed {
		changed = false
		for v := 0; v < g.N; v++ {
			if v == g.Root || !reachable[v] {
				continue
			}
			var inter map[int]bool
			for _, p := range preds[v] {
				if !reachable[p] {
					continue
				}
				if inter == nil {
					inter = copySet(dom[p])
				} else {
					intersectInPlace(inter, dom[p])
				}
			}
			if inter == nil {
				inter = map[int]bool{}
			}
			inter[v] = true
			if !setEqual(inter, dom[v]) {
				dom[v] = inter
				changed = true
			}
		}
	}

	idom := make([]int, g.N)
	idom[g.Root] = g.Root
	for v := 0; v < g.N; v++ {
		if v == g.Root || !reachable[v] {
			continue
		}
		// idom(v) is the dominator of v, other than v, that is dominated
		// by every other dominator of v.
		for d := range dom[v] {
			if d == v {
				continue
			}
			isImmediate := true
			for d2 := range dom[v] {
				if d2 == v || d2 == d {
					continue
				}
				if !dom[d][d2] {
					isImmediate = false
					break
				}
			}
			if isImmediate {
				idom[v] = d
				break
			}
		}
	}
	return idom
}

func copySet(s map[int]bool) map[int]bool {
	out := make(map[int]bool, len(s))
	for k := range s {
		out[k] = true
	}
	return out
}

func intersectInPlace(dst, src map[int]bool) {
	for k := range dst {
		if !src[k] {
			delete(dst, k)
		}
	}
}

func setEqual(a, b map[int]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}
