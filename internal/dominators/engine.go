package dominators

import (
	"context"

	"go.opentelemetry.io/otel"

	"github.com/flowdom/perf-analysis/pkg/utils"
)

// Engine holds the mutable state of a single GD2 run: the dominator vector
// under construction, the work lists GD2 moves arcs through, and the
// ordered union-find that tracks cluster identity. All arrays are sized N,
// allocated once, and owned exclusively by the Engine.
type Engine struct {
	g     *FlowGraph
	total []int
	arcs  [][]Edge

	d       []int
	outNode [][]int
	inNode  [][]int
	same    [][]int
	added   []int
	ouf     *OrderedUnionFind

	log utils.Logger
}

// NewEngine allocates Engine state for g using the totals and arc buckets
// Prepare computed. log may be nil, in which case the package's global
// logger is used.
func NewEngine(g *FlowGraph, prepared *PreparedGraph, log utils.Logger) *Engine {
	if log == nil {
		log = utils.GetGlobalLogger()
	}

	e := &Engine{
		g:       g,
		total:   append([]int(nil), prepared.Total...),
		arcs:    prepared.Arcs,
		d:       make([]int, g.N),
		outNode: make([][]int, g.N),
		inNode:  make([][]int, g.N),
		same:    make([][]int, g.N),
		added:   make([]int, g.N),
		ouf:     NewOrderedUnionFind(g.N),
		log:     log,
	}
	for v := 0; v < g.N; v++ {
		e.same[v] = []int{v}
	}
	e.d[g.Root] = g.Root
	return e
}

// Run executes GD2's post-order main loop and returns the immediate
// dominator vector: idom[Root] == Root, and idom[v] is set for every other
// reachable node exactly once.
func (e *Engine) Run(ctx context.Context) ([]int, error) {
	_, span := otel.Tracer("dominators").Start(ctx, "gd2.Run")
	defer span.End()

	e.log.Debug("dominators: running GD2 over %d nodes", e.g.N)

	for i := 0; i < e.g.N; i++ {
		u := e.g.Postorder[i]

		if err := e.ingestArcs(u); err != nil {
			return nil, err
		}
		if err := e.drainOut(u); err != nil {
			return nil, err
		}
		if err := e.drainIn(u); err != nil {
			return nil, err
		}

		e.total[u] -= e.added[u]
		e.added[u] = 0
		if e.total[u] < 0 {
			return nil, ErrInternalInvariant("total<0 at end of iteration", u)
		}
	}

	e.log.Debug("dominators: GD2 complete")
	return e.d, nil
}

// ingestArcs is Phase A: deliver every arc bucketed at u into the out/in
// work lists of its endpoints' current clusters, then release the bucket.
func (e *Engine) ingestArcs(u int) error {
	for _, arc := range e.arcs[u] {
		fx := e.ouf.Lookup(arc.Src)
		fy := e.ouf.Lookup(arc.Dst)
		e.outNode[fx] = append(e.outNode[fx], arc.Dst)
		e.inNode[fy] = append(e.inNode[fy], arc.Src)
		e.added[fy]++
	}
	e.arcs[u] = nil
	return nil
}

// drainOut is Phase B: pop every pending out-arc endpoint at u, decrement
// the destination cluster's total, and merge any cluster that has become
// fully resolved (total == 0) into its parent's cluster.
func (e *Engine) drainOut(u int) error {
	for len(e.outNode[u]) > 0 {
		n := len(e.outNode[u]) - 1
		y := e.outNode[u][n]
		e.outNode[u] = e.outNode[u][:n]

		v := e.ouf.Lookup(y)
		if v != u {
			e.total[v]--
			e.added[v]--
			if e.total[v] < 0 {
				return ErrInternalInvariant("total<0 in drainOut", v)
			}
		}

		if e.total[v] == 0 {
			x := e.ouf.Lookup(e.g.Parents[v])
			if x == u {
				for _, w := range e.same[v] {
					e.d[w] = u
				}
			} else {
				e.same[x] = append(e.same[x], e.same[v]...)
			}
			e.ouf.Union(e.g.Parents[v], v)
			if x != v {
				e.outNode[x] = append(e.outNode[x], e.outNode[v]...)
			}
		}
	}
	return nil
}

// drainIn is Phase C: pop every pending in-arc endpoint at u and walk its
// cluster chain up to u, merging each intermediate cluster into its
// parent's cluster and carrying same/out/in/total/added along.
func (e *Engine) drainIn(u int) error {
	for len(e.inNode[u]) > 0 {
		n := len(e.inNode[u]) - 1
		z := e.inNode[u][n]
		e.inNode[u] = e.inNode[u][:n]

		v := e.ouf.Lookup(z)
		for v != u {
			e.same[u] = append(e.same[u], e.same[v]...)
			x := e.ouf.Lookup(e.g.Parents[v])
			e.ouf.Union(e.g.Parents[v], v)
			e.inNode[x] = append(e.inNode[x], e.inNode[v]...)
			e.outNode[x] = append(e.outNode[x], e.outNode[v]...)
			e.total[x] += e.total[v]
			e.added[x] += e.added[v]
			v = x
		}
	}
	return nil
}
