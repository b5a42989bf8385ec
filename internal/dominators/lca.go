package dominators

// LCAOracle answers least-common-ancestor queries on a static spanning
// tree. It is built once from Parents and answers Lookup in O(log N) per
// query via binary lifting — a sufficient, deterministic stand-in for the
// offline Tarjan union-find LCA described in the algorithm's source: GD2
// issues LCA queries one arc at a time as it buckets arcs (§4.5), not in
// a batch a Tarjan-style offline pass could exploit, so a query-at-a-time
// structure is the natural fit here.
type LCAOracle struct {
	depth []int
	up    [][]int // up[k][v] = 2^k-th ancestor of v
	log   int
}

// NewLCAOracle builds an LCA oracle over the tree described by parents and
// root. depth is derived by one DFS from root over child lists built from
// parents; construction is
// deterministic and does not depend on map iteration order.
func NewLCAOracle(root, n int, parents []int) *LCAOracle {
	log := 1
	for (1 << log) < n {
		log++
	}
	log++

	o := &LCAOracle{
		depth: make([]int, n),
		up:    make([][]int, log),
		log:   log,
	}
	for k := range o.up {
		o.up[k] = make([]int, n)
	}

	// Children lists let us compute depth via a single BFS/DFS from root
	// instead of walking parents per node (which would be O(N) per node
	// in the worst case, O(N^2) total).
	children := make([][]int, n)
	for v := 0; v < n; v++ {
		if v == root {
			continue
		}
		p := parents[v]
		children[p] = append(children[p], v)
	}

	o.up[0][root] = root
	stack := []int{root}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range children[v] {
			o.depth[c] = o.depth[v] + 1
			o.up[0][c] = v
			stack = append(stack, c)
		}
	}

	for k := 1; k < log; k++ {
		for v := 0; v < n; v++ {
			o.up[k][v] = o.up[k-1][o.up[k-1][v]]
		}
	}

	return o
}

// Lookup returns the nearest common ancestor of a and b in the tree.
func (o *LCAOracle) Lookup(a, b int) int {
	if o.depth[a] < o.depth[b] {
		a, b = b, a
	}
	diff := o.depth[a] - o.depth[b]
	for k := 0; k < o.log; k++ {
		if diff&(1<<k) != 0 {
			a = o.up[k][a]
		}
	}
	if a == b {
		return a
	}
	for k := o.log - 1; k >= 0; k-- {
		if o.up[k][a] != o.up[k][b] {
			a = o.up[k][a]
			b = o.up[k][b]
		}
	}
	return o.up[0][a]
}
