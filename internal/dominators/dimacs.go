package dominators

import (
	"bufio"
	"fmt"
	"io"
)

// WriteDIMACSGraph emits the DIMACS graph variant: a "p" header followed by
// one "a" line per normalized arc, all ids 1-based.
func WriteDIMACSGraph(w io.Writer, g *FlowGraph, normalized []Edge) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "p %d %d %d %d\n", g.N, len(normalized), g.Root+1, g.N); err != nil {
		return err
	}
	for _, e := range normalized {
		if _, err := fmt.Fprintf(bw, "a %d %d\n", e.Src+1, e.Dst+1); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteDIMACSParents emits the "parents" variant: one line per non-root
// node, "<node+1> <parent+1>".
func WriteDIMACSParents(w io.Writer, g *FlowGraph) error {
	bw := bufio.NewWriter(w)
	for v := 0; v < g.N; v++ {
		if v == g.Root {
			continue
		}
		if _, err := fmt.Fprintf(bw, "%d %d\n", v+1, g.Parents[v]+1); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteDIMACSPostorder emits the "postorder" variant: one 1-based node id
// per line, in post-order.
func WriteDIMACSPostorder(w io.Writer, g *FlowGraph) error {
	return writeDIMACSOrder(w, g.Postorder)
}

// WriteDIMACSPreorder emits the "preorder" variant: one 1-based node id per
// line, in pre-order.
func WriteDIMACSPreorder(w io.Writer, g *FlowGraph) error {
	return writeDIMACSOrder(w, g.Preorder)
}

func writeDIMACSOrder(w io.Writer, order []int) error {
	bw := bufio.NewWriter(w)
	for _, v := range order {
		if _, err := fmt.Fprintf(bw, "%d\n", v+1); err != nil {
			return err
		}
	}
	return bw.Flush()
}
