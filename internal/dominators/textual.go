package dominators

import (
	"bufio"
	"fmt"
	"io"
)

// WriteText renders idom as a plain textual listing: one line per node,
// "<node>: <idom>", nodes in ascending id order.
func WriteText(w io.Writer, idom []int) error {
	bw := bufio.NewWriter(w)
	for v, d := range idom {
		if _, err := fmt.Fprintf(bw, "%d: %d\n", v, d); err != nil {
			return err
		}
	}
	return bw.Flush()
}
