package dominators

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	apperrors "github.com/flowdom/perf-analysis/pkg/errors"
	"github.com/flowdom/perf-analysis/pkg/writer"
)

// edgesDoc is the on-disk shape of edges.json: {"edges": [[src, dst], ...]}.
type edgesDoc struct {
	Edges [][2]int `json:"edges"`
}

// LoadEdges reads edges.json's {"edges": [[u,v], ...]} shape.
func LoadEdges(r io.Reader) ([]Edge, error) {
	var doc edgesDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeParseError, "decoding edges.json", err)
	}
	out := make([]Edge, len(doc.Edges))
	for i, pair := range doc.Edges {
		out[i] = Edge{Src: pair[0], Dst: pair[1]}
	}
	return out, nil
}

// LoadParents reads parents.json, a JSON object mapping string node ids to
// their parent node id. A key mapping to itself identifies the root; a
// second such key fails with MultipleRoots.
func LoadParents(r io.Reader) (parents map[int]int, root int, err error) {
	var raw map[string]int
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, 0, apperrors.Wrap(apperrors.CodeParseError, "decoding parents.json", err)
	}

	parents = make(map[int]int, len(raw))
	haveRoot := false
	for k, v := range raw {
		node, convErr := strconv.Atoi(k)
		if convErr != nil {
			return nil, 0, apperrors.Wrap(apperrors.CodeParseError,
				fmt.Sprintf("parents.json key %q is not an integer node id", k), convErr)
		}
		parents[node] = v
		if node == v {
			if haveRoot {
				return nil, 0, ErrMultipleRoots(root, node)
			}
			root = node
			haveRoot = true
		}
	}
	if !haveRoot {
		return nil, 0, apperrors.New(apperrors.CodeInvalidInput, "parents.json declares no root (no key maps to itself)")
	}
	return parents, root, nil
}

// LoadOrder reads a JSON array of ints (a position -> node bijection), used
// for both postorder.json and preorder.json.
func LoadOrder(r io.Reader) ([]int, error) {
	var order []int
	if err := json.NewDecoder(r).Decode(&order); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeParseError, "decoding order array", err)
	}
	return order, nil
}

// BuildFlowGraph assembles a FlowGraph from the loaded pieces, filling in N
// and a dense Parents slice (with the root self-loop sentinel at
// Parents[root], matching the convention the engine relies on).
//
// parents is expected to carry one entry per node, including a self-mapped
// entry for root (the shape LoadParents produces), so N = len(parents).
func BuildFlowGraph(root int, parents map[int]int, postorder, preorder []int, edges []Edge) *FlowGraph {
	n := len(parents)
	dense := make([]int, n)
	dense[root] = root
	for node, parent := range parents {
		dense[node] = parent
	}
	return &FlowGraph{
		Root:      root,
		N:         n,
		Parents:   dense,
		Postorder: postorder,
		Preorder:  preorder,
		Edges:     edges,
	}
}

// dominatorResultWriter renders idom as indented JSON via the shared
// generic JSON writer, reused rather than re-implemented.
var dominatorResultWriter = writer.NewPrettyJSONWriter[[]int]()

// WriteResultJSON writes idom as indented JSON.
func WriteResultJSON(w io.Writer, idom []int) error {
	return dominatorResultWriter.Write(idom, w)
}

