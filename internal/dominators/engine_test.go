package dominators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/flowdom/perf-analysis/pkg/errors"
)

// TestEngine_InternalInvariantOnCorruptedTotal feeds the engine a
// PreparedGraph whose totals are inconsistent with its arcs, which should
// surface as InternalInvariant rather than panicking or silently producing
// a wrong idom.
func TestEngine_InternalInvariantOnCorruptedTotal(t *testing.T) {
	g := graphWithRootSentinel(0, 3, []int{0, 0, 1},
		[]int{2, 1, 0},
		[]Edge{{0, 1}, {1, 2}})

	normalized, err := Verify(g, nil)
	require.NoError(t, err)

	lca := NewLCAOracle(g.Root, g.N, g.Parents)
	prepared := Prepare(g, normalized, lca, nil)
	// Corrupt: give node 2 a negative total. Node 2 is first in post-order
	// and its in-arc is bucketed at node 1, so the end-of-iteration check at
	// u=2 sees total < 0 before that arc is ever processed.
	prepared.Total[2] = -1

	engine := NewEngine(g, prepared, nil)
	_, err = engine.Run(context.Background())
	require.Error(t, err)
	var domErr *DominatorError
	require.ErrorAs(t, err, &domErr)
	assert.Equal(t, apperrors.CodeInternalInvariant, domErr.Code)
}
