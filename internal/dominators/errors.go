package dominators

import (
	"fmt"

	apperrors "github.com/flowdom/perf-analysis/pkg/errors"
)

// DominatorError wraps the generic pkg/errors.AppError with the node
// identifiers a dominator-analysis failure needs to be actionable.
type DominatorError struct {
	*apperrors.AppError
	Node   int
	Parent int
}

// Unwrap exposes the embedded AppError to errors.Is/errors.As callers that
// only care about the error code, not the node fields.
func (e *DominatorError) Unwrap() error {
	return e.AppError
}

func newDominatorError(code, message string, node, parent int) *DominatorError {
	return &DominatorError{
		AppError: apperrors.New(code, message),
		Node:     node,
		Parent:   parent,
	}
}

// ErrMultipleRoots reports that parents declared more than one self-mapped
// (root) node.
func ErrMultipleRoots(first, second int) *DominatorError {
	return newDominatorError(apperrors.CodeMultipleRoots,
		fmt.Sprintf("multiple roots declared: %d and %d", first, second), second, first)
}

// ErrNotReachable reports that node v cannot reach the root by walking
// Parents within N steps.
func ErrNotReachable(v int) *DominatorError {
	return newDominatorError(apperrors.CodeNotReachable,
		fmt.Sprintf("node %d cannot reach the root via parents", v), v, -1)
}

// ErrTreeEdgeMissing reports that the spanning tree edge (parent, v) is not
// present in the normalized edge set.
func ErrTreeEdgeMissing(parent, v int) *DominatorError {
	return newDominatorError(apperrors.CodeTreeEdgeMissing,
		fmt.Sprintf("tree edge (%d, %d) missing from graph edges", parent, v), v, parent)
}

// ErrPostOrderViolation reports that v's parent was already visited when v
// was processed in post-order.
func ErrPostOrderViolation(v int) *DominatorError {
	return newDominatorError(apperrors.CodePostOrderViolation,
		fmt.Sprintf("post-order violation at node %d: parent visited too early", v), v, -1)
}

// ErrPreOrderViolation reports the symmetric violation for the reversed
// preorder walk.
func ErrPreOrderViolation(v int) *DominatorError {
	return newDominatorError(apperrors.CodePreOrderViolation,
		fmt.Sprintf("pre-order violation at node %d: child visited too early", v), v, -1)
}

// ErrRootNotLast reports that the final post-order (or first pre-order)
// position does not hold the root.
func ErrRootNotLast(found, root int) *DominatorError {
	return newDominatorError(apperrors.CodeRootNotLast,
		fmt.Sprintf("expected root %d in terminal position, found %d", root, found), found, root)
}

// ErrInternalInvariant reports a GD2 bookkeeping invariant violation. This
// always indicates a bug in the engine, never bad input.
func ErrInternalInvariant(kind string, node int) *DominatorError {
	return newDominatorError(apperrors.CodeInternalInvariant,
		fmt.Sprintf("internal invariant violated (%s) at node %d", kind, node), node, -1)
}
