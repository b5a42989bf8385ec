package dominators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnionFind_FindSelfRegisters(t *testing.T) {
	uf := NewUnionFind(0)
	assert.Equal(t, 5, uf.Find(5))
	assert.Equal(t, 0, uf.Find(0))
}

func TestUnionFind_UnionByRank(t *testing.T) {
	uf := NewUnionFind(0)

	// Equal ranks: first argument's root wins.
	root := uf.Union(1, 2)
	assert.Equal(t, uf.Find(1), root)
	assert.Equal(t, uf.Find(1), uf.Find(2))

	// Union a third element into the now-larger-rank tree.
	root2 := uf.Union(1, 3)
	assert.Equal(t, uf.Find(1), root2)
	assert.Equal(t, uf.Find(1), uf.Find(3))
}

func TestUnionFind_PathCompression(t *testing.T) {
	uf := NewUnionFind(0)
	uf.Union(1, 2)
	uf.Union(2, 3)
	uf.Union(3, 4)

	root := uf.Find(4)
	assert.Equal(t, root, uf.Find(1))
	assert.Equal(t, root, uf.Find(2))
	assert.Equal(t, root, uf.Find(3))
}

func TestUnionFind_ElementsInsertionOrder(t *testing.T) {
	uf := NewUnionFind(0)
	uf.Find(3)
	uf.Find(1)
	uf.Find(2)

	assert.Equal(t, []int{3, 1, 2}, uf.Elements())
}

func TestUnionFind_UnionIdempotentOnSameSet(t *testing.T) {
	uf := NewUnionFind(0)
	uf.Union(1, 2)
	before := uf.Find(1)
	after := uf.Union(1, 2)
	assert.Equal(t, before, after)
}
