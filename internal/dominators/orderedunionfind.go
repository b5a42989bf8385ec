package dominators

// OrderedUnionFind layers a caller-observable "name" over a UnionFind,
// decoupling the representative identity (an artifact of union-by-rank)
// from the class name GD2 actually cares about. The invariant it provides:
// after union(a, b), the merged class's name is the pre-union name of a's
// class — b's name is always overwritten, never a's.
type OrderedUnionFind struct {
	uf   *UnionFind
	name map[int]int // UF root -> class name
}

// NewOrderedUnionFind creates an empty OrderedUnionFind over capacity
// elements.
func NewOrderedUnionFind(capacity int) *OrderedUnionFind {
	return &OrderedUnionFind{
		uf:   NewUnionFind(capacity),
		name: make(map[int]int, capacity),
	}
}

// Lookup returns the class name of x, initializing it to the UF root of x
// if the class has not been named yet.
func (o *OrderedUnionFind) Lookup(x int) int {
	root := o.uf.Find(x)
	n, ok := o.name[root]
	if !ok {
		n = root
		o.name[root] = n
	}
	return n
}

// Union merges the classes containing a and b. The resulting class's name
// is the name a's class had before the union; b's name is discarded.
func (o *OrderedUnionFind) Union(a, b int) {
	ra, rb := o.uf.Find(a), o.uf.Find(b)
	nameA := o.Lookup(a)
	newRoot := o.uf.Union(ra, rb)
	o.name[newRoot] = nameA
}
