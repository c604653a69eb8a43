package store

// Value is the sealed union of field storage kinds. Only Leaf, *Node, and
// Thunk implement it. A field's stored kind is fixed by what was written;
// the engine never converts one kind into another in place.
type Value interface {
	storeValue() // Sealed - only these types implement it
}

// Leaf holds an atomic value (a primitive or an array) that is passed back
// to callers unchanged on read. The engine never inspects Data.
type Leaf struct {
	Data any
}

func (Leaf) storeValue() {}

// Thunk is a zero-argument callable stored as a field value. A terminal
// read invokes it fresh every time and returns its Result; results are
// never cached. A non-terminal read invokes it and traverses into the
// produced node.
type Thunk func() Result

func (Thunk) storeValue() {}

// Node implements Value so a child node can occupy a field slot; see node.go.
func (*Node) storeValue() {}

// Result is the sealed union returned by Node.Read: a node reference, a
// leaf value, or absent. Only *Node, LeafResult, and AbsentResult
// implement it.
type Result interface {
	storeResult() // Sealed - only these types implement it
}

// LeafResult carries an atomic value out of a read.
type LeafResult struct {
	Value any
}

func (LeafResult) storeResult() {}

// AbsentResult is the valid (non-error) outcome of a terminal read of a
// field that does not exist.
type AbsentResult struct{}

func (AbsentResult) storeResult() {}

func (*Node) storeResult() {}

// AsLeaf extracts the atomic value from a read result.
func AsLeaf(r Result) (any, bool) {
	leaf, ok := r.(LeafResult)
	if !ok {
		return nil, false
	}
	return leaf.Value, true
}

// AsNode extracts the node reference from a read result.
func AsNode(r Result) (*Node, bool) {
	node, ok := r.(*Node)
	return node, ok
}

// IsAbsent reports whether a read resolved to no stored value.
func IsAbsent(r Result) bool {
	if r == nil {
		return true
	}
	_, ok := r.(AbsentResult)
	return ok
}
