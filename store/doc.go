// Package store implements a hierarchical, permission-gated key-value tree.
//
// A tree is a set of Nodes addressed by colon-delimited paths
// ("profile:contact:email"). Each field of a node holds one of three
// value kinds (the sealed Value union):
//   - Leaf: an atomic value returned verbatim on read
//   - *Node: an owned child node, the tree's only ownership edge
//   - Thunk: a zero-argument callable evaluated fresh on every read
//
// Field access is gated by a Registry keyed by schema identity: all node
// instances sharing a SchemaID share the same field restrictions, declared
// once before instances exist. Fields without an explicit registration fall
// back to the node's per-instance default policy (read-write unless changed).
//
// # Access Checking
//
// Only terminal path segments are access-gated. Traversing an existing
// intermediate node checks nothing at the parent; the child's own field
// checks apply instead. Creating a missing intermediate is a write on the
// parent and is gated. See Node.Write for the full rules.
//
// The tree is not safe for concurrent mutation. Registry registration must
// complete before lookups begin; after that the registry is read-only and
// may be shared.
package store
