// Package harness provides conformance testing for permission-gated trees.
//
// A scenario is a YAML document declaring schema restrictions, a seed, and
// a sequence of read/write steps with expected outcomes (a leaf value,
// absence, a node, or an error code). After the steps run, the tree's
// final readable snapshot is compared against a golden file, so policy
// behavior is pinned byte-for-byte.
package harness
