package store

import "fmt"

// PathErrorCode categorizes path resolution and traversal errors.
type PathErrorCode string

const (
	// ErrCodeEmptyPath indicates an empty path or an empty leading segment.
	ErrCodeEmptyPath PathErrorCode = "EMPTY_PATH"

	// ErrCodeMissingIntermediate indicates a read traversed through a field
	// with no stored value.
	ErrCodeMissingIntermediate PathErrorCode = "MISSING_INTERMEDIATE"

	// ErrCodeNotANode indicates a traversal through a field whose stored
	// value is not (and, for thunks, does not produce) a child node.
	ErrCodeNotANode PathErrorCode = "NOT_A_NODE"
)

// PathError represents a failure to resolve or traverse a path.
//
// Path is the path as seen by the node that raised the error, so for a
// failure deep in a recursive traversal it is the remaining sub-path, not
// the caller's original path. Tree carries the tree token of that node when
// known, for correlating errors across trees in diagnostics.
type PathError struct {
	Code PathErrorCode
	Path string
	Key  string
	Tree string
}

func (e *PathError) Error() string {
	switch {
	case e.Key != "" && e.Tree != "":
		return fmt.Sprintf("%s: path %q at key %q (tree=%s)", e.Code, e.Path, e.Key, e.Tree)
	case e.Key != "":
		return fmt.Sprintf("%s: path %q at key %q", e.Code, e.Path, e.Key)
	default:
		return fmt.Sprintf("%s: path %q", e.Code, e.Path)
	}
}

// Access names the capability an operation required.
type Access string

const (
	// AccessRead is required by terminal reads and Entries filtering.
	AccessRead Access = "read"
	// AccessWrite is required by terminal writes and intermediate creation.
	AccessWrite Access = "write"
)

// PermissionError represents an access denied by the resolved permission.
// It is a policy violation, never a transient condition.
type PermissionError struct {
	Schema     SchemaID
	Field      string
	Access     Access
	Permission Permission
	Tree       string
}

func (e *PermissionError) Error() string {
	if e.Tree != "" {
		return fmt.Sprintf("PERMISSION_DENIED: %s access to field %q denied by %s (schema=%q, tree=%s)",
			e.Access, e.Field, e.Permission, string(e.Schema), e.Tree)
	}
	return fmt.Sprintf("PERMISSION_DENIED: %s access to field %q denied by %s (schema=%q)",
		e.Access, e.Field, e.Permission, string(e.Schema))
}
