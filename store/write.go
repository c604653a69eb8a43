package store

// Write stores value at the given path and returns the value unchanged.
//
// Terminal segment: gated by AllowedToWrite, then the value is classified.
// A composite (map[string]any) is expanded field-by-field into a fresh
// child node stored at the key; a zero-argument callable is stored as a
// Thunk; a prebuilt *Node is attached as-is; everything else (primitives,
// arrays) is stored as a Leaf. A passing write overwrites any previous
// value unconditionally.
//
// Non-terminal segment: when no value exists at the key, creating the
// intermediate node is itself gated by AllowedToWrite. When a node already
// exists there, the write recurses into it WITHOUT re-checking write
// permission on the key at this level - the gate for an existing
// intermediate applies only inside that child's own field checks. The
// asymmetry (checked on creation, bypassed on traversal) is part of the
// observable access-control semantics and is covered by tests.
func (n *Node) Write(path string, value any) (any, error) {
	key, rest, err := SplitPath(path)
	if err != nil {
		return nil, err
	}

	if rest == "" {
		if !n.AllowedToWrite(key) {
			return nil, n.writeDenied(key)
		}
		stored, err := n.ingest(value)
		if err != nil {
			return nil, err
		}
		n.set(key, stored)
		return value, nil
	}

	existing, ok := n.fields[key]
	if !ok {
		if !n.AllowedToWrite(key) {
			return nil, n.writeDenied(key)
		}
		child := n.newChild()
		if _, err := child.Write(rest, value); err != nil {
			return nil, err
		}
		n.set(key, child)
		return value, nil
	}

	child, ok := existing.(*Node)
	if !ok {
		// Writes cannot pass through leaves, nor through thunks: a node
		// produced by a thunk is not owned by this tree, so the write
		// would not be observable through it.
		return nil, &PathError{Code: ErrCodeNotANode, Path: path, Key: key, Tree: n.tree}
	}
	return child.Write(rest, value)
}

// ingest classifies a caller-supplied value into its stored kind,
// expanding composites into child nodes.
func (n *Node) ingest(value any) (Value, error) {
	switch v := value.(type) {
	case *Node:
		return v, nil
	case Leaf:
		return v, nil
	case Thunk:
		return v, nil
	case func() Result:
		return Thunk(v), nil
	case map[string]any:
		child := n.newChild()
		for _, key := range sortedKeys(v) {
			if _, err := child.Write(key, v[key]); err != nil {
				return nil, err
			}
		}
		return child, nil
	default:
		return Leaf{Data: value}, nil
	}
}

func (n *Node) writeDenied(key string) *PermissionError {
	return &PermissionError{
		Schema:     n.schema,
		Field:      key,
		Access:     AccessWrite,
		Permission: n.permissionFor(key),
		Tree:       n.tree,
	}
}
