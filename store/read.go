package store

// Read resolves a colon-delimited path to a Result.
//
// The terminal segment is access-gated by AllowedToRead; intermediate
// segments are not (only the terminal check and each child node's own
// checks apply). A terminal read of a nonexistent field returns
// AbsentResult, a valid outcome. A non-terminal read through a nonexistent
// field fails with a MISSING_INTERMEDIATE PathError.
//
// A thunk at the terminal segment is invoked fresh on every read, never
// cached. A thunk at an intermediate segment is invoked and must produce a
// node to traverse into.
func (n *Node) Read(path string) (Result, error) {
	key, rest, err := SplitPath(path)
	if err != nil {
		return nil, err
	}

	if rest == "" {
		if !n.AllowedToRead(key) {
			return nil, &PermissionError{
				Schema:     n.schema,
				Field:      key,
				Access:     AccessRead,
				Permission: n.permissionFor(key),
				Tree:       n.tree,
			}
		}
		stored, ok := n.fields[key]
		if !ok {
			return AbsentResult{}, nil
		}
		switch v := stored.(type) {
		case Thunk:
			return v(), nil
		case *Node:
			return v, nil
		case Leaf:
			return LeafResult{Value: v.Data}, nil
		}
		return AbsentResult{}, nil
	}

	// Intermediate traversal is not access-gated at this level.
	stored, ok := n.fields[key]
	if !ok {
		return nil, &PathError{Code: ErrCodeMissingIntermediate, Path: path, Key: key, Tree: n.tree}
	}
	child, err := n.traverse(stored, path, key)
	if err != nil {
		return nil, err
	}
	return child.Read(rest)
}

// traverse resolves a stored value into a child node for read recursion.
// Thunks are invoked; anything that is not (or does not produce) a node is
// a NOT_A_NODE path error.
func (n *Node) traverse(stored Value, path, key string) (*Node, error) {
	switch v := stored.(type) {
	case *Node:
		return v, nil
	case Thunk:
		result := v()
		if IsAbsent(result) {
			return nil, &PathError{Code: ErrCodeMissingIntermediate, Path: path, Key: key, Tree: n.tree}
		}
		if child, ok := AsNode(result); ok {
			return child, nil
		}
		return nil, &PathError{Code: ErrCodeNotANode, Path: path, Key: key, Tree: n.tree}
	default:
		return nil, &PathError{Code: ErrCodeNotANode, Path: path, Key: key, Tree: n.tree}
	}
}
