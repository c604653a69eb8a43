package store

import "strings"

// PathSeparator delimits segments in a tree path.
const PathSeparator = ":"

// SplitPath resolves a path into its first segment and the remaining path.
//
// "a:b:c" splits into ("a", "b:c"); "a" splits into ("a", ""). The remainder
// is empty exactly when the path is terminal. Fails with an EMPTY_PATH error
// when the path is empty or its leading segment is empty ("" or ":b").
//
// No other validation happens here: segments may contain any characters
// except the separator, and an empty interior segment ("a::b") surfaces as
// an EMPTY_PATH error one level down, when ":b" is resolved in turn.
func SplitPath(path string) (key, rest string, err error) {
	key, rest, _ = strings.Cut(path, PathSeparator)
	if key == "" {
		return "", "", &PathError{Code: ErrCodeEmptyPath, Path: path}
	}
	return key, rest, nil
}
