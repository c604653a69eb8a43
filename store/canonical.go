package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// EncodeSnapshot produces deterministic JSON for a node's readable fields,
// for CLI output and golden-file comparison.
//
// Encoding rules:
//   - object keys sorted by UTF-16 code units (surrogate-correct, matching
//     the JSON data model rather than UTF-8 byte order)
//   - strings NFC-normalized, no HTML escaping
//   - child nodes expanded recursively through their own readable fields
//   - thunks rendered as {"$thunk":true}, never evaluated
//
// This is a snapshot format, not a store wire format: thunks and
// permissions make the encoding lossy by design.
func EncodeSnapshot(n *Node) ([]byte, error) {
	return encodeNode(n)
}

// EncodeResult encodes a read result: a leaf value, a node snapshot, or
// "absent" for AbsentResult.
func EncodeResult(r Result) ([]byte, error) {
	switch v := r.(type) {
	case nil:
		return encodeLeaf(nil)
	case *Node:
		return encodeNode(v)
	case LeafResult:
		return encodeLeaf(v.Value)
	case AbsentResult:
		return encodeString("absent")
	default:
		return nil, fmt.Errorf("unsupported result type: %T", r)
	}
}

func encodeNode(n *Node) ([]byte, error) {
	keys := n.Keys()
	slices.SortFunc(keys, compareKeysUTF16)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		encKey, err := encodeString(key)
		if err != nil {
			return nil, err
		}
		buf.Write(encKey)
		buf.WriteByte(':')
		encVal, err := encodeValue(n.fields[key])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		buf.Write(encVal)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func encodeValue(v Value) ([]byte, error) {
	switch stored := v.(type) {
	case *Node:
		return encodeNode(stored)
	case Thunk:
		return []byte(`{"$thunk":true}`), nil
	case Leaf:
		return encodeLeaf(stored.Data)
	default:
		return nil, fmt.Errorf("unsupported stored kind: %T", v)
	}
}

func encodeLeaf(data any) ([]byte, error) {
	switch val := data.(type) {
	case nil:
		return []byte("null"), nil
	case string:
		return encodeString(val)
	case bool:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case int:
		return strconv.AppendInt(nil, int64(val), 10), nil
	case int64:
		return strconv.AppendInt(nil, val, 10), nil
	case uint64:
		return strconv.AppendUint(nil, val, 10), nil
	case float64:
		return strconv.AppendFloat(nil, val, 'g', -1, 64), nil
	case float32:
		return strconv.AppendFloat(nil, float64(val), 'g', -1, 32), nil
	case []any:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			enc, err := encodeLeaf(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			buf.Write(enc)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for key := range val {
			keys = append(keys, key)
		}
		slices.SortFunc(keys, compareKeysUTF16)
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, key := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			encKey, err := encodeString(key)
			if err != nil {
				return nil, err
			}
			buf.Write(encKey)
			buf.WriteByte(':')
			enc, err := encodeLeaf(val[key])
			if err != nil {
				return nil, fmt.Errorf("[%q]: %w", key, err)
			}
			buf.Write(enc)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		// Leaves are opaque to the store; unusual atomic types fall back
		// to the standard encoder (without HTML escaping).
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(data); err != nil {
			return nil, err
		}
		return bytes.TrimRight(buf.Bytes(), "\n"), nil
	}
}

// encodeString produces a JSON string with NFC normalization and no HTML
// escaping, so snapshots are byte-stable across platforms and inputs that
// differ only in Unicode normalization form.
func encodeString(s string) ([]byte, error) {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}
	// json.Encoder adds a trailing newline, remove it
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// compareKeysUTF16 orders keys by UTF-16 code units. Go's native string
// comparison is UTF-8 byte order, which disagrees with UTF-16 order for
// characters beyond the BMP.
func compareKeysUTF16(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	for i := 0; i < len(a16) && i < len(b16); i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	default:
		return 0
	}
}
