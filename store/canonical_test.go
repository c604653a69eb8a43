package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSnapshot(t *testing.T) {
	root := NewRoot("doc")
	require.NoError(t, root.WriteEntries(map[string]any{
		"title": "gate",
		"count": 3,
		"flags": []any{true, false},
		"cfg":   map[string]any{"depth": 2},
	}))
	_, err := root.Write("lazy", Thunk(func() Result {
		t.Fatal("snapshot must not evaluate thunks")
		return AbsentResult{}
	}))
	require.NoError(t, err)

	got, err := EncodeSnapshot(root)
	require.NoError(t, err)
	assert.Equal(t,
		`{"cfg":{"depth":2},"count":3,"flags":[true,false],"lazy":{"$thunk":true},"title":"gate"}`,
		string(got))
}

func TestEncodeSnapshot_OmitsUnreadableFields(t *testing.T) {
	reg := NewRegistry()
	reg.Register("user", "password", PermissionWriteOnly)
	root := NewRoot("user", WithRegistry(reg))

	_, err := root.Write("password", "hunter2")
	require.NoError(t, err)
	_, err = root.Write("name", "ada")
	require.NoError(t, err)

	got, err := EncodeSnapshot(root)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"ada"}`, string(got))
}

func TestEncodeSnapshot_NoHTMLEscaping(t *testing.T) {
	root := NewRoot("doc")
	_, err := root.Write("html", "<a href=\"x\">&</a>")
	require.NoError(t, err)

	got, err := EncodeSnapshot(root)
	require.NoError(t, err)
	assert.Equal(t, `{"html":"<a href=\"x\">&</a>"}`, string(got))
}

func TestEncodeSnapshot_NFCNormalization(t *testing.T) {
	root := NewRoot("doc")
	// "é" as e + COMBINING ACUTE ACCENT normalizes to the precomposed form.
	_, err := root.Write("name", "Zoé")
	require.NoError(t, err)

	got, err := EncodeSnapshot(root)
	require.NoError(t, err)
	assert.Equal(t, "{\"name\":\"Zoé\"}", string(got))
}

func TestEncodeResult(t *testing.T) {
	root := NewRoot("doc")
	_, err := root.Write("a", 1)
	require.NoError(t, err)

	tests := []struct {
		name   string
		result Result
		want   string
	}{
		{"leaf", LeafResult{Value: 42}, "42"},
		{"string leaf", LeafResult{Value: "hi"}, `"hi"`},
		{"nil leaf", LeafResult{Value: nil}, "null"},
		{"node", root, `{"a":1}`},
		{"absent", AbsentResult{}, `"absent"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := EncodeResult(tc.result)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(got))
		})
	}
}

func TestCompareKeysUTF16(t *testing.T) {
	// U+10000 encodes as the surrogate pair D800 DC00, so in UTF-16 order
	// it sorts before U+FFFF; raw UTF-8 byte order says the opposite.
	a, b := "\U00010000", "￿"
	assert.Equal(t, -1, compareKeysUTF16(a, b))
	assert.Equal(t, 1, compareKeysUTF16(b, a))
	assert.Equal(t, 0, compareKeysUTF16("same", "same"))
	assert.Equal(t, -1, compareKeysUTF16("ab", "abc"), "prefix sorts first")
}
