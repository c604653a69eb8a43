package schema

import (
	"errors"
	"testing"

	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/strata/store"
)

func compileString(t *testing.T, src string) []Schema {
	t.Helper()
	ctx := cuecontext.New()
	v := ctx.CompileString(src)
	require.NoError(t, v.Err())

	schemas, err := Compile(v)
	require.NoError(t, err)
	return schemas
}

func TestCompile(t *testing.T) {
	schemas := compileString(t, `
schemas: {
	user: {
		default: "read-write"
		fields: {
			secret:   "none"
			password: "write-only"
			name:     "read-write"
		}
	}
	audit: {
		fields: {
			log: "read-only"
		}
	}
}
`)
	require.Len(t, schemas, 2)

	user, ok := Find(schemas, "user")
	require.True(t, ok)
	require.NotNil(t, user.DefaultPolicy)
	assert.Equal(t, store.PermissionReadWrite, *user.DefaultPolicy)
	assert.Equal(t, map[string]store.Permission{
		"secret":   store.PermissionNone,
		"password": store.PermissionWriteOnly,
		"name":     store.PermissionReadWrite,
	}, user.Fields)

	audit, ok := Find(schemas, "audit")
	require.True(t, ok)
	assert.Nil(t, audit.DefaultPolicy, "default is optional")
	assert.Equal(t, map[string]store.Permission{"log": store.PermissionReadOnly}, audit.Fields)
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantMsg string
	}{
		{
			"missing schemas struct",
			`other: {}`,
			`top-level "schemas" struct`,
		},
		{
			"empty schemas struct",
			`schemas: {}`,
			"no schemas declared",
		},
		{
			"missing fields",
			`schemas: user: default: "none"`,
			"fields struct is required",
		},
		{
			"empty fields",
			`schemas: user: fields: {}`,
			"at least one field is required",
		},
		{
			"unknown permission",
			`schemas: user: fields: secret: "hidden"`,
			"invalid permission",
		},
		{
			"non-string permission",
			`schemas: user: fields: secret: 3`,
			"permission must be a string",
		},
		{
			"non-string default",
			`schemas: user: { default: 1, fields: a: "none" }`,
			"default must be a permission string",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := cuecontext.New()
			v := ctx.CompileString(tc.src)
			require.NoError(t, v.Err())

			_, err := Compile(v)
			require.Error(t, err)

			var compileErr *CompileError
			require.True(t, errors.As(err, &compileErr))
			assert.Contains(t, compileErr.Message, tc.wantMsg)
		})
	}
}

func TestApply(t *testing.T) {
	schemas := compileString(t, `
schemas: user: fields: {
	secret: "none"
	name:   "read-write"
}
`)

	reg := store.NewRegistry()
	Apply(reg, schemas)

	perm, ok := reg.Lookup("user", "secret")
	require.True(t, ok)
	assert.Equal(t, store.PermissionNone, perm)

	perm, ok = reg.Lookup("user", "name")
	require.True(t, ok)
	assert.Equal(t, store.PermissionReadWrite, perm)

	_, ok = reg.Lookup("user", "unregistered")
	assert.False(t, ok)
}

// The registry backs every node of a schema: restrictions declared once in
// a document apply to all instances sharing the schema identity.
func TestApply_GatesNodes(t *testing.T) {
	schemas := compileString(t, `
schemas: user: fields: {
	secret:   "none"
	password: "write-only"
}
`)
	reg := store.NewRegistry()
	Apply(reg, schemas)

	first := store.NewRoot("user", store.WithRegistry(reg))
	second := store.NewRoot("user", store.WithRegistry(reg))

	for _, node := range []*store.Node{first, second} {
		_, err := node.Write("secret", 1)
		var permErr *store.PermissionError
		require.True(t, errors.As(err, &permErr))

		_, err = node.Write("password", "hunter2")
		require.NoError(t, err)
		_, err = node.Read("password")
		require.True(t, errors.As(err, &permErr))
	}
}

func TestFind(t *testing.T) {
	schemas := compileString(t, `
schemas: {
	user: fields: a: "none"
	audit: fields: b: "read-only"
}
`)

	found, ok := Find(schemas, "audit")
	require.True(t, ok)
	assert.Equal(t, store.SchemaID("audit"), found.ID)

	_, ok = Find(schemas, "ghost")
	assert.False(t, ok)
}
