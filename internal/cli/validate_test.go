package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateValidSchemas(t *testing.T) {
	schemaDir, _ := fixtureTree(t)

	out, err := execute(t, "text", "validate", schemaDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Valid: 1 schema(s)")
	assert.Contains(t, out, "user")
}

func TestValidateValidSchemasJSON(t *testing.T) {
	schemaDir, _ := fixtureTree(t)

	out, err := execute(t, "json", "validate", schemaDir)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var result ValidationResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.True(t, result.Valid)
	assert.Equal(t, []string{"user"}, result.Schemas)
}

func TestValidateNonExistentDirectory(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"/nonexistent/directory/path"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "not found")
}

func TestValidateCollectsAllErrors(t *testing.T) {
	schemaDir := t.TempDir()
	writeTempSchema(t, schemaDir, `
schemas: {
	first: fields: a: "bogus"
	second: fields: {}
}
`)

	out, err := execute(t, "text", "validate", schemaDir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "2 error(s)")
	assert.Contains(t, out, "invalid permission")
	assert.Contains(t, out, "at least one field is required")
}
