package harness

import (
	"errors"
	"testing"

	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/strata/schema"
	"github.com/roach88/strata/store"
)

// Run executes a scenario and returns the tree's final readable snapshot
// in canonical JSON (with a trailing newline, for golden files).
//
// Step expectations are asserted inline with testify; the snapshot captures
// the cumulative effect of every write that the policy allowed.
func Run(t *testing.T, scenario *Scenario) []byte {
	t.Helper()

	reg := store.NewRegistry()
	rootOpts := []store.Option{
		store.WithRegistry(reg),
		// Deterministic token so error expectations never depend on UUIDs.
		store.WithTokenGenerator(store.NewFixedGenerator("scenario-" + scenario.Name)),
	}

	if scenario.Schemas != "" {
		v := cuecontext.New().CompileString(scenario.Schemas)
		require.NoError(t, v.Err(), "scenario schema document must compile")
		schemas, err := schema.Compile(v)
		require.NoError(t, err)
		schema.Apply(reg, schemas)

		if decl, ok := schema.Find(schemas, store.SchemaID(scenario.SchemaID)); ok && decl.DefaultPolicy != nil {
			rootOpts = append(rootOpts, store.WithDefaultPolicy(*decl.DefaultPolicy))
		}
	}

	root := store.NewRoot(store.SchemaID(scenario.SchemaID), rootOpts...)
	require.NoError(t, root.WriteEntries(scenario.Seed), "seed writes are assumed to succeed")

	for i, step := range scenario.Steps {
		runStep(t, root, i, step)
	}

	snapshot, err := store.EncodeSnapshot(root)
	require.NoError(t, err)
	return append(snapshot, '\n')
}

func runStep(t *testing.T, root *store.Node, idx int, step Step) {
	t.Helper()

	var result store.Result
	var err error
	switch step.Op {
	case "read":
		result, err = root.Read(step.Path)
	case "write":
		_, err = root.Write(step.Path, step.Value)
	}

	if step.Expect == nil || step.Expect.Error == "" {
		require.NoError(t, err, "step %d: %s %s", idx, step.Op, step.Path)
	}
	if step.Expect == nil {
		return
	}

	expect := step.Expect
	switch {
	case expect.Error != "":
		require.Error(t, err, "step %d: %s %s", idx, step.Op, step.Path)
		assert.Equal(t, expect.Error, errorCode(err), "step %d", idx)
	case expect.Absent:
		assert.True(t, store.IsAbsent(result), "step %d: expected absent", idx)
	case expect.Node:
		_, ok := store.AsNode(result)
		assert.True(t, ok, "step %d: expected a node", idx)
	case expect.Leaf != nil:
		got, ok := store.AsLeaf(result)
		require.True(t, ok, "step %d: expected a leaf", idx)
		assert.Equal(t, expect.Leaf, got, "step %d", idx)
	}
}

// errorCode maps store errors to the codes scenarios name.
func errorCode(err error) string {
	var permErr *store.PermissionError
	if errors.As(err, &permErr) {
		return "PERMISSION_DENIED"
	}
	var pathErr *store.PathError
	if errors.As(err, &pathErr) {
		return string(pathErr.Code)
	}
	return ""
}
