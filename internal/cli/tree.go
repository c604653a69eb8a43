package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/strata/schema"
	"github.com/roach88/strata/store"
)

// TreeOptions holds the flags shared by commands that operate on a tree.
type TreeOptions struct {
	SchemaDir string // directory of CUE schema documents (optional)
	DataFile  string // YAML seed document (optional)
	SchemaID  string // schema identity of the root node
}

// addTreeFlags registers the shared tree flags on a command.
func addTreeFlags(cmd *cobra.Command, opts *TreeOptions) {
	cmd.Flags().StringVarP(&opts.SchemaDir, "schema", "s", "", "directory of CUE schema documents")
	cmd.Flags().StringVarP(&opts.DataFile, "data", "d", "", "YAML document seeding the tree")
	cmd.Flags().StringVar(&opts.SchemaID, "schema-id", "root", "schema identity of the root node")
}

// buildTree loads the schema documents, constructs a root gated by them,
// and seeds it from the YAML data document. The tree is in-memory and
// lives for one invocation.
//
// Seeding goes through ordinary Write calls, so a seed that violates the
// declared write policy fails: that is the policy checker doing its job.
func buildTree(formatter *OutputFormatter, opts *TreeOptions) (*store.Node, error) {
	reg := store.NewRegistry()
	rootOpts := []store.Option{store.WithRegistry(reg)}

	if opts.SchemaDir != "" {
		result, errs := schema.Load(opts.SchemaDir, schema.LoadModeFailFast)
		if len(errs) > 0 {
			return nil, WrapExitError(ExitCommandError, "loading schema documents", errs[0])
		}
		formatter.VerboseLog("Loaded %d schema(s) from %d file(s) in %s",
			len(result.Schemas), result.FileCount, opts.SchemaDir)
		schema.Apply(reg, result.Schemas)

		if decl, ok := schema.Find(result.Schemas, store.SchemaID(opts.SchemaID)); ok && decl.DefaultPolicy != nil {
			rootOpts = append(rootOpts, store.WithDefaultPolicy(*decl.DefaultPolicy))
		}
	}

	root := store.NewRoot(store.SchemaID(opts.SchemaID), rootOpts...)

	if opts.DataFile != "" {
		raw, err := os.ReadFile(opts.DataFile)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "reading data document", err)
		}
		var entries map[string]any
		if err := yaml.Unmarshal(raw, &entries); err != nil {
			return nil, WrapExitError(ExitCommandError, "parsing data document", err)
		}
		if err := root.WriteEntries(entries); err != nil {
			return nil, WrapExitError(ExitFailure, "seeding tree", err)
		}
		formatter.VerboseLog("Seeded %d top-level entr(ies) from %s", len(entries), opts.DataFile)
	}

	return root, nil
}

// storeErrorCode maps store errors to stable CLI error codes.
func storeErrorCode(err error) string {
	var permErr *store.PermissionError
	if errors.As(err, &permErr) {
		return "PERMISSION_DENIED"
	}
	var pathErr *store.PathError
	if errors.As(err, &pathErr) {
		return string(pathErr.Code)
	}
	return schema.ErrCodeGeneric
}

// reportStoreError emits a denied/failed operation in the configured format
// and returns the matching ExitError.
func reportStoreError(formatter *OutputFormatter, op string, err error) error {
	code := storeErrorCode(err)
	if outErr := formatter.Error(code, err.Error(), nil); outErr != nil {
		return WrapExitError(ExitCommandError, "writing output", outErr)
	}
	return WrapExitError(ExitFailure, fmt.Sprintf("%s failed", op), err)
}
