package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/strata/store"
)

// SetResult is the JSON payload of a successful write.
type SetResult struct {
	Path     string          `json:"path"`
	Written  any             `json:"written"`
	Snapshot json.RawMessage `json:"snapshot"`
}

// NewSetCommand creates the set command.
func NewSetCommand(rootOpts *RootOptions) *cobra.Command {
	treeOpts := &TreeOptions{}

	cmd := &cobra.Command{
		Use:   "set <path> <value>",
		Short: "Attempt a write against a seeded tree",
		Long: `Build a tree from the schema documents and data seed, write a value at
a colon-delimited path, and print the resulting readable snapshot.

The value argument is parsed as YAML, so plain scalars, quoted strings,
and inline mappings ('{a: 1, b: 2}') all work; mappings expand into child
nodes. A write denied by the declared policy exits non-zero.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(rootOpts, treeOpts, args[0], args[1], cmd)
		},
	}
	addTreeFlags(cmd, treeOpts)

	return cmd
}

func runSet(opts *RootOptions, treeOpts *TreeOptions, path, rawValue string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	var value any
	if err := yaml.Unmarshal([]byte(rawValue), &value); err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("parsing value %q", rawValue), err)
	}

	root, err := buildTree(formatter, treeOpts)
	if err != nil {
		return err
	}

	written, err := root.Write(path, value)
	if err != nil {
		return reportStoreError(formatter, "write", err)
	}

	snapshot, err := store.EncodeSnapshot(root)
	if err != nil {
		return WrapExitError(ExitCommandError, "encoding snapshot", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(SetResult{
			Path:     path,
			Written:  written,
			Snapshot: json.RawMessage(snapshot),
		})
	}
	fmt.Fprintf(formatter.Writer, "wrote %s\n%s\n", path, string(snapshot))
	return nil
}
