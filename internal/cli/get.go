package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/strata/store"
)

// GetResult is the JSON payload of a successful read.
type GetResult struct {
	Path   string          `json:"path"`
	Kind   string          `json:"kind"` // "leaf" | "node" | "absent"
	Result json.RawMessage `json:"result"`
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	treeOpts := &TreeOptions{}

	cmd := &cobra.Command{
		Use:   "get <path>",
		Short: "Read a path from a seeded tree",
		Long: `Build a tree from the schema documents and data seed, then read a
colon-delimited path against it.

A denied read or a broken path exits non-zero with the policy error; an
absent terminal field is a valid result, not an error.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(rootOpts, treeOpts, args[0], cmd)
		},
	}
	addTreeFlags(cmd, treeOpts)

	return cmd
}

func runGet(opts *RootOptions, treeOpts *TreeOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	root, err := buildTree(formatter, treeOpts)
	if err != nil {
		return err
	}

	result, err := root.Read(path)
	if err != nil {
		return reportStoreError(formatter, "read", err)
	}

	encoded, err := store.EncodeResult(result)
	if err != nil {
		return WrapExitError(ExitCommandError, "encoding result", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(GetResult{
			Path:   path,
			Kind:   resultKind(result),
			Result: json.RawMessage(encoded),
		})
	}
	fmt.Fprintln(formatter.Writer, string(encoded))
	return nil
}

func resultKind(r store.Result) string {
	switch {
	case store.IsAbsent(r):
		return "absent"
	default:
		if _, ok := store.AsNode(r); ok {
			return "node"
		}
		return "leaf"
	}
}
