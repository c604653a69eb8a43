package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/strata/store"
)

// EntriesResult is the JSON payload of an entries listing.
type EntriesResult struct {
	Path     string          `json:"path,omitempty"`
	Keys     []string        `json:"keys"`
	Snapshot json.RawMessage `json:"snapshot"`
}

// NewEntriesCommand creates the entries command.
func NewEntriesCommand(rootOpts *RootOptions) *cobra.Command {
	treeOpts := &TreeOptions{}

	cmd := &cobra.Command{
		Use:   "entries [path]",
		Short: "List the readable fields of a node",
		Long: `Build a tree from the schema documents and data seed and print the
readable fields of the node at the given path (the root when omitted).

Fields the declared policy denies reading are omitted, not errors. Keys
are listed in insertion order; the snapshot is canonical JSON.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runEntries(rootOpts, treeOpts, path, cmd)
		},
	}
	addTreeFlags(cmd, treeOpts)

	return cmd
}

func runEntries(opts *RootOptions, treeOpts *TreeOptions, path string, cmd *cobra.Command) error {
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

	node := root
	if path != "" {
		result, err := root.Read(path)
		if err != nil {
			return reportStoreError(formatter, "read", err)
		}
		child, ok := store.AsNode(result)
		if !ok {
			return reportStoreError(formatter, "entries", &store.PathError{
				Code: store.ErrCodeNotANode,
				Path: path,
				Tree: root.Tree(),
			})
		}
		node = child
	}

	snapshot, err := store.EncodeSnapshot(node)
	if err != nil {
		return WrapExitError(ExitCommandError, "encoding snapshot", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(EntriesResult{
			Path:     path,
			Keys:     node.Keys(),
			Snapshot: json.RawMessage(snapshot),
		})
	}
	fmt.Fprintln(formatter.Writer, string(snapshot))
	return nil
}
