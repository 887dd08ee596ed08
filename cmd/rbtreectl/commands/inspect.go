package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/redblack-systems/rbtree/pkg/arena"
)

// NewInspectCommand loads a hibernated, serialized allocator from disk and
// reports its shape without reconstructing a tree over it.
func NewInspectCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Load a hibernated allocator and report its shape",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, path)
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "path to a serialized allocator")

	if err := cmd.MarkFlagRequired("path"); err != nil {
		panic(err)
	}

	return cmd
}

func runInspect(cmd *cobra.Command, path string) error {
	alloc := arena.NewAllocator()
	alloc.Hibernate() // an empty allocator hibernates trivially so Deserialize's precondition holds.

	if err := alloc.Deserialize(path); err != nil {
		return fmt.Errorf("deserialize %s: %w", path, err)
	}

	alloc.Boot()

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Path", "Slots", "Live records"})
	t.AppendRow(table.Row{path, alloc.Size(), alloc.Used()})
	t.Render()

	return nil
}
