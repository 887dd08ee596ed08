package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/redblack-systems/rbtree/pkg/arena"
)

// NewBuildCommand builds an arena-backed tree from a stream of uint32 keys
// and reports its resulting shape.
func NewBuildCommand() *cobra.Command {
	var inputPath string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a tree from a key stream and report its shape",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, inputPath)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "file of whitespace-separated keys (defaults to stdin)")

	return cmd
}

func runBuild(cmd *cobra.Command, inputPath string) error {
	keys, err := readKeys(inputPath)
	if err != nil {
		return fmt.Errorf("read keys: %w", err)
	}

	alloc := arena.NewAllocator()
	tree := arena.NewTree(alloc)

	for i, key := range keys {
		tree.Insert(arena.Item{Key: key, Value: uint32(i)}) //nolint:gosec // keys are drawn from bounded test/CLI input.
	}

	minItem, hasMin := tree.Min()
	maxItem, hasMax := tree.Max()

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Keys read", "Nodes in tree", "Min key", "Max key", "Allocator used"})
	t.AppendRow(table.Row{
		len(keys),
		tree.Len(),
		formatItemKey(minItem, hasMin),
		formatItemKey(maxItem, hasMax),
		alloc.Used(),
	})
	t.Render()

	color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "built tree with %d nodes\n", tree.Len())

	return nil
}

func formatItemKey(item arena.Item, ok bool) string {
	if !ok {
		return "-"
	}

	return strconv.FormatUint(uint64(item.Key), 10)
}

func readKeys(inputPath string) ([]uint32, error) {
	var r io.Reader

	if inputPath == "" {
		r = os.Stdin
	} else {
		f, err := os.Open(inputPath) //nolint:gosec // inputPath is an operator-supplied CLI flag, not untrusted user input.
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", inputPath, err)
		}
		defer f.Close()

		r = f
	}

	var keys []uint32

	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	for scanner.Scan() {
		v, err := strconv.ParseUint(scanner.Text(), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("parse key %q: %w", scanner.Text(), err)
		}

		keys = append(keys, uint32(v))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan input: %w", err)
	}

	return keys, nil
}
