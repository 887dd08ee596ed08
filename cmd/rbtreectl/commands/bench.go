package commands

import (
	"math/rand"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/redblack-systems/rbtree/pkg/arena"
	"github.com/redblack-systems/rbtree/pkg/metrics"
)

// NewBenchCommand runs a randomized insert/erase workload against an
// in-memory arena tree and reports throughput.
func NewBenchCommand() *cobra.Command {
	var (
		numKeys int
		numOps  int
		seed    int64
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run a randomized insert/erase workload and report throughput",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBench(cmd, numKeys, numOps, seed)
		},
	}

	cmd.Flags().IntVar(&numKeys, "keys", 10000, "key universe size")
	cmd.Flags().IntVar(&numOps, "ops", 1000000, "number of insert/erase operations to perform")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")

	return cmd
}

func runBench(cmd *cobra.Command, numKeys, numOps int, seed int64) error {
	registry := prometheus.NewRegistry()
	collectors := metrics.NewCollectors(registry)

	alloc := arena.NewAllocator()
	tree := arena.NewTree(alloc)

	present := make(map[uint32]bool, numKeys)
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // benchmark workload generation, not a security context.

	start := time.Now()

	for op := 0; op < numOps; op++ {
		key := uint32(rng.Intn(numKeys)) //nolint:gosec // bounded by numKeys.

		if present[key] {
			_, walkDepth, rotations := tree.DeleteWithKey(key)
			delete(present, key)
			collectors.ObserveErase(walkDepth, rotations)
		} else {
			_, _, walkDepth, rotations := tree.Insert(arena.Item{Key: key, Value: key})
			present[key] = true
			collectors.ObserveInsert(walkDepth, rotations)
		}
	}

	elapsed := time.Since(start)

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.Style().Format.Header = text.FormatDefault
	t.AppendHeader(table.Row{"Operations", "Elapsed", "Ops/sec", "Final node count", "Allocator slots"})
	t.AppendRow(table.Row{
		humanize.Comma(int64(numOps)),
		elapsed.String(),
		humanize.Comma(int64(float64(numOps) / elapsed.Seconds())),
		tree.Len(),
		alloc.Size(),
	})
	t.Render()

	return nil
}
