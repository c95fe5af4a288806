package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/owned"
)

var (
	statsCount   int
	statsElemLen int
)

func init() {
	cmd := newStatsCmd()
	cmd.Flags().IntVar(&statsCount, "count", 64, "Number of array handles to allocate")
	cmd.Flags().IntVar(&statsElemLen, "elems", 256, "Elements per array handle")
	rootCmd.AddCommand(cmd)
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Churn the heap and print usage accounting",
		Long: `The stats command allocates a batch of array handles, releases every
other one, and prints the heap's usage at each checkpoint in several units,
demonstrating that bytes-in-use tracks the exact sum of live segments.

Example:
  heapctl stats --count 128 --elems 1024`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(newLogger())
		},
	}
}

func runStats(logger *slog.Logger) error {
	h := heap.New(heap.WithLogger(logger))

	handles := make([]*owned.Slice[int64], 0, statsCount)
	for i := 0; i < statsCount; i++ {
		handles = append(handles, owned.NewSlice[int64](h, statsElemLen))
	}
	printUsage(h, "after allocation")

	for i := 0; i < len(handles); i += 2 {
		handles[i].Drop()
	}
	printUsage(h, "after releasing every other handle")

	for i := 1; i < len(handles); i += 2 {
		handles[i].Drop()
	}
	printUsage(h, "after releasing the rest")

	logger.Debug("stats churn complete", "segments", h.Segments())
	return nil
}

func printUsage(h *heap.Heap, label string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%s:\n", label)
	fmt.Fprintf(w, "\tsegments\t%d\n", h.Segments())
	for _, u := range []heap.Unit{heap.Byte, heap.Kibibyte, heap.Mibibyte, heap.Kilobyte, heap.Megabyte} {
		fmt.Fprintf(w, "\tused (%s)\t%g\n", u, h.UsedMemory(u))
	}
	_ = w.Flush()
}
