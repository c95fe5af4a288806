package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/owned"
)

var demoNoWait bool

func init() {
	cmd := newDemoCmd()
	cmd.Flags().BoolVar(&demoNoWait, "no-wait", false, "Do not pause for Enter between steps")
	rootCmd.AddCommand(cmd)
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk through allocation, ownership transfer, and release",
		Long: `The demo command allocates a constructed object on the segment heap,
moves the owning handle across scopes, and finally drops it, printing the
heap's usage accounting at each step.

Example:
  heapctl demo
  heapctl demo --no-wait -v`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(newLogger())
		},
	}
}

// greeting is the demo payload. Segment memory may not hold Go pointers,
// so the text lives inline in a fixed-size buffer.
type greeting struct {
	text [32]byte
	n    int
}

func (g *greeting) setText(s string) { g.n = copy(g.text[:], s) }

func (g *greeting) Text() string { return string(g.text[:g.n]) }

func runDemo(logger *slog.Logger) error {
	h := heap.New(heap.WithLogger(logger))

	p := allocateGreeting(h, logger)
	waitForEnter("Press Enter to move the handle into the outer scope.")

	moved := p.Move()
	p.Drop() // moved-from: inert
	logger.Info("handle moved; original scope's drop was a no-op",
		"bytes_in_use", h.Bytes())

	fmt.Println(moved.Get().Text())
	waitForEnter("Handle now belongs to the outer scope. Press Enter to drop it.")

	moved.Drop()
	logger.Info("handle dropped", "bytes_in_use", h.Bytes(),
		"used_kib", h.UsedMemory(heap.Kibibyte))
	return nil
}

func allocateGreeting(h *heap.Heap, logger *slog.Logger) *owned.Ptr[greeting] {
	p := owned.NewWith(h, func(g *greeting) error {
		g.setText("Hi World!")
		return nil
	})
	// Construction of a literal cannot fail; acknowledge the empty slot the
	// same way a caller of a fallible constructor would.
	p.Fault().Defuse()
	logger.Info("allocated constructed object",
		"bytes_in_use", h.Bytes(),
		"segments", h.Segments())
	return p
}

func waitForEnter(prompt string) {
	if demoNoWait {
		return
	}
	fmt.Println(prompt)
	_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
}
