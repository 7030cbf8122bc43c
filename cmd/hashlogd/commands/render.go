package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewRenderCmd returns the command that prints a chain's indented tree
// view, per spec.md section 4.4.
func NewRenderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render [id]",
		Short: "Print a chain as an indented tree",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,
	}
}

func runRender(cmd *cobra.Command, args []string) error {
	id := args[0]
	ctx := context.Background()

	s, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	l, err := loadOrCreateLog(ctx, s, id)
	if err != nil {
		return err
	}

	fmt.Println(l.String())
	return nil
}
