package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mosaicnetworks/hashlog/daglog"
)

// NewJoinCmd returns the command that merges two chains into a third.
func NewJoinCmd() *cobra.Command {
	var size int

	cmd := &cobra.Command{
		Use:   "join [id-a] [id-b] [dest-id]",
		Short: "Join two chains into a third, deterministically",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJoin(cmd, args, size)
		},
	}
	cmd.Flags().IntVar(&size, "size", -1, "cap the joined log to this many most-recent entries; -1 for unbounded")
	return cmd
}

func runJoin(cmd *cobra.Command, args []string, size int) error {
	idA, idB, dest := args[0], args[1], args[2]
	ctx := context.Background()

	s, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	a, err := loadOrCreateLog(ctx, s, idA)
	if err != nil {
		return err
	}
	b, err := loadOrCreateLog(ctx, s, idB)
	if err != nil {
		return err
	}

	joined, err := daglog.Join(a, b, size, dest)
	if err != nil {
		return err
	}

	h, err := daglog.ToMultihash(ctx, s, joined)
	if err != nil {
		return err
	}

	if err := writeHeadPointer(dest, h.String()); err != nil {
		return err
	}

	logger.WithField("dest", dest).WithField("head", h.String()).Info("joined")
	return nil
}
