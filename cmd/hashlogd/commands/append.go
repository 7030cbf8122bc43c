package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mosaicnetworks/hashlog/daglog"
	"github.com/mosaicnetworks/hashlog/digest"
	"github.com/mosaicnetworks/hashlog/store"
)

// NewAppendCmd returns the command that appends a payload to a chain,
// creating it on first use.
func NewAppendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "append [id] [payload]",
		Short: "Append a payload to a chain, creating it if needed",
		Args:  cobra.ExactArgs(2),
		RunE:  runAppend,
	}
	return cmd
}

func runAppend(cmd *cobra.Command, args []string) error {
	id, payload := args[0], args[1]
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

	l, err = daglog.Append(ctx, s, l, payload)
	if err != nil {
		return err
	}

	h, err := daglog.ToMultihash(ctx, s, l)
	if err != nil {
		return err
	}

	if err := writeHeadPointer(id, h.String()); err != nil {
		return err
	}

	logger.WithField("id", id).WithField("head", h.String()).Info("appended")
	return nil
}

func loadOrCreateLog(ctx context.Context, s store.BlockStore, id string) (*daglog.Log, error) {
	pointer, ok, err := readHeadPointer(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return daglog.Create(id, nil, nil)
	}

	h, err := digest.Parse(pointer)
	if err != nil {
		return nil, err
	}

	return daglog.FromMultihash(ctx, s, h, -1, nil, logger.WithField("component", "hashlogd"), nil)
}
