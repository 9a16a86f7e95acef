package main

import (
	"context"
	"log/slog"

	"github.com/Veraticus/tally/internal/cli"
	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/storage"
	"github.com/Veraticus/tally/internal/tracker"
	"github.com/spf13/cobra"
)

// openTracker opens the configured storage and loads the saved state.
// Collections that cannot be read are reported as warnings and start from
// their defaults. Call the returned function to close the storage.
func (a *app) openTracker(ctx context.Context, cmd *cobra.Command) (*tracker.Tracker, *storage.Store, func(), error) {
	medium, err := storage.Open(ctx, a.settings.StorageLocation)
	if err != nil {
		return nil, nil, nil, common.NewUserError("failed to open storage", err)
	}
	store := storage.NewStore(medium)

	tr, err := tracker.Load(ctx, store)
	if err != nil {
		a.renderer(cmd).Warn(err)
	}

	closeFn := func() {
		if err := store.Close(); err != nil {
			slog.Warn("Failed to close storage", "error", err)
		}
	}
	return tr, store, closeFn, nil
}

func (a *app) renderer(cmd *cobra.Command) *cli.Renderer {
	return cli.NewRenderer(cmd.OutOrStdout(), a.settings.Currency)
}

// reportChange decides how a mutation's error reaches the user. A storage
// failure leaves the change in memory, so it is only a warning.
func (a *app) reportChange(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}
	if common.IsStorage(err) {
		a.renderer(cmd).Warn(err)
		return nil
	}
	return err
}

// withTracker runs fn against a loaded tracker and closes storage afterwards.
func (a *app) withTracker(cmd *cobra.Command, fn func(ctx context.Context, tr *tracker.Tracker) error) error {
	return a.withSession(cmd, func(ctx context.Context, tr *tracker.Tracker, _ *storage.Store) error {
		return fn(ctx, tr)
	})
}

// withSession is withTracker for commands that keep their own keys in the
// same store.
func (a *app) withSession(cmd *cobra.Command, fn func(ctx context.Context, tr *tracker.Tracker, store *storage.Store) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	tr, store, closeFn, err := a.openTracker(ctx, cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	return fn(ctx, tr, store)
}
