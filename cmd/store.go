package main

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/lead-quality-cli/internal/model"
	"github.com/sells-group/lead-quality-cli/internal/store"
)

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "leadq.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// loadSnapshot resolves the snapshot a command should operate on: the one
// named by id, or the most recent when id is empty. Returns nil when the
// store has no snapshots at all.
func loadSnapshot(cmd *cobra.Command, st store.Store, id string) (*model.Snapshot, error) {
	ctx := cmd.Context()
	if id != "" {
		return st.GetSnapshot(ctx, id)
	}
	return st.LatestSnapshot(ctx)
}
