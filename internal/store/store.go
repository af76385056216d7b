package store

import (
	"context"

	"github.com/sells-group/lead-quality-cli/internal/model"
)

// SnapshotFilter specifies criteria for listing snapshots.
type SnapshotFilter struct {
	DateField string `json:"date_field,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Offset    int    `json:"offset,omitempty"`
}

// Store persists fetch snapshots. Snapshots are immutable once saved:
// re-running a window produces a new snapshot rather than mutating an old one.
type Store interface {
	// SaveSnapshot persists the contacts fetched for a window and returns the
	// stored snapshot with its assigned ID.
	SaveSnapshot(ctx context.Context, window model.FetchWindow, contacts []model.Contact) (*model.Snapshot, error)

	// GetSnapshot loads one snapshot including its full contact payload.
	GetSnapshot(ctx context.Context, id string) (*model.Snapshot, error)

	// LatestSnapshot loads the most recently created snapshot with contacts.
	// Returns nil without error when the store is empty.
	LatestSnapshot(ctx context.Context) (*model.Snapshot, error)

	// ListSnapshots returns snapshot summaries, newest first, without the
	// contact payloads.
	ListSnapshots(ctx context.Context, filter SnapshotFilter) ([]model.Snapshot, error)

	// DeleteSnapshot removes one snapshot and its contacts.
	DeleteSnapshot(ctx context.Context, id string) error

	// Lifecycle
	Ping(ctx context.Context) error
	Migrate(ctx context.Context) error
	Close() error
}
