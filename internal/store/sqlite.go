package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/lead-quality-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite. Contacts are kept as
// one JSON blob per snapshot; at the volumes a single portal produces that
// reads back in well under a second.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS snapshots (
	id            TEXT PRIMARY KEY,
	date_field    TEXT NOT NULL,
	start_ms      INTEGER NOT NULL,
	end_ms        INTEGER NOT NULL,
	contact_count INTEGER NOT NULL,
	contacts      TEXT NOT NULL,
	created_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_snapshots_created_at ON snapshots(created_at);
CREATE INDEX IF NOT EXISTS idx_snapshots_date_field ON snapshots(date_field);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.db.PingContext(ctx), "sqlite: ping")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveSnapshot(ctx context.Context, window model.FetchWindow, contacts []model.Contact) (*model.Snapshot, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	contactsJSON, err := json.Marshal(contacts)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal contacts")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (id, date_field, start_ms, end_ms, contact_count, contacts, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, window.DateField, window.StartMS, window.EndMS, len(contacts), string(contactsJSON), now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert snapshot")
	}

	return &model.Snapshot{
		ID:           id,
		Window:       window,
		ContactCount: len(contacts),
		Contacts:     contacts,
		CreatedAt:    now,
	}, nil
}

func (s *SQLiteStore) GetSnapshot(ctx context.Context, id string) (*model.Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, date_field, start_ms, end_ms, contact_count, contacts, created_at
		 FROM snapshots WHERE id = ?`,
		id,
	)
	snap, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return nil, eris.Errorf("snapshot not found: %s", id)
	}
	return snap, err
}

func (s *SQLiteStore) LatestSnapshot(ctx context.Context) (*model.Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, date_field, start_ms, end_ms, contact_count, contacts, created_at
		 FROM snapshots ORDER BY created_at DESC, id LIMIT 1`,
	)
	snap, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return snap, err
}

func (s *SQLiteStore) ListSnapshots(ctx context.Context, filter SnapshotFilter) ([]model.Snapshot, error) {
	query := `SELECT id, date_field, start_ms, end_ms, contact_count, created_at FROM snapshots WHERE 1=1`
	var args []any

	if filter.DateField != "" {
		query += ` AND date_field = ?`
		args = append(args, filter.DateField)
	}
	query += ` ORDER BY created_at DESC, id`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list snapshots")
	}
	defer rows.Close()

	var snaps []model.Snapshot
	for rows.Next() {
		var snap model.Snapshot
		if err := rows.Scan(&snap.ID, &snap.Window.DateField, &snap.Window.StartMS,
			&snap.Window.EndMS, &snap.ContactCount, &snap.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan snapshot summary")
		}
		snaps = append(snaps, snap)
	}
	return snaps, eris.Wrap(rows.Err(), "sqlite: list snapshots iterate")
}

func (s *SQLiteStore) DeleteSnapshot(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete snapshot %s", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Errorf("snapshot not found: %s", id)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scannable) (*model.Snapshot, error) {
	var snap model.Snapshot
	var contactsJSON string

	err := row.Scan(&snap.ID, &snap.Window.DateField, &snap.Window.StartMS,
		&snap.Window.EndMS, &snap.ContactCount, &contactsJSON, &snap.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan snapshot")
	}

	if err := json.Unmarshal([]byte(contactsJSON), &snap.Contacts); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal contacts")
	}
	return &snap, nil
}
