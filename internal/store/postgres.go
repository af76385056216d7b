package store

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/lead-quality-cli/internal/db"
	"github.com/sells-group/lead-quality-cli/internal/model"
)

// PostgresStore implements Store using pgxpool. Snapshot metadata lives in
// snapshots; the contact payload is one JSONB row per contact in
// snapshot_contacts, bulk-loaded over COPY.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresFromPool wraps an existing pool. Used by tests to inject a mock.
func NewPostgresFromPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool, closeFn: pool.Close}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS snapshots (
	id            TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	date_field    TEXT NOT NULL,
	start_ms      BIGINT NOT NULL,
	end_ms        BIGINT NOT NULL,
	contact_count INTEGER NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS snapshot_contacts (
	snapshot_id TEXT NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
	seq         INTEGER NOT NULL,
	contact_id  TEXT NOT NULL,
	data        JSONB NOT NULL,
	PRIMARY KEY (snapshot_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_snapshots_created_at ON snapshots(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_snapshots_date_field ON snapshots(date_field);
CREATE INDEX IF NOT EXISTS idx_snapshot_contacts_contact_id ON snapshot_contacts(contact_id);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return eris.Wrap(s.pool.Ping(ctx), "postgres: ping")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) SaveSnapshot(ctx context.Context, window model.FetchWindow, contacts []model.Contact) (*model.Snapshot, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO snapshots (id, date_field, start_ms, end_ms, contact_count, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		id, window.DateField, window.StartMS, window.EndMS, len(contacts), now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert snapshot")
	}

	rows := make([][]any, len(contacts))
	for i, c := range contacts {
		data, err := json.Marshal(c)
		if err != nil {
			return nil, eris.Wrapf(err, "postgres: marshal contact %s", c.ID)
		}
		rows[i] = []any{id, i, c.ID, data}
	}
	if _, err := db.CopyFrom(ctx, s.pool, "snapshot_contacts",
		[]string{"snapshot_id", "seq", "contact_id", "data"}, rows); err != nil {
		return nil, eris.Wrapf(err, "postgres: load contacts for snapshot %s", id)
	}

	return &model.Snapshot{
		ID:           id,
		Window:       window,
		ContactCount: len(contacts),
		Contacts:     contacts,
		CreatedAt:    now,
	}, nil
}

func (s *PostgresStore) GetSnapshot(ctx context.Context, id string) (*model.Snapshot, error) {
	var snap model.Snapshot
	err := s.pool.QueryRow(ctx,
		`SELECT id, date_field, start_ms, end_ms, contact_count, created_at
		 FROM snapshots WHERE id = $1`,
		id,
	).Scan(&snap.ID, &snap.Window.DateField, &snap.Window.StartMS,
		&snap.Window.EndMS, &snap.ContactCount, &snap.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Errorf("snapshot not found: %s", id)
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get snapshot")
	}

	contacts, err := s.loadContacts(ctx, snap.ID)
	if err != nil {
		return nil, err
	}
	snap.Contacts = contacts
	return &snap, nil
}

func (s *PostgresStore) LatestSnapshot(ctx context.Context) (*model.Snapshot, error) {
	var snap model.Snapshot
	err := s.pool.QueryRow(ctx,
		`SELECT id, date_field, start_ms, end_ms, contact_count, created_at
		 FROM snapshots ORDER BY created_at DESC, id LIMIT 1`,
	).Scan(&snap.ID, &snap.Window.DateField, &snap.Window.StartMS,
		&snap.Window.EndMS, &snap.ContactCount, &snap.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: latest snapshot")
	}

	contacts, err := s.loadContacts(ctx, snap.ID)
	if err != nil {
		return nil, err
	}
	snap.Contacts = contacts
	return &snap, nil
}

func (s *PostgresStore) ListSnapshots(ctx context.Context, filter SnapshotFilter) ([]model.Snapshot, error) {
	query := `SELECT id, date_field, start_ms, end_ms, contact_count, created_at FROM snapshots`
	var args []any
	argn := 1

	if filter.DateField != "" {
		query += ` WHERE date_field = $1`
		args = append(args, filter.DateField)
		argn++
	}
	query += ` ORDER BY created_at DESC, id`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT $` + strconv.Itoa(argn)
	args = append(args, limit)
	argn++

	if filter.Offset > 0 {
		query += ` OFFSET $` + strconv.Itoa(argn)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list snapshots")
	}
	defer rows.Close()

	var snaps []model.Snapshot
	for rows.Next() {
		var snap model.Snapshot
		if err := rows.Scan(&snap.ID, &snap.Window.DateField, &snap.Window.StartMS,
			&snap.Window.EndMS, &snap.ContactCount, &snap.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan snapshot summary")
		}
		snaps = append(snaps, snap)
	}
	return snaps, eris.Wrap(rows.Err(), "postgres: list snapshots iterate")
}

func (s *PostgresStore) DeleteSnapshot(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM snapshots WHERE id = $1`, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete snapshot %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("snapshot not found: %s", id)
	}
	return nil
}

func (s *PostgresStore) loadContacts(ctx context.Context, snapshotID string) ([]model.Contact, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT data FROM snapshot_contacts WHERE snapshot_id = $1 ORDER BY seq`,
		snapshotID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: load contacts")
	}
	defer rows.Close()

	var contacts []model.Contact
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, eris.Wrap(err, "postgres: scan contact")
		}
		var c model.Contact
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal contact")
		}
		contacts = append(contacts, c)
	}
	return contacts, eris.Wrap(rows.Err(), "postgres: load contacts iterate")
}
