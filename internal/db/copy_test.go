package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFrom_EmptyRows(t *testing.T) {
	n, err := CopyFrom(context.Background(), nil, "snapshot_contacts", []string{"snapshot_id", "contact_id", "data"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestCopyFrom_Success(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectCopyFrom(pgx.Identifier{"snapshot_contacts"}, []string{"snapshot_id", "contact_id", "data"}).WillReturnResult(2)

	rows := [][]any{
		{"snap-1", "101", []byte(`{"id":"101"}`)},
		{"snap-1", "102", []byte(`{"id":"102"}`)},
	}
	n, err := CopyFrom(context.Background(), mock, "snapshot_contacts", []string{"snapshot_id", "contact_id", "data"}, rows)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCopyFrom_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectCopyFrom(pgx.Identifier{"snapshot_contacts"}, []string{"snapshot_id", "contact_id", "data"}).
		WillReturnError(fmt.Errorf("copy failed"))

	rows := [][]any{{"snap-1", "101", []byte(`{}`)}}
	_, err = CopyFrom(context.Background(), mock, "snapshot_contacts", []string{"snapshot_id", "contact_id", "data"}, rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COPY INTO snapshot_contacts")
	assert.NoError(t, mock.ExpectationsWereMet())
}
