package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/go-mail-sync/models"
)

const cursorStateKey = "remote_cursor"

type stateStore struct {
	*DB
}

// NewStateStore returns a [StateStore] persisting the change cursor in the
// sync_state table of the local index database.
func NewStateStore(db *DB) StateStore {
	return &stateStore{DB: db}
}

// LastCursor implements [StateStore].
func (s *stateStore) LastCursor(ctx context.Context) (models.Cursor, bool, error) {
	var value string
	err := s.QueryRowContext(ctx, getSyncState, cursorStateKey).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query last cursor: %w", err)
	}

	cursor := models.Cursor(value)
	return cursor, !cursor.IsZero(), nil
}

// SaveCursor implements [StateStore].
func (s *stateStore) SaveCursor(ctx context.Context, cursor models.Cursor) error {
	_, err := s.ExecContext(ctx, saveSyncState, cursorStateKey, cursor.String(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save cursor: %w", err)
	}
	return nil
}
