// Package store implements the local side of the synchronization: a sqlite
// message index paired with raw message files on disk, plus the small state
// table that carries the change cursor between runs.
package store

import (
	"context"

	"github.com/MKhiriev/go-mail-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/local_store_mock.go -package=mock

// LocalStore is the sync engine's view of the local mailbox. Implementations
// own the on-disk layout and the meaning of location tokens; the engine only
// threads them from Store into Index.
type LocalStore interface {
	// ChangesSinceLastSync reports local tag edits made after the last
	// committed sync point: updated maps message ids to their new local tag
	// sets, newIDs holds messages created locally that the remote side has
	// never seen. newIDs is collected for completeness; pushing local
	// messages is not performed by the engine.
	ChangesSinceLastSync(ctx context.Context) (updated map[models.MessageID]models.TagSet, newIDs map[models.MessageID]struct{}, err error)

	// FullSnapshot returns the tag set of every locally indexed message,
	// keyed by message id.
	FullSnapshot(ctx context.Context) (map[models.MessageID]models.TagSet, error)

	// Store writes the raw content of a fetched message to disk and records
	// it in the index as stored-but-unindexed. Returns the location token to
	// pass to Index. Re-storing the same id replaces the previous copy, so
	// an interrupted earlier run can be safely retried.
	Store(ctx context.Context, msg models.RemoteMessage) (models.Location, error)

	// Index marks a batch of stored messages as indexed, parsing their
	// headers and recording the given tag sets as both current and synced.
	Index(ctx context.Context, batch map[models.Location]models.TagSet) error

	// ApplyTags overwrites the local tag sets of the given messages with the
	// remote values. Applied tags count as synced: re-applying the same
	// values is a no-op for change detection. Unknown ids are skipped.
	ApplyTags(ctx context.Context, changes map[models.MessageID]models.TagSet) error

	// Delete removes the given messages from the index and deletes their
	// files. Ids that are already gone are ignored (idempotent).
	Delete(ctx context.Context, ids map[models.MessageID]struct{}) error

	// CommitSyncPoint marks the current local tag state of every
	// remote-known message as synced. Called once, at the very end of a
	// successful run, together with cursor persistence.
	CommitSyncPoint(ctx context.Context) error
}

// StateStore persists the remote change cursor between runs. The cursor is
// the single commit point of a sync: it is saved last, and only when every
// prior step succeeded.
type StateStore interface {
	// LastCursor returns the cursor persisted by the last successful run.
	// ok is false on the first run, before any cursor has been saved.
	LastCursor(ctx context.Context) (cursor models.Cursor, ok bool, err error)

	// SaveCursor persists cursor as the new convergence point.
	SaveCursor(ctx context.Context, cursor models.Cursor) error
}
