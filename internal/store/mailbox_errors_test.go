package store

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-mail-sync/internal/logger"
	"github.com/MKhiriev/go-mail-sync/models"
)

// newMockedMailbox wires the mailbox store over a sqlmock connection for
// exercising database failure paths without a real sqlite file.
func newMockedMailbox(t *testing.T) (*mailboxStore, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db := &DB{DB: conn, logger: logger.Nop()}
	return &mailboxStore{DB: db, maildir: t.TempDir(), logger: logger.Nop()}, mock
}

func TestMailboxStore_ChangesSinceLastSync_QueryError(t *testing.T) {
	mb, mock := newMockedMailbox(t)
	boom := errors.New("database is locked")

	mock.ExpectQuery("SELECT id, tags").WillReturnError(boom)

	_, _, err := mb.ChangesSinceLastSync(context.Background())
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMailboxStore_ApplyTags_BeginError(t *testing.T) {
	mb, mock := newMockedMailbox(t)

	mock.ExpectBegin().WillReturnError(errors.New("no transactions"))

	err := mb.ApplyTags(context.Background(), map[models.MessageID]models.TagSet{
		"m1": models.NewTagSet("x"),
	})
	require.ErrorIs(t, err, ErrBeginningTransaction)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMailboxStore_Index_CommitError(t *testing.T) {
	mb, mock := newMockedMailbox(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE messages").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(errors.New("disk I/O error"))

	err := mb.Index(context.Background(), map[models.Location]models.TagSet{
		"/tmp/none.eml": models.NewTagSet("x"),
	})
	require.ErrorIs(t, err, ErrCommitingTransaction)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMailboxStore_CommitSyncPoint_ExecError(t *testing.T) {
	mb, mock := newMockedMailbox(t)
	boom := errors.New("database is locked")

	mock.ExpectExec("UPDATE messages").WillReturnError(boom)

	require.ErrorIs(t, mb.CommitSyncPoint(context.Background()), boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStateStore_LastCursor_QueryError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	state := NewStateStore(&DB{DB: conn, logger: logger.Nop()})
	boom := errors.New("malformed database")

	mock.ExpectQuery("SELECT value FROM sync_state").WillReturnError(boom)

	_, _, err = state.LastCursor(context.Background())
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}
