package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/emersion/go-message"
	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/MKhiriev/go-mail-sync/internal/logger"
	"github.com/MKhiriev/go-mail-sync/models"
)

type mailboxStore struct {
	*DB
	maildir string
	logger  *logger.Logger
}

// NewMailboxStore returns a [LocalStore] backed by db and storing raw
// message files under maildir. The directory is created on first use with
// owner-only permissions.
func NewMailboxStore(db *DB, maildir string, log *logger.Logger) (LocalStore, error) {
	if err := os.MkdirAll(maildir, 0o700); err != nil {
		return nil, fmt.Errorf("create maildir: %w", err)
	}

	return &mailboxStore{DB: db, maildir: maildir, logger: log}, nil
}

// ChangesSinceLastSync implements [LocalStore]. A message counts as locally
// updated when its current tags diverge from the tags recorded at the last
// committed sync point; messages created locally and never synced are
// reported separately.
func (m *mailboxStore) ChangesSinceLastSync(ctx context.Context) (map[models.MessageID]models.TagSet, map[models.MessageID]struct{}, error) {
	updated, err := m.queryTagRows(ctx, getLocalUpdatedTags)
	if err != nil {
		return nil, nil, fmt.Errorf("query local updated tags: %w", err)
	}

	rows, err := m.QueryContext(ctx, getLocalNewIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("query local new ids: %w", err)
	}
	defer rows.Close()

	newIDs := make(map[models.MessageID]struct{})
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, nil, fmt.Errorf("scan local new id: %w", err)
		}
		newIDs[models.MessageID(id)] = struct{}{}
	}
	if err = rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate local new ids: %w", err)
	}

	return updated, newIDs, nil
}

// FullSnapshot implements [LocalStore].
func (m *mailboxStore) FullSnapshot(ctx context.Context) (map[models.MessageID]models.TagSet, error) {
	snapshot, err := m.queryTagRows(ctx, getFullSnapshot)
	if err != nil {
		return nil, fmt.Errorf("query full snapshot: %w", err)
	}
	return snapshot, nil
}

// Store implements [LocalStore]. The raw content is written to a fresh
// owner-only file under the maildir; a previous copy of the same message
// (from an interrupted run) is replaced and its file removed.
func (m *mailboxStore) Store(ctx context.Context, msg models.RemoteMessage) (models.Location, error) {
	path := filepath.Join(m.maildir, uuid.NewString()+".eml")
	if err := os.WriteFile(path, msg.Raw, 0o600); err != nil {
		return "", fmt.Errorf("write message file: %w", err)
	}

	var previous string
	err := m.QueryRowContext(ctx, getMessageLocation, string(msg.ID)).Scan(&previous)
	if err != nil && err != sql.ErrNoRows {
		return "", fmt.Errorf("query previous location: %w", err)
	}

	sum := blake2b.Sum256(msg.Raw)
	_, err = m.ExecContext(ctx, upsertStoredMessage,
		string(msg.ID),
		path,
		hex.EncodeToString(sum[:]),
		int64(len(msg.Raw)),
		marshalTags(msg.Tags),
		time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("record stored message %s: %w", msg.ID, err)
	}

	if previous != "" && previous != path {
		if err = os.Remove(previous); err != nil && !os.IsNotExist(err) {
			m.logger.Warn().Err(err).Str("location", previous).Msg("failed to remove replaced message file")
		}
	}

	return models.Location(path), nil
}

// Index implements [LocalStore]. Header fields are parsed out of the stored
// file so the index row can be searched without touching the file again; the
// given tags are recorded as both current and synced.
func (m *mailboxStore) Index(ctx context.Context, batch map[models.Location]models.TagSet) error {
	tx, err := m.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for location, tags := range batch {
		hdr := parseHeaders(string(location))
		tagsJSON := marshalTags(tags)

		query, args, err := sq.Update("messages").
			Set("subject", hdr.subject).
			Set("rfc_message_id", hdr.messageID).
			Set("sent_at", hdr.date).
			Set("tags", tagsJSON).
			Set("synced_tags", tagsJSON).
			Set("indexed", 1).
			Where(sq.Eq{"location": string(location)}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("index message at %s: %w", location, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("%w: %s", ErrLocationNotFound, location)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// ApplyTags implements [LocalStore]. Ids unknown to the index are skipped:
// the remote may report updates for messages this mailbox never fetched
// (e.g. excluded folders).
func (m *mailboxStore) ApplyTags(ctx context.Context, changes map[models.MessageID]models.TagSet) error {
	tx, err := m.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for id, tags := range changes {
		tagsJSON := marshalTags(tags)

		query, args, err := sq.Update("messages").
			Set("tags", tagsJSON).
			Set("synced_tags", tagsJSON).
			Where(sq.Eq{"id": string(id)}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("apply tags to %s: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			m.logger.Debug().Str("id", string(id)).Msg("skipping tag update for unknown message")
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// Delete implements [LocalStore]. Rows are removed first; files are removed
// after the transaction commits, so a crash in between leaves only orphaned
// files, never dangling index rows.
func (m *mailboxStore) Delete(ctx context.Context, ids map[models.MessageID]struct{}) error {
	if len(ids) == 0 {
		return nil
	}

	idList := make([]string, 0, len(ids))
	for id := range ids {
		idList = append(idList, string(id))
	}

	query, args, err := sq.Select("location").
		From("messages").
		Where(sq.Eq{"id": idList}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := m.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query locations to delete: %w", err)
	}
	var locations []string
	for rows.Next() {
		var loc string
		if err = rows.Scan(&loc); err != nil {
			rows.Close()
			return fmt.Errorf("scan location to delete: %w", err)
		}
		locations = append(locations, loc)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return fmt.Errorf("iterate locations to delete: %w", err)
	}

	query, args, err = sq.Delete("messages").
		Where(sq.Eq{"id": idList}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	if _, err = m.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete messages: %w", err)
	}

	for _, loc := range locations {
		if err = os.Remove(loc); err != nil && !os.IsNotExist(err) {
			m.logger.Warn().Err(err).Str("location", loc).Msg("failed to remove deleted message file")
		}
	}

	return nil
}

// CommitSyncPoint implements [LocalStore].
func (m *mailboxStore) CommitSyncPoint(ctx context.Context) error {
	if _, err := m.ExecContext(ctx, commitSyncPoint); err != nil {
		return fmt.Errorf("commit sync point: %w", err)
	}
	return nil
}

// AddLocalMessage records a message created on this side (e.g. a draft
// dropped into the mailbox by another program). It is not part of
// [LocalStore]; the engine only ever observes such messages through
// ChangesSinceLastSync.
func (m *mailboxStore) AddLocalMessage(ctx context.Context, id models.MessageID, tags models.TagSet) error {
	location := filepath.Join(m.maildir, uuid.NewString()+".eml")
	_, err := m.ExecContext(ctx, insertLocalMessage,
		string(id), location, marshalTags(tags), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("add local message %s: %w", id, err)
	}
	return nil
}

// UpdateLocalTags records a local tag edit: only the current tags move, the
// synced copy stays put, so the edit shows up in ChangesSinceLastSync.
func (m *mailboxStore) UpdateLocalTags(ctx context.Context, id models.MessageID, tags models.TagSet) error {
	query, args, err := sq.Update("messages").
		Set("tags", marshalTags(tags)).
		Where(sq.Eq{"id": string(id)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := m.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update local tags for %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrMessageNotFound, id)
	}

	return nil
}

func (m *mailboxStore) queryTagRows(ctx context.Context, query string) (map[models.MessageID]models.TagSet, error) {
	rows, err := m.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[models.MessageID]models.TagSet)
	for rows.Next() {
		var id, tagsJSON string
		if err = rows.Scan(&id, &tagsJSON); err != nil {
			return nil, err
		}
		out[models.MessageID(id)] = unmarshalTags(tagsJSON)
	}
	return out, rows.Err()
}

func marshalTags(tags models.TagSet) string {
	if tags == nil {
		tags = models.TagSet{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func unmarshalTags(data string) models.TagSet {
	var tags []string
	if err := json.Unmarshal([]byte(data), &tags); err != nil {
		return models.TagSet{}
	}
	return models.NewTagSet(tags...)
}

type headerFields struct {
	subject   string
	messageID string
	date      string
}

// parseHeaders extracts the few header fields the index records. Parsing is
// best effort: an unreadable or malformed message still gets indexed, just
// with empty header columns.
func parseHeaders(path string) headerFields {
	var h headerFields

	data, err := os.ReadFile(path)
	if err != nil {
		return h
	}

	entity, err := message.Read(bytes.NewReader(data))
	if err != nil && !message.IsUnknownCharset(err) {
		return h
	}
	if entity == nil {
		return h
	}

	h.subject = entity.Header.Get("Subject")
	h.messageID = entity.Header.Get("Message-Id")
	h.date = entity.Header.Get("Date")
	return h
}
