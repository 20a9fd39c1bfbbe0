// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/MKhiriev/go-mail-sync/internal/adapter"
	"github.com/MKhiriev/go-mail-sync/internal/config"
	"github.com/MKhiriev/go-mail-sync/internal/logger"
	"github.com/MKhiriev/go-mail-sync/internal/store"
	"github.com/MKhiriev/go-mail-sync/models"
)

type syncEngine struct {
	remote   adapter.RemoteStore
	local    store.LocalStore
	state    store.StateStore
	resolver ConflictResolver
	cfg      config.Sync
	logger   *logger.Logger
}

// NewSyncEngine wires a [SyncEngine] over the given stores. cfg carries the
// conflict policy and the indexing batch size.
func NewSyncEngine(remote adapter.RemoteStore, local store.LocalStore, state store.StateStore, cfg config.Sync, log *logger.Logger) SyncEngine {
	if log == nil {
		log = logger.Nop()
	}
	return &syncEngine{
		remote:   remote,
		local:    local,
		state:    state,
		resolver: NewConflictResolver(),
		cfg:      cfg,
		logger:   log,
	}
}

// Run implements [SyncEngine]. The cursor and the sync point are persisted
// last: any earlier failure leaves them untouched, so the next run re-detects
// and re-applies the same window. Every application step is idempotent, which
// makes the retry safe.
func (e *syncEngine) Run(ctx context.Context) error {
	cs, err := e.detectChanges(ctx)
	if err != nil {
		return err
	}

	if cs.IsEmpty() {
		e.logger.Info().Msg("no changes, mailbox is up to date")
	}

	if len(cs.LocalUpdated) > 0 || len(cs.RemoteUpdated) > 0 {
		if err = e.mergeTags(ctx, cs); err != nil {
			return err
		}
	}

	if len(cs.RemoteNew) > 0 {
		if err = e.fetchNewMessages(ctx, cs); err != nil {
			return err
		}
	}

	if len(cs.RemoteDeleted) > 0 {
		e.logger.Info().Int("count", len(cs.RemoteDeleted)).Msg("removing messages deleted on remote")
		if err = e.local.Delete(ctx, cs.RemoteDeleted); err != nil {
			return err
		}
	}

	if err = e.state.SaveCursor(ctx, cs.Cursor); err != nil {
		return err
	}
	if err = e.local.CommitSyncPoint(ctx); err != nil {
		return err
	}

	e.logger.Debug().Str("cursor", cs.Cursor.String()).Msg("sync point committed")
	return nil
}

// progress is an explicit counter threaded through batched callbacks instead
// of loose captured variables, so each step can report "n of total".
type progress struct {
	done  int
	total int
}

func (p *progress) step() int {
	p.done++
	return p.done
}

// incrementalOutcome is the explicit result of an incremental detection
// attempt: either a usable ChangeSet or a signal that the cursor is missing
// or expired and a full reconciliation is required. A transport or storage
// failure is an error, not a fallback trigger.
type incrementalOutcome struct {
	changes     *models.ChangeSet
	cursorStale bool
}

func (e *syncEngine) detectChanges(ctx context.Context) (*models.ChangeSet, error) {
	out, err := e.detectIncremental(ctx)
	if err != nil {
		return nil, err
	}
	if !out.cursorStale {
		return out.changes, nil
	}

	e.logger.Info().Msg("change cursor unusable, full reconciliation required")
	return e.detectFull(ctx)
}

func (e *syncEngine) detectIncremental(ctx context.Context) (incrementalOutcome, error) {
	last, ok, err := e.state.LastCursor(ctx)
	if err != nil {
		return incrementalOutcome{}, fmt.Errorf("load last cursor: %w", err)
	}
	if !ok {
		e.logger.Info().Msg("no change cursor recorded yet")
		return incrementalOutcome{cursorStale: true}, nil
	}

	current, err := e.remote.CurrentCursor(ctx)
	if err != nil {
		return incrementalOutcome{}, fmt.Errorf("fetch current cursor: %w", err)
	}

	e.logger.Info().Str("since", last.String()).Msg("fetching remote changes")
	diff, err := e.remote.DiffSince(ctx, last)
	if errors.Is(err, adapter.ErrCursorTooOld) {
		e.logger.Warn().Str("cursor", last.String()).Msg("remote no longer serves this cursor")
		return incrementalOutcome{cursorStale: true}, nil
	}
	if err != nil {
		return incrementalOutcome{}, fmt.Errorf("fetch remote diff: %w", err)
	}

	e.logger.Info().Msg("detecting local changes")
	updated, newIDs, err := e.local.ChangesSinceLastSync(ctx)
	if err != nil {
		return incrementalOutcome{}, fmt.Errorf("detect local changes: %w", err)
	}

	cs := models.NewChangeSet()
	cs.LocalUpdated = updated
	cs.LocalNew = newIDs
	cs.SetRemoteDiff(diff)
	cs.Cursor = current

	e.logChangeCounts(cs)
	return incrementalOutcome{changes: cs}, nil
}

// detectFull reconciles by enumeration: every remote id is compared against
// the full local snapshot. Enumeration and tag comparison take long on large
// mailboxes, so the cursor is sampled before the work starts and any window
// that opened while it ran is folded in at the end.
func (e *syncEngine) detectFull(ctx context.Context) (*models.ChangeSet, error) {
	updated, newIDs, err := e.local.ChangesSinceLastSync(ctx)
	if err != nil {
		return nil, fmt.Errorf("detect local changes: %w", err)
	}

	snapshot, err := e.local.FullSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load local snapshot: %w", err)
	}

	startCursor, err := e.remote.CurrentCursor(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch current cursor: %w", err)
	}

	cs := models.NewChangeSet()
	cs.LocalUpdated = updated
	cs.LocalNew = newIDs

	e.logger.Info().Msg("enumerating all remote message ids")
	remoteIDs := make(map[models.MessageID]struct{}, len(snapshot))
	batchNo := 0
	err = e.remote.EnumerateIDs(ctx, func(batch models.IDBatch) error {
		batchNo++
		newInBatch := 0
		for _, id := range batch.IDs {
			remoteIDs[id] = struct{}{}
			if _, known := snapshot[id]; !known {
				cs.RemoteNew[id] = struct{}{}
				newInBatch++
			}
		}
		e.logger.Info().
			Int("batch", batchNo).
			Int("of", batch.Estimate).
			Int("ids", len(batch.IDs)).
			Int("new", newInBatch).
			Msg("enumerated remote id batch")
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("enumerate remote ids: %w", err)
	}

	shared := make([]models.MessageID, 0, len(snapshot))
	for id := range snapshot {
		if _, present := remoteIDs[id]; present {
			shared = append(shared, id)
		} else {
			cs.RemoteDeleted[id] = struct{}{}
		}
	}
	sort.Slice(shared, func(i, j int) bool { return shared[i] < shared[j] })

	if len(shared) > 0 {
		e.logger.Info().Int("count", len(shared)).Msg("comparing remote tags for known messages")
		compared := &progress{total: len(shared)}
		err = e.remote.Fetch(ctx, shared, models.FetchMetadata, func(msg models.RemoteMessage) error {
			n := compared.step()
			if snapshot[msg.ID].Equal(msg.Tags) {
				return nil
			}
			cs.RemoteUpdated[msg.ID] = msg.Tags
			e.logger.Debug().
				Int("done", n).
				Int("of", compared.total).
				Str("id", string(msg.ID)).
				Str("tags", msg.Tags.String()).
				Msg("remote tags changed")
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("compare remote tags: %w", err)
		}
	}

	endCursor, err := e.remote.CurrentCursor(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch current cursor: %w", err)
	}
	if endCursor != startCursor {
		e.logger.Info().Msg("remote changed during reconciliation, merging the missed window")
		diff, err := e.remote.DiffSince(ctx, startCursor)
		if err != nil {
			return nil, fmt.Errorf("fetch reconciliation window: %w", err)
		}
		cs.MergeRemoteDiff(diff)
	}
	cs.Cursor = endCursor

	e.logChangeCounts(cs)
	return cs, nil
}

// mergeTags resolves conflicts and applies the surviving tag edits to both
// sides. After a successful push the cursor is re-read so the next
// incremental run does not see our own push echoed back as a remote change.
func (e *syncEngine) mergeTags(ctx context.Context, cs *models.ChangeSet) error {
	outcome, err := e.resolver.Resolve(ctx, cs, ConflictPolicy{
		LocalWins:     e.cfg.LocalWins,
		PushLocalTags: e.cfg.PushLocalTags,
	})
	if err != nil {
		return fmt.Errorf("resolve conflicts: %w", err)
	}
	if outcome.Conflicts > 0 {
		e.logger.Info().
			Int("conflicts", outcome.Conflicts).
			Int("dropped_local", len(outcome.DroppedLocal)).
			Int("dropped_remote", len(outcome.DroppedRemote)).
			Msg("resolved conflicting tag edits")
	}

	if e.cfg.PushLocalTags && len(cs.LocalUpdated) > 0 {
		e.logger.Info().Int("count", len(cs.LocalUpdated)).Msg("pushing local tag changes to remote")
		if err = e.remote.PushTags(ctx, cs.LocalUpdated); err != nil {
			return fmt.Errorf("push local tags: %w", err)
		}

		fresh, err := e.remote.CurrentCursor(ctx)
		if err != nil {
			return fmt.Errorf("refresh cursor after push: %w", err)
		}
		cs.Cursor = fresh
	}

	if len(cs.RemoteUpdated) > 0 {
		e.logger.Info().Int("count", len(cs.RemoteUpdated)).Msg("applying remote tag changes")
		if err = e.local.ApplyTags(ctx, cs.RemoteUpdated); err != nil {
			return fmt.Errorf("apply remote tags: %w", err)
		}
	}

	return nil
}

// fetchNewMessages downloads full content for every remote-only message and
// indexes in batches of cfg.IndexBatchSize, flushing the remainder at the
// end. Stored-but-unindexed messages from an interrupted run are re-fetched
// next time, the upsert makes that harmless.
func (e *syncEngine) fetchNewMessages(ctx context.Context, cs *models.ChangeSet) error {
	ids := make([]models.MessageID, 0, len(cs.RemoteNew))
	for id := range cs.RemoteNew {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	e.logger.Info().Int("count", len(ids)).Msg("fetching new messages from remote")

	pending := make(map[models.Location]models.TagSet, e.cfg.IndexBatchSize)
	fetched := &progress{total: len(ids)}
	err := e.remote.Fetch(ctx, ids, models.FetchFull, func(msg models.RemoteMessage) error {
		location, err := e.local.Store(ctx, msg)
		if err != nil {
			return err
		}

		e.logger.Info().
			Int("done", fetched.step()).
			Int("of", fetched.total).
			Str("id", string(msg.ID)).
			Str("size", models.HumanSize(int64(len(msg.Raw)))).
			Msg("stored message")

		pending[location] = msg.Tags
		if len(pending) >= e.cfg.IndexBatchSize {
			if err = e.flushIndex(ctx, pending); err != nil {
				return err
			}
			pending = make(map[models.Location]models.TagSet, e.cfg.IndexBatchSize)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("fetch new messages: %w", err)
	}

	if len(pending) > 0 {
		if err = e.flushIndex(ctx, pending); err != nil {
			return err
		}
	}

	return nil
}

func (e *syncEngine) flushIndex(ctx context.Context, batch map[models.Location]models.TagSet) error {
	e.logger.Info().Int("count", len(batch)).Msg("updating index with new messages")
	if err := e.local.Index(ctx, batch); err != nil {
		return fmt.Errorf("index new messages: %w", err)
	}
	return nil
}

func (e *syncEngine) logChangeCounts(cs *models.ChangeSet) {
	e.logger.Info().
		Int("local_updated", len(cs.LocalUpdated)).
		Int("local_new", len(cs.LocalNew)).
		Int("remote_updated", len(cs.RemoteUpdated)).
		Int("remote_new", len(cs.RemoteNew)).
		Int("remote_deleted", len(cs.RemoteDeleted)).
		Msg("change detection finished")
}
