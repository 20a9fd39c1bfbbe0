// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-mail-sync/internal/adapter"
	"github.com/MKhiriev/go-mail-sync/internal/config"
	"github.com/MKhiriev/go-mail-sync/internal/logger"
	"github.com/MKhiriev/go-mail-sync/internal/mock"
	"github.com/MKhiriev/go-mail-sync/models"
)

type engineMocks struct {
	remote *mock.MockRemoteStore
	local  *mock.MockLocalStore
	state  *mock.MockStateStore
}

func newTestEngine(t *testing.T, cfg config.Sync) (SyncEngine, engineMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := engineMocks{
		remote: mock.NewMockRemoteStore(ctrl),
		local:  mock.NewMockLocalStore(ctrl),
		state:  mock.NewMockStateStore(ctrl),
	}
	if cfg.IndexBatchSize == 0 {
		cfg.IndexBatchSize = 100
	}

	return NewSyncEngine(m.remote, m.local, m.state, cfg, logger.Nop()), m
}

func noLocalChanges(m engineMocks) {
	m.local.EXPECT().ChangesSinceLastSync(gomock.Any()).
		Return(map[models.MessageID]models.TagSet{}, map[models.MessageID]struct{}{}, nil)
}

// ── incremental detection ────────────────────────────────────────────────────

func TestSyncEngine_Run_IncrementalAppliesRemoteChanges(t *testing.T) {
	eng, m := newTestEngine(t, config.Sync{})
	ctx := context.Background()

	m.state.EXPECT().LastCursor(ctx).Return(models.Cursor("c1"), true, nil)
	m.remote.EXPECT().CurrentCursor(ctx).Return(models.Cursor("c2"), nil)
	m.remote.EXPECT().DiffSince(ctx, models.Cursor("c1")).Return(models.RemoteDiff{
		Updated: map[models.MessageID]models.TagSet{"r1": models.NewTagSet("archive")},
		Deleted: map[models.MessageID]struct{}{"gone": {}},
	}, nil)
	noLocalChanges(m)

	m.local.EXPECT().ApplyTags(ctx, map[models.MessageID]models.TagSet{
		"r1": models.NewTagSet("archive"),
	}).Return(nil)
	m.local.EXPECT().Delete(ctx, map[models.MessageID]struct{}{"gone": {}}).Return(nil)
	m.state.EXPECT().SaveCursor(ctx, models.Cursor("c2")).Return(nil)
	m.local.EXPECT().CommitSyncPoint(ctx).Return(nil)

	require.NoError(t, eng.Run(ctx))
}

func TestSyncEngine_Run_EmptyRunStillCommits(t *testing.T) {
	eng, m := newTestEngine(t, config.Sync{})
	ctx := context.Background()

	m.state.EXPECT().LastCursor(ctx).Return(models.Cursor("c1"), true, nil)
	m.remote.EXPECT().CurrentCursor(ctx).Return(models.Cursor("c1"), nil)
	m.remote.EXPECT().DiffSince(ctx, models.Cursor("c1")).Return(models.RemoteDiff{}, nil)
	noLocalChanges(m)

	// no ApplyTags, Fetch, Store, Index, Delete or PushTags: an empty run
	// performs zero mutations, only the commit point moves forward.
	m.state.EXPECT().SaveCursor(ctx, models.Cursor("c1")).Return(nil)
	m.local.EXPECT().CommitSyncPoint(ctx).Return(nil)

	require.NoError(t, eng.Run(ctx))
}

func TestSyncEngine_Run_PushRefreshesCursor(t *testing.T) {
	eng, m := newTestEngine(t, config.Sync{LocalWins: true, PushLocalTags: true})
	ctx := context.Background()

	localEdits := map[models.MessageID]models.TagSet{"l1": models.NewTagSet("flagged")}

	m.state.EXPECT().LastCursor(ctx).Return(models.Cursor("c1"), true, nil)
	m.remote.EXPECT().CurrentCursor(ctx).Return(models.Cursor("c2"), nil)
	m.remote.EXPECT().DiffSince(ctx, models.Cursor("c1")).Return(models.RemoteDiff{}, nil)
	m.local.EXPECT().ChangesSinceLastSync(ctx).
		Return(localEdits, map[models.MessageID]struct{}{}, nil)

	m.remote.EXPECT().PushTags(ctx, localEdits).Return(nil)
	// the push itself advances the remote's change log; the cursor is
	// re-read so the next run does not see the push echoed back.
	m.remote.EXPECT().CurrentCursor(ctx).Return(models.Cursor("c3"), nil)

	m.state.EXPECT().SaveCursor(ctx, models.Cursor("c3")).Return(nil)
	m.local.EXPECT().CommitSyncPoint(ctx).Return(nil)

	require.NoError(t, eng.Run(ctx))
}

func TestSyncEngine_Run_ConflictLocalWins(t *testing.T) {
	eng, m := newTestEngine(t, config.Sync{LocalWins: true, PushLocalTags: true})
	ctx := context.Background()

	localEdits := map[models.MessageID]models.TagSet{"both": models.NewTagSet("local")}

	m.state.EXPECT().LastCursor(ctx).Return(models.Cursor("c1"), true, nil)
	m.remote.EXPECT().CurrentCursor(ctx).Return(models.Cursor("c2"), nil)
	m.remote.EXPECT().DiffSince(ctx, models.Cursor("c1")).Return(models.RemoteDiff{
		Updated: map[models.MessageID]models.TagSet{"both": models.NewTagSet("remote")},
	}, nil)
	m.local.EXPECT().ChangesSinceLastSync(ctx).
		Return(localEdits, map[models.MessageID]struct{}{}, nil)

	// local wins: the remote update is dropped, ApplyTags never happens
	m.remote.EXPECT().PushTags(ctx, localEdits).Return(nil)
	m.remote.EXPECT().CurrentCursor(ctx).Return(models.Cursor("c3"), nil)

	m.state.EXPECT().SaveCursor(ctx, models.Cursor("c3")).Return(nil)
	m.local.EXPECT().CommitSyncPoint(ctx).Return(nil)

	require.NoError(t, eng.Run(ctx))
}

// ── full reconciliation ──────────────────────────────────────────────────────

func TestSyncEngine_Run_FirstRunFullReconciliation(t *testing.T) {
	eng, m := newTestEngine(t, config.Sync{})
	ctx := context.Background()

	// remote has A, B, C; local knows B (with stale tags) and D.
	m.state.EXPECT().LastCursor(ctx).Return(models.Cursor(""), false, nil)
	m.local.EXPECT().ChangesSinceLastSync(ctx).
		Return(map[models.MessageID]models.TagSet{}, map[models.MessageID]struct{}{}, nil)
	m.local.EXPECT().FullSnapshot(ctx).Return(map[models.MessageID]models.TagSet{
		"B": models.NewTagSet("inbox"),
		"D": models.NewTagSet("inbox"),
	}, nil)
	m.remote.EXPECT().CurrentCursor(ctx).Return(models.Cursor("c1"), nil).Times(2)
	m.remote.EXPECT().EnumerateIDs(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(models.IDBatch) error) error {
			return fn(models.IDBatch{Estimate: 1, IDs: []models.MessageID{"A", "B", "C"}})
		})
	m.remote.EXPECT().Fetch(ctx, []models.MessageID{"B"}, models.FetchMetadata, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ []models.MessageID, _ models.FetchFormat, onEach func(models.RemoteMessage) error) error {
			return onEach(models.RemoteMessage{ID: "B", Tags: models.NewTagSet("archive")})
		})

	m.local.EXPECT().ApplyTags(ctx, map[models.MessageID]models.TagSet{
		"B": models.NewTagSet("archive"),
	}).Return(nil)

	var stored []models.MessageID
	m.remote.EXPECT().Fetch(ctx, []models.MessageID{"A", "C"}, models.FetchFull, gomock.Any()).
		DoAndReturn(func(_ context.Context, ids []models.MessageID, _ models.FetchFormat, onEach func(models.RemoteMessage) error) error {
			for _, id := range ids {
				if err := onEach(models.RemoteMessage{ID: id, Tags: models.NewTagSet("inbox"), Raw: []byte("body")}); err != nil {
					return err
				}
			}
			return nil
		})
	m.local.EXPECT().Store(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, msg models.RemoteMessage) (models.Location, error) {
			stored = append(stored, msg.ID)
			return models.Location("loc-" + string(msg.ID)), nil
		}).Times(2)
	m.local.EXPECT().Index(ctx, map[models.Location]models.TagSet{
		"loc-A": models.NewTagSet("inbox"),
		"loc-C": models.NewTagSet("inbox"),
	}).Return(nil)

	m.local.EXPECT().Delete(ctx, map[models.MessageID]struct{}{"D": {}}).Return(nil)
	m.state.EXPECT().SaveCursor(ctx, models.Cursor("c1")).Return(nil)
	m.local.EXPECT().CommitSyncPoint(ctx).Return(nil)

	require.NoError(t, eng.Run(ctx))
	assert.Equal(t, []models.MessageID{"A", "C"}, stored)
}

func TestSyncEngine_Run_StaleCursorFallsBackToFull(t *testing.T) {
	eng, m := newTestEngine(t, config.Sync{})
	ctx := context.Background()

	m.state.EXPECT().LastCursor(ctx).Return(models.Cursor("ancient"), true, nil)
	m.remote.EXPECT().CurrentCursor(ctx).Return(models.Cursor("c5"), nil)
	m.remote.EXPECT().DiffSince(ctx, models.Cursor("ancient")).
		Return(models.RemoteDiff{}, adapter.ErrCursorTooOld)

	// full reconciliation path, empty on both sides
	noLocalChanges(m)
	m.local.EXPECT().FullSnapshot(ctx).Return(map[models.MessageID]models.TagSet{}, nil)
	m.remote.EXPECT().CurrentCursor(ctx).Return(models.Cursor("c5"), nil).Times(2)
	m.remote.EXPECT().EnumerateIDs(ctx, gomock.Any()).Return(nil)

	m.state.EXPECT().SaveCursor(ctx, models.Cursor("c5")).Return(nil)
	m.local.EXPECT().CommitSyncPoint(ctx).Return(nil)

	require.NoError(t, eng.Run(ctx))
}

func TestSyncEngine_Run_FullReconciliationMergesLateWindow(t *testing.T) {
	eng, m := newTestEngine(t, config.Sync{})
	ctx := context.Background()

	m.state.EXPECT().LastCursor(ctx).Return(models.Cursor(""), false, nil)
	noLocalChanges(m)
	m.local.EXPECT().FullSnapshot(ctx).Return(map[models.MessageID]models.TagSet{}, nil)

	// cursor moves from c1 to c2 while enumeration runs; the missed window
	// deletes the message that enumeration had just reported as new.
	gomock.InOrder(
		m.remote.EXPECT().CurrentCursor(ctx).Return(models.Cursor("c1"), nil),
		m.remote.EXPECT().CurrentCursor(ctx).Return(models.Cursor("c2"), nil),
	)
	m.remote.EXPECT().EnumerateIDs(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(models.IDBatch) error) error {
			return fn(models.IDBatch{Estimate: 1, IDs: []models.MessageID{"N1"}})
		})
	m.remote.EXPECT().DiffSince(ctx, models.Cursor("c1")).Return(models.RemoteDiff{
		Deleted: map[models.MessageID]struct{}{"N1": {}},
	}, nil)

	// after the merge N1 is a deletion, not a fetch
	m.local.EXPECT().Delete(ctx, map[models.MessageID]struct{}{"N1": {}}).Return(nil)
	m.state.EXPECT().SaveCursor(ctx, models.Cursor("c2")).Return(nil)
	m.local.EXPECT().CommitSyncPoint(ctx).Return(nil)

	require.NoError(t, eng.Run(ctx))
}

// ── batching and failure handling ────────────────────────────────────────────

func TestSyncEngine_Run_IndexBatchesWithRemainderFlush(t *testing.T) {
	eng, m := newTestEngine(t, config.Sync{IndexBatchSize: 2})
	ctx := context.Background()

	newIDs := map[models.MessageID]struct{}{
		"m1": {}, "m2": {}, "m3": {}, "m4": {}, "m5": {},
	}

	m.state.EXPECT().LastCursor(ctx).Return(models.Cursor("c1"), true, nil)
	m.remote.EXPECT().CurrentCursor(ctx).Return(models.Cursor("c2"), nil)
	m.remote.EXPECT().DiffSince(ctx, models.Cursor("c1")).
		Return(models.RemoteDiff{New: newIDs}, nil)
	noLocalChanges(m)

	m.remote.EXPECT().Fetch(ctx, gomock.Any(), models.FetchFull, gomock.Any()).
		DoAndReturn(func(_ context.Context, ids []models.MessageID, _ models.FetchFormat, onEach func(models.RemoteMessage) error) error {
			for _, id := range ids {
				if err := onEach(models.RemoteMessage{ID: id, Raw: []byte("x")}); err != nil {
					return err
				}
			}
			return nil
		})
	m.local.EXPECT().Store(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, msg models.RemoteMessage) (models.Location, error) {
			return models.Location(string(msg.ID)), nil
		}).Times(5)

	var batchSizes []int
	m.local.EXPECT().Index(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, batch map[models.Location]models.TagSet) error {
			batchSizes = append(batchSizes, len(batch))
			return nil
		}).Times(3)

	m.state.EXPECT().SaveCursor(ctx, models.Cursor("c2")).Return(nil)
	m.local.EXPECT().CommitSyncPoint(ctx).Return(nil)

	require.NoError(t, eng.Run(ctx))
	assert.Equal(t, []int{2, 2, 1}, batchSizes)
}

func TestSyncEngine_Run_FailureSkipsCommit(t *testing.T) {
	eng, m := newTestEngine(t, config.Sync{})
	ctx := context.Background()
	boom := errors.New("disk full")

	m.state.EXPECT().LastCursor(ctx).Return(models.Cursor("c1"), true, nil)
	m.remote.EXPECT().CurrentCursor(ctx).Return(models.Cursor("c2"), nil)
	m.remote.EXPECT().DiffSince(ctx, models.Cursor("c1")).Return(models.RemoteDiff{
		Updated: map[models.MessageID]models.TagSet{"r1": models.NewTagSet("x")},
	}, nil)
	noLocalChanges(m)

	// neither SaveCursor nor CommitSyncPoint may run after a failed apply
	m.local.EXPECT().ApplyTags(ctx, gomock.Any()).Return(boom)

	err := eng.Run(ctx)
	require.ErrorIs(t, err, boom)
}

func TestSyncEngine_Run_TransportErrorIsFatal(t *testing.T) {
	eng, m := newTestEngine(t, config.Sync{})
	ctx := context.Background()
	boom := errors.New("connection refused")

	m.state.EXPECT().LastCursor(ctx).Return(models.Cursor("c1"), true, nil)
	m.remote.EXPECT().CurrentCursor(ctx).Return(models.Cursor(""), boom)

	// a transport failure must not trigger full reconciliation
	err := eng.Run(ctx)
	require.ErrorIs(t, err, boom)
}
