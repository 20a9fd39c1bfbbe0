package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-mail-sync/models"
)

func conflictingChangeSet() *models.ChangeSet {
	cs := models.NewChangeSet()
	cs.LocalUpdated["both"] = models.NewTagSet("local")
	cs.LocalUpdated["local-only"] = models.NewTagSet("local")
	cs.RemoteUpdated["both"] = models.NewTagSet("remote")
	cs.RemoteUpdated["remote-only"] = models.NewTagSet("remote")
	return cs
}

func TestConflictResolver_PolicyMatrix(t *testing.T) {
	tests := []struct {
		name       string
		policy     ConflictPolicy
		localWins  bool // expected winner for the "both" id
	}{
		{
			name:      "local wins and push enabled keeps local",
			policy:    ConflictPolicy{LocalWins: true, PushLocalTags: true},
			localWins: true,
		},
		{
			name:      "local wins without push cannot prevail",
			policy:    ConflictPolicy{LocalWins: true, PushLocalTags: false},
			localWins: false,
		},
		{
			name:      "remote wins with push enabled",
			policy:    ConflictPolicy{LocalWins: false, PushLocalTags: true},
			localWins: false,
		},
		{
			name:      "remote wins without push",
			policy:    ConflictPolicy{LocalWins: false, PushLocalTags: false},
			localWins: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := conflictingChangeSet()

			outcome, err := NewConflictResolver().Resolve(context.Background(), cs, tt.policy)
			require.NoError(t, err)

			assert.Equal(t, 1, outcome.Conflicts)
			assert.Empty(t, cs.Conflicts(), "no conflict may survive resolution")

			if tt.localWins {
				assert.Contains(t, cs.LocalUpdated, models.MessageID("both"))
				assert.NotContains(t, cs.RemoteUpdated, models.MessageID("both"))
				assert.Equal(t, []models.MessageID{"both"}, outcome.DroppedRemote)
				assert.Empty(t, outcome.DroppedLocal)
			} else {
				assert.NotContains(t, cs.LocalUpdated, models.MessageID("both"))
				assert.Contains(t, cs.RemoteUpdated, models.MessageID("both"))
				assert.Equal(t, []models.MessageID{"both"}, outcome.DroppedLocal)
				assert.Empty(t, outcome.DroppedRemote)
			}

			// non-conflicting entries are never touched
			assert.Contains(t, cs.LocalUpdated, models.MessageID("local-only"))
			assert.Contains(t, cs.RemoteUpdated, models.MessageID("remote-only"))
		})
	}
}

func TestConflictResolver_NoConflicts(t *testing.T) {
	cs := models.NewChangeSet()
	cs.LocalUpdated["a"] = models.NewTagSet("x")
	cs.RemoteUpdated["b"] = models.NewTagSet("y")

	outcome, err := NewConflictResolver().Resolve(context.Background(), cs, ConflictPolicy{LocalWins: true, PushLocalTags: true})
	require.NoError(t, err)

	assert.Zero(t, outcome.Conflicts)
	assert.Len(t, cs.LocalUpdated, 1)
	assert.Len(t, cs.RemoteUpdated, 1)
}

func TestConflictResolver_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cs := conflictingChangeSet()
	_, err := NewConflictResolver().Resolve(ctx, cs, ConflictPolicy{})
	require.ErrorIs(t, err, context.Canceled)
}
