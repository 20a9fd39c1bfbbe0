// Package service contains the synchronization engine and the conflict
// resolution policy that keep the remote mail service and the local mailbox
// converged.
package service

import (
	"context"

	"github.com/MKhiriev/go-mail-sync/models"
)

// ConflictPolicy carries the two independent switches that decide which side
// of a tag conflict prevails. The engine has no access to true edit
// timestamps from either store, so policy substitutes for clock ordering.
type ConflictPolicy struct {
	// LocalWins keeps the local tag set when a message was edited on both
	// sides. Only effective while PushLocalTags is enabled: a change that
	// cannot be pushed can never prevail.
	LocalWins bool

	// PushLocalTags is the master switch for propagating local tag edits to
	// the remote store.
	PushLocalTags bool
}

// ConflictOutcome summarises a resolution pass for logging and inspection.
type ConflictOutcome struct {
	// Conflicts is the number of message ids that were edited on both
	// sides.
	Conflicts int

	// DroppedLocal and DroppedRemote list the conflicting ids whose entries
	// were removed from LocalUpdated and RemoteUpdated respectively.
	// Exactly one of the two is non-empty for any given resolution.
	DroppedLocal  []models.MessageID
	DroppedRemote []models.MessageID
}

// ConflictResolver reconciles overlapping local and remote tag edits inside
// a ChangeSet according to policy. The set is mutated in place: every
// conflicting id keeps its update on exactly one side.
type ConflictResolver interface {
	// Resolve removes the losing side of every conflict from cs. ctx
	// cancellation is checked while iterating so callers can abort early on
	// large conflict sets.
	Resolve(ctx context.Context, cs *models.ChangeSet, policy ConflictPolicy) (ConflictOutcome, error)
}

// SyncEngine runs one full convergence pass: change detection (incremental
// when a usable cursor exists, full reconciliation otherwise), conflict
// resolution, application of the resulting changes to both stores, and,
// only after everything else succeeded, persistence of the new cursor.
type SyncEngine interface {
	Run(ctx context.Context) error
}
