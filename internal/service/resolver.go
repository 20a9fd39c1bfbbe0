package service

import (
	"context"

	"github.com/MKhiriev/go-mail-sync/models"
)

type conflictResolver struct{}

// NewConflictResolver returns the standard policy-based [ConflictResolver].
// It is stateless and safe for concurrent use.
func NewConflictResolver() ConflictResolver {
	return &conflictResolver{}
}

// Resolve implements [ConflictResolver]. When local changes win the remote
// update is dropped; in every other case the local update is dropped, since
// a local edit that is never pushed would otherwise be silently lost on the
// remote anyway.
func (r *conflictResolver) Resolve(ctx context.Context, cs *models.ChangeSet, policy ConflictPolicy) (ConflictOutcome, error) {
	var outcome ConflictOutcome

	conflicts := cs.Conflicts()
	outcome.Conflicts = len(conflicts)
	if len(conflicts) == 0 {
		return outcome, nil
	}

	localPrevails := policy.LocalWins && policy.PushLocalTags

	for _, id := range conflicts {
		select {
		case <-ctx.Done():
			return outcome, ctx.Err()
		default:
		}

		if localPrevails {
			delete(cs.RemoteUpdated, id)
			outcome.DroppedRemote = append(outcome.DroppedRemote, id)
		} else {
			delete(cs.LocalUpdated, id)
			outcome.DroppedLocal = append(outcome.DroppedLocal, id)
		}
	}

	return outcome, nil
}
