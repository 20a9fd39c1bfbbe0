package models

// ChangeSet captures everything one sync run has to reconcile: tag edits
// made on either side since the last convergence point, messages that exist
// on only one side, and the change cursor to persist if the run completes.
//
// Invariant: a message id appears in at most one of RemoteNew, RemoteUpdated
// and RemoteDeleted. LocalUpdated and RemoteUpdated may overlap: that
// overlap is the conflict set, removed from exactly one side by the
// resolver before the set is applied.
//
// A ChangeSet lives for a single run: built fresh, mutated in place during
// conflict resolution, consumed by application, discarded. Only Cursor
// survives, persisted as the commit point of a successful run.
type ChangeSet struct {
	LocalUpdated  map[MessageID]TagSet
	LocalNew      map[MessageID]struct{}
	RemoteUpdated map[MessageID]TagSet
	RemoteNew     map[MessageID]struct{}
	RemoteDeleted map[MessageID]struct{}
	Cursor        Cursor
}

// NewChangeSet returns an empty ChangeSet with all maps allocated.
func NewChangeSet() *ChangeSet {
	return &ChangeSet{
		LocalUpdated:  make(map[MessageID]TagSet),
		LocalNew:      make(map[MessageID]struct{}),
		RemoteUpdated: make(map[MessageID]TagSet),
		RemoteNew:     make(map[MessageID]struct{}),
		RemoteDeleted: make(map[MessageID]struct{}),
	}
}

// IsEmpty reports whether the set carries no changes in any category.
func (c *ChangeSet) IsEmpty() bool {
	return len(c.LocalUpdated) == 0 &&
		len(c.LocalNew) == 0 &&
		len(c.RemoteUpdated) == 0 &&
		len(c.RemoteNew) == 0 &&
		len(c.RemoteDeleted) == 0
}

// Conflicts returns the ids present in both LocalUpdated and RemoteUpdated,
// i.e. messages whose tags were edited on both sides since the last
// convergence point.
func (c *ChangeSet) Conflicts() []MessageID {
	var out []MessageID
	for id := range c.LocalUpdated {
		if _, ok := c.RemoteUpdated[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// HasConflicts reports whether at least one message was edited on both sides.
func (c *ChangeSet) HasConflicts() bool {
	for id := range c.LocalUpdated {
		if _, ok := c.RemoteUpdated[id]; ok {
			return true
		}
	}
	return false
}

// SetRemoteDiff replaces the remote categories with the contents of diff.
func (c *ChangeSet) SetRemoteDiff(diff RemoteDiff) {
	c.RemoteUpdated = make(map[MessageID]TagSet, len(diff.Updated))
	for id, tags := range diff.Updated {
		c.RemoteUpdated[id] = tags
	}
	c.RemoteNew = make(map[MessageID]struct{}, len(diff.New))
	for id := range diff.New {
		c.RemoteNew[id] = struct{}{}
	}
	c.RemoteDeleted = make(map[MessageID]struct{}, len(diff.Deleted))
	for id := range diff.Deleted {
		c.RemoteDeleted[id] = struct{}{}
	}
}

// MergeRemoteDiff folds a late incremental window into the remote categories
// while keeping the one-category-per-id invariant. Precedence: a deletion
// wins over anything, a new message wins over an update (the content fetch
// for a new message delivers its current tags anyway).
func (c *ChangeSet) MergeRemoteDiff(diff RemoteDiff) {
	for id := range diff.New {
		if _, gone := c.RemoteDeleted[id]; gone {
			continue
		}
		delete(c.RemoteUpdated, id)
		c.RemoteNew[id] = struct{}{}
	}

	for id, tags := range diff.Updated {
		if _, gone := c.RemoteDeleted[id]; gone {
			continue
		}
		if _, fresh := c.RemoteNew[id]; fresh {
			continue
		}
		c.RemoteUpdated[id] = tags
	}

	for id := range diff.Deleted {
		delete(c.RemoteUpdated, id)
		delete(c.RemoteNew, id)
		c.RemoteDeleted[id] = struct{}{}
	}
}
