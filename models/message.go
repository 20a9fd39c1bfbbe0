package models

import (
	"fmt"
	"sort"
	"strings"
)

// MessageID is the opaque, globally unique identifier a message carries on
// the remote store. It is stable across tag changes and serves as the join
// key between local and remote records. A message is never renamed.
type MessageID string

// Location is the opaque token returned by the local store when a message
// body has been written to disk. It is only meaningful to the local store
// and is passed back verbatim when indexing a stored batch.
type Location string

// TagSet is an unordered set of string labels attached to a message,
// normalized to a sorted, deduplicated slice so that two sets with the same
// members compare equal element-wise.
type TagSet []string

// NewTagSet builds a normalized TagSet from the given labels. Empty labels
// are discarded, duplicates collapse, and the result is sorted.
func NewTagSet(tags ...string) TagSet {
	seen := make(map[string]struct{}, len(tags))
	out := make(TagSet, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether both sets contain exactly the same labels.
func (t TagSet) Equal(other TagSet) bool {
	if len(t) != len(other) {
		return false
	}
	for i := range t {
		if t[i] != other[i] {
			return false
		}
	}
	return true
}

func (t TagSet) String() string {
	return "[" + strings.Join(t, " ") + "]"
}

// FetchFormat controls how much of a message the remote store returns.
type FetchFormat string

const (
	// FetchFull returns the raw message content together with its tags.
	FetchFull FetchFormat = "full"

	// FetchMetadata returns only the tags and size, no content. Used during
	// full reconciliation where fetching bodies per message would dominate
	// the cost of the run.
	FetchMetadata FetchFormat = "metadata"
)

// RemoteMessage is a single message as delivered by the remote store's
// batched fetch. Raw is empty when the fetch format is FetchMetadata.
type RemoteMessage struct {
	ID           MessageID `json:"id"`
	Tags         TagSet    `json:"tags"`
	SizeEstimate int64     `json:"size_estimate"`
	Raw          []byte    `json:"raw,omitempty"`
}

// IDBatch is one page of the remote store's full id enumeration. Estimate is
// the remote's guess at the total page count and is used purely for progress
// reporting; the enumeration ends when the remote has no more pages, not
// when the estimate is reached.
type IDBatch struct {
	Estimate int
	IDs      []MessageID
}

// RemoteDiff is the remote store's incremental change report since a given
// cursor.
type RemoteDiff struct {
	Updated map[MessageID]TagSet
	New     map[MessageID]struct{}
	Deleted map[MessageID]struct{}
}

// IsEmpty reports whether the diff carries no changes at all.
func (d RemoteDiff) IsEmpty() bool {
	return len(d.Updated) == 0 && len(d.New) == 0 && len(d.Deleted) == 0
}

// HumanSize renders a byte count in a compact decimal form ("842", "1.2K",
// "3.4M") for log output.
func HumanSize(size int64) string {
	const units = "KMGTPE"
	if size < 1000 {
		return fmt.Sprintf("%d", size)
	}
	v := float64(size)
	u := -1
	for v >= 1000 && u < len(units)-1 {
		v /= 1000
		u++
	}
	return fmt.Sprintf("%.1f%c", v, units[u])
}
