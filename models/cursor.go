package models

// Cursor is the opaque, monotonically non-decreasing token issued by the
// remote store that marks a point in its change history. The engine never
// parses or orders cursors; it only stores them, hands them back to the
// remote store, and compares them for equality. Because the remote
// guarantees monotonic non-decrease, inequality with an earlier value means
// the cursor has advanced.
type Cursor string

// IsZero reports whether no cursor has been recorded yet (first run).
func (c Cursor) IsZero() bool {
	return c == ""
}

func (c Cursor) String() string {
	return string(c)
}
