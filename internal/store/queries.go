// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	upsertStoredMessage = `
		INSERT INTO messages (
			id,
			location,
			checksum,
			size,
			origin,
			tags,
			synced_tags,
			indexed,
			stored_at
		) VALUES (?, ?, ?, ?, 'remote', ?, NULL, 0, ?)
		ON CONFLICT (id) DO UPDATE SET
			location    = excluded.location,
			checksum    = excluded.checksum,
			size        = excluded.size,
			tags        = excluded.tags,
			synced_tags = NULL,
			indexed     = 0,
			stored_at   = excluded.stored_at;`

	getMessageLocation = `
		SELECT location FROM messages WHERE id = ?;`

	getLocalUpdatedTags = `
		SELECT id, tags
		FROM messages
		WHERE indexed = 1
		  AND synced_tags IS NOT NULL
		  AND tags != synced_tags;`

	getLocalNewIDs = `
		SELECT id
		FROM messages
		WHERE origin = 'local'
		  AND synced_tags IS NULL;`

	getFullSnapshot = `
		SELECT id, tags FROM messages WHERE indexed = 1;`

	commitSyncPoint = `
		UPDATE messages
		SET synced_tags = tags
		WHERE origin = 'remote' AND indexed = 1;`

	insertLocalMessage = `
		INSERT INTO messages (
			id, location, origin, tags, synced_tags, indexed, stored_at
		) VALUES (?, ?, 'local', ?, NULL, 1, ?);`

	saveSyncState = `
		INSERT INTO sync_state (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			value      = excluded.value,
			updated_at = excluded.updated_at;`

	getSyncState = `
		SELECT value FROM sync_state WHERE key = ?;`
)
