// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating
// with the remote mail service.
//
// The primary abstraction is [RemoteStore], which decouples the sync engine
// from the wire protocol. The package ships an HTTP/REST implementation
// ([NewHTTPRemoteStore]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrCursorTooOld] for 410, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-mail-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_store_mock.go -package=mock

// RemoteStore defines transport-agnostic access to the remote mail service's
// change tracking, message content, and tag application. Implementations are
// responsible for serialisation, authentication header management, and
// mapping transport-level errors to the sentinel values defined in this
// package.
type RemoteStore interface {
	// CurrentCursor returns the remote store's current change cursor. It is
	// side-effect free and always succeeds while the client is
	// authenticated.
	CurrentCursor(ctx context.Context) (models.Cursor, error)

	// DiffSince returns every change the remote recorded after cursor:
	// messages whose tags changed, messages created, and messages deleted.
	// Returns [ErrCursorTooOld] (wrapped) when the remote can no longer
	// compute a diff from that cursor; the caller is expected to fall back
	// to full reconciliation. Any other error is fatal to the run.
	DiffSince(ctx context.Context, cursor models.Cursor) (models.RemoteDiff, error)

	// EnumerateIDs walks the complete remote message-id space in pages,
	// invoking fn once per page. Each page carries the remote's estimate of
	// the total page count, which is progress-reporting material only; the
	// enumeration ends when the remote has no more pages. The sequence is
	// not restartable mid-walk; a fresh call starts over from page one.
	// Returns the first error from the transport or from fn.
	EnumerateIDs(ctx context.Context, fn func(models.IDBatch) error) error

	// Fetch retrieves the given messages in batches and invokes onEach once
	// per fetched message. format selects full content or metadata/tags
	// only. Returns the first error from the transport or from onEach;
	// messages already delivered to onEach stay delivered.
	Fetch(ctx context.Context, ids []models.MessageID, format models.FetchFormat, onEach func(models.RemoteMessage) error) error

	// PushTags applies the given tag sets on the remote side in one bulk
	// request. The request is best-effort atomic: partial-failure semantics
	// are the remote store's concern and surface here as a single error.
	// Atomicity of the bulk apply is an assumption inherited from the
	// remote service, not verified per id by this client.
	PushTags(ctx context.Context, changes map[models.MessageID]models.TagSet) error
}
