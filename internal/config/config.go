// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for go-mail-sync.
// It aggregates all sub-configurations and is populated by merging values
// from environment variables, command-line flags, an optional JSON file, and
// built-in defaults (in that priority order, earlier sources win).
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Remote holds connection settings for the remote mail service.
	Remote Remote `envPrefix:"MAILSYNC_REMOTE_" json:"remote"`

	// Storage holds paths for the local mailbox: the sqlite index, the
	// message file directory, and the status directory that carries the
	// instance lock and other run state.
	Storage Storage `envPrefix:"MAILSYNC_STORAGE_" json:"storage"`

	// Sync holds the knobs of the synchronization engine itself.
	Sync Sync `envPrefix:"MAILSYNC_SYNC_" json:"sync"`

	// Log holds logging destination and verbosity settings.
	Log Log `envPrefix:"MAILSYNC_LOG_" json:"log"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged below the values already
	// loaded from environment variables and flags.
	// Populated via the MAILSYNC_CONFIG environment variable or the
	// -c / -config flag.
	JSONFilePath string `env:"MAILSYNC_CONFIG" json:"-"`

	// PrintDefConfig makes the program print the default configuration as
	// JSON on standard output and exit. Flag only (-defconfig).
	PrintDefConfig bool `json:"-"`
}

// Remote holds settings for the remote mail service adapter.
type Remote struct {
	// Address is the base URL of the remote mail API
	// (e.g. "https://mail.example.com"). Required.
	// Env: MAILSYNC_REMOTE_ADDRESS
	Address string `env:"ADDRESS" json:"address"`

	// RequestTimeout is the maximum duration allowed for a single remote
	// request (e.g. "30s", "2m").
	// Env: MAILSYNC_REMOTE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" json:"request_timeout"`

	// TokenFile is the path to a file holding the bearer token attached to
	// every remote request. Obtaining and refreshing the token is outside
	// this program; the file is only read.
	// Env: MAILSYNC_REMOTE_TOKEN_FILE
	TokenFile string `env:"TOKEN_FILE" json:"token_file"`
}

// Storage holds the local mailbox paths.
type Storage struct {
	// IndexDSN is the sqlite database path of the local message index
	// (e.g. "~/.mailsync/index.db").
	// Env: MAILSYNC_STORAGE_INDEX_DSN
	IndexDSN string `env:"INDEX_DSN" json:"index_dsn"`

	// MaildirPath is the directory where raw message files are stored.
	// Env: MAILSYNC_STORAGE_MAILDIR_PATH
	MaildirPath string `env:"MAILDIR_PATH" json:"maildir_path"`

	// StatusDir is the directory holding run state owned by this program:
	// the single-instance lock keyed to this configuration.
	// Env: MAILSYNC_STORAGE_STATUS_DIR
	StatusDir string `env:"STATUS_DIR" json:"status_dir"`
}

// Sync holds the engine knobs.
type Sync struct {
	// IndexBatchSize is the number of freshly fetched messages indexed as
	// one unit. Indexing is batched to amortize indexing overhead rather
	// than performed per message.
	// Env: MAILSYNC_SYNC_INDEX_BATCH_SIZE
	IndexBatchSize int `env:"INDEX_BATCH_SIZE" json:"index_batch_size"`

	// LocalWins decides conflicts in favor of local tag edits when a
	// message was edited on both sides. Only effective together with
	// PushLocalTags: a change that cannot be pushed can never prevail.
	// Env: MAILSYNC_SYNC_LOCAL_WINS
	LocalWins bool `env:"LOCAL_WINS" json:"local_wins"`

	// PushLocalTags is the master switch for propagating local tag edits to
	// the remote store.
	// Env: MAILSYNC_SYNC_PUSH_LOCAL_TAGS
	PushLocalTags bool `env:"PUSH_LOCAL_TAGS" json:"push_local_tags"`
}

// Log holds logging settings.
type Log struct {
	// File, when non-empty, routes log output to a rotating file instead of
	// standard output.
	// Env: MAILSYNC_LOG_FILE
	File string `env:"FILE" json:"file"`

	// Verbose lowers the log level from Info to Debug.
	// Env: MAILSYNC_LOG_VERBOSE
	Verbose bool `env:"VERBOSE" json:"verbose"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (earlier sources win for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
