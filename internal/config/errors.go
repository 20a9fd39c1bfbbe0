package config

import "errors"

var (
	// ErrNoRemoteAddress is returned when no base URL for the remote mail
	// API was provided by any configuration source.
	ErrNoRemoteAddress = errors.New("remote address is required")

	// ErrInvalidIndexBatchSize is returned when the index batch size is not
	// a positive integer.
	ErrInvalidIndexBatchSize = errors.New("index batch size must be positive")

	// ErrNoIndexDSN is returned when the local index database path resolved
	// to an empty string.
	ErrNoIndexDSN = errors.New("index dsn is required")

	// ErrNoMaildirPath is returned when the message file directory resolved
	// to an empty string.
	ErrNoMaildirPath = errors.New("maildir path is required")

	// ErrNoStatusDir is returned when the status directory resolved to an
	// empty string.
	ErrNoStatusDir = errors.New("status dir is required")
)
