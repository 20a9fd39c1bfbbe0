// Package config loads the go-mail-sync configuration from environment
// variables, command-line flags, an optional JSON file, and built-in
// defaults, merging them in that priority order.
//
// The entry point is [GetStructuredConfig]. Individual sources are parsed
// into separate [StructuredConfig] values and merged with mergo, so a field
// set by an earlier (higher-priority) source is never overwritten by a later
// one. The merged result is validated before being returned.
package config
