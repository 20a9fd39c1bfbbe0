package config

import (
	"os"
	"path/filepath"
	"time"
)

// Defaults returns the built-in configuration. Everything lives under
// ~/.mailsync by default; only the remote address has no sensible default
// and must come from another source.
func Defaults() *StructuredConfig {
	base := baseDir()

	return &StructuredConfig{
		Remote: Remote{
			RequestTimeout: 2 * time.Minute,
			TokenFile:      filepath.Join(base, "token"),
		},
		Storage: Storage{
			IndexDSN:    filepath.Join(base, "index.db"),
			MaildirPath: filepath.Join(base, "mail"),
			StatusDir:   filepath.Join(base, "status"),
		},
		Sync: Sync{
			IndexBatchSize: 100,
		},
	}
}

func baseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mailsync"
	}
	return filepath.Join(home, ".mailsync")
}
