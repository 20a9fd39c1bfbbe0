package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-remote-address base URL of the remote mail API
//	-request-timeout remote request timeout (e.g. "30s", "2m")
//	-token-file path to the bearer token file
//	-index-dsn sqlite path of the local message index
//	-maildir directory for raw message files
//	-status-dir directory for the instance lock and run state
//	-index-batch-size messages indexed per batch
//	-local-wins local tag edits win on conflict (needs -push-local-tags)
//	-push-local-tags propagate local tag edits to the remote store
//	-l/-logfile log to a rotating file instead of stdout
//	-v verbose (debug) logging
//	-c/-config json file path with configs
//	-defconfig print the default configuration as JSON and exit
func ParseFlags() *StructuredConfig {
	var remoteAddress string
	var requestTimeout time.Duration
	var tokenFile string
	var indexDSN string
	var maildirPath string
	var statusDir string
	var indexBatchSize int
	var localWins bool
	var pushLocalTags bool
	var logFile string
	var verbose bool
	var jsonConfigPath string
	var printDefConfig bool

	flag.StringVar(&remoteAddress, "remote-address", "", "Base URL of the remote mail API")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Remote request timeout (e.g. 30s, 2m)")
	flag.StringVar(&tokenFile, "token-file", "", "Path to the bearer token file")
	flag.StringVar(&indexDSN, "index-dsn", "", "Sqlite path of the local message index")
	flag.StringVar(&maildirPath, "maildir", "", "Directory for raw message files")
	flag.StringVar(&statusDir, "status-dir", "", "Directory for the instance lock and run state")
	flag.IntVar(&indexBatchSize, "index-batch-size", 0, "Messages indexed per batch")
	flag.BoolVar(&localWins, "local-wins", false, "Local tag edits win on conflict")
	flag.BoolVar(&pushLocalTags, "push-local-tags", false, "Propagate local tag edits to the remote store")
	flag.StringVar(&logFile, "l", "", "Log to a rotating file instead of stdout")
	flag.StringVar(&logFile, "logfile", "", "Log to a rotating file instead of stdout (alias)")
	flag.BoolVar(&verbose, "v", false, "Verbose (debug) logging")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.BoolVar(&printDefConfig, "defconfig", false, "Print the default configuration as JSON and exit")

	flag.Parse()

	return &StructuredConfig{
		Remote: Remote{
			Address:        remoteAddress,
			RequestTimeout: requestTimeout,
			TokenFile:      tokenFile,
		},
		Storage: Storage{
			IndexDSN:    indexDSN,
			MaildirPath: maildirPath,
			StatusDir:   statusDir,
		},
		Sync: Sync{
			IndexBatchSize: indexBatchSize,
			LocalWins:      localWins,
			PushLocalTags:  pushLocalTags,
		},
		Log: Log{
			File:    logFile,
			Verbose: verbose,
		},
		JSONFilePath:   jsonConfigPath,
		PrintDefConfig: printDefConfig,
	}
}
