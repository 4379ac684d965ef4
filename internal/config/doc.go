// Package config loads the todo UI configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/todo/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing, keep the defaults
//
// # TOML Format
//
//	latency_ms = 300              # simulated backend latency
//	seed_file = "~/todo/seed.yaml" # YAML list of initial items
//	refresh_interval = 0          # seconds between background refetches; 0 disables
//	log_file = "~/todo/todo.log"  # JSON log records; empty keeps logs in the status bar
//	log_level = "info"            # debug, info, warn, error
//	fail_ops = []                 # operations the mock backend should fail
//
// Every field is optional. Tilde expansion is applied to seed_file and
// log_file.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors, a negative latency, an unknown
// log level, and unknown operation names in fail_ops. A missing file is
// not an error.
package config
