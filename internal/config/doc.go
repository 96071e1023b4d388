// Package config loads the jukebox configuration file.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/jukebox/config.toml
//  3. If the file doesn't exist, use the defaults from Default
//  4. If the file exists but fields are missing, empty or non-positive, use
//     the default for those fields
//
// # TOML Format
//
//	player_url              = "http://volumio.local"
//	api_path                = "/api/v1"
//	poll_seconds            = 5
//	volume_debounce_ms      = 300
//	request_timeout_seconds = 0
//	listen_addr             = "127.0.0.1:8088"
//	log_file                = "~/.local/state/jukebox/jukebox.log"
//
// Every field is optional. A request timeout of zero leaves timeouts to the
// HTTP transport. Tilde expansion is applied to the config path and log_file.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than a
// missing file, and TOML parse errors (wrapped as "parse config: ...").
package config
