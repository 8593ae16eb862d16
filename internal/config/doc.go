// Package config loads defectscope's client settings.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/defectscope/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing or empty, use defaults
//  5. DEFECTSCOPE_BASE_URL and DEFECTSCOPE_LOCALE override the file
//
// LoadDotenv should run before Load so that a .env file in the working
// directory can supply those variables. Variables already present in the
// environment win over the .env file.
//
// # Default Values
//
//   - base_url: http://127.0.0.1:8000
//   - download_dir: ~/Downloads
//   - log_file: ~/.local/state/defectscope/defectscope.log
//   - log_level: info (debug, info, warn, error)
//   - request_timeout_seconds: 0, meaning no client timeout
//   - locale: en (en or ru)
//
// # Example
//
//	base_url = "http://inspect.lan:8000"
//	download_dir = "~/reports"
//	log_level = "debug"
//	locale = "ru"
//
// # Path Expansion
//
// A leading ~ expands to the user's home directory and relative paths are
// made absolute. Trailing slashes are stripped from base_url.
//
// # Errors
//
// A missing file is not an error. Unreadable files, invalid TOML, unknown log
// levels and negative timeouts are returned wrapped with context.
package config
