// Package app is the composition root for defectscope.
//
// # Overview
//
// Run wires configuration, logging, the inspection client, the display store
// and the workflow orchestrator, then starts either the TUI or a headless
// one-shot run.
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.LoadDotenv()   .env into the environment
//	       ├─────> config.Load()         TOML + env overrides
//	       ├─────> openLogger()          slog text handler on log_file
//	       ├─────> inspect.NewClient()   predict / upload / report
//	       ├─────> state.Store{}         display sinks
//	       ├─────> workflow.New()        orchestrator over the store
//	       └─────> ui.Run()  or  headless.run()
//
// # Headless Mode
//
// With Options.Once set, the image is validated, submitted once and the
// resulting display is printed as plain text: the region list or error panel,
// the processed image URL and the report link. Options.Download also saves
// both artifacts into download_dir. A failed predict stage returns an error
// wrapping ErrAnalysisFailed so the command exits non-zero.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - unreadable .env or config file, invalid TOML or values
//   - log file cannot be created
//   - invalid base_url
//   - in headless mode, a rejected file or a failed predict stage
//
// Everything that happens inside a submission is handled by the workflow and
// only logged.
package app
