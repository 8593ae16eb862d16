// Package workflow sequences one image submission through the inspection
// backend and drives the display.
//
// # Stages
//
//	Idle -> Previewing -> Analyzing -> ResultsDisplayed -> UploadingProcessed -> FetchingReport -> Done
//	                          \-> Failed
//
// Predict is the only stage that can fail the submission. A transport error
// or non-2xx status shows "Analysis failed: <status>" in the results area; a
// body that is not a JSON array shows the malformed-result notice. In both
// cases persist and report are never called.
//
// Persist and report are best effort. Their failures are logged at WARN and
// the display keeps whatever the earlier stages produced.
//
// # Concurrency
//
// Submit blocks and is meant to run off the UI goroutine. Starting a new
// submission cancels the previous one's context and bumps the generation;
// anything the older submission would still write to the display is dropped.
// All state transitions happen in one place under the orchestrator's mutex and
// are checked against the transition table in state.go.
//
// # Display
//
// The orchestrator never knows what draws the screen. It writes to the
// capabilities in Sinks; state.Store implements all of them for the TUI and
// tests use recording fakes.
package workflow
