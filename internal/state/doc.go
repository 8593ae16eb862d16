// Package state holds the display state shared between the submission
// workflow and the terminal UI.
//
// # Overview
//
// The workflow runs on its own goroutine and writes through the capability
// interfaces in package workflow. Store implements all of them, so the
// orchestrator is built with workflow.SinksFrom(store). The UI never receives
// callbacks; it reads Snapshot on its refresh tick and redraws when Revision
// has moved.
//
//	Orchestrator (submit goroutine)      UI (Bubble Tea)
//	┌──────────────────────────┐        ┌──────────────────┐
//	│ ShowPreview / SetBusy    │        │                  │
//	│ ShowResults / SetPhase   │───────→│ store.Snapshot() │
//	│ ShowReportLink ...       │ (mutex)│   render view    │
//	└──────────────────────────┘        └──────────────────┘
//
// # Copying
//
// ShowResults stores a deep copy of the document and Snapshot hands out
// another, so neither side can mutate what the other is looking at. Errors are
// wrapped on the way out for the same reason.
//
// # Zero value
//
// A zero Store is ready to use and reports workflow.StateIdle with nothing on
// screen.
package state
