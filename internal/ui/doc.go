// Package ui provides the Bubble Tea terminal interface for defectscope.
//
// # Layout
//
//	┌ defectscope [phase] ⠋ http://127.0.0.1:8000 ──────────────┐  header
//	│ <i> Type an image path  <d> Download report ...           │  command bar
//	│ image › /srv/scans/beam.png                               │  intake input
//	│ beam.png · image/png · 1.2 MiB · 1920x1080                │  preview
//	│ file:///srv/scans/beam.png                                │
//	│ ⚠ Region 1: Defects found                                 │  results viewport
//	│    Defect 1                                               │
//	│      Class: crack                                         │
//	│ View processed image: http://.../beam_processed.png [v]   │  artifacts
//	│ Analysis report ... → beam_report.docx [d]                │
//	└ theme Nightfox ───────────────────────────────────────────┘  footer
//
// # Intake
//
// Typing a path and pressing Enter is the picker gesture. A bracketed paste
// is the drop gesture: terminals paste the paths of files dropped onto them,
// and only the first one is used. Rejected files open a blocking alert that
// any key dismisses; nothing else changes.
//
// # Data Flow
//
// Accepted files are handed to the Submitter in a tea.Cmd, so the workflow
// runs off the UI goroutine. The workflow writes to state.Store, and the UI
// picks changes up on its refresh tick by comparing the snapshot revision.
// A paste while a submission is running starts a new one; the older one is
// cancelled by the workflow and its late results are dropped there.
//
// # Key Bindings
//
//   - i or /: focus the path input (esc leaves it)
//   - enter: analyze the typed path
//   - d: download the report into download_dir
//   - v: save the processed image into download_dir
//   - l: toggle the diagnostic log view, a: all levels / warnings only
//   - j/k, g/G, ctrl+d/u: scroll the active view
//   - T: cycle theme (persisted in prefs)
//   - h or ?: help
//   - q or ctrl+c: quit
package ui
