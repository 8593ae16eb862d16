// Package logtail reads the tail of defectscope's diagnostic log for the
// in-app log view.
//
// # Reading
//
// Read uses a ring buffer sized to maxLines, so only the requested tail is
// kept in memory regardless of file size. A missing log file is not an error;
// the view simply shows nothing yet.
//
// # Levels
//
// The log is written by slog's text handler, one record per line:
//
//	time=2026-03-01T10:00:00.000Z level=WARN msg="persist failed" submission=... stage=persist err="..."
//
// Level and Message pull the level= and msg= attributes out of such a line.
// Filter drops records below a minimum level. The log view starts at WARN and
// toggles to everything.
package logtail
