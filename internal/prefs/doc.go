// Package prefs keeps the few choices defectscope remembers between runs:
// the colour theme and the directory of the last image that went through a
// successful analysis, which pre-fills the path input on the next start.
//
// The file lives at ~/.config/defectscope/prefs.toml. It is optional and a
// broken one never stops the program; Load falls back to Defaults.
package prefs
