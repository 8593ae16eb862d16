package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultPrefsPath = "~/.config/defectscope/prefs.toml"
	defaultTheme     = "Nightfox"
)

// Prefs holds user preferences.
type Prefs struct {
	Theme string `toml:"theme"`
	// LastDir is the directory of the last successfully analysed image.
	LastDir string `toml:"last_dir,omitempty"`
}

// Defaults returns the preferences used when nothing is stored.
func Defaults() Prefs {
	return Prefs{Theme: defaultTheme}
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// StartPath is the initial value of the intake path input: LastDir with a
// trailing separator, or empty.
func (p Prefs) StartPath() string {
	if p.LastDir == "" {
		return ""
	}
	return strings.TrimSuffix(p.LastDir, string(filepath.Separator)) + string(filepath.Separator)
}

func (p Prefs) normalized() Prefs {
	p.Theme = strings.TrimSpace(p.Theme)
	if p.Theme == "" {
		p.Theme = defaultTheme
	}
	p.LastDir = strings.TrimSpace(p.LastDir)
	return p
}

// Load reads preferences from path (empty means DefaultPath). A missing,
// unreadable or malformed file yields Defaults and no error.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Defaults(), nil
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return Defaults(), nil
	}
	p := Defaults()
	if err := toml.Unmarshal(data, &p); err != nil {
		return Defaults(), nil
	}
	return p.normalized(), nil
}

// Save writes preferences to path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	data, err := toml.Marshal(p.normalized())
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = defaultPrefsPath
	}
	if rest, ok := strings.CutPrefix(path, "~"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, rest)
	}
	return filepath.Abs(path)
}
