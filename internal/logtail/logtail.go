package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Level extracts the level=... attribute written by slog's text handler.
func Level(line string) (slog.Level, bool) {
	value, ok := attr(line, "level")
	if !ok {
		return 0, false
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return 0, false
	}
	return level, true
}

// Message extracts the msg=... attribute, unquoting it when needed.
func Message(line string) string {
	value, _ := attr(line, "msg")
	return value
}

// Filter keeps lines at or above min. Lines without a level are kept only
// when min is at or below debug, so continuation lines survive a full view.
func Filter(lines []string, min slog.Level) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		level, ok := Level(line)
		if !ok {
			if min <= slog.LevelDebug {
				out = append(out, line)
			}
			continue
		}
		if level >= min {
			out = append(out, line)
		}
	}
	return out
}

// Tail reads the last maxLines and filters them.
func Tail(path string, maxLines int, min slog.Level) ([]string, error) {
	lines, err := Read(path, maxLines)
	if err != nil {
		return nil, err
	}
	return Filter(lines, min), nil
}

func attr(line, key string) (string, bool) {
	prefix := key + "="
	start := -1
	for i := 0; i+len(prefix) <= len(line); i++ {
		if (i == 0 || line[i-1] == ' ') && strings.HasPrefix(line[i:], prefix) {
			start = i + len(prefix)
			break
		}
	}
	if start < 0 {
		return "", false
	}
	rest := line[start:]
	if strings.HasPrefix(rest, `"`) {
		var b strings.Builder
		for i := 1; i < len(rest); i++ {
			switch rest[i] {
			case '\\':
				if i+1 < len(rest) {
					i++
					b.WriteByte(rest[i])
				}
			case '"':
				return b.String(), true
			default:
				b.WriteByte(rest[i])
			}
		}
		return b.String(), true
	}
	if end := strings.IndexByte(rest, ' '); end >= 0 {
		rest = rest[:end]
	}
	return rest, true
}
