package intake

import (
	"net/url"
	"strings"
	"unicode"
)

// ParseDropped splits a terminal drop payload into paths. Terminals differ in
// how they paste dropped files: shell-quoted ('a b.png'), backslash-escaped
// (a\ b.png), file:// URIs, one per line or space separated.
func ParseDropped(payload string) []string {
	var (
		paths   []string
		current strings.Builder
		quote   rune
		escaped bool
		started bool
	)
	flush := func() {
		if started {
			if p := normalizeDropped(current.String()); p != "" {
				paths = append(paths, p)
			}
		}
		current.Reset()
		started = false
	}

	for _, r := range payload {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			started = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			started = true
		case unicode.IsSpace(r):
			flush()
		default:
			current.WriteRune(r)
			started = true
		}
	}
	flush()
	return paths
}

func normalizeDropped(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(token, "file://") {
		u, err := url.Parse(token)
		if err == nil && u.Path != "" {
			return u.Path
		}
	}
	return expandHome(token)
}
