package inspect

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Fetcher streams a server artifact. *Client implements it.
type Fetcher interface {
	Download(ctx context.Context, ref string, dst io.Writer) (int64, error)
}

var _ Fetcher = (*Client)(nil)

const fallbackArtifactName = "artifact"

// SaveArtifact downloads ref into dir under name, or under the last path
// element of ref when name is empty. The file only appears once the download
// has completed.
func SaveArtifact(ctx context.Context, f Fetcher, ref, dir, name string) (string, int64, error) {
	if f == nil {
		return "", 0, fmt.Errorf("fetcher is nil")
	}
	if strings.TrimSpace(name) == "" {
		name = ArtifactName(ref)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("create download dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".defectscope-*")
	if err != nil {
		return "", 0, fmt.Errorf("create temp file: %w", err)
	}
	cleanup := func() { _ = os.Remove(tmp.Name()) }

	n, err := f.Download(ctx, ref, tmp)
	if closeErr := tmp.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close temp file: %w", closeErr)
	}
	if err != nil {
		cleanup()
		return "", n, err
	}

	dest := filepath.Join(dir, name)
	if err := os.Rename(tmp.Name(), dest); err != nil {
		cleanup()
		return "", n, fmt.Errorf("move download into place: %w", err)
	}
	return dest, n, nil
}

// ArtifactName derives a local filename from a server reference.
func ArtifactName(ref string) string {
	p := strings.TrimSpace(ref)
	if u, err := url.Parse(p); err == nil {
		p = u.Path
	}
	base := path.Base(p)
	if base == "" || base == "." || base == "/" {
		return fallbackArtifactName
	}
	return base
}
