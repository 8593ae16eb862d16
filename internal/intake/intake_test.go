package intake

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func TestFromPicker_AcceptsImageAndBuildsPreview(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "beam.png", 12, 7)

	file, preview, err := FromPicker(path)
	require.NoError(t, err)
	require.Equal(t, "beam.png", file.Name)
	require.Equal(t, "image/png", file.MIMEType)
	require.Equal(t, path, file.Path)
	require.NotEmpty(t, file.Data)

	require.Equal(t, "file://"+filepath.ToSlash(path), preview.URL)
	require.Equal(t, 12, preview.Width)
	require.Equal(t, 7, preview.Height)
	require.Equal(t, "12x7", preview.Dimensions())
	require.Equal(t, int64(len(file.Data)), preview.Size)

	upload := file.Upload()
	require.Equal(t, file.Name, upload.Name)
	require.Equal(t, file.MIMEType, upload.MIMEType)
}

func TestFromPicker_RejectsNonImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))

	_, _, err := FromPicker(path)
	require.ErrorIs(t, err, ErrInvalidFileType)
	require.Contains(t, err.Error(), "text/plain")
}

func TestFromPicker_SniffsContentWithoutExtension(t *testing.T) {
	dir := t.TempDir()
	src := writePNG(t, dir, "scan.png", 3, 3)
	noExt := filepath.Join(dir, "scan")
	require.NoError(t, os.Rename(src, noExt))

	file, _, err := FromPicker(noExt)
	require.NoError(t, err)
	require.Equal(t, "image/png", file.MIMEType)
}

func TestFromPicker_RejectsEmptyAndMissing(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.png")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))

	_, _, err := FromPicker(empty)
	require.ErrorIs(t, err, ErrEmptyFile)

	_, _, err = FromPicker("   ")
	require.ErrorIs(t, err, ErrNoFile)

	_, _, err = FromPicker(filepath.Join(dir, "missing.png"))
	require.Error(t, err)

	_, _, err = FromPicker(dir)
	require.ErrorIs(t, err, ErrInvalidFileType)
}

func TestFromDrop_UsesFirstPath(t *testing.T) {
	dir := t.TempDir()
	first := writePNG(t, dir, "first shot.png", 2, 2)
	writePNG(t, dir, "second.png", 2, 2)

	payload := "'" + first + "' " + filepath.Join(dir, "second.png")
	file, _, err := FromDrop(payload)
	require.NoError(t, err)
	require.Equal(t, "first shot.png", file.Name)

	_, _, err = FromDrop("   \n")
	require.ErrorIs(t, err, ErrNoFile)
}

func TestParseDropped_Forms(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    []string
	}{
		{"plain", "/tmp/a.png", []string{"/tmp/a.png"}},
		{"escaped space", `/tmp/my\ beam.png /tmp/b.png`, []string{"/tmp/my beam.png", "/tmp/b.png"}},
		{"single quoted", `'/tmp/my beam.png'`, []string{"/tmp/my beam.png"}},
		{"double quoted", `"/tmp/my beam.png"`, []string{"/tmp/my beam.png"}},
		{"file uri", "file:///tmp/my%20beam.png", []string{"/tmp/my beam.png"}},
		{"newline separated", "/tmp/a.png\n/tmp/b.png\n", []string{"/tmp/a.png", "/tmp/b.png"}},
		{"empty", "  ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ParseDropped(tt.payload))
		})
	}
}

func TestValidate(t *testing.T) {
	_, err := Validate("a.pdf", "application/pdf", []byte("%PDF-"))
	require.True(t, errors.Is(err, ErrInvalidFileType))

	f, err := Validate("a.jpg", "", []byte{0xFF, 0xD8, 0xFF})
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", f.MIMEType)

	f, err = Validate("", "image/webp", []byte("x"))
	require.NoError(t, err)
	require.Equal(t, "", f.Name)

	require.True(t, IsImageType("image/png; charset=binary"))
	require.False(t, IsImageType("application/x-image"))
}
