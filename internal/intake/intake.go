// Package intake turns a file-selection gesture into a validated image submission.
//
// Two gestures are supported: a path confirmed in the picker input, and a
// terminal drop, which arrives as pasted text holding one or more paths.
// Only the first dropped path is used.
package intake

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register decoder for preview dimensions
	_ "image/jpeg" // register decoder for preview dimensions
	_ "image/png"  // register decoder for preview dimensions
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/five82/defectscope/internal/inspect"
)

var (
	// ErrInvalidFileType rejects anything whose MIME type is not image/*.
	ErrInvalidFileType = errors.New("file is not an image")
	// ErrEmptyFile rejects zero-byte files; the backend refuses them anyway.
	ErrEmptyFile = errors.New("file is empty")
	// ErrNoFile is returned when a gesture carried no usable path.
	ErrNoFile = errors.New("no file supplied")
)

const sniffLen = 512

// SubmittedFile is a validated image ready for the workflow.
type SubmittedFile struct {
	Name     string // display name, may be empty
	MIMEType string
	Data     []byte
	Path     string
}

// Upload converts the file into the client's upload payload.
func (f SubmittedFile) Upload() inspect.Upload {
	return inspect.Upload{Name: f.Name, MIMEType: f.MIMEType, Data: f.Data}
}

// Preview describes a locally available rendition of the submitted image.
type Preview struct {
	URL      string // file:// URL of the image on disk
	Name     string
	MIMEType string
	Size     int64
	Width    int // zero when the format could not be decoded
	Height   int
}

// Dimensions formats the pixel size, or "" when unknown.
func (p Preview) Dimensions() string {
	if p.Width <= 0 || p.Height <= 0 {
		return ""
	}
	return fmt.Sprintf("%dx%d", p.Width, p.Height)
}

// IsImageType reports whether mimeType names an image.
func IsImageType(mimeType string) bool {
	mediaType, _, err := mime.ParseMediaType(mimeType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(mimeType))
	}
	return strings.HasPrefix(mediaType, "image/")
}

// Validate checks a file whose content is already in memory. The declared
// MIME type wins; when it is empty the type is derived from the name and the
// content, the way a browser fills File.type.
func Validate(name, declaredType string, data []byte) (SubmittedFile, error) {
	mimeType := strings.TrimSpace(declaredType)
	if mimeType == "" {
		mimeType = DetectMIME(name, data)
	}
	if !IsImageType(mimeType) {
		return SubmittedFile{}, fmt.Errorf("%w: %s", ErrInvalidFileType, describeType(mimeType))
	}
	if len(data) == 0 {
		return SubmittedFile{}, ErrEmptyFile
	}
	return SubmittedFile{Name: name, MIMEType: mimeType, Data: data}, nil
}

// FromPicker loads and validates the file at path.
func FromPicker(path string) (SubmittedFile, Preview, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return SubmittedFile{}, Preview{}, ErrNoFile
	}
	return load(expandHome(trimmed))
}

// FromDrop handles pasted drop payloads. Multi-file drops use the first entry.
func FromDrop(payload string) (SubmittedFile, Preview, error) {
	paths := ParseDropped(payload)
	if len(paths) == 0 {
		return SubmittedFile{}, Preview{}, ErrNoFile
	}
	return load(paths[0])
}

// DetectMIME guesses a MIME type from the file extension, then from content.
func DetectMIME(name string, head []byte) string {
	if ext := filepath.Ext(name); ext != "" {
		if t := mime.TypeByExtension(strings.ToLower(ext)); t != "" {
			return t
		}
	}
	if len(head) > 0 {
		return http.DetectContentType(head)
	}
	return ""
}

func load(path string) (SubmittedFile, Preview, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return SubmittedFile{}, Preview{}, fmt.Errorf("resolve path: %w", err)
	}

	f, err := os.Open(abs)
	if err != nil {
		return SubmittedFile{}, Preview{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return SubmittedFile{}, Preview{}, fmt.Errorf("stat file: %w", err)
	}
	if info.IsDir() {
		return SubmittedFile{}, Preview{}, fmt.Errorf("%w: %s is a directory", ErrInvalidFileType, info.Name())
	}

	// Type check before reading the whole file.
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return SubmittedFile{}, Preview{}, fmt.Errorf("read file: %w", err)
	}
	head = head[:n]
	name := filepath.Base(abs)
	mimeType := DetectMIME(name, head)
	if !IsImageType(mimeType) {
		return SubmittedFile{}, Preview{}, fmt.Errorf("%w: %s", ErrInvalidFileType, describeType(mimeType))
	}

	rest, err := io.ReadAll(f)
	if err != nil {
		return SubmittedFile{}, Preview{}, fmt.Errorf("read file: %w", err)
	}
	data := append(head, rest...)

	file, err := Validate(name, mimeType, data)
	if err != nil {
		return SubmittedFile{}, Preview{}, err
	}
	file.Path = abs
	return file, newPreview(file, info.Size()), nil
}

func newPreview(file SubmittedFile, size int64) Preview {
	p := Preview{
		URL:      (&url.URL{Scheme: "file", Path: filepath.ToSlash(file.Path)}).String(),
		Name:     file.Name,
		MIMEType: file.MIMEType,
		Size:     size,
	}
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(file.Data)); err == nil {
		p.Width = cfg.Width
		p.Height = cfg.Height
	}
	return p
}

func describeType(mimeType string) string {
	if mimeType == "" {
		return "unknown type"
	}
	return mimeType
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
