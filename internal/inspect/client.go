package inspect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"
)

// Inspector is the set of calls the workflow issues against the analysis
// service. It is implemented by *Client and faked in tests.
type Inspector interface {
	Predict(ctx context.Context, submissionID string, file Upload) (json.RawMessage, error)
	Persist(ctx context.Context, submissionID string, file Upload) (UploadResult, error)
	Report(ctx context.Context, submissionID string) (ReportResult, error)
}

// Ensure Client implements Inspector at compile time.
var _ Inspector = (*Client)(nil)

// Endpoint paths served by the inspection backend.
const (
	PredictPath = "/api/predict"
	PersistPath = "/upload"
	ReportPath  = "/report"
)

// SubmissionHeader carries the per-submission correlation id on every call.
const SubmissionHeader = "X-Submission-ID"

const (
	defaultBaseURL   = "http://127.0.0.1:8000"
	defaultUserAgent = "defectscope/0.1"
	formField        = "file"
	maxResponseBytes = 32 << 20
)

// StatusError reports a non-2xx response.
type StatusError struct {
	Endpoint string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Endpoint, e.Code)
}

// Client talks to the inspection HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

// NewClient builds a Client for baseURL. A zero timeout leaves requests bound
// only by the caller's context.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL returns the normalized service origin.
func (c *Client) BaseURL() string {
	if c == nil {
		return ""
	}
	return c.baseURL.String()
}

// Predict posts the image to the analysis endpoint and returns the raw body.
// Callers decode it with DecodePrediction so a malformed body can be told
// apart from a transport failure.
func (c *Client) Predict(ctx context.Context, submissionID string, file Upload) (json.RawMessage, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	body, err := c.send(ctx, http.MethodPost, PredictPath, submissionID, &file)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// Persist posts the same image to the storage endpoint.
func (c *Client) Persist(ctx context.Context, submissionID string, file Upload) (UploadResult, error) {
	if c == nil {
		return UploadResult{}, fmt.Errorf("client is nil")
	}
	body, err := c.send(ctx, http.MethodPost, PersistPath, submissionID, &file)
	if err != nil {
		return UploadResult{}, err
	}
	var payload UploadResult
	if err := json.Unmarshal(body, &payload); err != nil {
		return UploadResult{}, fmt.Errorf("decode response: %w", err)
	}
	return payload, nil
}

// Report asks whether a report document is available.
func (c *Client) Report(ctx context.Context, submissionID string) (ReportResult, error) {
	if c == nil {
		return ReportResult{}, fmt.Errorf("client is nil")
	}
	body, err := c.send(ctx, http.MethodGet, ReportPath, submissionID, nil)
	if err != nil {
		return ReportResult{}, err
	}
	var payload ReportResult
	if err := json.Unmarshal(body, &payload); err != nil {
		return ReportResult{}, fmt.Errorf("decode response: %w", err)
	}
	return payload, nil
}

// Resolve turns a server supplied reference (usually a path such as
// /static/reports/defects_report.docx) into an absolute URL.
func (c *Client) Resolve(ref string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	trimmed := strings.TrimSpace(ref)
	if trimmed == "" {
		return "", fmt.Errorf("reference is empty")
	}
	rel, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("parse reference %q: %w", ref, err)
	}
	return c.baseURL.ResolveReference(rel).String(), nil
}

// Download streams the artifact at ref into dst and returns the byte count.
func (c *Client) Download(ctx context.Context, ref string, dst io.Writer) (int64, error) {
	target, err := c.Resolve(ref)
	if err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, &StatusError{Endpoint: req.URL.Path, Code: resp.StatusCode}
	}
	n, err := io.Copy(dst, resp.Body)
	if err != nil {
		return n, fmt.Errorf("copy artifact: %w", err)
	}
	return n, nil
}

func (c *Client) send(ctx context.Context, method, path, submissionID string, file *Upload) ([]byte, error) {
	var (
		body        io.Reader
		contentType string
	)
	if file != nil {
		buf, ct, err := encodeUpload(*file)
		if err != nil {
			return nil, err
		}
		body = buf
		contentType = ct
	}

	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if submissionID != "" {
		req.Header.Set(SubmissionHeader, submissionID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Endpoint: path,
			Code:     resp.StatusCode,
			Body:     strings.TrimSpace(string(payload)),
		}
	}
	return payload, nil
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func encodeUpload(file Upload) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	name := file.Name
	if strings.TrimSpace(name) == "" {
		name = "image"
	}
	mimeType := file.MIMEType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		formField, quoteEscaper.Replace(name)))
	h.Set("Content-Type", mimeType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("create form part: %w", err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, "", fmt.Errorf("write form part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base_url %q: %w", baseURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base_url %q: missing host", baseURL)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
