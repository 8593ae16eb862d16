package inspect

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Status is the per-region verdict reported by the predict endpoint.
type Status string

const (
	StatusNoDefects    Status = "no_defects"
	StatusDefectsFound Status = "defects_found"
)

// HasDefects reports whether the status is anything other than no_defects.
// The analysis service also reports "success" for defective tiles.
func (s Status) HasDefects() bool {
	return s != StatusNoDefects
}

// ErrMalformedResponse is returned when the predict body is not an array of regions.
var ErrMalformedResponse = errors.New("malformed predict response")

// PredictionResult is the ordered list of regions returned by /api/predict.
// Display order and region numbering follow list order.
type PredictionResult []RegionResult

// RegionResult is the verdict for one region of the inspected image.
type RegionResult struct {
	Status  Status   `json:"status"`
	Defects []Defect `json:"defects"`
}

// Defect is a single flaw within a region. Every field is passed through as
// provided by the service.
type Defect struct {
	Class       Value `json:"class"`
	Confidence  Value `json:"confidence"`
	Coordinates Value `json:"coordinates"`
	Length      Value `json:"length"`
	Index       Value `json:"index"`
}

// UploadResult is the body of a successful /upload call.
type UploadResult struct {
	ResultURL string `json:"result_url,omitempty"`
}

// ReportResult is the body of a successful /report call.
type ReportResult struct {
	ReportURL string `json:"report_url,omitempty"`
}

// Upload is the image payload sent to the predict and persist endpoints.
type Upload struct {
	Name     string
	MIMEType string
	Data     []byte
}

// DecodePrediction parses a predict body. Anything other than a JSON array of
// region objects yields an error wrapping ErrMalformedResponse.
func DecodePrediction(raw []byte) (PredictionResult, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: body is not an array", ErrMalformedResponse)
	}
	var result PredictionResult
	if err := json.Unmarshal(trimmed, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if result == nil {
		result = PredictionResult{}
	}
	return result, nil
}

// Value holds an opaque JSON value (string, number, array or object) for display.
type Value struct {
	raw json.RawMessage
}

// StringValue wraps a plain string. Mostly useful for tests and fixtures.
func StringValue(s string) Value {
	b, _ := json.Marshal(s)
	return Value{raw: b}
}

// RawValue wraps already-encoded JSON.
func RawValue(raw string) Value {
	return Value{raw: json.RawMessage(raw)}
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(b []byte) error {
	v.raw = append(v.raw[:0], b...)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if len(v.raw) == 0 {
		return []byte("null"), nil
	}
	return v.raw, nil
}

// IsZero reports whether the value was absent or null.
func (v Value) IsZero() bool {
	trimmed := bytes.TrimSpace(v.raw)
	return len(trimmed) == 0 || string(trimmed) == "null"
}

// String renders the value for display: strings unquoted, numbers verbatim,
// arrays as comma separated elements and objects as compact JSON.
func (v Value) String() string {
	trimmed := bytes.TrimSpace(v.raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return ""
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	case '[':
		var items []Value
		if err := json.Unmarshal(trimmed, &items); err == nil {
			parts := make([]string, 0, len(items))
			for _, item := range items {
				parts = append(parts, item.String())
			}
			return strings.Join(parts, ", ")
		}
	case '{':
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err == nil {
			return buf.String()
		}
	}
	return string(trimmed)
}
