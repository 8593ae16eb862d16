// Package inspect provides an HTTP client for the defect-inspection backend.
//
// # Overview
//
// The backend exposes three endpoints that the workflow calls in sequence:
//
//   - POST /api/predict: multipart upload (field "file"), returns a JSON array of regions
//   - POST /upload: same multipart upload, returns {"result_url": "..."}
//   - GET /report: no body, returns {"report_url": "..."} when a document exists
//
// The package is split into two files:
//
//   - client.go: HTTP client, multipart encoding, artifact download
//   - types.go: wire types mirroring the backend schema
//
// # Client Usage
//
//	client, err := inspect.NewClient("http://127.0.0.1:8000", 0)
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	raw, err := client.Predict(ctx, submissionID, inspect.Upload{
//		Name:     "beam.png",
//		MIMEType: "image/png",
//		Data:     data,
//	})
//	regions, err := inspect.DecodePrediction(raw)
//
// Predict deliberately returns the raw body. The workflow treats a transport
// failure and a body that is not an array as two different outcomes, so
// decoding is left to the caller.
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation
//   - Set Accept: application/json and User-Agent: defectscope/0.1
//   - Carry the X-Submission-ID header when a submission id is supplied
//   - Treat any status outside 2xx as a *StatusError
//
// No client-side timeout is applied unless one is configured; the backend
// slices panoramas into tiles and can take a while per image.
//
// # Error Handling
//
//   - Network errors: "execute request: dial tcp: connection refused"
//   - HTTP errors: *StatusError, "/api/predict returned status 500"
//   - Decode errors: "decode response: ..." or ErrMalformedResponse for predict bodies
//
// # Opaque Values
//
// Defect fields (class, confidence, coordinates, length, index) are held as
// Value, a thin wrapper around json.RawMessage. The backend formats them
// freely ("91.20%", [x1, y1, x2, y2], 12.5), and the client shows them as
// provided rather than guessing at a schema.
//
// # Artifact URLs
//
// result_url and report_url are usually server-relative paths. Resolve turns
// them into absolute URLs against the configured base, and Download streams
// them to any io.Writer.
package inspect
