package workflow

import (
	"errors"
	"fmt"

	"github.com/five82/defectscope/internal/inspect"
	"github.com/five82/defectscope/internal/render"
)

// PredictKind tags the result of the predict stage.
type PredictKind int

const (
	PredictOK PredictKind = iota
	PredictTransportError
	PredictMalformedBody
)

func (k PredictKind) String() string {
	switch k {
	case PredictOK:
		return "ok"
	case PredictTransportError:
		return "transport_error"
	case PredictMalformedBody:
		return "malformed_body"
	default:
		return fmt.Sprintf("predict(%d)", int(k))
	}
}

// PredictOutcome is the tagged result of the predict stage.
type PredictOutcome struct {
	Kind    PredictKind
	Regions inspect.PredictionResult // set for PredictOK
	Status  int                      // HTTP status for PredictTransportError, zero when no response
	Err     error
}

// Fatal reports whether the outcome stops the workflow.
func (p PredictOutcome) Fatal() bool {
	return p.Kind != PredictOK
}

// Message is the text of the error panel for a fatal outcome.
func (p PredictOutcome) Message(labels render.Labels) string {
	switch p.Kind {
	case PredictTransportError:
		if p.Status != 0 {
			return fmt.Sprintf("%s: %d", labels.AnalysisError, p.Status)
		}
		if p.Err != nil {
			return fmt.Sprintf("%s: %v", labels.AnalysisError, p.Err)
		}
		return labels.AnalysisError
	case PredictMalformedBody:
		return labels.Malformed
	default:
		return ""
	}
}

func classifyPredict(raw []byte, err error) PredictOutcome {
	if err != nil {
		out := PredictOutcome{Kind: PredictTransportError, Err: err}
		var statusErr *inspect.StatusError
		if errors.As(err, &statusErr) {
			out.Status = statusErr.Code
		}
		return out
	}
	regions, err := inspect.DecodePrediction(raw)
	if err != nil {
		return PredictOutcome{Kind: PredictMalformedBody, Err: err}
	}
	return PredictOutcome{Kind: PredictOK, Regions: regions}
}

// StageResult records a best-effort stage.
type StageResult struct {
	Attempted bool
	URL       string // result_url or report_url when present
	Err       error
}

// Outcome summarizes one call to Submit.
type Outcome struct {
	SubmissionID string
	Generation   uint64
	State        State
	Predict      PredictOutcome
	Persist      StageResult
	Report       StageResult
	// Stale is set when a newer submission took over before this one finished.
	// Nothing from a stale submission reaches the display after that point.
	Stale bool
	// Err holds a recovered panic, rendered like a predict failure.
	Err error
}

// Failed reports whether the submission ended on the error panel.
func (o Outcome) Failed() bool {
	return o.State == StateFailed
}
