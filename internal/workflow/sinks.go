package workflow

import (
	"github.com/five82/defectscope/internal/intake"
	"github.com/five82/defectscope/internal/render"
)

// PreviewSink shows the locally available image.
type PreviewSink interface {
	ShowPreview(intake.Preview)
}

// ResultsSink shows the rendered result document or error panel.
type ResultsSink interface {
	ShowResults(render.Document)
	ResetResults()
}

// BusyIndicator toggles the activity indicator.
type BusyIndicator interface {
	SetBusy(bool)
}

// ProcessedLinkSink reveals the "view processed image" link.
type ProcessedLinkSink interface {
	ShowProcessedLink(url string)
	HideProcessedLink()
}

// ReportSink reveals the report download affordance.
type ReportSink interface {
	ShowReportLink(render.ReportLink)
	HideReportLink()
}

// PhaseObserver is told about every state transition.
type PhaseObserver interface {
	SetPhase(State)
}

// Sinks are the display capabilities the orchestrator writes to. Any of them
// may be nil; a missing target is logged and skipped.
type Sinks struct {
	Preview       PreviewSink
	Results       ResultsSink
	Busy          BusyIndicator
	ProcessedLink ProcessedLinkSink
	Report        ReportSink
	Phase         PhaseObserver
}

// SinksFrom fills every capability that v implements.
func SinksFrom(v any) Sinks {
	var s Sinks
	s.Preview, _ = v.(PreviewSink)
	s.Results, _ = v.(ResultsSink)
	s.Busy, _ = v.(BusyIndicator)
	s.ProcessedLink, _ = v.(ProcessedLinkSink)
	s.Report, _ = v.(ReportSink)
	s.Phase, _ = v.(PhaseObserver)
	return s
}
