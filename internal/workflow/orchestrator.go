package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/five82/defectscope/internal/inspect"
	"github.com/five82/defectscope/internal/intake"
	"github.com/five82/defectscope/internal/render"
)

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRenderer sets the renderer, and with it the label set.
func WithRenderer(r render.Renderer) Option {
	return func(o *Orchestrator) {
		o.renderer = r
	}
}

// WithIDGenerator replaces the submission id source.
func WithIDGenerator(fn func() string) Option {
	return func(o *Orchestrator) {
		if fn != nil {
			o.newID = fn
		}
	}
}

// Orchestrator runs the predict, persist and report calls for one image at a
// time and drives the display sinks. It exclusively owns the workflow state
// and the currently displayed prediction.
type Orchestrator struct {
	client   inspect.Inspector
	sinks    Sinks
	renderer render.Renderer
	logger   *slog.Logger
	newID    func() string

	mu         sync.Mutex
	generation uint64
	state      State
	cancel     context.CancelFunc
	result     inspect.PredictionResult
}

// New builds an Orchestrator around client and sinks.
func New(client inspect.Inspector, sinks Sinks, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		client:   client,
		sinks:    sinks,
		renderer: render.New(render.English),
		logger:   slog.Default(),
		newID:    uuid.NewString,
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State returns the current workflow state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Result returns a copy of the prediction currently on display.
func (o *Orchestrator) Result() inspect.PredictionResult {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.result == nil {
		return nil
	}
	return append(inspect.PredictionResult(nil), o.result...)
}

// Submit runs the full workflow for file. It blocks until the last stage
// finishes or a newer submission takes over; the returned Outcome says which.
//
// Predict failures and malformed bodies end the workflow on the error panel.
// Persist and report failures are logged and otherwise ignored.
func (o *Orchestrator) Submit(parent context.Context, file intake.SubmittedFile, preview intake.Preview) (out Outcome) {
	ctx, gen, id := o.begin(parent)
	defer o.release(gen)

	log := o.logger.With("submission", id, "generation", gen, "file", file.Name)
	out = Outcome{SubmissionID: id, Generation: gen}
	labels := o.renderer.Labels()

	busy := false
	// Registered before the recover below so it runs after it.
	defer func() {
		if busy {
			o.whenCurrent(gen, func() { o.setBusy(false, log) })
		}
	}()
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		err := fmt.Errorf("%s: %v", labels.Unexpected, r)
		log.Error("submission aborted", "state", o.State(), "err", err)
		out.Err = err
		o.failSafely(gen, &out, o.renderer.Error(err.Error()), log)
	}()

	if !o.step(gen, StatePreviewing, log, func() { o.showPreview(preview, log) }) {
		out.Stale = true
		return out
	}
	out.State = StatePreviewing

	if !o.step(gen, StateAnalyzing, log, func() {
		o.resetDisplay(log)
		o.setBusy(true, log)
		busy = true
	}) {
		out.Stale = true
		return out
	}
	out.State = StateAnalyzing

	upload := file.Upload()

	raw, err := o.client.Predict(ctx, id, upload)
	out.Predict = classifyPredict(raw, err)
	if !o.isCurrent(gen) {
		out.Stale = true
		return out
	}
	switch out.Predict.Kind {
	case PredictTransportError:
		log.Error("predict failed", "stage", "predict", "status", out.Predict.Status, "err", out.Predict.Err)
		o.finishFailed(gen, &out, o.renderer.Error(out.Predict.Message(labels)), log)
		return out
	case PredictMalformedBody:
		log.Error("predict returned malformed body", "stage", "predict", "err", out.Predict.Err)
		o.finishFailed(gen, &out, o.renderer.Malformed(), log)
		return out
	}

	regions := out.Predict.Regions
	doc := o.renderer.Render(regions)
	if !o.step(gen, StateResultsDisplayed, log, func() {
		o.result = regions
		o.showResults(doc, log)
	}) {
		out.Stale = true
		return out
	}
	out.State = StateResultsDisplayed
	log.Info("predict complete", "stage", "predict", "regions", len(regions), "defects", doc.DefectCount())

	if !o.step(gen, StateUploadingProcessed, log, nil) {
		out.Stale = true
		return out
	}
	out.State = StateUploadingProcessed

	persisted, err := o.client.Persist(ctx, id, upload)
	out.Persist = StageResult{Attempted: true, URL: persisted.ResultURL, Err: err}
	if !o.whenCurrent(gen, func() {
		switch {
		case err != nil:
			log.Warn("persist failed", "stage", "persist", "status", statusOf(err), "err", err)
		case persisted.ResultURL == "":
			log.Info("persist returned no result_url", "stage", "persist")
		default:
			o.showProcessedLink(persisted.ResultURL, log)
		}
	}) {
		out.Stale = true
		return out
	}

	if !o.step(gen, StateFetchingReport, log, nil) {
		out.Stale = true
		return out
	}
	out.State = StateFetchingReport

	report, err := o.client.Report(ctx, id)
	out.Report = StageResult{Attempted: true, URL: report.ReportURL, Err: err}
	if !o.whenCurrent(gen, func() {
		switch {
		case err != nil:
			log.Warn("report fetch failed", "stage", "report", "status", statusOf(err), "err", err)
		case report.ReportURL == "":
			log.Info("report returned no report_url", "stage", "report")
		default:
			o.showReportLink(o.renderer.ReportLink(report.ReportURL, file.Name), log)
		}
	}) {
		out.Stale = true
		return out
	}

	if !o.step(gen, StateDone, log, nil) {
		out.Stale = true
		return out
	}
	out.State = StateDone
	log.Info("submission complete", "processed", out.Persist.URL != "", "report", out.Report.URL != "")
	return out
}

func (o *Orchestrator) begin(parent context.Context) (context.Context, uint64, string) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cancel != nil {
		o.cancel()
	}
	o.generation++
	o.cancel = cancel
	return ctx, o.generation, o.newID()
}

func (o *Orchestrator) release(gen uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if gen == o.generation && o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
}

func (o *Orchestrator) isCurrent(gen uint64) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return gen == o.generation
}

// whenCurrent runs fn under the lock if gen is still the live submission.
func (o *Orchestrator) whenCurrent(gen uint64, fn func()) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.generation {
		return false
	}
	if fn != nil {
		fn()
	}
	return true
}

// step is the single mutation point for the workflow state. It returns false
// only when gen is stale; an illegal transition is logged and refused.
func (o *Orchestrator) step(gen uint64, to State, log *slog.Logger, fn func()) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if gen != o.generation {
		return false
	}
	if err := checkTransition(o.state, to); err != nil {
		log.Error("state transition refused", "err", err)
		return true
	}
	o.state = to
	if o.sinks.Phase != nil {
		o.sinks.Phase.SetPhase(to)
	}
	if fn != nil {
		fn()
	}
	return true
}

func (o *Orchestrator) finishFailed(gen uint64, out *Outcome, doc render.Document, log *slog.Logger) {
	if o.step(gen, StateFailed, log, func() {
		o.result = nil
		o.showResults(doc, log)
	}) {
		out.State = StateFailed
		return
	}
	out.Stale = true
}

// failSafely is finishFailed for the recover path. A results sink that panics
// again while showing the error panel is logged and left alone.
func (o *Orchestrator) failSafely(gen uint64, out *Outcome, doc render.Document, log *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("error panel not shown", "err", r)
			if o.isCurrent(gen) {
				out.State = o.State()
			}
		}
	}()
	o.finishFailed(gen, out, doc, log)
}

// The helpers below run with o.mu held.

func (o *Orchestrator) missing(target string, log *slog.Logger) {
	log.Error("render target missing", "target", target)
}

func (o *Orchestrator) showPreview(p intake.Preview, log *slog.Logger) {
	if o.sinks.Preview == nil {
		o.missing("preview", log)
		return
	}
	o.sinks.Preview.ShowPreview(p)
}

func (o *Orchestrator) resetDisplay(log *slog.Logger) {
	o.result = nil
	if o.sinks.Results != nil {
		o.sinks.Results.ResetResults()
	} else {
		o.missing("results", log)
	}
	if o.sinks.ProcessedLink != nil {
		o.sinks.ProcessedLink.HideProcessedLink()
	}
	if o.sinks.Report != nil {
		o.sinks.Report.HideReportLink()
	}
}

func (o *Orchestrator) setBusy(busy bool, log *slog.Logger) {
	if o.sinks.Busy == nil {
		o.missing("busy indicator", log)
		return
	}
	o.sinks.Busy.SetBusy(busy)
}

func (o *Orchestrator) showResults(doc render.Document, log *slog.Logger) {
	if o.sinks.Results == nil {
		o.missing("results", log)
		return
	}
	o.sinks.Results.ShowResults(doc)
}

func (o *Orchestrator) showProcessedLink(url string, log *slog.Logger) {
	if o.sinks.ProcessedLink == nil {
		o.missing("processed image link", log)
		return
	}
	o.sinks.ProcessedLink.ShowProcessedLink(url)
}

func (o *Orchestrator) showReportLink(link render.ReportLink, log *slog.Logger) {
	if o.sinks.Report == nil {
		o.missing("report download", log)
		return
	}
	o.sinks.Report.ShowReportLink(link)
}

func statusOf(err error) int {
	var statusErr *inspect.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code
	}
	return 0
}
