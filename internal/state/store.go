package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/defectscope/internal/intake"
	"github.com/five82/defectscope/internal/render"
	"github.com/five82/defectscope/internal/workflow"
)

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Phase        workflow.State
	Preview      intake.Preview
	HasPreview   bool
	Results      render.Document
	Busy         bool
	ProcessedURL string
	Report       render.ReportLink
	HasReport    bool
	LastUpdated  time.Time
	LastError    error
	Revision     uint64 // bumped on every change
}

// HasResults reports whether the results area has anything to show.
func (s Snapshot) HasResults() bool {
	return !s.Results.IsZero()
}

// Store holds what the screen should show. The orchestrator writes to it
// through the workflow sink interfaces and the UI reads snapshots.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

var (
	_ workflow.PreviewSink       = (*Store)(nil)
	_ workflow.ResultsSink       = (*Store)(nil)
	_ workflow.BusyIndicator     = (*Store)(nil)
	_ workflow.ProcessedLinkSink = (*Store)(nil)
	_ workflow.ReportSink        = (*Store)(nil)
	_ workflow.PhaseObserver     = (*Store)(nil)
)

func (s *Store) update(fn func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.snapshot)
	s.snapshot.Revision++
	s.snapshot.LastUpdated = time.Now()
}

// ShowPreview replaces the preview and clears any earlier error.
func (s *Store) ShowPreview(p intake.Preview) {
	s.update(func(snap *Snapshot) {
		snap.Preview = p
		snap.HasPreview = true
		snap.LastError = nil
	})
}

func (s *Store) ShowResults(doc render.Document) {
	doc = doc.Clone()
	s.update(func(snap *Snapshot) { snap.Results = doc })
}

func (s *Store) ResetResults() {
	s.update(func(snap *Snapshot) { snap.Results = render.Document{} })
}

func (s *Store) SetBusy(busy bool) {
	s.update(func(snap *Snapshot) { snap.Busy = busy })
}

func (s *Store) ShowProcessedLink(url string) {
	s.update(func(snap *Snapshot) { snap.ProcessedURL = url })
}

func (s *Store) HideProcessedLink() {
	s.update(func(snap *Snapshot) { snap.ProcessedURL = "" })
}

func (s *Store) ShowReportLink(link render.ReportLink) {
	s.update(func(snap *Snapshot) {
		snap.Report = link
		snap.HasReport = true
	})
}

func (s *Store) HideReportLink() {
	s.update(func(snap *Snapshot) {
		snap.Report = render.ReportLink{}
		snap.HasReport = false
	})
}

func (s *Store) SetPhase(phase workflow.State) {
	s.update(func(snap *Snapshot) { snap.Phase = phase })
}

// RecordError keeps err for display without touching the results. A nil err
// clears it.
func (s *Store) RecordError(err error) {
	s.update(func(snap *Snapshot) { snap.LastError = err })
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Results = s.snapshot.Results.Clone()
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// Revision returns the change counter without copying the snapshot.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Revision
}
