package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/five82/defectscope/internal/inspect"
	"github.com/five82/defectscope/internal/intake"
	"github.com/five82/defectscope/internal/render"
	"github.com/five82/defectscope/internal/state"
	"github.com/five82/defectscope/internal/workflow"
)

// headless runs one submission and prints what the TUI would show.
type headless struct {
	orchestrator *workflow.Orchestrator
	store        *state.Store
	client       *inspect.Client
	labels       render.Labels
	downloadDir  string
	out          io.Writer
	logger       *slog.Logger
}

func (h headless) run(ctx context.Context, path string, download bool) error {
	file, preview, err := intake.FromPicker(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	outcome := h.orchestrator.Submit(ctx, file, preview)
	snap := h.store.Snapshot()

	fmt.Fprint(h.out, render.Plain(snap.Results, h.labels))
	if outcome.Failed() {
		return fmt.Errorf("%w: %s", ErrAnalysisFailed, file.Name)
	}

	if snap.ProcessedURL != "" {
		fmt.Fprintf(h.out, "\n%s: %s\n", h.labels.ProcessedImage, h.resolve(snap.ProcessedURL))
	}
	if snap.HasReport {
		link := snap.Report
		link.URL = h.resolve(link.URL)
		fmt.Fprint(h.out, "\n"+render.PlainLink(link))
	}

	if !download {
		return nil
	}
	if snap.HasReport {
		h.save(ctx, snap.Report.URL, snap.Report.Filename)
	}
	if snap.ProcessedURL != "" {
		h.save(ctx, snap.ProcessedURL, "")
	}
	return nil
}

func (h headless) save(ctx context.Context, ref, name string) {
	dest, n, err := inspect.SaveArtifact(ctx, h.client, ref, h.downloadDir, name)
	if err != nil {
		h.logger.Warn("download failed", "stage", "download", "ref", ref, "err", err)
		fmt.Fprintf(h.out, "download failed: %v\n", err)
		return
	}
	h.logger.Info("download complete", "stage", "download", "path", dest, "bytes", n)
	fmt.Fprintf(h.out, "saved %s\n", dest)
}

func (h headless) resolve(ref string) string {
	abs, err := h.client.Resolve(ref)
	if err != nil {
		return ref
	}
	return abs
}
