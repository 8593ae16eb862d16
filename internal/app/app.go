package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/defectscope/internal/config"
	"github.com/five82/defectscope/internal/inspect"
	"github.com/five82/defectscope/internal/prefs"
	"github.com/five82/defectscope/internal/render"
	"github.com/five82/defectscope/internal/state"
	"github.com/five82/defectscope/internal/ui"
	"github.com/five82/defectscope/internal/workflow"
)

// ErrAnalysisFailed is returned by a headless run whose predict stage failed.
var ErrAnalysisFailed = errors.New("analysis failed")

// Options configure the defectscope application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/defectscope/prefs.toml
	DotenvPath string // empty uses ./.env

	// Once analyzes this image without the TUI and prints the result.
	Once string
	// Download saves the report and processed image after a headless run.
	Download bool
	// Stdout receives headless output; nil means os.Stdout.
	Stdout io.Writer
}

// Run boots defectscope until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	if err := config.LoadDotenv(opts.DotenvPath); err != nil {
		return err
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := inspect.NewClient(cfg.BaseURL, cfg.RequestTimeout)
	if err != nil {
		return fmt.Errorf("init inspection client: %w", err)
	}

	labels := render.LabelsFor(cfg.Locale)
	store := &state.Store{}
	orchestrator := workflow.New(client, workflow.SinksFrom(store),
		workflow.WithLogger(logger),
		workflow.WithRenderer(render.New(labels)),
	)
	logger.Info("defectscope starting", "base_url", client.BaseURL(), "locale", labels.Locale, "headless", opts.Once != "")

	if opts.Once != "" {
		stdout := opts.Stdout
		if stdout == nil {
			stdout = os.Stdout
		}
		h := headless{
			orchestrator: orchestrator,
			store:        store,
			client:       client,
			labels:       labels,
			downloadDir:  cfg.DownloadDir,
			out:          stdout,
			logger:       logger,
		}
		return h.run(ctx, opts.Once, opts.Download)
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, _ := prefs.Load(prefsPath)

	return ui.Run(ui.Options{
		Context:     ctx,
		Store:       store,
		Submitter:   orchestrator,
		Fetcher:     client,
		Resolver:    client,
		Labels:      labels,
		BaseURL:     client.BaseURL(),
		DownloadDir: cfg.DownloadDir,
		LogPath:     cfg.LogFile,
		Prefs:       userPrefs,
		PrefsPath:   prefsPath,
		Logger:      logger,
	})
}

// openLogger sends both the standard logger (used by Bubble Tea) and slog to
// the configured log file.
func openLogger(cfg config.Config) (*slog.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := tea.LogToFile(cfg.LogFile, "defectscope")
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	return logger, func() { _ = f.Close() }, nil
}
