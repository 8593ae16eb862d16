package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/defectscope/internal/inspect"
	"github.com/five82/defectscope/internal/intake"
	"github.com/five82/defectscope/internal/prefs"
	"github.com/five82/defectscope/internal/render"
	"github.com/five82/defectscope/internal/state"
	"github.com/five82/defectscope/internal/workflow"
)

// View represents the current active view.
type View int

const (
	ViewMain View = iota
	ViewLogs
)

// Submitter runs one submission to completion. *workflow.Orchestrator
// implements it.
type Submitter interface {
	Submit(ctx context.Context, file intake.SubmittedFile, preview intake.Preview) workflow.Outcome
}

// Resolver turns server-relative artifact references into absolute URLs.
type Resolver interface {
	Resolve(ref string) (string, error)
}

// Options configures the UI.
type Options struct {
	Context      context.Context
	Store        *state.Store
	Submitter    Submitter
	Fetcher      inspect.Fetcher
	Resolver     Resolver
	Labels       render.Labels
	BaseURL      string
	DownloadDir  string
	LogPath      string
	RefreshEvery time.Duration
	Prefs        prefs.Prefs
	PrefsPath    string
	Logger       *slog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx         context.Context
	store       *state.Store
	submitter   Submitter
	fetcher     inspect.Fetcher
	resolver    Resolver
	labels      render.Labels
	baseURL     string
	downloadDir string
	logPath     string
	prefs       prefs.Prefs
	prefsPath   string
	refresh     time.Duration
	logger      *slog.Logger
	keys        keyMap

	// UI state
	theme  Theme
	view   View
	width  int
	height int
	ready  bool

	input        textinput.Model
	inputFocused bool
	spinner      spinner.Model

	// Data state
	snapshot state.Snapshot
	revision uint64
	inflight int

	resultsViewport viewport.Model

	logViewport viewport.Model
	logLines    []string
	logAll      bool

	modal    Modal
	showHelp bool

	flash   string
	flashAt time.Time
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	refresh := opts.RefreshEvery
	if refresh <= 0 {
		refresh = DefaultUIInterval
	}

	labels := opts.Labels
	if labels.Locale == "" {
		labels = render.English
	}

	p := opts.Prefs
	if p.Theme == "" {
		p.Theme = prefs.Defaults().Theme
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	input := textinput.New()
	input.Placeholder = "path to an image, or paste/drop a file here"
	input.Prompt = "image › "
	input.CharLimit = 4096
	if start := p.StartPath(); start != "" {
		input.SetValue(start)
	}
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return Model{
		ctx:          ctx,
		store:        opts.Store,
		submitter:    opts.Submitter,
		fetcher:      opts.Fetcher,
		resolver:     opts.Resolver,
		labels:       labels,
		baseURL:      opts.BaseURL,
		downloadDir:  opts.DownloadDir,
		logPath:      opts.LogPath,
		prefs:        p,
		prefsPath:    opts.PrefsPath,
		refresh:      refresh,
		logger:       logger,
		keys:         DefaultKeyMap(),
		theme:        GetTheme(p.Theme),
		view:         ViewMain,
		input:        input,
		inputFocused: true,
		spinner:      spin,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		m.spinner.Tick,
		tickCmd(m.refresh),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case intakeMsg:
		return m.handleIntake(msg)

	case submitDoneMsg:
		return m.handleSubmitDone(msg)

	case downloadDoneMsg:
		m.handleDownloadDone(msg)
		return m, nil

	case logLinesMsg:
		m.handleLogLines(msg)
		return m, nil
	}

	if m.inputFocused {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	switch m.view {
	case ViewLogs:
		b.WriteString(m.renderLogs())
	default:
		b.WriteString(m.renderMain())
	}
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderMain() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.snapshot.HasPreview:
		b.WriteString(renderPreview(m.snapshot.Preview, styles, m.width))
	default:
		b.WriteString(styles.FaintText.Render("no image loaded") + "\n")
	}
	b.WriteString("\n")

	b.WriteString(m.resultsViewport.View())
	b.WriteString("\n")

	// The artifacts block always takes artifactsHeight lines so the footer
	// stays put.
	artifacts := m.renderArtifacts(m.snapshot, styles)
	lines := 0
	if artifacts != "" {
		lines = strings.Count(artifacts, "\n") + 1
	}
	pad := artifactsHeight - lines
	if lines == 0 {
		pad = artifactsHeight - 1
	}
	if pad > 0 {
		artifacts += strings.Repeat("\n", pad)
	}
	b.WriteString(artifacts)
	return b.String()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal != nil {
		modal, cmd, closed := m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	// A bracketed paste is how terminals deliver dropped files.
	if msg.Paste {
		payload := string(msg.Runes)
		return m, intakeCmd(func() (intake.SubmittedFile, intake.Preview, error) {
			return intake.FromDrop(payload)
		})
	}

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.inputFocused {
		switch {
		case key.Matches(msg, m.keys.Submit):
			path := strings.TrimSpace(m.input.Value())
			if path == "" {
				return m, nil
			}
			return m, intakeCmd(func() (intake.SubmittedFile, intake.Preview, error) {
				return intake.FromPicker(path)
			})
		case key.Matches(msg, m.keys.Escape):
			m.inputFocused = false
			m.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		m.renderResults()
		return m, nil

	case key.Matches(msg, m.keys.FocusInput):
		m.view = ViewMain
		m.inputFocused = true
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.DownloadReport):
		if !m.snapshot.HasReport {
			return m, nil
		}
		return m, m.downloadCmd("report", m.snapshot.Report.URL, m.snapshot.Report.Filename)

	case key.Matches(msg, m.keys.DownloadProcessed):
		if m.snapshot.ProcessedURL == "" {
			return m, nil
		}
		return m, m.downloadCmd("processed image", m.snapshot.ProcessedURL, "")

	case key.Matches(msg, m.keys.ViewLogs):
		if m.view == ViewLogs {
			m.view = ViewMain
			return m, nil
		}
		m.view = ViewLogs
		return m, m.refreshLogs()

	case key.Matches(msg, m.keys.ToggleLogLevels) && m.view == ViewLogs:
		m.logAll = !m.logAll
		return m, m.refreshLogs()

	case key.Matches(msg, m.keys.Escape):
		m.view = ViewMain
		return m, nil
	}

	m.scroll(msg)
	return m, nil
}

func (m *Model) scroll(msg tea.KeyMsg) {
	vp := &m.resultsViewport
	if m.view == ViewLogs {
		vp = &m.logViewport
	}
	switch {
	case key.Matches(msg, m.keys.Up):
		vp.LineUp(1)
	case key.Matches(msg, m.keys.Down):
		vp.LineDown(1)
	case key.Matches(msg, m.keys.Top):
		vp.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		vp.GotoBottom()
	case key.Matches(msg, m.keys.HalfPageUp):
		vp.HalfViewUp()
	case key.Matches(msg, m.keys.HalfPageDown):
		vp.HalfViewDown()
	}
}

// handleTick processes the refresh tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.view == ViewLogs {
		if cmd := m.refreshLogs(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	cmds = append(cmds, tickCmd(m.refresh))
	return m, tea.Batch(cmds...)
}

func (m *Model) applySnapshot(snap state.Snapshot) {
	m.snapshot = snap
	if snap.Revision == m.revision && m.revision != 0 {
		return
	}
	m.revision = snap.Revision
	m.renderResults()
}

func (m *Model) renderResults() {
	m.resultsViewport.SetContent(renderDocument(m.snapshot.Results, m.labels, m.theme.Styles()))
}

func (m *Model) resize() {
	bodyHeight := m.height - headerHeight - footerHeight
	resultsHeight := bodyHeight - intakeHeight - previewHeight - artifactsHeight
	if resultsHeight < 3 {
		resultsHeight = 3
	}
	m.input.Width = max(m.width-len(m.input.Prompt)-2, 10)
	m.resultsViewport.Width = m.width
	m.resultsViewport.Height = resultsHeight
	m.logViewport.Width = m.width
	m.logViewport.Height = max(bodyHeight-1, 3)
	m.renderResults()
}

func (m Model) handleIntake(msg intakeMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		switch {
		case errors.Is(msg.err, intake.ErrNoFile):
			return m, nil
		case errors.Is(msg.err, intake.ErrInvalidFileType):
			m.modal = newAlert(m.labels.InvalidFileType, msg.err.Error())
		case errors.Is(msg.err, intake.ErrEmptyFile):
			m.modal = newAlert(m.labels.EmptyFile, msg.err.Error())
		default:
			m.modal = newAlert(m.labels.ErrorPrefix, msg.err.Error())
		}
		m.logger.Info("file rejected", "err", msg.err)
		return m, nil
	}

	if m.submitter == nil {
		m.modal = newAlert(m.labels.ErrorPrefix, "no backend configured")
		return m, nil
	}

	if msg.file.Path != "" {
		m.input.SetValue(msg.file.Path)
		m.input.CursorEnd()
	}
	m.inflight++
	return m, tea.Batch(
		submitCmd(m.ctx, m.submitter, msg.file, msg.preview),
		fetchSnapshotCmd(m.store),
	)
}

func (m Model) handleSubmitDone(msg submitDoneMsg) (tea.Model, tea.Cmd) {
	if m.inflight > 0 {
		m.inflight--
	}
	out := msg.outcome
	if !out.Stale && !out.Failed() && msg.dir != "" {
		m.prefs.LastDir = msg.dir
		m.savePrefs()
	}
	return m, fetchSnapshotCmd(m.store)
}

// handleDownloadDone records a failed download in the store so it stays in
// the footer until the next success or submission.
func (m *Model) handleDownloadDone(msg downloadDoneMsg) {
	if msg.err != nil {
		m.flash = ""
		m.logger.Warn("download failed", "stage", "download", "what", msg.what, "err", msg.err)
		m.recordError(fmt.Errorf("%s download failed: %w", msg.what, msg.err))
		return
	}
	m.flashAt = time.Now()
	m.flash = fmt.Sprintf("saved %s to %s (%s)", msg.what, msg.path, humanizeBytes(msg.n))
	if m.snapshot.LastError != nil {
		m.recordError(nil)
	}
	m.logger.Info("download complete", "stage", "download", "what", msg.what, "path", msg.path, "bytes", msg.n)
}

func (m *Model) recordError(err error) {
	if m.store == nil {
		m.snapshot.LastError = err
		return
	}
	m.store.RecordError(err)
	m.applySnapshot(m.store.Snapshot())
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("save prefs failed", "err", err)
	}
}

func (m Model) downloadCmd(what, ref, name string) tea.Cmd {
	if m.fetcher == nil {
		return nil
	}
	ctx, fetcher, dir := m.ctx, m.fetcher, m.downloadDir
	return func() tea.Msg {
		path, n, err := inspect.SaveArtifact(ctx, fetcher, ref, dir, name)
		return downloadDoneMsg{what: what, path: path, n: n, err: err}
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type intakeMsg struct {
	file    intake.SubmittedFile
	preview intake.Preview
	err     error
}

type submitDoneMsg struct {
	outcome workflow.Outcome
	dir     string
}

type downloadDoneMsg struct {
	what string
	path string
	n    int64
	err  error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func intakeCmd(load func() (intake.SubmittedFile, intake.Preview, error)) tea.Cmd {
	return func() tea.Msg {
		file, preview, err := load()
		return intakeMsg{file: file, preview: preview, err: err}
	}
}

func submitCmd(ctx context.Context, s Submitter, file intake.SubmittedFile, preview intake.Preview) tea.Cmd {
	return func() tea.Msg {
		out := s.Submit(ctx, file, preview)
		dir := ""
		if file.Path != "" {
			dir = filepath.Dir(file.Path)
		}
		return submitDoneMsg{outcome: out, dir: dir}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
