package app

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/five82/defectscope/internal/config"
	"github.com/five82/defectscope/internal/inspect"
)

type backend struct {
	predictStatus int
	predictBody   string
}

func (b backend) handler(t *testing.T) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc(inspect.PredictPath, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(inspect.SubmissionHeader) == "" {
			t.Errorf("predict request without %s", inspect.SubmissionHeader)
		}
		if b.predictStatus != 0 {
			w.WriteHeader(b.predictStatus)
			return
		}
		_, _ = io.WriteString(w, b.predictBody)
	})
	mux.HandleFunc(inspect.PersistPath, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"result_url":"/media/beam_processed.png"}`)
	})
	mux.HandleFunc(inspect.ReportPath, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"report_url":"/static/reports/defects_report.docx"}`)
	})
	mux.HandleFunc("/media/beam_processed.png", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "processed")
	})
	mux.HandleFunc("/static/reports/defects_report.docx", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "report")
	})
	return mux
}

type fixture struct {
	configPath  string
	imagePath   string
	downloadDir string
	logFile     string
}

func setup(t *testing.T, baseURL string) fixture {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(config.EnvBaseURL, "")
	t.Setenv(config.EnvLocale, "")

	dir := t.TempDir()
	f := fixture{
		configPath:  filepath.Join(dir, "config.toml"),
		imagePath:   filepath.Join(dir, "beam.png"),
		downloadDir: filepath.Join(dir, "downloads"),
		logFile:     filepath.Join(dir, "logs", "defectscope.log"),
	}
	cfg := "base_url = \"" + baseURL + "\"\n" +
		"download_dir = \"" + filepath.ToSlash(f.downloadDir) + "\"\n" +
		"log_file = \"" + filepath.ToSlash(f.logFile) + "\"\n"
	require.NoError(t, os.WriteFile(f.configPath, []byte(cfg), 0o600))

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	require.NoError(t, os.WriteFile(f.imagePath, buf.Bytes(), 0o600))
	return f
}

func TestRunOnce_PrintsResultsAndDownloads(t *testing.T) {
	srv := httptest.NewServer(backend{
		predictBody: `[{"status":"no_defects","defects":[]},{"status":"defects_found","defects":[{"class":"pore","confidence":"0.8","coordinates":"x=1,y=2","length":"3 mm"}]}]`,
	}.handler(t))
	defer srv.Close()
	f := setup(t, srv.URL)

	var out bytes.Buffer
	err := Run(context.Background(), Options{
		ConfigPath: f.configPath,
		DotenvPath: filepath.Join(t.TempDir(), "absent.env"),
		Once:       f.imagePath,
		Download:   true,
		Stdout:     &out,
	})
	require.NoError(t, err)

	text := out.String()
	require.Contains(t, text, "Region 1: No defects")
	require.Contains(t, text, "Region 2: Defects found")
	require.Contains(t, text, "pore")
	require.Contains(t, text, srv.URL+"/media/beam_processed.png")
	require.Contains(t, text, "beam_report.docx")
	require.Contains(t, text, srv.URL+"/static/reports/defects_report.docx")

	report, err := os.ReadFile(filepath.Join(f.downloadDir, "beam_report.docx"))
	require.NoError(t, err)
	require.Equal(t, "report", string(report))
	processed, err := os.ReadFile(filepath.Join(f.downloadDir, "beam_processed.png"))
	require.NoError(t, err)
	require.Equal(t, "processed", string(processed))

	logData, err := os.ReadFile(f.logFile)
	require.NoError(t, err)
	require.Contains(t, string(logData), "submission complete")
}

func TestRunOnce_PredictFailureIsFatal(t *testing.T) {
	srv := httptest.NewServer(backend{predictStatus: http.StatusInternalServerError}.handler(t))
	defer srv.Close()
	f := setup(t, srv.URL)

	var out bytes.Buffer
	err := Run(context.Background(), Options{
		ConfigPath: f.configPath,
		DotenvPath: filepath.Join(t.TempDir(), "absent.env"),
		Once:       f.imagePath,
		Stdout:     &out,
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrAnalysisFailed))
	require.Contains(t, out.String(), "Analysis failed: 500")
	require.NotContains(t, out.String(), "beam_report.docx")
}

func TestRunOnce_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(backend{predictBody: `{"detail":"oops"}`}.handler(t))
	defer srv.Close()
	f := setup(t, srv.URL)

	var out bytes.Buffer
	err := Run(context.Background(), Options{
		ConfigPath: f.configPath,
		DotenvPath: filepath.Join(t.TempDir(), "absent.env"),
		Once:       f.imagePath,
		Stdout:     &out,
	})
	require.ErrorIs(t, err, ErrAnalysisFailed)
	require.Equal(t, 1, strings.Count(out.String(), "Malformed data received from the server"))
}

func TestRunOnce_RejectsNonImage(t *testing.T) {
	srv := httptest.NewServer(backend{predictBody: `[]`}.handler(t))
	defer srv.Close()
	f := setup(t, srv.URL)

	txt := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("hello"), 0o600))

	err := Run(context.Background(), Options{
		ConfigPath: f.configPath,
		DotenvPath: filepath.Join(t.TempDir(), "absent.env"),
		Once:       txt,
		Stdout:     io.Discard,
	})
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrAnalysisFailed))
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("base_url = "), 0o600))

	err := Run(context.Background(), Options{
		ConfigPath: path,
		DotenvPath: filepath.Join(t.TempDir(), "absent.env"),
		Once:       "unused.png",
	})
	require.ErrorContains(t, err, "load config")
}
