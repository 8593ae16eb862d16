package render

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReportFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "beam.png", "beam_report.docx"},
		{"absent", "", "report_report.docx"},
		{"only last extension", "weld.scan.tiff", "weld.scan_report.docx"},
		{"no extension", "panorama", "panorama_report.docx"},
		{"trailing dot kept", "odd.", "odd._report.docx"},
		{"blank name is still a name", " ", " _report.docx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ReportFilename(tt.in))
		})
	}
}

func TestReportLink(t *testing.T) {
	link := New(English).ReportLink("/static/reports/defects_report.docx", "beam.png")
	require.Equal(t, "/static/reports/defects_report.docx", link.URL)
	require.Equal(t, "beam_report.docx", link.Filename)
	require.Equal(t, English.ReportTitle, link.Title)
	require.Equal(t, English.ReportButton, link.Button)
	require.NotEmpty(t, link.Caption)

	out := PlainLink(link)
	require.Contains(t, out, "beam_report.docx")
	require.Contains(t, out, "/static/reports/defects_report.docx")
}
