package render

import (
	"regexp"
)

const (
	defaultReportBase = "report"
	reportSuffix      = "_report.docx"
)

var lastExtension = regexp.MustCompile(`\.[^/.]+$`)

// ReportLink is the download affordance for a generated report.
type ReportLink struct {
	URL      string
	Filename string
	Title    string
	Button   string
	Caption  string
}

// ReportFilename derives the suggested download name from the original
// display name: "beam.png" gives "beam_report.docx", an empty name gives
// "report_report.docx".
func ReportFilename(displayName string) string {
	base := defaultReportBase
	if displayName != "" {
		base = lastExtension.ReplaceAllString(displayName, "")
	}
	return base + reportSuffix
}

// ReportLink builds the download affordance for url.
func (r Renderer) ReportLink(url, displayName string) ReportLink {
	l := r.Labels()
	return ReportLink{
		URL:      url,
		Filename: ReportFilename(displayName),
		Title:    l.ReportTitle,
		Button:   l.ReportButton,
		Caption:  l.ReportCaption,
	}
}
