package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/five82/defectscope/internal/inspect"
	"github.com/five82/defectscope/internal/intake"
	"github.com/five82/defectscope/internal/render"
)

func TestRenderDocumentRegions(t *testing.T) {
	r := render.New(render.English)
	doc := r.Render(inspect.PredictionResult{
		{Status: inspect.StatusNoDefects},
		{Status: inspect.StatusDefectsFound, Defects: []inspect.Defect{{
			Class:       inspect.StringValue("crack"),
			Confidence:  inspect.RawValue("0.91"),
			Coordinates: inspect.RawValue("[1,2,3,4]"),
			Length:      inspect.StringValue("12 mm"),
		}}},
	})

	out := renderDocument(doc, render.English, GetTheme("Nightfox").Styles())
	require.Contains(t, out, "Region 1: No defects")
	require.Contains(t, out, "No defects detected")
	require.Contains(t, out, "Region 2: Defects found")
	require.Contains(t, out, "Defect 1")
	require.Contains(t, out, "crack")
	require.Contains(t, out, "1, 2, 3, 4")
	require.Contains(t, out, "12 mm")
	require.Less(t, strings.Index(out, "Region 1"), strings.Index(out, "Region 2"))
}

func TestRenderDocumentNotices(t *testing.T) {
	r := render.New(render.English)
	styles := GetTheme("Slate").Styles()

	out := renderDocument(r.Malformed(), render.English, styles)
	require.Contains(t, out, render.English.Malformed)
	require.NotContains(t, out, "Region")

	out = renderDocument(r.Error("Analysis failed: 500"), render.English, styles)
	require.Contains(t, out, "Error: Analysis failed: 500")
}

func TestRenderDocumentEmpty(t *testing.T) {
	out := renderDocument(render.Document{}, render.English, GetTheme("Nightfox").Styles())
	require.Empty(t, out)
}

func TestRenderPreview(t *testing.T) {
	out := renderPreview(intake.Preview{
		URL:      "file:///srv/scans/beam.png",
		Name:     "beam.png",
		MIMEType: "image/png",
		Size:     2048,
		Width:    640,
		Height:   480,
	}, GetTheme("Nightfox").Styles(), 120)

	require.Contains(t, out, "beam.png")
	require.Contains(t, out, "image/png")
	require.Contains(t, out, "2.0 KiB")
	require.Contains(t, out, "file:///srv/scans/beam.png")
}

func TestHumanizeBytes(t *testing.T) {
	require.Equal(t, "512 B", humanizeBytes(512))
	require.Equal(t, "1.0 KiB", humanizeBytes(1024))
	require.Equal(t, "1.5 MiB", humanizeBytes(3*512*1024))
}

func TestTruncateMiddle(t *testing.T) {
	require.Equal(t, "short", truncateMiddle("short", 10))
	got := truncateMiddle("file:///very/long/path/to/an/image.png", 15)
	require.Equal(t, 15, len([]rune(got)))
	require.True(t, strings.HasPrefix(got, "file:/"))
	require.True(t, strings.HasSuffix(got, ".png"))
}
