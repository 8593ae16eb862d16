package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/five82/defectscope/internal/inspect"
)

func TestRender_SingleNoDefectsRegion(t *testing.T) {
	doc := New(English).Render(inspect.PredictionResult{
		{Status: inspect.StatusNoDefects, Defects: nil},
	})

	require.Nil(t, doc.Notice)
	require.Len(t, doc.Regions, 1)
	region := doc.Regions[0]
	require.Equal(t, IconNoDefects, region.Icon)
	require.Equal(t, "Region 1: No defects", region.Title)
	require.Equal(t, "No defects detected", region.Placeholder)
	require.Empty(t, region.Defects)
}

func TestRender_TwoDefectsNumberedWithAllFields(t *testing.T) {
	doc := New(English).Render(inspect.PredictionResult{
		{Status: inspect.StatusNoDefects},
		{
			Status: inspect.StatusDefectsFound,
			Defects: []inspect.Defect{
				{
					Class:       inspect.StringValue("crack"),
					Confidence:  inspect.StringValue("91.20%"),
					Coordinates: inspect.RawValue(`[10, 20, 30, 40]`),
					Length:      inspect.RawValue(`12.5`),
				},
				{
					Class:       inspect.StringValue("pore"),
					Confidence:  inspect.RawValue(`0.5`),
					Coordinates: inspect.StringValue("(1,2)-(3,4)"),
					Length:      inspect.StringValue("3 mm"),
				},
			},
		},
	})

	require.Len(t, doc.Regions, 2)
	region := doc.Regions[1]
	require.Equal(t, 2, region.Number)
	require.Equal(t, "Region 2: Defects found", region.Title)
	require.Equal(t, IconDefects, region.Icon)
	require.Empty(t, region.Placeholder)
	require.Len(t, region.Defects, 2)

	for i, d := range region.Defects {
		require.Equal(t, i+1, d.Number)
		require.Len(t, d.Fields, 4)
		labels := []string{d.Fields[0].Label, d.Fields[1].Label, d.Fields[2].Label, d.Fields[3].Label}
		require.Equal(t, []string{"Class", "Confidence", "Coordinates", "Length along ruler"}, labels)
	}
	require.Equal(t, "Defect 1", region.Defects[0].Title)
	require.Equal(t, "Defect 2", region.Defects[1].Title)
	require.Equal(t, "10, 20, 30, 40", region.Defects[0].Fields[2].Value)
	require.Equal(t, "3 mm", region.Defects[1].Fields[3].Value)
	require.Equal(t, 2, doc.DefectCount())
}

func TestRender_IconFollowsStatusOnly(t *testing.T) {
	doc := New(English).Render(inspect.PredictionResult{
		{Status: "success"},
		{Status: inspect.StatusNoDefects, Defects: []inspect.Defect{{Class: inspect.StringValue("odd")}}},
	})

	require.Equal(t, IconDefects, doc.Regions[0].Icon)
	require.Equal(t, "No defects detected", doc.Regions[0].Placeholder)
	require.Equal(t, IconNoDefects, doc.Regions[1].Icon)
	require.Len(t, doc.Regions[1].Defects, 1)
}

func TestRender_IndexShownWhenPresent(t *testing.T) {
	doc := New(English).Render(inspect.PredictionResult{{
		Status:  inspect.StatusDefectsFound,
		Defects: []inspect.Defect{{Class: inspect.StringValue("slag"), Index: inspect.RawValue("3")}},
	}})
	fields := doc.Regions[0].Defects[0].Fields
	require.Len(t, fields, 5)
	require.Equal(t, Field{Label: "Index", Value: "3"}, fields[4])
}

func TestRenderRaw_ObjectBodyIsMalformed(t *testing.T) {
	doc := New(English).RenderRaw([]byte(`{"status":"no_defects"}`))

	require.NotNil(t, doc.Notice)
	require.Equal(t, NoticeMalformed, doc.Notice.Kind)
	require.Equal(t, English.Malformed, doc.Notice.Text)
	require.Empty(t, doc.Regions)
}

func TestRenderRaw_Array(t *testing.T) {
	doc := New(Russian).RenderRaw([]byte(`[{"status":"no_defects","defects":[]}]`))
	require.Nil(t, doc.Notice)
	require.Equal(t, "Область 1: Без дефектов", doc.Regions[0].Title)
}

func TestDocument_CloneIsDeep(t *testing.T) {
	orig := New(English).Render(inspect.PredictionResult{{
		Status:  inspect.StatusDefectsFound,
		Defects: []inspect.Defect{{Class: inspect.StringValue("crack")}},
	}})
	dup := orig.Clone()
	dup.Regions[0].Defects[0].Fields[0].Value = "changed"
	require.Equal(t, "crack", orig.Regions[0].Defects[0].Fields[0].Value)

	errDoc := New(English).Error("boom")
	errDup := errDoc.Clone()
	errDup.Notice.Text = "other"
	require.Equal(t, "boom", errDoc.Notice.Text)
	require.True(t, Document{}.IsZero())
}

func TestPlain(t *testing.T) {
	r := New(English)
	doc := r.Render(inspect.PredictionResult{
		{Status: inspect.StatusNoDefects},
		{Status: inspect.StatusDefectsFound, Defects: []inspect.Defect{{Class: inspect.StringValue("crack")}}},
	})
	out := Plain(doc, English)
	require.Contains(t, out, "✔ Region 1: No defects\n  No defects detected\n")
	require.Contains(t, out, "⚠ Region 2: Defects found\n  Defect 1\n    Class: crack\n")

	out = Plain(r.Error("Analysis failed: 500"), English)
	require.Equal(t, "Error: Analysis failed: 500\n", out)

	out = Plain(r.Malformed(), English)
	require.Equal(t, 1, strings.Count(out, English.Malformed))
}

func TestLabelsFor(t *testing.T) {
	require.Equal(t, Russian, LabelsFor(" RU "))
	require.Equal(t, English, LabelsFor("de"))
	require.Equal(t, English, Renderer{}.Labels())
}
