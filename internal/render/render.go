// Package render turns inspection results into a display tree.
//
// Everything here is pure: no I/O, no shared state. The workflow feeds the
// output to whatever display sink it was given; the terminal UI styles it with
// lipgloss and the headless runner prints it with Plain.
package render

import (
	"fmt"

	"github.com/five82/defectscope/internal/inspect"
)

// Icon is one of the two region status glyphs.
type Icon int

const (
	IconNoDefects Icon = iota
	IconDefects
)

// IconFor selects the icon purely from the region status.
func IconFor(status inspect.Status) Icon {
	if status == inspect.StatusNoDefects {
		return IconNoDefects
	}
	return IconDefects
}

// Glyph returns the terminal glyph for the icon.
func (i Icon) Glyph() string {
	if i == IconNoDefects {
		return "✔"
	}
	return "⚠"
}

// NoticeKind distinguishes the two single-notice documents.
type NoticeKind int

const (
	NoticeMalformed NoticeKind = iota
	NoticeError
)

// Notice replaces the region list when there is nothing to list.
type Notice struct {
	Kind NoticeKind
	Text string
}

// Field is one labeled value of a defect.
type Field struct {
	Label string
	Value string
}

// DefectBlock is a numbered defect within a region.
type DefectBlock struct {
	Number int
	Title  string
	Fields []Field
}

// RegionBlock is the rendering of one RegionResult.
type RegionBlock struct {
	Number      int
	Title       string
	Status      inspect.Status
	Icon        Icon
	Defects     []DefectBlock
	Placeholder string // set when Defects is empty
}

// Document is the full result display: either a notice or a list of regions.
type Document struct {
	Notice  *Notice
	Regions []RegionBlock
}

// IsZero reports whether the document has nothing to show.
func (d Document) IsZero() bool {
	return d.Notice == nil && len(d.Regions) == 0
}

// DefectCount returns the number of defect blocks across all regions.
func (d Document) DefectCount() int {
	n := 0
	for _, r := range d.Regions {
		n += len(r.Defects)
	}
	return n
}

// Clone returns a deep copy.
func (d Document) Clone() Document {
	out := Document{}
	if d.Notice != nil {
		n := *d.Notice
		out.Notice = &n
	}
	if d.Regions != nil {
		out.Regions = make([]RegionBlock, len(d.Regions))
		for i, r := range d.Regions {
			r.Defects = cloneDefects(r.Defects)
			out.Regions[i] = r
		}
	}
	return out
}

func cloneDefects(in []DefectBlock) []DefectBlock {
	if in == nil {
		return nil
	}
	out := make([]DefectBlock, len(in))
	for i, d := range in {
		d.Fields = append([]Field(nil), d.Fields...)
		out[i] = d
	}
	return out
}

// Renderer builds documents using a label set.
type Renderer struct {
	labels Labels
}

// New returns a Renderer for labels.
func New(labels Labels) Renderer {
	return Renderer{labels: labels}
}

// Labels returns the renderer's label set.
func (r Renderer) Labels() Labels {
	if r.labels.Locale == "" {
		return English
	}
	return r.labels
}

// RenderRaw decodes a predict body and renders it. A body that is not an
// array yields the malformed-data notice and no regions.
func (r Renderer) RenderRaw(raw []byte) Document {
	result, err := inspect.DecodePrediction(raw)
	if err != nil {
		return r.Malformed()
	}
	return r.Render(result)
}

// Render produces one block per region, in list order.
func (r Renderer) Render(result inspect.PredictionResult) Document {
	l := r.Labels()
	doc := Document{Regions: make([]RegionBlock, 0, len(result))}
	for i, region := range result {
		block := RegionBlock{
			Number: i + 1,
			Title:  fmt.Sprintf("%s %d: %s", l.Region, i+1, r.statusLabel(region.Status)),
			Status: region.Status,
			Icon:   IconFor(region.Status),
		}
		if len(region.Defects) == 0 {
			block.Placeholder = l.NoDefectsPlaceholder
		} else {
			block.Defects = make([]DefectBlock, 0, len(region.Defects))
			for j, d := range region.Defects {
				block.Defects = append(block.Defects, r.defect(j+1, d))
			}
		}
		doc.Regions = append(doc.Regions, block)
	}
	return doc
}

// Malformed is the notice shown when the predict body has the wrong shape.
func (r Renderer) Malformed() Document {
	return Document{Notice: &Notice{Kind: NoticeMalformed, Text: r.Labels().Malformed}}
}

// Error is the generic error panel.
func (r Renderer) Error(message string) Document {
	return Document{Notice: &Notice{Kind: NoticeError, Text: message}}
}

func (r Renderer) statusLabel(status inspect.Status) string {
	if status == inspect.StatusNoDefects {
		return r.Labels().NoDefects
	}
	return r.Labels().DefectsFound
}

func (r Renderer) defect(number int, d inspect.Defect) DefectBlock {
	l := r.Labels()
	fields := []Field{
		{Label: l.Class, Value: d.Class.String()},
		{Label: l.Confidence, Value: d.Confidence.String()},
		{Label: l.Coordinates, Value: d.Coordinates.String()},
		{Label: l.Length, Value: d.Length.String()},
	}
	if !d.Index.IsZero() {
		fields = append(fields, Field{Label: l.Index, Value: d.Index.String()})
	}
	return DefectBlock{
		Number: number,
		Title:  fmt.Sprintf("%s %d", l.Defect, number),
		Fields: fields,
	}
}
