package ui

import (
	"fmt"
	"strings"

	"github.com/five82/defectscope/internal/intake"
	"github.com/five82/defectscope/internal/render"
	"github.com/five82/defectscope/internal/state"
)

// renderDocument draws the result tree for the results viewport.
func renderDocument(doc render.Document, labels render.Labels, styles Styles) string {
	if doc.Notice != nil {
		switch doc.Notice.Kind {
		case render.NoticeMalformed:
			return styles.WarningText.Render("⚠ " + doc.Notice.Text)
		default:
			return styles.DangerText.Render(fmt.Sprintf("✖ %s: %s", labels.ErrorPrefix, doc.Notice.Text))
		}
	}

	var b strings.Builder
	for i, region := range doc.Regions {
		if i > 0 {
			b.WriteString("\n")
		}
		icon := styles.SuccessText.Render(region.Icon.Glyph())
		if region.Icon == render.IconDefects {
			icon = styles.WarningText.Bold(true).Render(region.Icon.Glyph())
		}
		b.WriteString(icon + " " + styles.Text.Bold(true).Render(region.Title) + "\n")

		if len(region.Defects) == 0 {
			b.WriteString("   " + styles.MutedText.Render(region.Placeholder) + "\n")
			continue
		}
		for _, d := range region.Defects {
			b.WriteString("   " + styles.AccentText.Render(d.Title) + "\n")
			for _, f := range d.Fields {
				b.WriteString("     " + styles.MutedText.Render(f.Label+":") + " " + styles.Text.Render(f.Value) + "\n")
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderPreview describes the locally loaded image.
func renderPreview(p intake.Preview, styles Styles, width int) string {
	parts := []string{styles.Text.Bold(true).Render(p.Name), p.MIMEType, humanizeBytes(p.Size)}
	if dims := p.Dimensions(); dims != "" {
		parts = append(parts, dims)
	}
	line := strings.Join(parts, styles.FaintText.Render(" · "))
	url := styles.FaintText.Render(truncateMiddle(p.URL, max(width-2, 10)))
	return line + "\n" + url
}

// renderArtifacts draws the processed image link and the report panel.
func (m Model) renderArtifacts(snap state.Snapshot, styles Styles) string {
	var lines []string
	if snap.ProcessedURL != "" {
		target := m.resolve(snap.ProcessedURL)
		lines = append(lines, styles.AccentText.Render(m.labels.ProcessedImage)+": "+
			styles.Text.Render(truncateMiddle(target, max(m.width-24, 16)))+" "+
			styles.Key.Render("[v]"))
	}
	if snap.HasReport {
		lines = append(lines,
			styles.Title.Render(snap.Report.Title),
			styles.MutedText.Render(snap.Report.Caption),
			styles.Text.Render(snap.Report.Button)+" "+styles.FaintText.Render("→ "+snap.Report.Filename)+" "+
				styles.Key.Render("[d]"),
		)
	}
	return strings.Join(lines, "\n")
}

func (m Model) resolve(ref string) string {
	if m.resolver == nil {
		return ref
	}
	abs, err := m.resolver.Resolve(ref)
	if err != nil {
		return ref
	}
	return abs
}
