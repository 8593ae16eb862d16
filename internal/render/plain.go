package render

import (
	"fmt"
	"strings"
)

// Plain renders a document as indented plain text.
func Plain(doc Document, labels Labels) string {
	var b strings.Builder
	if doc.Notice != nil {
		if doc.Notice.Kind == NoticeError {
			fmt.Fprintf(&b, "%s: %s\n", labels.ErrorPrefix, doc.Notice.Text)
		} else {
			fmt.Fprintf(&b, "%s\n", doc.Notice.Text)
		}
		return b.String()
	}
	for i, region := range doc.Regions {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %s\n", region.Icon.Glyph(), region.Title)
		if len(region.Defects) == 0 {
			fmt.Fprintf(&b, "  %s\n", region.Placeholder)
			continue
		}
		for _, d := range region.Defects {
			fmt.Fprintf(&b, "  %s\n", d.Title)
			for _, f := range d.Fields {
				fmt.Fprintf(&b, "    %s: %s\n", f.Label, f.Value)
			}
		}
	}
	return b.String()
}

// PlainLink renders a report link as plain text.
func PlainLink(link ReportLink) string {
	return fmt.Sprintf("%s\n  %s: %s\n  save as: %s\n  %s\n", link.Title, link.Button, link.URL, link.Filename, link.Caption)
}
