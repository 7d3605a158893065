package document

import (
	"fmt"
	"io"
	"strings"
)

// RenderMarkdown writes d as markdown with a title front matter. Page breaks
// become thematic breaks; alignment and sizes are dropped.
func RenderMarkdown(w io.Writer, d *Document) error {
	var b strings.Builder
	fmt.Fprintf(&b, "---\ntitle: \"%s\"\n---\n\n", escapeQuotes(d.Title))

	for _, blk := range d.Blocks {
		switch blk.Kind {
		case BlockHeading:
			b.WriteString(strings.Repeat("#", blk.Level+1))
			b.WriteByte(' ')
			b.WriteString(oneLine(blk.Text))
			b.WriteString("\n\n")
		case BlockParagraph:
			if t := strings.TrimSpace(blk.Text); t != "" {
				b.WriteString(t)
				b.WriteString("\n\n")
			}
		case BlockPageBreak:
			b.WriteString("---\n\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func escapeQuotes(s string) string { return strings.ReplaceAll(s, "\"", "\\\"") }

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
