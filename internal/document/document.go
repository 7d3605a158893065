// Package document holds the in-progress manuscript for one book and writes
// it to disk.
package document

import "strings"

type BlockKind int

const (
	BlockHeading BlockKind = iota
	BlockParagraph
	BlockPageBreak
)

// Block is one element of a document. Level applies to headings only: 0 is the
// title, 1 a chapter and 2 a subsection. Size overrides the default point size.
type Block struct {
	Kind   BlockKind
	Level  int
	Text   string
	Center bool
	Size   float64
}

// Document is an ordered block sequence keyed by book title.
type Document struct {
	Title  string
	Blocks []Block
}

func New(title string) *Document {
	return &Document{Title: title}
}

func (d *Document) Heading(text string, level int) *Document {
	d.Blocks = append(d.Blocks, Block{Kind: BlockHeading, Level: level, Text: text})
	return d
}

func (d *Document) CenteredHeading(text string, level int, size float64) *Document {
	d.Blocks = append(d.Blocks, Block{Kind: BlockHeading, Level: level, Text: text, Center: true, Size: size})
	return d
}

// Paragraph appends text. Empty text is kept as a spacer.
func (d *Document) Paragraph(text string) *Document {
	d.Blocks = append(d.Blocks, Block{Kind: BlockParagraph, Text: text})
	return d
}

func (d *Document) CenteredParagraph(text string, size float64) *Document {
	d.Blocks = append(d.Blocks, Block{Kind: BlockParagraph, Text: text, Center: true, Size: size})
	return d
}

func (d *Document) PageBreak() *Document {
	d.Blocks = append(d.Blocks, Block{Kind: BlockPageBreak})
	return d
}

// Clone returns a copy that does not share the block slice.
func (d *Document) Clone() *Document {
	c := &Document{Title: d.Title, Blocks: make([]Block, len(d.Blocks))}
	copy(c.Blocks, d.Blocks)
	return c
}

// Headings lists heading texts in order.
func (d *Document) Headings() []string {
	var out []string
	for _, b := range d.Blocks {
		if b.Kind == BlockHeading {
			out = append(out, b.Text)
		}
	}
	return out
}

// Text joins all heading and paragraph text, one block per line.
func (d *Document) Text() string {
	var sb strings.Builder
	for _, b := range d.Blocks {
		if b.Kind == BlockPageBreak {
			continue
		}
		sb.WriteString(b.Text)
		sb.WriteByte('\n')
	}
	return sb.String()
}
