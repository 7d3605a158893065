package document

import (
	"fmt"
	"io"
	"os"

	"github.com/go-pdf/fpdf"
	rpdf "rsc.io/pdf"
)

const (
	fontFamily = "Helvetica"
	bodySize   = 11.0
	margin     = 20.0
)

var headingSizes = map[int]float64{0: 20, 1: 16, 2: 13}

// RenderPDF lays d out on A4 pages. Page breaks are applied lazily so a
// trailing break never produces a blank page.
func RenderPDF(w io.Writer, d *Document) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(d.Title, true)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pendingBreak := false
	for _, blk := range d.Blocks {
		if blk.Kind == BlockPageBreak {
			pendingBreak = true
			continue
		}
		if pendingBreak {
			pdf.AddPage()
			pendingBreak = false
		}

		align := "L"
		if blk.Center {
			align = "C"
		}
		switch blk.Kind {
		case BlockHeading:
			size := blk.Size
			if size == 0 {
				size = headingSize(blk.Level)
			}
			pdf.SetFont(fontFamily, "B", size)
			pdf.MultiCell(0, size*0.5, tr(blk.Text), "", align, false)
			pdf.Ln(size * 0.3)
		case BlockParagraph:
			size := blk.Size
			if size == 0 {
				size = bodySize
			}
			pdf.SetFont(fontFamily, "", size)
			pdf.MultiCell(0, size*0.5, tr(blk.Text), "", align, false)
			pdf.Ln(size * 0.3)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func headingSize(level int) float64 {
	if s, ok := headingSizes[level]; ok {
		return s
	}
	return bodySize + 1
}

// PageCount reports the number of pages in a PDF file.
func PageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return 0, err
	}
	doc, err := rpdf.NewReader(f, fi.Size())
	if err != nil {
		return 0, fmt.Errorf("read pdf %s: %w", path, err)
	}
	return doc.NumPage(), nil
}
