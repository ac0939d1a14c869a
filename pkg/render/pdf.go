// Package render provides graphics targets for the absolute-position compositor.
package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"slip-print/pkg/layout"
)

const pointsPerCm = 72 / 2.54

// courierAscent is the Courier ascender in font-size units (AFM: 629/1000).
const courierAscent = 0.629

// PDF draws text with a core PDF font on a page the size of the form.
// Positions are the top of the text, as with GDI's default TextOut alignment.
type PDF struct {
	FontFamily string
	FontSize   float64
	// Ascent is the part of FontSize above the baseline.
	Ascent float64
	// Created is stamped as the creation date; zero means now.
	Created time.Time

	doc *fpdf.Fpdf
	tr  func(string) string
}

// NewPDF returns a target writing 10pt Courier.
func NewPDF() *PDF {
	return &PDF{FontFamily: "Courier", FontSize: 10, Ascent: courierAscent}
}

// Begin starts a new document with one page of the given size.
func (p *PDF) Begin(page layout.PageSize) error {
	p.doc = fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: page.Width * pointsPerCm, Ht: page.Height * pointsPerCm},
	})
	p.doc.SetCatalogSort(true)
	if !p.Created.IsZero() {
		p.doc.SetCreationDate(p.Created)
		p.doc.SetModificationDate(p.Created)
	}
	p.doc.SetTitle(page.Name, true)
	p.doc.SetMargins(0, 0, 0)
	p.doc.SetAutoPageBreak(false, 0)
	p.doc.SetFont(p.FontFamily, "", p.FontSize)
	p.doc.AddPage()
	// core fonts are cp1252
	p.tr = p.doc.UnicodeTranslatorFromDescriptor("")
	return p.doc.Error()
}

// TextOut flips the MM_TWIPS y axis back to the PDF's downward page space
// and drops to the baseline, since fpdf places text by its baseline.
func (p *PDF) TextOut(x, y int, text string) error {
	if p.doc == nil {
		return fmt.Errorf("pdf: TextOut before Begin")
	}
	p.doc.Text(layout.TwipsToPoints(x), p.Baseline(y), p.tr(text))
	return p.doc.Error()
}

// Baseline returns the page y, in points, of text whose top is at twips y.
func (p *PDF) Baseline(y int) float64 {
	return layout.TwipsToPoints(-y) + p.FontSize*p.Ascent
}

// End writes out the document; the target must Begin again before reuse.
func (p *PDF) End() ([]byte, error) {
	if p.doc == nil {
		return nil, fmt.Errorf("pdf: End before Begin")
	}
	var buf bytes.Buffer
	if err := p.doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	p.doc = nil
	return buf.Bytes(), nil
}
