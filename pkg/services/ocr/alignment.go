package ocr

import (
	"math"
	"strings"

	"slip-print/pkg/layout"
	"slip-print/pkg/models"
)

// DefaultTolerance is how far, in cm, a value may land from its field.
const DefaultTolerance = 0.3

// Check compares one placed value with where it was read back.
type Check struct {
	Section   string  `json:"section"`
	Field     string  `json:"field"`
	Row       int     `json:"row"`
	Text      string  `json:"text"`
	ExpectedX float64 `json:"expected_x"`
	ExpectedY float64 `json:"expected_y"`
	Found     bool    `json:"found"`
	ActualX   float64 `json:"actual_x,omitempty"`
	ActualY   float64 `json:"actual_y,omitempty"`
	DX        float64 `json:"dx,omitempty"`
	DY        float64 `json:"dy,omitempty"`
	Aligned   bool    `json:"aligned"`
}

// Report summarizes an alignment check. MeanDX and MeanDY are the average
// offset of the values found, which is the correction to feed the printer.
type Report struct {
	Checks  []Check `json:"checks"`
	Found   int     `json:"found"`
	Aligned int     `json:"aligned"`
	MeanDX  float64 `json:"mean_dx"`
	MeanDY  float64 `json:"mean_dy"`
}

// CheckAlignment locates every placement in the OCR lines of a scan taken at
// dpi. A value's position is the left edge and baseline of its first word.
// When a value appears more than once the occurrence nearest its field wins.
func CheckAlignment(placements []layout.Placement, lines []models.TextLine, dpi, tolerance float64) Report {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	var r Report
	for _, p := range placements {
		c := Check{
			Section:   p.Section.String(),
			Field:     p.Field.Name,
			Row:       p.Row,
			Text:      p.Text,
			ExpectedX: p.X,
			ExpectedY: p.Y,
		}
		if x, y, ok := locate(p, lines, dpi); ok {
			c.Found = true
			c.ActualX, c.ActualY = x, y
			c.DX, c.DY = x-p.X, y-p.Y
			c.Aligned = math.Abs(c.DX) <= tolerance && math.Abs(c.DY) <= tolerance
			r.Found++
			r.MeanDX += c.DX
			r.MeanDY += c.DY
			if c.Aligned {
				r.Aligned++
			}
		}
		r.Checks = append(r.Checks, c)
	}
	if r.Found > 0 {
		r.MeanDX /= float64(r.Found)
		r.MeanDY /= float64(r.Found)
	}
	return r
}

func locate(p layout.Placement, lines []models.TextLine, dpi float64) (float64, float64, bool) {
	want := strings.Fields(normalize(p.Text))
	if len(want) == 0 {
		return 0, 0, false
	}
	best := math.Inf(1)
	var bx, by float64
	for _, l := range lines {
		words := l.Words
		if len(words) == 0 {
			words = []models.TextLine{l}
		}
		for i := 0; i+len(want) <= len(words); i++ {
			if !matches(words[i:i+len(want)], want) {
				continue
			}
			w := words[i]
			x := layout.PixelsToCm(w.X, dpi)
			y := layout.PixelsToCm(w.Y+w.Height, dpi)
			if d := math.Hypot(x-p.X, y-p.Y); d < best {
				best, bx, by = d, x, y
			}
		}
	}
	return bx, by, !math.IsInf(best, 1)
}

func matches(words []models.TextLine, want []string) bool {
	for i, w := range words {
		if normalize(w.Text) != want[i] {
			return false
		}
	}
	return true
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
