package compose

import (
	"math"
	"strings"

	"slip-print/pkg/layout"
)

// floorSlack absorbs float noise so that 4.80/0.40 floors to 12, not 11.
const floorSlack = 1e-9

// Metrics approximate a monospace font on the printer.
type Metrics struct {
	CharWidth  float64 // cm per character
	LineHeight float64 // cm per line feed
}

// DefaultMetrics match the TM-U950 slip station in its default font.
var DefaultMetrics = Metrics{CharWidth: 0.25, LineHeight: 0.40}

// orDefault replaces metrics that cannot divide a distance with DefaultMetrics.
func (m Metrics) orDefault() Metrics {
	if m.CharWidth <= 0 || m.LineHeight <= 0 {
		return DefaultMetrics
	}
	return m
}

// Cursor is the last vertical position emitted, in cm.
type Cursor struct {
	LastY float64
}

// Fragment returns the text that moves from cur to (x, y) and prints text,
// and the new cursor. A y above the cursor emits no line feeds; the cursor
// still records y. Zero or negative metrics fall back to DefaultMetrics.
func (m Metrics) Fragment(cur Cursor, x, y float64, text string) (string, Cursor) {
	m = m.orDefault()
	spaces := count(x / m.CharWidth)
	lines := count((y - cur.LastY) / m.LineHeight)

	var b strings.Builder
	b.Grow(lines + spaces + len(text) + 1)
	b.WriteString(strings.Repeat("\n", lines))
	b.WriteString(strings.Repeat(" ", spaces))
	b.WriteString(text)
	b.WriteByte('\n')
	return b.String(), Cursor{LastY: y}
}

func count(v float64) int {
	n := int(math.Floor(v + floorSlack))
	if n < 0 {
		return 0
	}
	return n
}

// RawText positions text with line feeds and spaces, for printers without
// absolute positioning.
type RawText struct {
	Metrics Metrics

	cur Cursor
	buf strings.Builder
}

// NewRawText returns a raw text compositor; unusable metrics become DefaultMetrics.
func NewRawText(m Metrics) *RawText {
	return &RawText{Metrics: m.orDefault()}
}

// Begin moves the cursor back to the top of the page and drops any output.
func (r *RawText) Begin(*layout.Template) error {
	r.cur = Cursor{}
	r.buf.Reset()
	return nil
}

// Place appends the line feeds, padding and text for p.
func (r *RawText) Place(p layout.Placement) error {
	var s string
	s, r.cur = r.Metrics.Fragment(r.cur, p.X, p.Y, p.Text)
	r.buf.WriteString(s)
	return nil
}

// End returns the composed text.
func (r *RawText) End() ([]byte, error) {
	return []byte(r.buf.String()), nil
}
