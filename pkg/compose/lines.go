package compose

import (
	"fmt"
	"strings"

	"slip-print/pkg/layout"
)

// LineStyle controls how Lines renders a form without coordinates.
type LineStyle struct {
	Newline string
	Tabbed  bool
}

var (
	SpacedStyle = LineStyle{Newline: "\n"}
	TabbedStyle = LineStyle{Newline: "\n", Tabbed: true}
	CRLFStyle   = LineStyle{Newline: "\r\n"}
)

// Lines prints the form as a plain listing: header values one per line, a
// product table, then labelled totals. Coordinates are ignored.
type Lines struct {
	Style LineStyle

	t         *layout.Template
	lines     []string
	row       []string
	tableOpen bool
	totalOpen bool
}

// NewLines returns a listing compositor in style s.
func NewLines(s LineStyle) *Lines {
	return &Lines{Style: s}
}

// Begin clears the listing and takes the column layout from t.
func (l *Lines) Begin(t *layout.Template) error {
	l.t = t
	l.lines = l.lines[:0]
	l.row = l.row[:0]
	l.tableOpen = false
	l.totalOpen = false
	return nil
}

// Place adds a header line, buffers a product cell until its row is
// complete, or adds a totals line.
func (l *Lines) Place(p layout.Placement) error {
	switch p.Section {
	case layout.SectionHeader:
		l.lines = append(l.lines, p.Text)
	case layout.SectionProducts:
		l.openTable()
		l.row = append(l.row, p.Text)
		if p.Col == len(l.t.Columns)-1 {
			l.lines = append(l.lines, l.formatRow(l.row))
			l.row = l.row[:0]
		}
	case layout.SectionTotals:
		l.openTable()
		if !l.totalOpen {
			l.lines = append(l.lines, "")
			l.totalOpen = true
		}
		l.lines = append(l.lines, l.formatTotal(p.Field.Label, p.Text))
	default:
		return fmt.Errorf("unexpected section %s", p.Section)
	}
	return nil
}

// End joins the lines with the style's line ending, opening the product
// table first if no row or total did.
func (l *Lines) End() ([]byte, error) {
	l.openTable()
	nl := l.Style.Newline
	return []byte(strings.Join(l.lines, nl) + nl), nil
}

func (l *Lines) openTable() {
	if l.tableOpen {
		return
	}
	heading := l.t.TextHeading
	if l.Style.Tabbed {
		heading = l.t.TabHeading
	}
	l.lines = append(l.lines, "", heading)
	l.tableOpen = true
}

func (l *Lines) formatRow(cells []string) string {
	var b strings.Builder
	last := len(cells) - 1
	for i, cell := range cells {
		col := l.t.Columns[i]
		if l.Style.Tabbed {
			b.WriteString(cell)
			if i < last {
				b.WriteString(strings.Repeat("\t", max(col.Tabs, 1)))
			}
			continue
		}
		b.WriteString(strings.Repeat(" ", col.Lead))
		if col.Right {
			fmt.Fprintf(&b, "%*s", col.Width, cell)
		} else {
			fmt.Fprintf(&b, "%-*s", col.Width, cell)
		}
	}
	return b.String()
}

func (l *Lines) formatTotal(label, value string) string {
	switch {
	case label == "":
		return value
	case l.Style.Tabbed:
		return label + ":\t" + value
	default:
		return label + ": " + value
	}
}
