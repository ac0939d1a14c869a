package layout

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingValue is returned when a document lacks a value the template places.
	ErrMissingValue = errors.New("missing value")
	// ErrInvalidTemplate is returned by Validate.
	ErrInvalidTemplate = errors.New("invalid template")
)

// Section identifies the block of the form a placement belongs to.
type Section int

const (
	SectionHeader Section = iota
	SectionProducts
	SectionTotals
)

func (s Section) String() string {
	switch s {
	case SectionHeader:
		return "header"
	case SectionProducts:
		return "products"
	case SectionTotals:
		return "totals"
	}
	return fmt.Sprintf("section(%d)", int(s))
}

// PageSize is a physical page in centimeters.
type PageSize struct {
	Name   string
	Width  float64
	Height float64
}

// Field is a named position on the form. X and Y are centimeters from the
// top-left corner of the page. Width, Right, Lead and Tabs only matter to the
// line-oriented compositors, which ignore coordinates.
type Field struct {
	Name  string
	Label string
	X     float64
	Y     float64

	Width int  // padded width in characters
	Right bool // right-align within Width
	Lead  int  // spaces before the padded cell
	Tabs  int  // tabs after the cell; 0 means one
}

// Template describes one pre-printed form. Columns use only their X; the row
// position comes from RowBaseY and RowHeight.
type Template struct {
	Name      string
	Page      PageSize
	Header    []Field
	Columns   []Field
	RowBaseY  float64
	RowHeight float64
	Totals    []Field

	// Column headings printed above the product rows by the line compositors.
	TextHeading string
	TabHeading  string
}

// Document is the data to print on a template.
type Document struct {
	Header map[string]string
	Rows   []map[string]string
	Totals map[string]string
}

// Placement is one piece of text at a fixed position.
type Placement struct {
	Section Section
	Field   Field
	Row     int // product row index, -1 outside the products section
	Col     int // column index within the row, -1 outside the products section
	X       float64
	Y       float64
	Text    string
}

// RowY returns the vertical position of product row i.
func (t *Template) RowY(i int) float64 {
	return t.RowBaseY + float64(i)*t.RowHeight
}

// Placements lists every value of doc at its position, header first, then
// the product rows, then totals. Order follows the template, not the maps.
func (t *Template) Placements(doc Document) ([]Placement, error) {
	out := make([]Placement, 0, len(t.Header)+len(doc.Rows)*len(t.Columns)+len(t.Totals))
	for _, f := range t.Header {
		v, ok := doc.Header[f.Name]
		if !ok {
			return nil, fmt.Errorf("header %q: %w", f.Name, ErrMissingValue)
		}
		out = append(out, Placement{Section: SectionHeader, Field: f, Row: -1, Col: -1, X: f.X, Y: f.Y, Text: v})
	}
	for i, row := range doc.Rows {
		y := t.RowY(i)
		for j, c := range t.Columns {
			v, ok := row[c.Name]
			if !ok {
				return nil, fmt.Errorf("row %d column %q: %w", i, c.Name, ErrMissingValue)
			}
			out = append(out, Placement{Section: SectionProducts, Field: c, Row: i, Col: j, X: c.X, Y: y, Text: v})
		}
	}
	for _, f := range t.Totals {
		v, ok := doc.Totals[f.Name]
		if !ok {
			return nil, fmt.Errorf("total %q: %w", f.Name, ErrMissingValue)
		}
		out = append(out, Placement{Section: SectionTotals, Field: f, Row: -1, Col: -1, X: f.X, Y: f.Y, Text: v})
	}
	return out, nil
}

// Validate checks that every coordinate is non-negative and on the page.
func (t *Template) Validate() error {
	check := func(f Field, y float64) error {
		if f.X < 0 || y < 0 {
			return fmt.Errorf("%w: field %q has negative coordinate", ErrInvalidTemplate, f.Name)
		}
		if t.Page.Width > 0 && (f.X > t.Page.Width || y > t.Page.Height) {
			return fmt.Errorf("%w: field %q at (%.2f, %.2f) is off the %s page", ErrInvalidTemplate, f.Name, f.X, y, t.Page.Name)
		}
		return nil
	}
	for _, f := range t.Header {
		if err := check(f, f.Y); err != nil {
			return err
		}
	}
	if t.RowHeight < 0 {
		return fmt.Errorf("%w: negative row height", ErrInvalidTemplate)
	}
	for _, c := range t.Columns {
		if err := check(c, t.RowBaseY); err != nil {
			return err
		}
	}
	for _, f := range t.Totals {
		if err := check(f, f.Y); err != nil {
			return err
		}
	}
	return nil
}

// Field returns the header or totals field with the given name.
func (t *Template) Field(name string) (Field, bool) {
	for _, f := range t.Header {
		if f.Name == name {
			return f, true
		}
	}
	for _, f := range t.Totals {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
