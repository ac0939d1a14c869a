package compose

import (
	"fmt"
	"strings"

	"slip-print/pkg/layout"
)

// Target is a graphics surface addressed in twips with the MM_TWIPS axis
// convention: x grows right, y grows up, so points on the page have y <= 0.
type Target interface {
	Begin(page layout.PageSize) error
	TextOut(x, y int, text string) error
	End() ([]byte, error)
}

// Absolute places every value at its exact twips position on a Target.
type Absolute struct {
	Target Target
}

// NewAbsolute returns a compositor drawing on t.
func NewAbsolute(t Target) *Absolute {
	return &Absolute{Target: t}
}

// Begin starts a page the size of the form.
func (a *Absolute) Begin(t *layout.Template) error {
	return a.Target.Begin(t.Page)
}

// Place converts p to twips and draws it with y negated.
func (a *Absolute) Place(p layout.Placement) error {
	return a.Target.TextOut(layout.CmToTwips(p.X), -layout.CmToTwips(p.Y), p.Text)
}

// End returns the target's rendering.
func (a *Absolute) End() ([]byte, error) {
	return a.Target.End()
}

// DrawCall is one recorded TextOut.
type DrawCall struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Text string `json:"text"`
}

// RecordingTarget keeps the draw calls. End lists them one per line.
type RecordingTarget struct {
	Calls []DrawCall
}

// Begin forgets earlier calls.
func (r *RecordingTarget) Begin(layout.PageSize) error {
	r.Calls = r.Calls[:0]
	return nil
}

// TextOut records the call.
func (r *RecordingTarget) TextOut(x, y int, text string) error {
	r.Calls = append(r.Calls, DrawCall{X: x, Y: y, Text: text})
	return nil
}

// End lists the recorded calls.
func (r *RecordingTarget) End() ([]byte, error) {
	var b strings.Builder
	for _, c := range r.Calls {
		fmt.Fprintf(&b, "TextOut(%d, %d, %q)\n", c.X, c.Y, c.Text)
	}
	return []byte(b.String()), nil
}
