// Package compose turns a form template and its data into printer output.
//
// Every rendering strategy implements Compositor. Compose drives a compositor
// through the placements of a document in their fixed order.
package compose

import (
	"errors"
	"fmt"
	"sort"

	"slip-print/pkg/layout"
)

// ErrUnknownMethod is returned by New and ParseMethod for unsupported methods.
var ErrUnknownMethod = errors.New("unknown print method")

// Compositor renders placements into a document. Begin resets all state, so
// one value can compose many documents.
type Compositor interface {
	Begin(t *layout.Template) error
	Place(p layout.Placement) error
	End() ([]byte, error)
}

// Method names a compositor.
type Method string

const (
	MethodRaw      Method = "raw"
	MethodCRLF     Method = "crlf"
	MethodTabs     Method = "tabs"
	MethodSpaced   Method = "spaced"
	MethodAbsolute Method = "absolute"
	MethodESCPOS   Method = "escpos"
)

var descriptions = map[Method]string{
	MethodRaw:      "raw text positioned by line feeds and spaces",
	MethodCRLF:     "space-aligned text with CRLF line endings",
	MethodTabs:     "tab-aligned text",
	MethodSpaced:   "space-aligned text",
	MethodAbsolute: "absolute twips positions on a graphics target",
	MethodESCPOS:   "ESC/POS commands",
}

// Methods lists the supported methods, most likely to work on a slip printer first.
func Methods() []Method {
	return []Method{MethodRaw, MethodCRLF, MethodTabs, MethodSpaced, MethodAbsolute, MethodESCPOS}
}

// Describe returns a human readable description of m.
func Describe(m Method) string {
	return descriptions[m]
}

// ParseMethod validates a method name.
func ParseMethod(s string) (Method, error) {
	m := Method(s)
	if _, ok := descriptions[m]; !ok {
		names := make([]string, 0, len(descriptions))
		for k := range descriptions {
			names = append(names, string(k))
		}
		sort.Strings(names)
		return "", fmt.Errorf("%w %q (want one of %v)", ErrUnknownMethod, s, names)
	}
	return m, nil
}

// Options configure the compositors built by New.
type Options struct {
	Metrics Metrics
	// Target receives absolute draw calls. A RecordingTarget is used when nil.
	Target Target
}

// New returns the compositor for m.
func New(m Method, opts Options) (Compositor, error) {
	metrics := opts.Metrics.orDefault()
	switch m {
	case MethodRaw:
		return NewRawText(metrics), nil
	case MethodSpaced:
		return NewLines(SpacedStyle), nil
	case MethodTabs:
		return NewLines(TabbedStyle), nil
	case MethodCRLF:
		return NewLines(CRLFStyle), nil
	case MethodAbsolute:
		target := opts.Target
		if target == nil {
			target = &RecordingTarget{}
		}
		return NewAbsolute(target), nil
	case MethodESCPOS:
		return NewESCPOS(metrics), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownMethod, m)
}

// Compose renders doc on t through c.
func Compose(t *layout.Template, doc layout.Document, c Compositor) ([]byte, error) {
	placements, err := t.Placements(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to lay out %s: %w", t.Name, err)
	}
	if err := c.Begin(t); err != nil {
		return nil, err
	}
	for _, p := range placements {
		if err := c.Place(p); err != nil {
			return nil, fmt.Errorf("failed to place %s %q: %w", p.Section, p.Field.Name, err)
		}
	}
	return c.End()
}
