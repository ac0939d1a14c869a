package compose

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"slip-print/pkg/layout"
)

// Printer control sequences.
var (
	// SlipMode selects slip station 4, the form tray used for invoices.
	SlipMode = []byte{0x1B, 0x69, 0x04}

	escInit     = []byte{0x1B, 0x40}
	escCodePage = []byte{0x1B, 0x74, 0x02} // PC850
	gsCut       = []byte{0x1D, 0x56, 0x01}
)

// ESCPOS wraps the raw text layout in ESC/POS commands. The body is encoded
// in code page 850; runes it cannot encode become the code page substitute.
type ESCPOS struct {
	raw *RawText
}

// NewESCPOS returns an ESC/POS compositor laying text out with m.
func NewESCPOS(m Metrics) *ESCPOS {
	return &ESCPOS{raw: NewRawText(m)}
}

// Begin resets the text layout.
func (e *ESCPOS) Begin(t *layout.Template) error {
	return e.raw.Begin(t)
}

// Place lays out p as raw text.
func (e *ESCPOS) Place(p layout.Placement) error {
	return e.raw.Place(p)
}

// End encodes the text and frames it with the printer commands.
func (e *ESCPOS) End() ([]byte, error) {
	body, err := e.raw.End()
	if err != nil {
		return nil, err
	}
	enc := encoding.ReplaceUnsupported(charmap.CodePage850.NewEncoder())
	encoded, err := enc.Bytes(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode for code page 850: %w", err)
	}

	var b bytes.Buffer
	b.Write(escInit)
	b.Write(SlipMode)
	b.Write(escCodePage)
	b.Write(encoded)
	b.Write(gsCut)
	return b.Bytes(), nil
}
