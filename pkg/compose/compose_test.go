package compose

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slip-print/pkg/layout"
	"slip-print/pkg/models"
)

func sampleDocument() layout.Document {
	inv := models.SampleInvoice()
	return inv.Document()
}

func TestFragment(t *testing.T) {
	s, cur := DefaultMetrics.Fragment(Cursor{}, 4.45, 4.80, "Francisco López")
	want := strings.Repeat("\n", 12) + strings.Repeat(" ", 17) + "Francisco López\n"
	assert.Equal(t, want, s)
	assert.Equal(t, 4.80, cur.LastY)
}

func TestFragmentLineCount(t *testing.T) {
	tests := []struct {
		y1, y2 float64
		lines  int
	}{
		{0, 0, 0},
		{0, 0.4, 1},
		{0, 0.79, 1},
		{1.0, 2.19, 2},
		{0, 4.8, 12},
		{22.23, 22.86, 1},
		{8.5, 10.1, 4},
	}
	for _, tt := range tests {
		s, _ := DefaultMetrics.Fragment(Cursor{LastY: tt.y1}, 0, tt.y2, "x")
		assert.Equal(t, strings.Repeat("\n", tt.lines)+"x\n", s, "%v -> %v", tt.y1, tt.y2)
	}
}

func TestFragmentClampsUpwardMove(t *testing.T) {
	s, cur := DefaultMetrics.Fragment(Cursor{LastY: 8.50}, 7.62, 6.40, "123456-7")
	assert.Equal(t, strings.Repeat(" ", 30)+"123456-7\n", s)
	assert.Equal(t, 6.40, cur.LastY, "cursor keeps the requested position")
}

func TestComposeIsIdempotent(t *testing.T) {
	doc := sampleDocument()
	for _, m := range Methods() {
		t.Run(string(m), func(t *testing.T) {
			c, err := New(m, Options{})
			require.NoError(t, err)
			first, err := Compose(&layout.Factura, doc, c)
			require.NoError(t, err)
			second, err := Compose(&layout.Factura, doc, c)
			require.NoError(t, err)
			assert.NotEmpty(t, first)
			assert.True(t, bytes.Equal(first, second))
		})
	}
}

func TestRawOrder(t *testing.T) {
	out, err := Compose(&layout.Factura, sampleDocument(), NewRawText(DefaultMetrics))
	require.NoError(t, err)
	s := string(out)

	customer := strings.Index(s, "Francisco López")
	product := strings.Index(s, "Paracetamol 500mg")
	words := strings.Index(s, "Cuatro dólares")
	require.True(t, customer >= 0 && product >= 0 && words >= 0)
	assert.Less(t, customer, product)
	assert.Less(t, product, words)
	assert.True(t, strings.HasPrefix(s, strings.Repeat("\n", 12)+strings.Repeat(" ", 17)+"Francisco López\n"))
}

func TestTotalInRawAndAbsolute(t *testing.T) {
	doc := sampleDocument()

	raw, err := Compose(&layout.Factura, doc, NewRawText(DefaultMetrics))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(raw), strings.Repeat(" ", 56)+"4.01\n"))

	rec := &RecordingTarget{}
	_, err = Compose(&layout.Factura, doc, NewAbsolute(rec))
	require.NoError(t, err)
	last := rec.Calls[len(rec.Calls)-1]
	assert.Equal(t, DrawCall{X: layout.CmToTwips(14.10), Y: -layout.CmToTwips(25.08), Text: "4.01"}, last)
}

func TestAbsoluteNegatesY(t *testing.T) {
	rec := &RecordingTarget{}
	out, err := Compose(&layout.Factura, sampleDocument(), NewAbsolute(rec))
	require.NoError(t, err)
	require.Len(t, rec.Calls, 13+3*6+8)
	for _, c := range rec.Calls {
		assert.Positive(t, c.X)
		assert.Negative(t, c.Y)
	}
	assert.Equal(t, DrawCall{X: 2523, Y: -2721, Text: "Francisco López"}, rec.Calls[0])
	assert.Contains(t, string(out), `TextOut(2523, -2721, "Francisco López")`)

	rows := rec.Calls[13 : 13+18]
	for i, want := range []float64{10.10, 10.70, 11.30} {
		assert.Equal(t, -layout.CmToTwips(want), rows[i*6].Y, "row %d", i)
	}
}

func TestSpacedLayout(t *testing.T) {
	c, err := New(MethodSpaced, Options{})
	require.NoError(t, err)
	out, err := Compose(&layout.Factura, sampleDocument(), c)
	require.NoError(t, err)

	want := strings.Join([]string{
		"Francisco López",
		"Col. Escalón, San Salvador",
		"2025-06-12",
		"Comercio",
		"2025-06-10",
		"30 DÍAS",
		"María Pérez",
		"123456-7",
		"REM-00123",
		"0614-250786-102-3",
		"ORD-789",
		"Distribuidora S.A.",
		"2025-05-30",
		"",
		"Cant  Descripción             Precio  Exentas  NoSuj  Gravadas",
		fmt.Sprintf("%-5s%-23s%7s    %4s     %4s   %4s", "2", "Paracetamol 500mg", "0.50", "0.00", "0.00", "1.00"),
		fmt.Sprintf("%-5s%-23s%7s    %4s     %4s   %4s", "1", "Ibuprofeno 200mg", "0.75", "0.00", "0.00", "0.75"),
		fmt.Sprintf("%-5s%-23s%7s    %4s     %4s   %4s", "3", "Vitamina C 1000mg", "0.60", "0.00", "0.00", "1.80"),
		"",
		"Cuatro dólares con cincuenta centavos",
		"Sumas: 3.55",
		"IVA: 0.46",
		"Subtotal: 4.01",
		"Exentas: 0.00",
		"No sujetas: 0.00",
		"Descuentos: 0.00",
		"Total: 4.01",
	}, "\n") + "\n"
	assert.Equal(t, want, string(out))
}

func TestTabbedLayout(t *testing.T) {
	c, err := New(MethodTabs, Options{})
	require.NoError(t, err)
	out, err := Compose(&layout.Factura, sampleDocument(), c)
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, "\nCant\tDescripción\t\t\tPrecio\tExentas\tNoSuj\tGravadas\n")
	assert.Contains(t, s, "\n2\tParacetamol 500mg\t\t0.50\t0.00\t0.00\t1.00\n")
	assert.Contains(t, s, "\nSumas:\t3.55\n")
	assert.True(t, strings.HasSuffix(s, "\nTotal:\t4.01\n"))
}

func TestCRLFLayout(t *testing.T) {
	c, err := New(MethodCRLF, Options{})
	require.NoError(t, err)
	out, err := Compose(&layout.Factura, sampleDocument(), c)
	require.NoError(t, err)
	s := string(out)
	assert.True(t, strings.HasPrefix(s, "Francisco López\r\n"))
	assert.True(t, strings.HasSuffix(s, "Total: 4.01\r\n"))
	assert.Equal(t, strings.Count(s, "\n"), strings.Count(s, "\r\n"))
}

func TestLinesWithoutProducts(t *testing.T) {
	doc := sampleDocument()
	doc.Rows = nil
	out, err := Compose(&layout.Factura, doc, NewLines(SpacedStyle))
	require.NoError(t, err)
	assert.Contains(t, string(out), "2025-05-30\n\nCant  Descripción")
	assert.Contains(t, string(out), "Gravadas\n\nCuatro dólares")
}

func TestESCPOS(t *testing.T) {
	out, err := Compose(&layout.Factura, sampleDocument(), NewESCPOS(DefaultMetrics))
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte{0x1B, 0x40, 0x1B, 0x69, 0x04, 0x1B, 0x74, 0x02}))
	assert.True(t, bytes.HasSuffix(out, []byte{0x1D, 0x56, 0x01}))
	// ó is 0xA2 in code page 850
	assert.True(t, bytes.Contains(out, []byte("Francisco L\xa2pez\n")))
	assert.False(t, bytes.Contains(out, []byte("López")))
}

func TestParseMethod(t *testing.T) {
	for _, m := range Methods() {
		got, err := ParseMethod(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
		assert.NotEmpty(t, Describe(m))
	}
	_, err := ParseMethod("win32ui")
	assert.True(t, errors.Is(err, ErrUnknownMethod))
	_, err = New("reportlab", Options{})
	assert.True(t, errors.Is(err, ErrUnknownMethod))
}

func TestComposeMissingValue(t *testing.T) {
	doc := sampleDocument()
	delete(doc.Totals, "vat")
	_, err := Compose(&layout.Factura, doc, NewRawText(DefaultMetrics))
	assert.True(t, errors.Is(err, layout.ErrMissingValue))
}

func TestZeroMetricsFallBack(t *testing.T) {
	doc := sampleDocument()
	want, err := Compose(&layout.Factura, doc, NewRawText(DefaultMetrics))
	require.NoError(t, err)

	got, err := Compose(&layout.Factura, doc, NewRawText(Metrics{}))
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))

	s, _ := Metrics{CharWidth: 0.25}.Fragment(Cursor{}, 4.45, 4.80, "x")
	assert.Equal(t, strings.Repeat("\n", 12)+strings.Repeat(" ", 17)+"x\n", s)

	esc, err := Compose(&layout.Factura, doc, NewESCPOS(Metrics{}))
	require.NoError(t, err)
	assert.NotEmpty(t, esc)
}
