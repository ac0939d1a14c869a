package layout

// FacturaPage is the pre-printed slip form: 16.6 cm across, 27.5 cm down.
var FacturaPage = PageSize{Name: "factura", Width: 16.6, Height: 27.5}

// Factura is the layout of the pre-printed invoice form. The coordinates were
// measured on the physical paper and must not change.
var Factura = Template{
	Name: "factura",
	Page: FacturaPage,
	Header: []Field{
		{Name: "customer", X: 4.45, Y: 4.80},
		{Name: "address", X: 4.45, Y: 5.40},
		{Name: "date", X: 3.81, Y: 6.40},
		{Name: "business", X: 3.81, Y: 6.90},
		{Name: "due", X: 3.81, Y: 7.50},
		{Name: "payment", X: 4.45, Y: 8.00},
		{Name: "attention", X: 4.45, Y: 8.50},
		{Name: "nrc", X: 7.62, Y: 6.40},
		{Name: "remission", X: 7.62, Y: 7.50},
		{Name: "nit", X: 11.43, Y: 6.40},
		{Name: "order", X: 12.07, Y: 7.50},
		{Name: "supplier", X: 11.43, Y: 8.00},
		{Name: "doc_date", X: 11.75, Y: 8.50},
	},
	Columns: []Field{
		{Name: "quantity", Label: "Cant", X: 2.22, Width: 5},
		{Name: "description", Label: "Descripción", X: 3.90, Width: 23, Tabs: 2},
		{Name: "price", Label: "Precio", X: 9.21, Width: 7, Right: true},
		{Name: "exempt", Label: "Exentas", X: 11.11, Width: 4, Right: true, Lead: 4},
		{Name: "non_subject", Label: "NoSuj", X: 12.70, Width: 4, Right: true, Lead: 5},
		{Name: "taxed", Label: "Gravadas", X: 14.10, Width: 4, Right: true, Lead: 3},
	},
	RowBaseY:    10.10,
	RowHeight:   0.6,
	TextHeading: "Cant  Descripción             Precio  Exentas  NoSuj  Gravadas",
	TabHeading:  "Cant\tDescripción\t\t\tPrecio\tExentas\tNoSuj\tGravadas",
	Totals: []Field{
		{Name: "amount_words", X: 2.22, Y: 22.23},
		{Name: "sums", Label: "Sumas", X: 14.10, Y: 21.59},
		{Name: "vat", Label: "IVA", X: 14.10, Y: 22.23},
		{Name: "subtotal", Label: "Subtotal", X: 14.10, Y: 22.86},
		{Name: "exempt", Label: "Exentas", X: 14.10, Y: 23.45},
		{Name: "non_subject", Label: "No sujetas", X: 14.10, Y: 24.00},
		{Name: "discounts", Label: "Descuentos", X: 14.10, Y: 24.60},
		{Name: "total", Label: "Total", X: 14.10, Y: 25.08},
	},
}
