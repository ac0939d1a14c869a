package models

// SampleInvoice returns the fixed test invoice used to check form alignment.
func SampleInvoice() Invoice {
	return Invoice{
		Customer:    "Francisco López",
		Address:     "Col. Escalón, San Salvador",
		Date:        "2025-06-12",
		Business:    "Comercio",
		DueDate:     "2025-06-10",
		PaymentTerm: "30 DÍAS",
		Attention:   "María Pérez",
		NRC:         "123456-7",
		Remission:   "REM-00123",
		NIT:         "0614-250786-102-3",
		OrderNumber: "ORD-789",
		Supplier:    "Distribuidora S.A.",
		DocDate:     "2025-05-30",
		Lines: []InvoiceLine{
			{Position: 0, Quantity: "2", Description: "Paracetamol 500mg", Price: "0.50", Exempt: "0.00", NonSubject: "0.00", Taxed: "1.00"},
			{Position: 1, Quantity: "1", Description: "Ibuprofeno 200mg", Price: "0.75", Exempt: "0.00", NonSubject: "0.00", Taxed: "0.75"},
			{Position: 2, Quantity: "3", Description: "Vitamina C 1000mg", Price: "0.60", Exempt: "0.00", NonSubject: "0.00", Taxed: "1.80"},
		},
		AmountWords: "Cuatro dólares con cincuenta centavos",
		Sums:        "3.55",
		VAT:         "0.46",
		Subtotal:    "4.01",
		Exempt:      "0.00",
		NonSubject:  "0.00",
		Discounts:   "0.00",
		Total:       "4.01",
	}
}
