package models

import (
	"time"

	"gorm.io/gorm"

	"slip-print/pkg/layout"
)

// Invoice holds the values printed on the pre-printed invoice form.
// Every printed value is required; a blank field would print as a gap.
type Invoice struct {
	gorm.Model
	Customer    string `json:"customer" binding:"required"`
	Address     string `json:"address" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Business    string `json:"business" binding:"required"`
	DueDate     string `json:"due" binding:"required"`
	PaymentTerm string `json:"payment" binding:"required"`
	Attention   string `json:"attention" binding:"required"`
	NRC         string `json:"nrc" binding:"required"`
	Remission   string `json:"remission" binding:"required"`
	NIT         string `json:"nit" binding:"required"`
	OrderNumber string `json:"order" binding:"required"`
	Supplier    string `json:"supplier" binding:"required"`
	DocDate     string `json:"doc_date" binding:"required"`

	Lines []InvoiceLine `json:"lines" binding:"dive"`

	AmountWords string `json:"amount_words" binding:"required"`
	Sums        string `json:"sums" binding:"required"`
	VAT         string `json:"vat" binding:"required"`
	Subtotal    string `json:"subtotal" binding:"required"`
	Exempt      string `json:"exempt" binding:"required"`
	NonSubject  string `json:"non_subject" binding:"required"`
	Discounts   string `json:"discounts" binding:"required"`
	Total       string `json:"total" binding:"required"`
}

// InvoiceLine is one product row of an invoice
type InvoiceLine struct {
	ID          uint   `gorm:"primarykey" json:"-"`
	InvoiceID   uint   `gorm:"index" json:"-"`
	Position    int    `json:"-"`
	Quantity    string `json:"quantity" binding:"required"`
	Description string `json:"description" binding:"required"`
	Price       string `json:"price" binding:"required"`
	Exempt      string `json:"exempt" binding:"required"`
	NonSubject  string `json:"non_subject" binding:"required"`
	Taxed       string `json:"taxed" binding:"required"`
}

// PrintJob records one attempt to print an invoice
type PrintJob struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	InvoiceID uint      `gorm:"index" json:"invoice_id"`
	Method    string    `json:"method"`
	Printer   string    `json:"printer"`
	Backend   string    `json:"backend"`
	Bytes     int       `json:"bytes"`
	Status    string    `json:"status"`
	Error     string    `json:"error,omitempty"`
}

const (
	JobStatusSent   = "sent"
	JobStatusFailed = "failed"
)

// TextLine represents a line of text with its position from OCR, in pixels
type TextLine struct {
	Text   string     `json:"text"`
	X      int        `json:"x"`
	Y      int        `json:"y"`
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Words  []TextLine `json:"words,omitempty"`
}

// Document maps the invoice onto the field names of the form layout.
func (inv *Invoice) Document() layout.Document {
	doc := layout.Document{
		Header: map[string]string{
			"customer":  inv.Customer,
			"address":   inv.Address,
			"date":      inv.Date,
			"business":  inv.Business,
			"due":       inv.DueDate,
			"payment":   inv.PaymentTerm,
			"attention": inv.Attention,
			"nrc":       inv.NRC,
			"remission": inv.Remission,
			"nit":       inv.NIT,
			"order":     inv.OrderNumber,
			"supplier":  inv.Supplier,
			"doc_date":  inv.DocDate,
		},
		Totals: map[string]string{
			"amount_words": inv.AmountWords,
			"sums":         inv.Sums,
			"vat":          inv.VAT,
			"subtotal":     inv.Subtotal,
			"exempt":       inv.Exempt,
			"non_subject":  inv.NonSubject,
			"discounts":    inv.Discounts,
			"total":        inv.Total,
		},
	}
	for _, l := range inv.Lines {
		doc.Rows = append(doc.Rows, map[string]string{
			"quantity":    l.Quantity,
			"description": l.Description,
			"price":       l.Price,
			"exempt":      l.Exempt,
			"non_subject": l.NonSubject,
			"taxed":       l.Taxed,
		})
	}
	return doc
}
