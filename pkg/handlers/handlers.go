// Package handlers exposes the printing service over HTTP.
package handlers

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"slip-print/pkg/compose"
	"slip-print/pkg/layout"
	"slip-print/pkg/models"
	"slip-print/pkg/repository"
	"slip-print/pkg/services/ocr"
	"slip-print/pkg/services/printer"
	"slip-print/pkg/services/printing"
)

// Store is the persistence used by the handlers
type Store interface {
	printing.Store
	CreateInvoice(ctx context.Context, inv *models.Invoice) error
	ListInvoices(ctx context.Context) ([]models.Invoice, error)
	ListJobs(ctx context.Context, limit int) ([]models.PrintJob, error)
}

// TextExtractor reads text lines back from a scanned form
type TextExtractor interface {
	ExtractText(ctx context.Context, r io.Reader) ([]models.TextLine, error)
}

// Handler serves the invoice printing API
type Handler struct {
	store    Store
	printing *printing.Service
	ocr      TextExtractor
}

func New(store Store, p *printing.Service, o TextExtractor) *Handler {
	return &Handler{store: store, printing: p, ocr: o}
}

// Register adds the routes to r
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/methods", h.listMethods)
	r.GET("/template", h.getTemplate)
	r.GET("/invoices", h.listInvoices)
	r.POST("/invoices", h.createInvoice)
	r.GET("/invoices/:id", h.getInvoice)
	r.GET("/invoices/:id/preview", h.preview)
	r.GET("/invoices/:id/pdf", h.pdf)
	r.GET("/invoices/:id/png", h.png)
	r.POST("/invoices/:id/print", h.print)
	r.POST("/invoices/:id/alignment", h.alignment)
	r.POST("/printers/slip", h.slipMode)
	r.GET("/jobs", h.listJobs)
}

func (h *Handler) listMethods(c *gin.Context) {
	type method struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	var out []method
	for _, m := range compose.Methods() {
		out = append(out, method{Name: string(m), Description: compose.Describe(m)})
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) getTemplate(c *gin.Context) {
	c.JSON(http.StatusOK, h.printing.Template())
}

func (h *Handler) listInvoices(c *gin.Context) {
	invoices, err := h.store.ListInvoices(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoices)
}

func (h *Handler) createInvoice(c *gin.Context) {
	var inv models.Invoice
	if err := c.ShouldBindJSON(&inv); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	inv.ID = 0
	if err := h.store.CreateInvoice(c.Request.Context(), &inv); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

func (h *Handler) getInvoice(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}
	inv, err := h.store.GetInvoice(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (h *Handler) preview(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}
	m, err := compose.ParseMethod(c.DefaultQuery("method", string(compose.MethodRaw)))
	if err != nil {
		writeError(c, err)
		return
	}
	out, err := h.printing.Preview(c.Request.Context(), id, m)
	if err != nil {
		writeError(c, err)
		return
	}
	contentType := "text/plain; charset=utf-8"
	if m == compose.MethodESCPOS {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, out)
}

func (h *Handler) pdf(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}
	out, err := h.printing.RenderPDF(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/pdf", out)
}

func (h *Handler) png(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}
	out, err := h.printing.RenderPNG(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", out)
}

type printRequest struct {
	Method  string `json:"method" binding:"required"`
	Printer string `json:"printer"`
}

func (h *Handler) print(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}
	var req printRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	m, err := compose.ParseMethod(req.Method)
	if err != nil {
		writeError(c, err)
		return
	}
	job, err := h.printing.Print(c.Request.Context(), id, m, req.Printer)
	if err != nil {
		if job != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error(), "job": job})
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

type slipRequest struct {
	Printer string `json:"printer"`
}

func (h *Handler) slipMode(c *gin.Context) {
	var req slipRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if err := h.printing.EnableSlipMode(c.Request.Context(), req.Printer); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "slip mode selected"})
}

func (h *Handler) alignment(c *gin.Context) {
	id, ok := invoiceID(c)
	if !ok {
		return
	}
	dpi, err := strconv.ParseFloat(c.DefaultPostForm("dpi", "300"), 64)
	if err != nil || dpi <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dpi must be a positive number"})
		return
	}
	tolerance, err := strconv.ParseFloat(c.DefaultPostForm("tolerance", "0"), 64)
	if err != nil || tolerance < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tolerance must be a non-negative number"})
		return
	}
	fh, err := c.FormFile("scan")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scan file is required"})
		return
	}

	ctx := c.Request.Context()
	inv, err := h.store.GetInvoice(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	placements, err := h.printing.Template().Placements(inv.Document())
	if err != nil {
		writeError(c, err)
		return
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, err)
		return
	}
	defer f.Close()
	lines, err := h.ocr.ExtractText(ctx, f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ocr.CheckAlignment(placements, lines, dpi, tolerance))
}

func (h *Handler) listJobs(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}
	jobs, err := h.store.ListJobs(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func invoiceID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid invoice id"})
		return 0, false
	}
	return uint(id), true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, compose.ErrUnknownMethod):
		return http.StatusBadRequest
	case errors.Is(err, layout.ErrMissingValue):
		return http.StatusUnprocessableEntity
	case errors.Is(err, printer.ErrUnavailable), errors.Is(err, ocr.ErrNotConfigured):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
