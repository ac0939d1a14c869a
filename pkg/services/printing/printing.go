// Package printing composes stored invoices and sends them to a printer.
package printing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"slip-print/pkg/compose"
	"slip-print/pkg/layout"
	"slip-print/pkg/models"
	"slip-print/pkg/render"
	"slip-print/pkg/services/printer"
)

// Store is the persistence the service needs.
type Store interface {
	GetInvoice(ctx context.Context, id uint) (*models.Invoice, error)
	RecordJob(ctx context.Context, job *models.PrintJob) error
}

// Config selects the form, the text metrics and the backends.
type Config struct {
	Template *layout.Template
	Metrics  compose.Metrics
	// DefaultPrinter is used when a request names no printer.
	DefaultPrinter string
	PreviewDPI     float64

	// Raw receives text jobs, Graphics receives PDF jobs, Serial receives ESC/POS.
	Raw      printer.Backend
	Graphics printer.Backend
	Serial   printer.Backend
}

// Service handles preview and print requests
type Service struct {
	store Store
	cfg   Config
}

// NewService creates a new printing service
func NewService(store Store, cfg Config) *Service {
	if cfg.Template == nil {
		cfg.Template = &layout.Factura
	}
	if cfg.Metrics.CharWidth <= 0 || cfg.Metrics.LineHeight <= 0 {
		cfg.Metrics = compose.DefaultMetrics
	}
	if cfg.PreviewDPI <= 0 {
		cfg.PreviewDPI = 96
	}
	return &Service{store: store, cfg: cfg}
}

// Template returns the form layout in use
func (s *Service) Template() *layout.Template {
	return s.cfg.Template
}

// Compose renders doc with the given method without sending it anywhere.
// The absolute method lists its draw calls.
func (s *Service) Compose(doc layout.Document, m compose.Method) ([]byte, error) {
	c, err := compose.New(m, compose.Options{Metrics: s.cfg.Metrics})
	if err != nil {
		return nil, err
	}
	return compose.Compose(s.cfg.Template, doc, c)
}

// Preview composes a stored invoice
func (s *Service) Preview(ctx context.Context, id uint, m compose.Method) ([]byte, error) {
	inv, err := s.store.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Compose(inv.Document(), m)
}

// RenderPDF draws a stored invoice at absolute positions on a PDF page
func (s *Service) RenderPDF(ctx context.Context, id uint) ([]byte, error) {
	inv, err := s.store.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.composePDF(inv)
}

// RenderPNG draws a stored invoice at absolute positions on a preview image
func (s *Service) RenderPNG(ctx context.Context, id uint) ([]byte, error) {
	inv, err := s.store.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	return compose.Compose(s.cfg.Template, inv.Document(), compose.NewAbsolute(render.NewPNG(s.cfg.PreviewDPI)))
}

// composePDF stamps the PDF with the invoice's last change so the same
// invoice always renders to the same bytes.
func (s *Service) composePDF(inv *models.Invoice) ([]byte, error) {
	target := render.NewPDF()
	target.Created = documentDate(inv)
	return compose.Compose(s.cfg.Template, inv.Document(), compose.NewAbsolute(target))
}

// unsavedDate stamps invoices that were never stored.
var unsavedDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

func documentDate(inv *models.Invoice) time.Time {
	switch {
	case !inv.UpdatedAt.IsZero():
		return inv.UpdatedAt.UTC()
	case !inv.CreatedAt.IsZero():
		return inv.CreatedAt.UTC()
	}
	return unsavedDate
}

// EnableSlipMode sends only the slip station command to a printer
func (s *Service) EnableSlipMode(ctx context.Context, printerName string) error {
	if printerName == "" {
		printerName = s.cfg.DefaultPrinter
	}
	if s.cfg.Raw == nil {
		return fmt.Errorf("%w: no raw backend configured", printer.ErrUnavailable)
	}
	return s.cfg.Raw.Send(ctx, printer.Job{
		Printer: printerName,
		Title:   "Slip mode",
		Data:    compose.SlipMode,
		Raw:     true,
	})
}

// Print composes a stored invoice and sends it to a printer. The outcome is
// recorded as a print job whether or not sending succeeded.
func (s *Service) Print(ctx context.Context, id uint, m compose.Method, printerName string) (*models.PrintJob, error) {
	if printerName == "" {
		printerName = s.cfg.DefaultPrinter
	}
	inv, err := s.store.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}

	job := &models.PrintJob{InvoiceID: inv.ID, Method: string(m), Printer: printerName}
	sendErr := s.send(ctx, inv, m, printerName, job)
	job.Status = models.JobStatusSent
	if sendErr != nil {
		job.Status = models.JobStatusFailed
		job.Error = sendErr.Error()
	}
	if err := s.store.RecordJob(ctx, job); err != nil {
		log.Printf("printing: %v", err)
	}
	if sendErr != nil {
		return job, sendErr
	}
	log.Printf("printing: invoice %d sent to %q with %s (%d bytes)", inv.ID, printerName, m, job.Bytes)
	return job, nil
}

func (s *Service) send(ctx context.Context, inv *models.Invoice, m compose.Method, printerName string, job *models.PrintJob) error {
	title := fmt.Sprintf("Factura %d %s", inv.ID, m)
	switch m {
	case compose.MethodRaw, compose.MethodSpaced, compose.MethodTabs, compose.MethodCRLF:
		body, err := s.Compose(inv.Document(), m)
		if err != nil {
			return err
		}
		data := append(append([]byte{}, compose.SlipMode...), body...)
		return s.deliver(ctx, s.cfg.Raw, printer.Job{Printer: printerName, Title: title, Data: data, Raw: true}, job)

	case compose.MethodAbsolute:
		pdf, err := s.composePDF(inv)
		if err != nil {
			return err
		}
		if err := s.EnableSlipMode(ctx, printerName); err != nil {
			return fmt.Errorf("failed to select slip mode: %w", err)
		}
		return s.deliver(ctx, s.cfg.Graphics, printer.Job{Printer: printerName, Title: title, Data: pdf}, job)

	case compose.MethodESCPOS:
		data, err := s.Compose(inv.Document(), m)
		if err != nil {
			return err
		}
		return s.deliver(ctx, s.cfg.Serial, printer.Job{Printer: printerName, Title: title, Data: data, Raw: true}, job)
	}
	return fmt.Errorf("%w %q", compose.ErrUnknownMethod, m)
}

func (s *Service) deliver(ctx context.Context, b printer.Backend, pj printer.Job, job *models.PrintJob) error {
	if b == nil {
		return fmt.Errorf("%w: no backend configured for %s", printer.ErrUnavailable, job.Method)
	}
	job.Backend = b.Name()
	job.Bytes = len(pj.Data)
	if err := b.Send(ctx, pj); err != nil {
		return err
	}
	return nil
}

// IsUnavailable reports whether err means a backend is missing on this host.
func IsUnavailable(err error) bool {
	return errors.Is(err, printer.ErrUnavailable)
}
