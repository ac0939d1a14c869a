// Package repository stores invoices and print jobs in postgres through gorm.
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"slip-print/pkg/models"
)

// ErrNotFound is returned when an invoice does not exist.
var ErrNotFound = errors.New("not found")

// Repository persists invoices and print jobs
type Repository struct {
	db *gorm.DB
}

// Open connects to postgres and migrates the schema
func Open(dsn string) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return New(db)
}

// New wraps an existing connection and migrates the schema
func New(db *gorm.DB) (*Repository, error) {
	if err := db.AutoMigrate(&models.Invoice{}, &models.InvoiceLine{}, &models.PrintJob{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &Repository{db: db}, nil
}

// CreateInvoice stores inv and its lines, numbering the lines in order
func (r *Repository) CreateInvoice(ctx context.Context, inv *models.Invoice) error {
	for i := range inv.Lines {
		inv.Lines[i].Position = i
	}
	if err := r.db.WithContext(ctx).Create(inv).Error; err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

// GetInvoice loads an invoice with its lines in print order
func (r *Repository) GetInvoice(ctx context.Context, id uint) (*models.Invoice, error) {
	var inv models.Invoice
	err := r.db.WithContext(ctx).First(&inv, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("invoice %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice %d: %w", id, err)
	}
	if err := linesQuery(r.db.WithContext(ctx), id, &inv.Lines).Error; err != nil {
		return nil, fmt.Errorf("failed to load lines of invoice %d: %w", id, err)
	}
	return &inv, nil
}

// linesQuery loads the product rows of an invoice in the order they were entered
func linesQuery(tx *gorm.DB, invoiceID uint, lines *[]models.InvoiceLine) *gorm.DB {
	return tx.Where("invoice_id = ?", invoiceID).Order("position").Find(lines)
}

// ListInvoices returns all invoices without their lines
func (r *Repository) ListInvoices(ctx context.Context) ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := r.db.WithContext(ctx).Order("id").Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

// RecordJob stores the outcome of a print attempt
func (r *Repository) RecordJob(ctx context.Context, job *models.PrintJob) error {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("failed to record print job: %w", err)
	}
	return nil
}

// ListJobs returns the most recent print jobs first
func (r *Repository) ListJobs(ctx context.Context, limit int) ([]models.PrintJob, error) {
	var jobs []models.PrintJob
	if err := jobsQuery(r.db.WithContext(ctx), limit, &jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to list print jobs: %w", err)
	}
	return jobs, nil
}

func jobsQuery(tx *gorm.DB, limit int, jobs *[]models.PrintJob) *gorm.DB {
	return tx.Order("id desc").Limit(limit).Find(jobs)
}

// SeedSample stores the sample invoice when no invoice exists yet
func (r *Repository) SeedSample(ctx context.Context) (bool, error) {
	var n int64
	if err := countQuery(r.db.WithContext(ctx), &n).Error; err != nil {
		return false, fmt.Errorf("failed to count invoices: %w", err)
	}
	if !needsSeed(n) {
		return false, nil
	}
	inv := models.SampleInvoice()
	if err := r.CreateInvoice(ctx, &inv); err != nil {
		return false, err
	}
	return true, nil
}

// countQuery counts live invoices; soft-deleted ones do not block seeding
func countQuery(tx *gorm.DB, n *int64) *gorm.DB {
	return tx.Model(&models.Invoice{}).Count(n)
}

func needsSeed(invoices int64) bool {
	return invoices == 0
}
