package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"slip-print/pkg/compose"
	"slip-print/pkg/config"
	"slip-print/pkg/handlers"
	"slip-print/pkg/layout"
	"slip-print/pkg/repository"
	"slip-print/pkg/services/ocr"
	"slip-print/pkg/services/printer"
	"slip-print/pkg/services/printing"
)

func main() {
	// Load environment variables
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if err := layout.Factura.Validate(); err != nil {
		log.Fatal(err)
	}

	// Set up database connection and migrate the schema
	repo, err := repository.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	seeded, err := repo.SeedSample(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	if seeded {
		log.Println("stored sample invoice")
	}

	// Raw jobs go to the device when one is configured, else through CUPS
	spooler := &printer.Spooler{Command: cfg.SpoolCommand}
	var raw printer.Backend = spooler
	if cfg.PrinterDevice != "" {
		raw = printer.NewDevice(cfg.PrinterDevice)
	}

	svc := printing.NewService(repo, printing.Config{
		Template:       &layout.Factura,
		Metrics:        compose.Metrics{CharWidth: cfg.CharWidthCm, LineHeight: cfg.LineHeightCm},
		DefaultPrinter: cfg.PrinterName,
		PreviewDPI:     cfg.PreviewDPI,
		Raw:            raw,
		Graphics:       spooler,
		Serial:         printer.NewSerial(cfg.SerialPort, cfg.SerialBaud),
	})

	ocrService := ocr.NewService(cfg.AzureVisionEndpoint, cfg.AzureVisionKey)
	if ocrService == nil {
		log.Println("AZURE_VISION_ENDPOINT not set, alignment checks disabled")
	}

	// Set up Gin router
	r := gin.Default()
	handlers.New(repo, svc, ocrService).Register(r)

	// Start the server
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
