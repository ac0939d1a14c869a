// Package config reads settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the service settings
type Config struct {
	DatabaseURL string
	Port        string

	PrinterName   string // CUPS destination for raw and graphics jobs
	PrinterDevice string // optional character device used instead of CUPS for raw jobs
	SpoolCommand  string
	SerialPort    string
	SerialBaud    int

	AzureVisionEndpoint string
	AzureVisionKey      string

	CharWidthCm  float64
	LineHeightCm float64
	PreviewDPI   float64
}

// Load reads the .env files (if present) and then the environment
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function such as os.Getenv
func FromEnv(getenv func(string) string) (*Config, error) {
	c := &Config{
		DatabaseURL:         getenv("DATABASE_URL"),
		Port:                orDefault(getenv("PORT"), "8080"),
		PrinterName:         orDefault(getenv("PRINTER_NAME"), "EPSON TM-U950"),
		PrinterDevice:       getenv("PRINTER_DEVICE"),
		SpoolCommand:        orDefault(getenv("SPOOL_COMMAND"), "lp"),
		SerialPort:          orDefault(getenv("SERIAL_PORT"), "/dev/ttyS0"),
		AzureVisionEndpoint: getenv("AZURE_VISION_ENDPOINT"),
		AzureVisionKey:      getenv("AZURE_VISION_KEY"),
	}

	var err error
	if c.SerialBaud, err = intVar(getenv, "SERIAL_BAUD", 9600); err != nil {
		return nil, err
	}
	if c.CharWidthCm, err = floatVar(getenv, "CHAR_WIDTH_CM", 0.25); err != nil {
		return nil, err
	}
	if c.LineHeightCm, err = floatVar(getenv, "LINE_HEIGHT_CM", 0.40); err != nil {
		return nil, err
	}
	if c.PreviewDPI, err = floatVar(getenv, "PREVIEW_DPI", 96); err != nil {
		return nil, err
	}

	if c.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	return c, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func intVar(getenv func(string) string, key string, def int) (int, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s: want a positive integer, got %q", key, v)
	}
	return n, nil
}

func floatVar(getenv func(string) string, key string, def float64) (float64, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("%s: want a positive number, got %q", key, v)
	}
	return f, nil
}
