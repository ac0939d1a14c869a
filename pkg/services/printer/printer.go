// Package printer delivers composed documents to a physical printer.
//
// Backends acquire the device, write the whole job, and release the device on
// every path. Nothing is retried: a failed job is reported to the caller.
package printer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrUnavailable means the backend cannot be used on this host, for example
// because the spooler is not installed or the port does not exist.
var ErrUnavailable = errors.New("printer backend unavailable")

// Job is one document for one printer.
type Job struct {
	Printer string
	Title   string
	Data    []byte
	// Raw asks the spooler to pass Data through without filtering.
	Raw bool
}

// Backend sends jobs to a printer.
type Backend interface {
	Name() string
	Send(ctx context.Context, job Job) error
}

// Device writes jobs straight to a character device such as /dev/usb/lp0.
type Device struct {
	Path string
}

func NewDevice(path string) *Device {
	return &Device{Path: path}
}

func (d *Device) Name() string { return "device" }

func (d *Device) Send(ctx context.Context, job Job) (err error) {
	if d.Path == "" {
		return fmt.Errorf("%w: no device path configured", ErrUnavailable)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.OpenFile(d.Path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return fmt.Errorf("failed to open %s: %w", d.Path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", d.Path, cerr)
		}
	}()
	if err := writeAll(f, job.Data); err != nil {
		return fmt.Errorf("failed to write %s: %w", d.Path, err)
	}
	return nil
}

func writeAll(w io.Writer, data []byte) error {
	n, err := w.Write(data)
	if err != nil {
		return err
	}
	if n != len(data) {
		return io.ErrShortWrite
	}
	return nil
}
