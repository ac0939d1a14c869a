package printer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.bug.st/serial"
)

// Serial writes jobs to a printer on a serial port, 8N1.
type Serial struct {
	Port string
	Baud int

	open func(name string, mode *serial.Mode) (io.WriteCloser, error)
}

func NewSerial(port string, baud int) *Serial {
	return &Serial{
		Port: port,
		Baud: baud,
		open: func(name string, mode *serial.Mode) (io.WriteCloser, error) {
			return serial.Open(name, mode)
		},
	}
}

func (s *Serial) Name() string { return "serial" }

func (s *Serial) Send(ctx context.Context, job Job) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	mode := &serial.Mode{
		BaudRate: s.Baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := s.open(s.Port, mode)
	if err != nil {
		var perr *serial.PortError
		if errors.As(err, &perr) && perr.Code() == serial.PortNotFound {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return fmt.Errorf("failed to open %s: %w", s.Port, err)
	}
	defer func() {
		if cerr := port.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", s.Port, cerr)
		}
	}()
	if err := writeAll(port, job.Data); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.Port, err)
	}
	return nil
}
