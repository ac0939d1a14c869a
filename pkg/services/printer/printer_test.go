package printer

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial"
)

func TestDeviceWritesJob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lp0")
	d := NewDevice(path)

	require.NoError(t, d.Send(context.Background(), Job{Data: []byte("\x1b\x69\x04hola\n")}))
	require.NoError(t, d.Send(context.Background(), Job{Data: []byte("adios\n")}))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\x1b\x69\x04hola\nadios\n", string(got))
}

func TestDeviceUnavailable(t *testing.T) {
	d := NewDevice(filepath.Join(t.TempDir(), "missing", "lp0"))
	err := d.Send(context.Background(), Job{Data: []byte("x")})
	assert.True(t, errors.Is(err, ErrUnavailable))

	err = NewDevice("").Send(context.Background(), Job{Data: []byte("x")})
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestDeviceCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	path := filepath.Join(t.TempDir(), "lp0")
	err := NewDevice(path).Send(ctx, Job{Data: []byte("x")})
	assert.True(t, errors.Is(err, context.Canceled))
	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestSpoolerMissingCommand(t *testing.T) {
	s := &Spooler{Command: "lp-does-not-exist-here"}
	err := s.Send(context.Background(), Job{Printer: "EPSON TM-U950", Data: []byte("x")})
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestSpoolerArgs(t *testing.T) {
	s := NewSpooler()
	assert.Equal(t, []string{"-d", "EPSON", "-t", "Factura", "-o", "raw"}, s.args(Job{Printer: "EPSON", Title: "Factura", Raw: true}))
	assert.Equal(t, []string{"-d", "EPSON"}, s.args(Job{Printer: "EPSON"}))
}

func TestSpoolerNeedsPrinter(t *testing.T) {
	assert.Error(t, NewSpooler().Send(context.Background(), Job{Data: []byte("x")}))
}

type fakePort struct {
	written []byte
	closed  bool
	short   bool
}

func (p *fakePort) Write(b []byte) (int, error) {
	if p.short {
		return len(b) / 2, nil
	}
	p.written = append(p.written, b...)
	return len(b), nil
}

func (p *fakePort) Close() error {
	p.closed = true
	return nil
}

func TestSerialSend(t *testing.T) {
	port := &fakePort{}
	s := NewSerial("/dev/ttyS0", 9600)
	var gotMode *serial.Mode
	s.open = func(name string, mode *serial.Mode) (io.WriteCloser, error) {
		assert.Equal(t, "/dev/ttyS0", name)
		gotMode = mode
		return port, nil
	}

	require.NoError(t, s.Send(context.Background(), Job{Data: []byte("factura")}))
	assert.Equal(t, "factura", string(port.written))
	assert.True(t, port.closed)
	require.NotNil(t, gotMode)
	assert.Equal(t, 9600, gotMode.BaudRate)
	assert.Equal(t, 8, gotMode.DataBits)
}

func TestSerialShortWriteClosesPort(t *testing.T) {
	port := &fakePort{short: true}
	s := NewSerial("/dev/ttyS0", 9600)
	s.open = func(string, *serial.Mode) (io.WriteCloser, error) { return port, nil }

	err := s.Send(context.Background(), Job{Data: []byte("factura")})
	assert.True(t, errors.Is(err, io.ErrShortWrite))
	assert.True(t, port.closed)
}

func TestSerialOpenFailure(t *testing.T) {
	s := NewSerial("/dev/ttyS9", 9600)
	s.open = func(string, *serial.Mode) (io.WriteCloser, error) { return nil, errors.New("permission denied") }
	err := s.Send(context.Background(), Job{Data: []byte("x")})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnavailable))
	assert.Contains(t, err.Error(), "permission denied")
}
