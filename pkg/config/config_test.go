package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	c, err := FromEnv(env(map[string]string{"DATABASE_URL": "postgres://localhost/slip"}))
	require.NoError(t, err)
	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "EPSON TM-U950", c.PrinterName)
	assert.Equal(t, "lp", c.SpoolCommand)
	assert.Equal(t, "/dev/ttyS0", c.SerialPort)
	assert.Equal(t, 9600, c.SerialBaud)
	assert.Equal(t, 0.25, c.CharWidthCm)
	assert.Equal(t, 0.40, c.LineHeightCm)
	assert.Equal(t, 96.0, c.PreviewDPI)
	assert.Empty(t, c.PrinterDevice)
}

func TestFromEnvOverrides(t *testing.T) {
	c, err := FromEnv(env(map[string]string{
		"DATABASE_URL":   "postgres://localhost/slip",
		"PORT":           "9090",
		"PRINTER_DEVICE": "/dev/usb/lp0",
		"SERIAL_BAUD":    "19200",
		"CHAR_WIDTH_CM":  "0.212",
		"LINE_HEIGHT_CM": "0.423",
	}))
	require.NoError(t, err)
	assert.Equal(t, "9090", c.Port)
	assert.Equal(t, "/dev/usb/lp0", c.PrinterDevice)
	assert.Equal(t, 19200, c.SerialBaud)
	assert.Equal(t, 0.212, c.CharWidthCm)
	assert.Equal(t, 0.423, c.LineHeightCm)
}

func TestFromEnvErrors(t *testing.T) {
	_, err := FromEnv(env(map[string]string{}))
	assert.ErrorContains(t, err, "DATABASE_URL")

	_, err = FromEnv(env(map[string]string{"DATABASE_URL": "x", "SERIAL_BAUD": "fast"}))
	assert.ErrorContains(t, err, "SERIAL_BAUD")

	_, err = FromEnv(env(map[string]string{"DATABASE_URL": "x", "LINE_HEIGHT_CM": "-1"}))
	assert.ErrorContains(t, err, "LINE_HEIGHT_CM")
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DATABASE_URL=postgres://from-file/slip\nPREVIEW_DPI=150\n"), 0o644))
	t.Setenv("DATABASE_URL", "")
	os.Unsetenv("DATABASE_URL")
	t.Setenv("PREVIEW_DPI", "")
	os.Unsetenv("PREVIEW_DPI")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://from-file/slip", c.DatabaseURL)
	assert.Equal(t, 150.0, c.PreviewDPI)
}

func TestLoadMissingFileUsesEnvironment(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://env/slip")
	c, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, "postgres://env/slip", c.DatabaseURL)
}
