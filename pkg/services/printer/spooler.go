package printer

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Spooler submits jobs through the CUPS lp command.
type Spooler struct {
	// Command is the lp executable; "lp" when empty.
	Command string
}

func NewSpooler() *Spooler {
	return &Spooler{Command: "lp"}
}

func (s *Spooler) Name() string { return "spooler" }

func (s *Spooler) Send(ctx context.Context, job Job) error {
	if job.Printer == "" {
		return fmt.Errorf("no printer name given")
	}
	cmd := s.Command
	if cmd == "" {
		cmd = "lp"
	}
	path, err := exec.LookPath(cmd)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	c := exec.CommandContext(ctx, path, s.args(job)...)
	c.Stdin = bytes.NewReader(job.Data)
	out, err := c.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			return fmt.Errorf("failed to spool %q to %s: %w", job.Title, job.Printer, err)
		}
		return fmt.Errorf("failed to spool %q to %s: %w: %s", job.Title, job.Printer, err, msg)
	}
	return nil
}

func (s *Spooler) args(job Job) []string {
	args := []string{"-d", job.Printer}
	if job.Title != "" {
		args = append(args, "-t", job.Title)
	}
	if job.Raw {
		args = append(args, "-o", "raw")
	}
	return args
}
