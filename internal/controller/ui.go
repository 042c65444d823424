// Package controller provides output adapters for displaying clean results.
package controller

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "seedclean.dev/pkg/seedclean/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeClean StartMode = iota
	ModeCheck
	ModeView
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithCleanMode reports files as rewritten.
func WithCleanMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeClean
	}
}

// WithCheckMode reports files as pending changes.
func WithCheckMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeCheck
	}
}

// WithViewMode replays saved reports.
func WithViewMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeView
	}
}

// UI defines the interface for displaying clean results.
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	DisplayCleanResult(ctx context.Context, report m.CleanReport)
	DisplayDiff(ctx context.Context, path m.Path, before, after []byte) error
	DisplaySummary(ctx context.Context, reports []m.CleanReport)
}

// NewUI returns the UI writing to cmd's output. A terminal gets the
// interactive TUI, anything else gets plain SimpleUI output.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd, false)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
