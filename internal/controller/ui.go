// Package controller provides output adapters for displaying refactoring results.
package controller

import (
	"context"

	"github.com/spf13/cobra"

	m "ctorfield.dev/pkg/ctorfield/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeList StartMode = iota
	ModeFix
	ModeDiff
	ModeView
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithListMode sets the UI to diagnostic listing mode.
func WithListMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeList
	}
}

// WithFixMode sets the UI to fix execution mode.
func WithFixMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeFix
	}
}

// WithDiffMode sets the UI to diff preview mode.
func WithDiffMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeDiff
	}
}

// WithViewMode sets the UI to report viewing mode.
func WithViewMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeView
	}
}

func applyStartOptions(options []StartOption) StartConfig {
	cfg := StartConfig{}
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// UI defines the interface for displaying diagnostics and fix results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	Start(ctx context.Context, options ...StartOption) error
	Close(ctx context.Context)
	Wait(ctx context.Context) // Wait for UI to finish (user closes it)
	DisplayDiagnostics(ctx context.Context, diagnostics []m.Diagnostic, err error) error
	DisplayConcurrencyInfo(ctx context.Context, threads int, documents int)
	DisplayCompletedFix(ctx context.Context, report m.FixReport)
	DisplayDiff(ctx context.Context, path m.Path, diff string)
	DisplayRunReport(ctx context.Context, report m.RunReport) error
	DisplaySummary(ctx context.Context, summary m.Summary)
}

// NewUI returns a TUI when useTUI is set and a SimpleUI writing to cmd otherwise.
func NewUI(cmd *cobra.Command, useTUI bool) UI {
	if useTUI {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}
