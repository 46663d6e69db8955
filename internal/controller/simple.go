package controller

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	m "ctorfield.dev/pkg/ctorfield/internal/model"
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd  *cobra.Command
	mu   sync.Mutex
	mode StartMode
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Start initializes the UI.
func (s *SimpleUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mode = applyStartOptions(options).mode

	return nil
}

// Close finalizes the UI.
func (s *SimpleUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// Wait blocks until the UI is closed (no-op for SimpleUI).
func (s *SimpleUI) Wait(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// DisplayDiagnostics prints the diagnostics table, then the error if any.
func (s *SimpleUI) DisplayDiagnostics(ctx context.Context, diagnostics []m.Diagnostic, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if len(diagnostics) == 0 {
		s.printf("no diagnostics found\n")
	} else {
		s.printf("\n%s", renderDiagnosticsTable(diagnostics))
	}

	if err != nil {
		s.printf("%s %v\n", color.RedString("error:"), err)
		return err
	}

	return nil
}

// DisplayConcurrencyInfo prints the worker and document counts.
func (s *SimpleUI) DisplayConcurrencyInfo(ctx context.Context, threads int, documents int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Running %d document(s) with %d worker(s)\n", documents, threads)
}

// DisplayCompletedFix prints one line per finished fix.
func (s *SimpleUI) DisplayCompletedFix(ctx context.Context, report m.FixReport) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s %s\n", statusLabel(report.Status), formatFix(report))
}

// DisplayDiff prints a unified diff with added and removed lines colored.
func (s *SimpleUI) DisplayDiff(ctx context.Context, path m.Path, diff string) {
	if err := ctx.Err(); err != nil {
		return
	}

	if diff == "" {
		return
	}

	s.printf("%s", colorizeDiff(diff))

	if !strings.HasSuffix(diff, "\n") {
		s.printf("\n")
	}
}

// DisplayRunReport prints a saved run report.
func (s *SimpleUI) DisplayRunReport(ctx context.Context, report m.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.printf("%s\n\n", formatReportHeader(report))

	if len(report.Reports) == 0 {
		s.printf("no fixes recorded\n")
	} else {
		s.printf("%s", renderReportTable(report))
	}

	s.printf("\n%s\n", formatSummary(summaryOf(report)))

	return nil
}

// DisplaySummary prints the totals of a fix run.
func (s *SimpleUI) DisplaySummary(ctx context.Context, summary m.Summary) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("\n%s\n", formatSummary(summary))
}

func (s *SimpleUI) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func statusLabel(status m.FixStatus) string {
	label := fmt.Sprintf("[%s]", strings.ToUpper(status.String()))

	switch status {
	case m.Applied:
		return color.GreenString(label)
	case m.Skipped:
		return color.YellowString(label)
	case m.Failed:
		return color.RedString(label)
	case m.Canceled:
		return color.HiBlackString(label)
	}

	return label
}

func colorizeDiff(diff string) string {
	if color.NoColor {
		return diff
	}

	lines := strings.SplitAfter(diff, "\n")

	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines[i] = color.New(color.Bold).Sprint(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = color.CyanString("%s", line)
		case strings.HasPrefix(line, "+"):
			lines[i] = color.GreenString("%s", line)
		case strings.HasPrefix(line, "-"):
			lines[i] = color.RedString("%s", line)
		}
	}

	return strings.Join(lines, "")
}
