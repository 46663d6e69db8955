package controller

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/term"

	m "ctorfield.dev/pkg/ctorfield/internal/model"
)

// IsTTY reports whether w is an interactive terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}

func sortedDiagnostics(diagnostics []m.Diagnostic) []m.Diagnostic {
	out := make([]m.Diagnostic, len(diagnostics))
	copy(out, diagnostics)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Location.Path != out[j].Location.Path {
			return out[i].Location.Path < out[j].Location.Path
		}

		return out[i].Location.Start < out[j].Location.Start
	})

	return out
}

func renderDiagnosticsTable(diagnostics []m.Diagnostic) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Location", "Code", "Constructor", "Message"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
	})

	files := make(map[m.Path]struct{})

	for _, diag := range sortedDiagnostics(diagnostics) {
		files[diag.Location.Path] = struct{}{}
		table.Append([]string{
			diag.Location.String(),
			diag.Code,
			fmt.Sprintf("%s.%s", diag.Class, diag.Constructor),
			diag.Message,
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(files)),
		"",
		"",
		fmt.Sprintf("%d diagnostic(s)", len(diagnostics)),
	})

	table.Render()

	return tableBuffer.String()
}

func renderReportTable(report m.RunReport) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Class", "Parameter", "Field", "Status"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	for _, r := range report.Reports {
		field := r.FieldName
		if r.Reused {
			field += " (reused)"
		}

		table.Append([]string{string(r.Path), r.Class, r.Parameter, field, r.Status.String()})
	}

	table.Render()

	return tableBuffer.String()
}

func formatSummary(summary m.Summary) string {
	return fmt.Sprintf("Applied: %d  Skipped: %d  Failed: %d  Canceled: %d",
		summary.Applied, summary.Skipped, summary.Failed, summary.Canceled)
}

func formatReportHeader(report m.RunReport) string {
	mode := ""
	if report.DryRun {
		mode = " (dry run)"
	}

	return fmt.Sprintf("Run %s started %s%s", report.ID, report.StartedAt.Format("2006-01-02 15:04:05 MST"), mode)
}

func formatFix(report m.FixReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s", report.Path, report.Parameter)

	if report.Class != "" {
		fmt.Fprintf(&b, " in %s", report.Class)
	}

	switch {
	case report.Status == m.Applied && report.Reused:
		fmt.Fprintf(&b, " -> reused field %s", report.FieldName)
	case report.Status == m.Applied:
		fmt.Fprintf(&b, " -> field %s", report.FieldName)
	case report.Error != "":
		fmt.Fprintf(&b, ": %s", report.Error)
	}

	return b.String()
}

func summaryOf(report m.RunReport) m.Summary {
	var summary m.Summary

	for _, r := range report.Reports {
		switch r.Status {
		case m.Applied:
			summary.Applied++
		case m.Skipped:
			summary.Skipped++
		case m.Failed:
			summary.Failed++
		case m.Canceled:
			summary.Canceled++
		}
	}

	return summary
}
