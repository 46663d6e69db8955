package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"

	"ctorfield.dev/pkg/ctorfield/internal/controller"
	"ctorfield.dev/pkg/ctorfield/internal/domain/refactor"
	m "ctorfield.dev/pkg/ctorfield/internal/model"
)

// maxFixesPerDocument bounds the fix loop of a single document.
const maxFixesPerDocument = 4096

// documentRun is the outcome of fixing every diagnostic of one document.
type documentRun struct {
	file    m.File
	before  m.Document
	after   m.Document
	reports []m.FixReport
}

func (r documentRun) changed() bool {
	return r.before.Text != r.after.Text
}

// Fix applies every diagnostic under the given paths. Documents are fixed
// concurrently; the diagnostics of one document are applied one after the
// other, each against the snapshot produced by the previous fix.
func (w *workflow) Fix(ctx context.Context, args FixArgs) error {
	if err := w.Start(ctx, controller.WithFixMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}
	defer w.Close(ctx)

	report := m.RunReport{
		ID:        time.Now().UTC().Format("20060102-150405.000"),
		StartedAt: time.Now().UTC(),
		DryRun:    args.DryRun,
	}

	runs, err := w.fixAll(ctx, args.Paths, args.Exclude, args.Threads)
	if err != nil {
		return err
	}

	for _, run := range runs {
		report.Reports = append(report.Reports, run.reports...)

		if args.DryRun || !run.changed() {
			continue
		}

		if err := w.writeDocument(ctx, run.after); err != nil {
			return err
		}
	}

	if args.Reports != "" {
		if err := w.SaveReport(ctx, args.Reports, report); err != nil {
			slog.Error("Failed to save report", "reports", args.Reports, "error", err)
			return fmt.Errorf("save report: %w", err)
		}
	}

	summary := summarize(report.Reports)
	w.DisplaySummary(ctx, summary)

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d: %w", summary.Failed, summary.Total(), ErrFixesFailed)
	}

	return ctx.Err()
}

// Diff shows what Fix would change without writing anything.
func (w *workflow) Diff(ctx context.Context, args DiffArgs) error {
	if err := w.Start(ctx, controller.WithDiffMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	runs, err := w.fixAll(ctx, args.Paths, args.Exclude, args.Threads)
	if err != nil {
		w.Close(ctx)
		return err
	}

	for _, run := range runs {
		if !run.changed() {
			continue
		}

		diff, err := unifiedDiff(run.before, run.after)
		if err != nil {
			w.Close(ctx)
			return fmt.Errorf("diff %s: %w", run.before.File.ShortPath, err)
		}

		w.DisplayDiff(ctx, run.before.File.ShortPath, diff)
	}

	w.Wait(ctx)
	w.Close(ctx)

	return nil
}

func (w *workflow) fixAll(ctx context.Context, paths []m.Path, exclude []string, threads int) ([]documentRun, error) {
	threads = normalizeBufferSize(threads)

	docs, count, err := w.streamer.Get(ctx, paths, exclude, threads)
	if err != nil {
		return nil, fmt.Errorf("discover documents: %w", err)
	}

	w.DisplayConcurrencyInfo(ctx, threads, count)

	var (
		runs   []documentRun
		runsMu sync.Mutex
		group  errgroup.Group
	)

	group.SetLimit(threads)

	for loaded := range docs {
		current := loaded

		group.Go(func() error {
			run := w.fixDocument(ctx, current)

			runsMu.Lock()
			runs = append(runs, run)
			runsMu.Unlock()

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return runs, err
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].file.FullPath < runs[j].file.FullPath
	})

	return runs, nil
}

func (w *workflow) fixDocument(ctx context.Context, loaded LoadedDocument) documentRun {
	if loaded.Err != nil {
		report := m.FixReport{
			DiagnosticID: string(loaded.File.ShortPath),
			Path:         loaded.File.ShortPath,
			Status:       m.Failed,
			Error:        loaded.Err.Error(),
		}
		w.DisplayCompletedFix(ctx, report)

		return documentRun{file: loaded.File, reports: []m.FixReport{report}}
	}

	run := documentRun{file: loaded.File, before: loaded.Document, after: loaded.Document}
	attempted := make(map[string]struct{})

	for i := 0; i < maxFixesPerDocument; i++ {
		diag, ok := nextDiagnostic(w.Analyze(run.after), attempted)
		if !ok {
			break
		}

		attempted[diag.ID] = struct{}{}

		report := m.FixReport{
			DiagnosticID: diag.ID,
			Path:         diag.Location.Path,
			Class:        diag.Class,
			Parameter:    diag.Parameter,
		}

		outcome, err := w.ApplyFix(ctx, run.after, diag)

		switch {
		case err == nil:
			report.Status = m.Applied
			report.FieldName = outcome.FieldName
			report.Reused = outcome.Reused
			run.after = outcome.Document
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			report.Status = m.Canceled
			report.Error = err.Error()
		case errors.Is(err, refactor.ErrNoParameter), errors.Is(err, refactor.ErrNoConstructor):
			report.Status = m.Skipped
			report.Error = err.Error()
		default:
			report.Status = m.Failed
			report.Error = err.Error()
		}

		w.DisplayCompletedFix(ctx, report)
		run.reports = append(run.reports, report)

		if report.Status == m.Canceled {
			break
		}
	}

	return run
}

func nextDiagnostic(diagnostics []m.Diagnostic, attempted map[string]struct{}) (m.Diagnostic, bool) {
	for _, diag := range diagnostics {
		if _, done := attempted[diag.ID]; !done {
			return diag, true
		}
	}

	return m.Diagnostic{}, false
}

func (w *workflow) writeDocument(ctx context.Context, doc m.Document) error {
	content, err := w.documents.Encode(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", doc.File.ShortPath, err)
	}

	var perm os.FileMode = defaultFilePerm
	if info, err := w.FileInfo(ctx, doc.File.FullPath); err == nil {
		perm = info.Mode().Perm()
	}

	if err := w.WriteFile(ctx, doc.File.FullPath, content, perm); err != nil {
		slog.Error("Failed to write document", "path", doc.File.FullPath, "error", err)
		return fmt.Errorf("write %s: %w", doc.File.ShortPath, err)
	}

	return nil
}

const defaultFilePerm = 0o644

func unifiedDiff(before, after m.Document) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before.Text),
		B:        difflib.SplitLines(after.Text),
		FromFile: "a/" + string(before.File.ShortPath),
		ToFile:   "b/" + string(after.File.ShortPath),
		Context:  3,
	})
}
