package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ctorfield.dev/pkg/ctorfield/internal/adapter"
	"ctorfield.dev/pkg/ctorfield/internal/controller"
	m "ctorfield.dev/pkg/ctorfield/internal/model"
)

// ErrFixesFailed is returned when at least one fix of a run failed.
var ErrFixesFailed = errors.New("some fixes failed")

// ListArgs contains the arguments for listing diagnostics.
type ListArgs struct {
	Paths   []m.Path
	Exclude []string
	Threads int
}

// FixArgs contains the arguments for a fix-all run.
type FixArgs struct {
	Paths   []m.Path
	Exclude []string
	Threads int
	DryRun  bool
	Reports m.Path
}

// DiffArgs contains the arguments for previewing fixes.
type DiffArgs struct {
	Paths   []m.Path
	Exclude []string
	Threads int
}

// ViewArgs contains the arguments for viewing the last run report.
type ViewArgs struct {
	Reports m.Path
}

// Workflow is the set of operations exposed by the CLI.
type Workflow interface {
	List(ctx context.Context, args ListArgs) error
	Fix(ctx context.Context, args FixArgs) error
	Diff(ctx context.Context, args DiffArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.SourceFSAdapter
	adapter.ReportStore
	controller.UI
	Orchestrator
	Analyzer
	streamer  DocumentStreamer
	documents adapter.DocumentAdapter
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	fsAdapter adapter.SourceFSAdapter,
	documents adapter.DocumentAdapter,
	reportStore adapter.ReportStore,
	ui controller.UI,
	orchestrator Orchestrator,
	analyzer Analyzer,
) Workflow {
	return &workflow{
		SourceFSAdapter: fsAdapter,
		ReportStore:     reportStore,
		UI:              ui,
		Orchestrator:    orchestrator,
		Analyzer:        analyzer,
		streamer:        NewDocumentStreamer(fsAdapter, documents),
		documents:       documents,
	}
}

// List displays every diagnostic found under the given paths.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	if err := w.Start(ctx, controller.WithListMode()); err != nil {
		slog.Error("Failed to start workflow UI", "error", err)
		return err
	}

	diagnostics, collectErr := w.collectDiagnostics(ctx, args.Paths, args.Exclude, args.Threads)
	if collectErr != nil {
		slog.Error("Failed to collect diagnostics", "error", collectErr)
	}

	if err := w.DisplayDiagnostics(ctx, diagnostics, collectErr); err != nil && !errors.Is(err, collectErr) {
		w.Close(ctx)
		return fmt.Errorf("display: %w", err)
	}

	if collectErr != nil {
		w.Close(ctx)
		return fmt.Errorf("collect diagnostics: %w", collectErr)
	}

	w.Wait(ctx)
	w.Close(ctx)

	return nil
}

func (w *workflow) collectDiagnostics(ctx context.Context, paths []m.Path, exclude []string, threads int) ([]m.Diagnostic, error) {
	docs, _, err := w.streamer.Get(ctx, paths, exclude, threads)
	if err != nil {
		return nil, err
	}

	var (
		diagnostics []m.Diagnostic
		loadErrs    []error
	)

	for loaded := range docs {
		if loaded.Err != nil {
			loadErrs = append(loadErrs, loaded.Err)
			continue
		}

		diagnostics = append(diagnostics, w.Analyze(loaded.Document)...)
	}

	if err := ctx.Err(); err != nil {
		return diagnostics, err
	}

	return diagnostics, errors.Join(loadErrs...)
}

// View displays the report saved by the last fix run.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	if err := w.Start(ctx, controller.WithViewMode()); err != nil {
		return err
	}

	report, err := w.LoadReport(ctx, args.Reports)
	if err != nil {
		w.Close(ctx)
		slog.Error("Failed to load report", "reports", args.Reports, "error", err)

		return fmt.Errorf("load report: %w", err)
	}

	if err := w.DisplayRunReport(ctx, report); err != nil {
		w.Close(ctx)
		return fmt.Errorf("display: %w", err)
	}

	w.Wait(ctx)
	w.Close(ctx)

	return nil
}
