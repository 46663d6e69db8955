package domain

import (
	"context"
	"fmt"
	"log/slog"

	"ctorfield.dev/pkg/ctorfield/internal/adapter"
	"ctorfield.dev/pkg/ctorfield/internal/domain/refactor"
	m "ctorfield.dev/pkg/ctorfield/internal/model"
)

// FixOutcome is the snapshot produced by one applied fix.
type FixOutcome struct {
	Document  m.Document
	FieldName string
	Reused    bool
}

// Orchestrator applies the introduce-field code action to one document.
type Orchestrator interface {
	ApplyFix(ctx context.Context, doc m.Document, diag m.Diagnostic) (FixOutcome, error)
}

type orchestrator struct {
	documents adapter.DocumentAdapter
	options   refactor.Options
}

// NewOrchestrator constructs an Orchestrator re-associating trees through documents.
func NewOrchestrator(documents adapter.DocumentAdapter, options refactor.Options) Orchestrator {
	return &orchestrator{
		documents: documents,
		options:   options,
	}
}

// ApplyFix resolves the parameter at the diagnostic start, introduces the
// field and returns the next snapshot of doc. Cancellation is observed
// before the tree is fetched and before the result is re-associated; the
// edit itself runs to completion.
func (o *orchestrator) ApplyFix(ctx context.Context, doc m.Document, diag m.Diagnostic) (FixOutcome, error) {
	if err := ctx.Err(); err != nil {
		return FixOutcome{}, err
	}

	if doc.Root == nil {
		loaded, err := o.documents.Load(ctx, doc.File)
		if err != nil {
			return FixOutcome{}, fmt.Errorf("load tree: %w", err)
		}

		doc = loaded
	}

	ctor, param, err := refactor.ResolveTarget(doc.Root, diag.Location.Start)
	if err != nil {
		return FixOutcome{}, fmt.Errorf("%s: %w", diag.Location, err)
	}

	options := o.options
	options.Language = doc.Language

	result, err := refactor.IntroduceField(doc.Root, ctor, param, options)
	if err != nil {
		slog.Error("Failed to introduce field", "diagnostic", diag.ID, "error", err)
		return FixOutcome{}, fmt.Errorf("%s: %w", diag.Location, err)
	}

	next, err := o.documents.Reassociate(ctx, doc, result.Root, result.Reformat)
	if err != nil {
		return FixOutcome{}, fmt.Errorf("reassociate %s: %w", doc.File.ShortPath, err)
	}

	slog.Debug("Introduced field", "diagnostic", diag.ID, "field", result.FieldName, "reused", result.Reused)

	return FixOutcome{
		Document:  next,
		FieldName: result.FieldName,
		Reused:    result.Reused,
	}, nil
}
