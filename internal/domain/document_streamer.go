package domain

import (
	"context"
	"log/slog"

	"ctorfield.dev/pkg/ctorfield/internal/adapter"
	m "ctorfield.dev/pkg/ctorfield/internal/model"
)

// LoadedDocument is a parsed document or the reason it could not be parsed.
type LoadedDocument struct {
	File     m.File
	Document m.Document
	Err      error
}

// DocumentStreamer discovers and parses documents.
type DocumentStreamer interface {
	Get(ctx context.Context, paths []m.Path, exclude []string, threads int) (<-chan LoadedDocument, int, error)
}

type documentStreamer struct {
	adapter.SourceFSAdapter
	documents adapter.DocumentAdapter
}

// NewDocumentStreamer creates a new DocumentStreamer instance with the provided dependencies.
func NewDocumentStreamer(fsAdapter adapter.SourceFSAdapter, documents adapter.DocumentAdapter) DocumentStreamer {
	return &documentStreamer{
		SourceFSAdapter: fsAdapter,
		documents:       documents,
	}
}

// Get resolves paths and streams their documents sorted by path, returning
// the number of documents that will be sent. Discovery errors are returned
// directly; parse errors travel with the document.
// The channel closes when done or when ctx is cancelled.
func (ds *documentStreamer) Get(ctx context.Context, paths []m.Path, exclude []string, threads int) (<-chan LoadedDocument, int, error) {
	slog.Debug("Starting document streaming", "paths", len(paths), "threads", threads)

	files, err := ds.SourceFSAdapter.Get(ctx, paths, exclude...)
	if err != nil {
		slog.Error("Failed to discover documents", "error", err)
		return nil, 0, err
	}

	slog.Debug("Discovered documents", "count", len(files))

	ch := make(chan LoadedDocument, normalizeBufferSize(threads))

	go func() {
		defer close(ch)

		for _, file := range files {
			if ctx.Err() != nil {
				slog.Debug("Document streaming cancelled")
				return
			}

			loaded := LoadedDocument{File: file}

			loaded.Document, loaded.Err = ds.documents.Load(ctx, file)
			if loaded.Err != nil {
				slog.Error("Failed to load document", "path", file.ShortPath, "error", loaded.Err)
			}

			select {
			case <-ctx.Done():
				return
			case ch <- loaded:
			}
		}
	}()

	return ch, len(files), nil
}

// normalizeBufferSize ensures the buffer size is at least 1.
func normalizeBufferSize(threads int) int {
	if threads <= 0 {
		return 1
	}

	return threads
}
