package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	m "ctorfield.dev/pkg/ctorfield/internal/model"
	"ctorfield.dev/pkg/ctorfield/internal/syntax"
	"ctorfield.dev/pkg/ctorfield/internal/syntax/printer"
)

// ErrUnsupportedDocument is returned for files no parser handles.
var ErrUnsupportedDocument = errors.New("unsupported document")

// DocumentKind tells how a document is stored on disk.
type DocumentKind int

const (
	// KindUnknown is any file the adapter does not handle.
	KindUnknown DocumentKind = iota
	// KindJava is Java source parsed with tree-sitter.
	KindJava
	// KindTree is a YAML tree document.
	KindTree
)

// KindOf classifies a path by extension.
func KindOf(path m.Path) DocumentKind {
	switch strings.ToLower(filepath.Ext(string(path))) {
	case ".java":
		return KindJava
	case ".yaml", ".yml":
		return KindTree
	}

	return KindUnknown
}

// IsDocumentPath reports whether path can be loaded as a document.
func IsDocumentPath(path m.Path) bool {
	return KindOf(path) != KindUnknown
}

// DocumentAdapter turns files into syntax tree snapshots and back.
type DocumentAdapter interface {
	// Load reads and parses file. Parsed trees are cached by content hash.
	Load(ctx context.Context, file m.File) (m.Document, error)
	// Reassociate builds the snapshot that follows doc once its tree became root.
	// Nodes listed in reformat are rendered canonically.
	Reassociate(ctx context.Context, doc m.Document, root syntax.Node, reformat []syntax.NodeID) (m.Document, error)
	// Encode returns the bytes that store doc on disk.
	Encode(doc m.Document) ([]byte, error)
}

type documentAdapter struct {
	fs    SourceFSAdapter
	cache *TreeCache
}

// NewDocumentAdapter creates a DocumentAdapter reading through fs. A nil
// cache disables caching.
func NewDocumentAdapter(fs SourceFSAdapter, cache *TreeCache) DocumentAdapter {
	return &documentAdapter{fs: fs, cache: cache}
}

func (a *documentAdapter) Load(ctx context.Context, file m.File) (m.Document, error) {
	if file.Hash != "" {
		if doc, ok := a.cache.Get(file.Hash); ok {
			slog.Debug("Tree cache hit", "path", file.ShortPath)

			doc.File = file

			return doc, nil
		}
	}

	content, err := a.fs.ReadFile(ctx, file.FullPath)
	if err != nil {
		return m.Document{}, fmt.Errorf("read %s: %w", file.ShortPath, err)
	}

	if file.Hash == "" {
		file.Hash = HashBytes(content)
	}

	doc, err := Parse(file, content)
	if err != nil {
		return m.Document{}, err
	}

	a.cache.Add(file.Hash, doc)

	return doc, nil
}

// Parse builds a snapshot from file content.
func Parse(file m.File, content []byte) (m.Document, error) {
	switch KindOf(file.FullPath) {
	case KindJava:
		root, err := ParseJava(content)
		if err != nil {
			return m.Document{}, fmt.Errorf("%s: %w", file.ShortPath, err)
		}

		return m.Document{File: file, Language: syntax.Java, Root: root, Text: string(content)}, nil
	case KindTree:
		root, lang, err := DecodeTree(content)
		if err != nil {
			return m.Document{}, fmt.Errorf("%s: %w", file.ShortPath, err)
		}

		text, laid := printer.Layout(root, printer.Options{Language: lang})

		return m.Document{File: file, Language: lang, Root: laid, Text: text}, nil
	case KindUnknown:
	}

	return m.Document{}, fmt.Errorf("%s: %w", file.ShortPath, ErrUnsupportedDocument)
}

func (a *documentAdapter) Reassociate(ctx context.Context, doc m.Document, root syntax.Node, reformat []syntax.NodeID) (m.Document, error) {
	if err := ctx.Err(); err != nil {
		return m.Document{}, err
	}

	opts := printer.Options{Language: doc.Language, Reformat: reformat}
	next := doc

	switch KindOf(doc.File.FullPath) {
	case KindJava:
		text := printer.Splice(doc.Text, root, opts)

		parsed, err := ParseJava([]byte(text))
		if err != nil {
			return m.Document{}, fmt.Errorf("reparse %s: %w", doc.File.ShortPath, err)
		}

		next.Root, next.Text = parsed, text
	default:
		text, laid := printer.Layout(root, opts)
		next.Root, next.Text = laid, text
	}

	encoded, err := a.Encode(next)
	if err != nil {
		return m.Document{}, err
	}

	next.File.Hash = HashBytes(encoded)
	a.cache.Add(next.File.Hash, next)

	return next, nil
}

func (a *documentAdapter) Encode(doc m.Document) ([]byte, error) {
	if KindOf(doc.File.FullPath) == KindTree {
		return EncodeTree(doc.Root, doc.Language)
	}

	return []byte(doc.Text), nil
}
