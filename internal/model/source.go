// Package model defines the data structures shared by the refactoring host.
package model

import (
	"strings"

	"ctorfield.dev/pkg/ctorfield/internal/syntax"
)

// Path represents a file system path.
type Path string

// File represents a source document on disk.
type File struct {
	FullPath  Path
	ShortPath Path
	Hash      string
}

// Document is an immutable snapshot of a parsed file. Root spans point into Text.
type Document struct {
	File     File
	Language syntax.Language
	Root     syntax.Node
	Text     string
}

// LineColumn converts a byte offset of Text into a 1-based line and column.
func (d Document) LineColumn(offset int) (int, int) {
	if offset > len(d.Text) {
		offset = len(d.Text)
	}

	if offset < 0 {
		offset = 0
	}

	before := d.Text[:offset]
	line := strings.Count(before, "\n") + 1
	column := offset - strings.LastIndex(before, "\n")

	return line, column
}
