package refactor

import (
	"fmt"
	"strings"

	"ctorfield.dev/pkg/ctorfield/internal/syntax"
)

// ConstructorSelection decides which constructor of the class receives the
// patched body.
type ConstructorSelection int

const (
	// SelectTarget replaces the constructor the diagnostic resolved to.
	SelectTarget ConstructorSelection = iota
	// SelectFirst replaces the first constructor found in the class. With
	// several constructors this may overwrite the wrong one; kept for
	// compatibility with the historical behavior.
	SelectFirst
)

// Selection names accepted by ParseConstructorSelection.
const (
	SelectionTarget = "target"
	SelectionFirst  = "first"
)

// ParseConstructorSelection maps a configuration value to a selection. Empty
// selects SelectTarget.
func ParseConstructorSelection(name string) (ConstructorSelection, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", SelectionTarget:
		return SelectTarget, nil
	case SelectionFirst:
		return SelectFirst, nil
	}

	return SelectTarget, fmt.Errorf("unknown constructor selection %q", name)
}

func (s ConstructorSelection) String() string {
	if s == SelectFirst {
		return SelectionFirst
	}

	return SelectionTarget
}

// Compose builds the final tree: newField (when non-nil) becomes the first
// member of oldClass, the selected constructor is replaced by newCtor and the
// resulting class replaces oldClass in root.
func Compose(
	root syntax.Node,
	oldClass *syntax.Class,
	newField *syntax.Field,
	oldCtor, newCtor *syntax.Constructor,
	selection ConstructorSelection,
) (syntax.Node, error) {
	newClass := oldClass
	if newField != nil {
		newClass = newClass.InsertMember(0, newField)
	}

	targetID, replacement, err := selectConstructor(newClass, oldCtor, newCtor, selection)
	if err != nil {
		return nil, err
	}

	patched, err := syntax.Replace(newClass, targetID, replacement)
	if err != nil {
		return nil, fmt.Errorf("replace constructor in class %s: %w", oldClass.Name, err)
	}

	newRoot, err := syntax.Replace(root, oldClass.ID(), patched)
	if err != nil {
		return nil, fmt.Errorf("replace class %s: %w", oldClass.Name, err)
	}

	return newRoot, nil
}

func selectConstructor(
	class *syntax.Class,
	oldCtor, newCtor *syntax.Constructor,
	selection ConstructorSelection,
) (syntax.NodeID, *syntax.Constructor, error) {
	if selection != SelectFirst {
		return oldCtor.ID(), newCtor, nil
	}

	first, ok := syntax.FirstDescendant[*syntax.Constructor](class)
	if !ok {
		return syntax.NoNodeID, nil, fmt.Errorf("class %s: %w", class.Name, ErrNoConstructor)
	}

	if first.ID() == oldCtor.ID() {
		return first.ID(), newCtor, nil
	}

	// The patched copy lands in another constructor's slot; give it its own
	// identity so the tree keeps unique IDs.
	moved := *newCtor
	moved.Meta = syntax.At(first.Span())

	return first.ID(), &moved, nil
}
