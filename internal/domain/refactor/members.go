// Package refactor implements the "introduce field from constructor parameter"
// transformation on immutable syntax trees.
package refactor

import (
	"errors"
	"fmt"
	"strings"

	"ctorfield.dev/pkg/ctorfield/internal/syntax"
)

// ErrDuplicateMember signals a class declaring the same member name twice.
// The source is already invalid, so the fix gives up instead of guessing.
var ErrDuplicateMember = errors.New("duplicate member name")

// Members maps member names to their declared type. The type is nil for
// members that are not field-like (methods, properties, events); such entries
// never match a parameter type.
type Members map[string]*syntax.TypeRef

// CollectMembers extracts the named members of a class body.
func CollectMembers(members []syntax.Node) (Members, error) {
	collected := make(Members, len(members))

	add := func(name string, typ *syntax.TypeRef) error {
		if _, exists := collected[name]; exists {
			return fmt.Errorf("%w: %q", ErrDuplicateMember, name)
		}

		collected[name] = typ

		return nil
	}

	for _, member := range members {
		var err error

		switch v := member.(type) {
		case *syntax.Method:
			err = add(v.Name, nil)
		case *syntax.Property:
			err = add(v.Name, nil)
		case *syntax.Event:
			err = add(v.Name, nil)
		case *syntax.Field:
			err = addVariables(add, v.Variables, v.Type)
		case *syntax.EventField:
			err = addVariables(add, v.Variables, v.Type)
		case *syntax.CompilationUnit, *syntax.Class, *syntax.Constructor, *syntax.Parameter,
			*syntax.Block, *syntax.Statement, *syntax.Assignment, *syntax.Opaque:
			// not a named member
		}

		if err != nil {
			return nil, err
		}
	}

	return collected, nil
}

func addVariables(add func(string, *syntax.TypeRef) error, vars []syntax.Variable, typ syntax.TypeRef) error {
	for _, v := range vars {
		shared := typ
		if err := add(v.Name, &shared); err != nil {
			return err
		}
	}

	return nil
}

// Contains reports whether any member is named name.
func (ms Members) Contains(name string) bool {
	_, ok := ms[name]
	return ok
}

// Matches reports whether a member has both the given name and type.
func (ms Members) Matches(name string, typ syntax.TypeRef) bool {
	existing, ok := ms[name]
	return ok && existing != nil && existing.Equal(typ)
}

// sealInitializedFinals turns Java final fields that carry an initializer into
// name-only entries: they still collide but are never reused, since a second
// assignment does not compile.
func sealInitializedFinals(ms Members, members []syntax.Node) {
	for _, member := range members {
		field, ok := member.(*syntax.Field)
		if !ok || !field.Modifiers.Has(syntax.ReadOnly) {
			continue
		}

		for _, v := range field.Variables {
			if strings.TrimSpace(v.Initializer) != "" {
				ms[v.Name] = nil
			}
		}
	}
}
