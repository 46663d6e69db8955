package refactor

import (
	"errors"
	"fmt"

	"ctorfield.dev/pkg/ctorfield/internal/syntax"
)

// ErrNoConstructorBody is returned for constructors without a statement block.
var ErrNoConstructorBody = errors.New("constructor has no statement body")

// PatchConstructor appends `this.<fieldName> = <paramName>;` to the body of
// ctor. The returned constructor keeps the ID of ctor.
func PatchConstructor(ctor *syntax.Constructor, fieldName, paramName string) (*syntax.Constructor, *syntax.Assignment, error) {
	if ctor.Body == nil {
		return nil, nil, fmt.Errorf("constructor %s: %w", ctor.Name, ErrNoConstructorBody)
	}

	assignment := syntax.NewAssignment(fieldName, paramName)

	return ctor.WithBody(ctor.Body.AddStatements(assignment)), assignment, nil
}
