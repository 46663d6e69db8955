package refactor

import (
	"errors"
	"fmt"

	"ctorfield.dev/pkg/ctorfield/internal/syntax"
)

var (
	// ErrNoParameter is returned when no parameter encloses the location.
	ErrNoParameter = errors.New("no enclosing parameter")
	// ErrNoConstructor is returned when no constructor encloses the location.
	ErrNoConstructor = errors.New("no enclosing constructor")
	// ErrNoEnclosingClass is returned when the constructor is not inside a class of the tree.
	ErrNoEnclosingClass = errors.New("constructor is not inside a class")
)

// Options tunes IntroduceField.
type Options struct {
	Naming    NamingPolicy
	Selection ConstructorSelection
	// Language enables the Java rules for final fields when set to syntax.Java.
	Language syntax.Language
}

// Result is the new tree and what the edit did. Reformat lists the nodes
// created by the edit; the caller decides whether to reformat them.
type Result struct {
	Root      syntax.Node
	FieldName string
	Reused    bool
	Reformat  []syntax.NodeID
}

// IntroduceField stores param in a private read-only field of the class
// enclosing ctor and assigns it at the end of the constructor body.
func IntroduceField(root syntax.Node, ctor *syntax.Constructor, param *syntax.Parameter, opts Options) (Result, error) {
	class, ok := syntax.EnclosingClass(root, ctor.ID())
	if !ok {
		return Result{}, fmt.Errorf("constructor %s: %w", ctor.Name, ErrNoEnclosingClass)
	}

	members, err := CollectMembers(class.Members)
	if err != nil {
		return Result{}, fmt.Errorf("collect members of %s: %w", class.Name, err)
	}

	if opts.Language == syntax.Java {
		sealInitializedFinals(members, class.Members)
	}

	plan := planField(param, members, opts.Naming, FieldModifiersFor(class, opts.Language))

	patched, assignment, err := PatchConstructor(ctor, plan.Name, param.Name)
	if err != nil {
		return Result{}, err
	}

	newRoot, err := Compose(root, class, plan.Field, ctor, patched, opts.Selection)
	if err != nil {
		return Result{}, err
	}

	reformat := make([]syntax.NodeID, 0, 2)
	if plan.Field != nil {
		reformat = append(reformat, plan.Field.ID())
	}

	reformat = append(reformat, assignment.ID())

	return Result{
		Root:      newRoot,
		FieldName: plan.Name,
		Reused:    plan.Reused,
		Reformat:  reformat,
	}, nil
}

// ResolveTarget finds the parameter and constructor enclosing offset.
func ResolveTarget(root syntax.Node, offset int) (*syntax.Constructor, *syntax.Parameter, error) {
	chain := syntax.AncestorsAt(root, offset)

	param, ok := syntax.FirstAncestor[*syntax.Parameter](chain)
	if !ok {
		return nil, nil, fmt.Errorf("offset %d: %w", offset, ErrNoParameter)
	}

	ctor, ok := syntax.FirstAncestor[*syntax.Constructor](chain)
	if !ok {
		return nil, nil, fmt.Errorf("parameter %s: %w", param.Name, ErrNoConstructor)
	}

	return ctor, param, nil
}
