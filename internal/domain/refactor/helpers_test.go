package refactor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ctorfield.dev/pkg/ctorfield/internal/syntax"
)

func param(name, typ string) *syntax.Parameter {
	return &syntax.Parameter{Meta: syntax.Fresh(), Name: name, Type: syntax.Type(typ)}
}

func ctor(name string, params ...*syntax.Parameter) *syntax.Constructor {
	return &syntax.Constructor{
		Meta:       syntax.Fresh(),
		Name:       name,
		Parameters: params,
		Body:       &syntax.Block{Meta: syntax.Fresh()},
	}
}

func field(mods syntax.Modifiers, typ string, names ...string) *syntax.Field {
	vars := make([]syntax.Variable, 0, len(names))
	for _, n := range names {
		vars = append(vars, syntax.Variable{Name: n})
	}

	return &syntax.Field{Meta: syntax.Fresh(), Modifiers: mods, Type: syntax.Type(typ), Variables: vars}
}

func method(name string) *syntax.Method {
	return &syntax.Method{Meta: syntax.Fresh(), Name: name, ReturnType: syntax.Type("void")}
}

func class(name string, members ...syntax.Node) *syntax.Class {
	return &syntax.Class{Meta: syntax.Fresh(), Name: name, Members: members}
}

func unit(members ...syntax.Node) *syntax.CompilationUnit {
	return &syntax.CompilationUnit{Meta: syntax.Fresh(), Members: members}
}

// classNamed returns the top-level class with the given name.
func classNamed(t *testing.T, root syntax.Node, name string) *syntax.Class {
	t.Helper()

	for _, member := range syntax.Children(root) {
		if c, ok := member.(*syntax.Class); ok && c.Name == name {
			return c
		}
	}

	require.FailNow(t, "class not found", name)

	return nil
}

func constructors(c *syntax.Class) []*syntax.Constructor {
	var out []*syntax.Constructor

	for _, member := range c.Members {
		if ctor, ok := member.(*syntax.Constructor); ok {
			out = append(out, ctor)
		}
	}

	return out
}

func lastAssignment(t *testing.T, ctor *syntax.Constructor) *syntax.Assignment {
	t.Helper()
	require.NotNil(t, ctor.Body)
	require.NotEmpty(t, ctor.Body.Statements)

	a, ok := ctor.Body.Statements[len(ctor.Body.Statements)-1].(*syntax.Assignment)
	require.True(t, ok, "last statement is %T", ctor.Body.Statements[len(ctor.Body.Statements)-1])

	return a
}
