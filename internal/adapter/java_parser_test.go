package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctorfield.dev/pkg/ctorfield/internal/syntax"
	"ctorfield.dev/pkg/ctorfield/internal/syntax/printer"
)

const serviceJava = `package demo;

import java.util.List;
import java.util.Map;

public class Service {
    // the client
    private final Client client;
    private int a = 1, b;

    public Service(Client client, List<String> names) {
        super();
        log(names);
    }

    void run() {
        client.call();
    }

    static class Inner {
        Inner(int x) {
        }
    }
}
`

func members[T syntax.Node](nodes []syntax.Node) []T {
	var out []T

	for _, n := range nodes {
		if v, ok := n.(T); ok {
			out = append(out, v)
		}
	}

	return out
}

func TestParseJava(t *testing.T) {
	unit, err := ParseJava([]byte(serviceJava))
	require.NoError(t, err)
	require.Len(t, unit.Members, 4)

	assert.Len(t, members[*syntax.Opaque](unit.Members), 3, "package and imports are kept verbatim")

	classes := members[*syntax.Class](unit.Members)
	require.Len(t, classes, 1)

	service := classes[0]
	assert.Equal(t, "Service", service.Name)
	assert.Equal(t, "public class Service", service.Header)
	assert.True(t, service.Modifiers.Has(syntax.Public))

	fields := members[*syntax.Field](service.Members)
	require.Len(t, fields, 2)
	assert.Equal(t, []string{"client"}, fields[0].Names())
	assert.Equal(t, "Client", fields[0].Type.Text)
	assert.True(t, fields[0].Modifiers.Has(syntax.Private|syntax.ReadOnly))
	assert.Equal(t, []syntax.Variable{{Name: "a", Initializer: "1"}, {Name: "b"}}, fields[1].Variables)

	ctors := members[*syntax.Constructor](service.Members)
	require.Len(t, ctors, 1)

	ctor := ctors[0]
	assert.Equal(t, "Service", ctor.Name)
	assert.Equal(t, "public", ctor.Prefix)
	require.Len(t, ctor.Parameters, 2)
	assert.Equal(t, "client", ctor.Parameters[0].Name)
	assert.Equal(t, "Client", ctor.Parameters[0].Type.Text)
	assert.Equal(t, "names", ctor.Parameters[1].Name)
	assert.Equal(t, "List<String>", ctor.Parameters[1].Type.Text)
	require.NotNil(t, ctor.Body)
	assert.Len(t, ctor.Body.Statements, 2)

	p := ctor.Parameters[1]
	assert.Equal(t, "List<String> names", serviceJava[p.Span().Start:p.Span().End])

	methods := members[*syntax.Method](service.Members)
	require.Len(t, methods, 1)
	assert.Equal(t, "run", methods[0].Name)
	assert.Equal(t, "void", methods[0].ReturnType.Text)

	nested := members[*syntax.Class](service.Members)
	require.Len(t, nested, 1)
	assert.True(t, nested[0].Modifiers.Has(syntax.Static))
	require.Len(t, members[*syntax.Constructor](nested[0].Members), 1)

	assert.Len(t, members[*syntax.Opaque](service.Members), 1, "comments are kept")
}

func TestParseJava_SyntaxError(t *testing.T) {
	_, err := ParseJava([]byte("public class {"))
	require.ErrorIs(t, err, ErrSyntax)
}

func TestParseJava_RoundTripKeepsMembers(t *testing.T) {
	unit, err := ParseJava([]byte(serviceJava))
	require.NoError(t, err)

	text := printer.Print(unit, printer.Options{Language: syntax.Java})

	reparsed, err := ParseJava([]byte(text))
	require.NoError(t, err)

	assert.Equal(t, text, printer.Print(reparsed, printer.Options{Language: syntax.Java}), "printing is stable")
	assert.Contains(t, text, "import java.util.List;\nimport java.util.Map;\n")
	assert.Contains(t, text, "    private final Client client;\n    private int a = 1, b;\n")
	assert.Contains(t, text, "    public Service(Client client, List<String> names) {\n        super();\n")
}

const accountJava = `package demo;

/**
 * Account service.
 */
@Deprecated
public class Account {
    private int count; // used

    @Inject
    public <T> Account(final int limit, List<T> items) throws IOException, SQLException {
        super(); // call super
        if (items.isEmpty()) {
            count = 0;
        }
    }

    static class Inner {
        Inner(int depth) { }
    }
}
`

func TestParseJava_ConstructorHeader(t *testing.T) {
	unit, err := ParseJava([]byte(accountJava))
	require.NoError(t, err)

	account := members[*syntax.Class](unit.Members)[0]
	ctors := members[*syntax.Constructor](account.Members)
	require.Len(t, ctors, 1)

	ctor := ctors[0]
	assert.Equal(t, "Account", ctor.Name)
	assert.Equal(t, "<T>", ctor.TypeParameters)
	assert.Equal(t, "throws IOException, SQLException", ctor.Throws)
	assert.Contains(t, ctor.Prefix, "@Inject")
	assert.True(t, ctor.Modifiers.Has(syntax.Public))
	require.Len(t, ctor.Parameters, 2)
	assert.True(t, ctor.Parameters[0].Modifiers.Has(syntax.ReadOnly))
	assert.Equal(t, "List<T>", ctor.Parameters[1].Type.Text)

	text := printer.Print(unit, printer.Options{Language: syntax.Java})
	assert.Contains(t, text, "public <T> Account(final int limit, List<T> items) throws IOException, SQLException {")
}

func TestParseJava_PlainConstructorHasNoHeaderExtras(t *testing.T) {
	unit, err := ParseJava([]byte(serviceJava))
	require.NoError(t, err)

	ctor := members[*syntax.Constructor](members[*syntax.Class](unit.Members)[0].Members)[0]
	assert.Empty(t, ctor.TypeParameters)
	assert.Empty(t, ctor.Throws)
}
