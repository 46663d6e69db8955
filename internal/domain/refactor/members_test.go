package refactor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctorfield.dev/pkg/ctorfield/internal/syntax"
)

func TestCollectMembers(t *testing.T) {
	members := []syntax.Node{
		field(syntax.Private, "int", "a", "b"),
		&syntax.EventField{Meta: syntax.Fresh(), Type: syntax.Type("EventHandler"), Variables: []syntax.Variable{{Name: "Changed"}}},
		method("Run"),
		&syntax.Property{Meta: syntax.Fresh(), Name: "Size", Type: syntax.Type("int")},
		&syntax.Event{Meta: syntax.Fresh(), Name: "Closed", Type: syntax.Type("EventHandler")},
		ctor("C", param("a", "int")),
		class("Nested"),
		&syntax.Opaque{Meta: syntax.Fresh(), Text: "// comment"},
	}

	got, err := CollectMembers(members)
	require.NoError(t, err)
	require.Len(t, got, 6)

	require.NotNil(t, got["a"])
	assert.Equal(t, "int", got["a"].Text)
	require.NotNil(t, got["b"])
	assert.Equal(t, "int", got["b"].Text)
	require.NotNil(t, got["Changed"])
	assert.Equal(t, "EventHandler", got["Changed"].Text)

	for _, name := range []string{"Run", "Size", "Closed"} {
		typ, ok := got[name]
		assert.True(t, ok, name)
		assert.Nil(t, typ, name)
	}

	assert.False(t, got.Contains("C"), "constructors are not named members")
	assert.False(t, got.Contains("Nested"), "nested classes are not collected")
}

func TestCollectMembers_Empty(t *testing.T) {
	got, err := CollectMembers(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCollectMembers_DuplicateName(t *testing.T) {
	tests := []struct {
		name    string
		members []syntax.Node
	}{
		{"field and method", []syntax.Node{field(syntax.Private, "int", "x"), method("x")}},
		{"two declarators", []syntax.Node{field(syntax.Private, "int", "x", "x")}},
		{"property and event", []syntax.Node{
			&syntax.Property{Meta: syntax.Fresh(), Name: "x"},
			&syntax.Event{Meta: syntax.Fresh(), Name: "x"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CollectMembers(tt.members)
			require.ErrorIs(t, err, ErrDuplicateMember)
			assert.Contains(t, err.Error(), `"x"`)
		})
	}
}

func TestMembers_Matches(t *testing.T) {
	members, err := CollectMembers([]syntax.Node{
		field(syntax.Private, "List<string>", "items"),
		method("run"),
	})
	require.NoError(t, err)

	assert.True(t, members.Matches("items", syntax.Type("List< string >")))
	assert.False(t, members.Matches("items", syntax.Type("List<int>")))
	assert.False(t, members.Matches("run", syntax.Type("void")), "typeless members never match")
	assert.False(t, members.Matches("missing", syntax.Type("int")))
}
