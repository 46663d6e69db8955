package domain_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctorfield.dev/pkg/ctorfield/internal/domain"
	"ctorfield.dev/pkg/ctorfield/internal/domain/refactor"
	m "ctorfield.dev/pkg/ctorfield/internal/model"
)

func TestOrchestrator_ApplyFix_Java(t *testing.T) {
	doc := parseDocument(t, "Service.java", serviceSource)
	diags := domain.NewAnalyzer().Analyze(doc)
	require.Len(t, diags, 2)

	orch := domain.NewOrchestrator(newDocuments(t), refactor.Options{})

	reused, err := orch.ApplyFix(context.Background(), doc, diags[0])
	require.NoError(t, err)
	assert.True(t, reused.Reused)
	assert.Equal(t, "client", reused.FieldName)
	assert.Contains(t, reused.Document.Text, "        log(names);\n        this.client = client;\n    }")
	assert.NotEqual(t, doc.File.Hash, reused.Document.File.Hash)

	// diagnostics are recomputed against the new snapshot
	next := domain.NewAnalyzer().Analyze(reused.Document)
	require.Len(t, next, 1)

	added, err := orch.ApplyFix(context.Background(), reused.Document, next[0])
	require.NoError(t, err)
	assert.False(t, added.Reused)
	assert.Equal(t, "names", added.FieldName)
	assert.Contains(t, added.Document.Text, "public class Service {\n    private final List<String> names;\n    private final Client client;\n")
	assert.Contains(t, added.Document.Text, "        this.client = client;\n        this.names = names;\n")
	assert.Empty(t, domain.NewAnalyzer().Analyze(added.Document))

	assert.Equal(t, serviceSource, doc.Text, "the input snapshot is never modified")
}

func TestOrchestrator_ApplyFix_TreeNaming(t *testing.T) {
	tree := `language: csharp
members:
  - class:
      name: Person
      members:
        - field: {type: int, variables: [{name: name}]}
        - field: {type: int, variables: [{name: name1}]}
        - constructor:
            name: Person
            parameters: [{name: name, type: string}]
            body: []
`

	tests := []struct {
		name   string
		naming refactor.NamingPolicy
		want   string
	}{
		{name: "cumulative", naming: refactor.CumulativeSuffix, want: "name12"},
		{name: "sequential", naming: refactor.SequentialSuffix, want: "name2"},
		{name: "default", want: "name12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDocument(t, "person.yaml", tree)
			diags := domain.NewAnalyzer().Analyze(doc)
			require.Len(t, diags, 1)

			orch := domain.NewOrchestrator(newDocuments(t), refactor.Options{Naming: tt.naming})

			outcome, err := orch.ApplyFix(context.Background(), doc, diags[0])
			require.NoError(t, err)
			assert.Equal(t, tt.want, outcome.FieldName)
			assert.False(t, outcome.Reused)
			assert.Contains(t, outcome.Document.Text, "    private readonly string "+tt.want+";\n    int name;\n")
			assert.Contains(t, outcome.Document.Text, "        this."+tt.want+" = name;\n")
		})
	}
}

func TestOrchestrator_ApplyFix_TreeCollision(t *testing.T) {
	doc := parseDocument(t, "person.yaml", personTree)
	diags := domain.NewAnalyzer().Analyze(doc)
	require.Len(t, diags, 1)

	orch := domain.NewOrchestrator(newDocuments(t), refactor.Options{})

	outcome, err := orch.ApplyFix(context.Background(), doc, diags[0])
	require.NoError(t, err)
	assert.Equal(t, "name1", outcome.FieldName)
	assert.Contains(t, outcome.Document.Text, "    private readonly string name1;\n    private int name;\n")
}

func TestOrchestrator_ApplyFix_NoParameterAtLocation(t *testing.T) {
	doc := parseDocument(t, "Service.java", serviceSource)
	orch := domain.NewOrchestrator(newDocuments(t), refactor.Options{})

	diag := m.NewDiagnostic(m.Location{Path: "Service.java", Start: 0}, "Service", "Service", "client")

	_, err := orch.ApplyFix(context.Background(), doc, diag)
	require.ErrorIs(t, err, refactor.ErrNoParameter)
}

func TestOrchestrator_ApplyFix_ExpressionBody(t *testing.T) {
	doc := parseDocument(t, "person.yaml", personTree)
	orch := domain.NewOrchestrator(newDocuments(t), refactor.Options{})

	start := strings.Index(doc.Text, "int age")
	require.Positive(t, start)

	diag := m.NewDiagnostic(m.Location{Path: "person.yaml", Start: start}, "Person", "Person", "age")

	_, err := orch.ApplyFix(context.Background(), doc, diag)
	require.ErrorIs(t, err, refactor.ErrNoConstructorBody)
}

func TestOrchestrator_ApplyFix_Canceled(t *testing.T) {
	doc := parseDocument(t, "Service.java", serviceSource)
	diags := domain.NewAnalyzer().Analyze(doc)
	require.NotEmpty(t, diags)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	orch := domain.NewOrchestrator(newDocuments(t), refactor.Options{})

	_, err := orch.ApplyFix(ctx, doc, diags[0])
	require.ErrorIs(t, err, context.Canceled)
}

func TestOrchestrator_ApplyFix_LoadsMissingTree(t *testing.T) {
	path := writeSource(t, t.TempDir(), "Service.java", serviceSource)
	parsed := parseDocument(t, path, serviceSource)
	diags := domain.NewAnalyzer().Analyze(parsed)
	require.NotEmpty(t, diags)

	doc := m.Document{File: parsed.File}
	orch := domain.NewOrchestrator(newDocuments(t), refactor.Options{})

	outcome, err := orch.ApplyFix(context.Background(), doc, diags[0])
	require.NoError(t, err)
	assert.Contains(t, outcome.Document.Text, "this.client = client;")
}

func TestOrchestrator_ApplyFix_JavaConstructorHeader(t *testing.T) {
	source := `class Loader {
    @Inject
    public <T> Loader(final int limit, List<T> items) throws IOException, SQLException {
        super(items);
    }
}
`
	doc := parseDocument(t, "Loader.java", source)
	diags := domain.NewAnalyzer().Analyze(doc)
	require.Len(t, diags, 2)

	orch := domain.NewOrchestrator(newDocuments(t), refactor.Options{})

	outcome, err := orch.ApplyFix(context.Background(), doc, diags[0])
	require.NoError(t, err)

	want := `class Loader {
    private final int limit;
    @Inject
    public <T> Loader(final int limit, List<T> items) throws IOException, SQLException {
        super(items);
        this.limit = limit;
    }
}
`
	assert.Equal(t, want, outcome.Document.Text)
}

func TestOrchestrator_ApplyFix_JavaMultipleConstructors(t *testing.T) {
	source := `class P {
    P(int x) {}
    P() { this.y = 1; }
    private int y;
}
`
	doc := parseDocument(t, "P.java", source)
	diags := domain.NewAnalyzer().Analyze(doc)
	require.Len(t, diags, 1)

	orch := domain.NewOrchestrator(newDocuments(t), refactor.Options{})

	outcome, err := orch.ApplyFix(context.Background(), doc, diags[0])
	require.NoError(t, err)
	assert.Equal(t, "x", outcome.FieldName)

	want := `class P {
    private int x;
    P(int x) {
        this.x = x;
    }
    P() { this.y = 1; }
    private int y;
}
`
	assert.Equal(t, want, outcome.Document.Text)
}

func TestOrchestrator_ApplyFix_JavaInitializedFinal(t *testing.T) {
	source := `class P {
    private final int x = 0;

    P(int x) {}
}
`
	doc := parseDocument(t, "P.java", source)
	diags := domain.NewAnalyzer().Analyze(doc)
	require.Len(t, diags, 1)

	orch := domain.NewOrchestrator(newDocuments(t), refactor.Options{})

	outcome, err := orch.ApplyFix(context.Background(), doc, diags[0])
	require.NoError(t, err)
	assert.False(t, outcome.Reused)
	assert.Equal(t, "x1", outcome.FieldName)
	assert.Contains(t, outcome.Document.Text, "    private final int x1;\n    private final int x = 0;\n")
	assert.Contains(t, outcome.Document.Text, "this.x1 = x;")
}
