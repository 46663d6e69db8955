package domain_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"ctorfield.dev/pkg/ctorfield/internal/adapter"
	m "ctorfield.dev/pkg/ctorfield/internal/model"
)

const serviceSource = `package demo;

public class Service {
    private final Client client;

    public Service(Client client, List<String> names) {
        log(names);
    }
}
`

const repoSource = `public class Repo {
    private final Db db;

    public Repo(Db db) {
        this.db = db;
    }
}
`

const personTree = `language: csharp
members:
  - class:
      name: Person
      modifiers: [public]
      members:
        - field: {modifiers: [private], type: int, variables: [{name: name}]}
        - constructor:
            name: Person
            modifiers: [public]
            parameters:
              - {name: name, type: string}
            body: []
        - constructor:
            name: Person
            parameters:
              - {name: age, type: int}
            expression: Init(age)
`

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func readSource(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(content)
}

func newDocuments(t *testing.T) adapter.DocumentAdapter {
	t.Helper()

	cache, err := adapter.NewTreeCache(16)
	require.NoError(t, err)

	return adapter.NewDocumentAdapter(adapter.NewLocalSourceFSAdapter(), cache)
}

func parseDocument(t *testing.T, name, content string) m.Document {
	t.Helper()

	file := m.File{FullPath: m.Path(name), ShortPath: m.Path(name), Hash: adapter.HashBytes([]byte(content))}

	doc, err := adapter.Parse(file, []byte(content))
	require.NoError(t, err)

	return doc
}
