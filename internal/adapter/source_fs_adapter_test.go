package adapter

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	m "ctorfield.dev/pkg/ctorfield/internal/model"
)

func TestLocalSourceFSAdapter_Walk(t *testing.T) {
	t.Run("non recursive skips nested files", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "Main.java"), "class Main {}\n")

		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		writeTestFile(t, filepath.Join(nestedDir, "Child.java"), "class Child {}\n")

		var visited []string
		err := adapter.Walk(context.Background(), m.Path(root), false, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}

		for _, forbidden := range []string{nestedDir, filepath.Join(nestedDir, "Child.java")} {
			if containsPath(visited, forbidden) {
				t.Fatalf("Walk() unexpectedly visited %s when recursive is false", forbidden)
			}
		}

		if !containsPath(visited, filepath.Join(root, "Main.java")) {
			t.Fatalf("Walk() did not visit top-level file")
		}
	})

	t.Run("recursive visits nested files but not hidden dirs", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		child := filepath.Join(nestedDir, "Child.java")
		writeTestFile(t, child, "class Child {}\n")

		hidden := filepath.Join(root, ".git")
		mustMkdir(t, hidden)
		writeTestFile(t, filepath.Join(hidden, "Config.java"), "class Config {}\n")

		var visited []string
		err := adapter.Walk(context.Background(), m.Path(root), true, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}

		if !containsPath(visited, child) {
			t.Fatalf("Walk() did not visit nested file when recursive")
		}

		if containsPath(visited, filepath.Join(hidden, "Config.java")) {
			t.Fatalf("Walk() visited a hidden directory")
		}
	})

	t.Run("canceled context stops the walk", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := adapter.Walk(ctx, m.Path(t.TempDir()), true, func(string, os.FileInfo, error) error { return nil })
		if err == nil {
			t.Fatalf("Walk() error = nil, want context error")
		}
	})
}

func TestLocalSourceFSAdapter_Get(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "Service.java"), "class Service {}\n")
	writeTestFile(t, filepath.Join(root, "tree.yaml"), "members: []\n")
	writeTestFile(t, filepath.Join(root, "README.md"), "# readme\n")

	nested := filepath.Join(root, "gen")
	mustMkdir(t, nested)
	writeTestFile(t, filepath.Join(nested, "Generated.java"), "class Generated {}\n")

	adapter := NewLocalSourceFSAdapter()
	ctx := context.Background()

	t.Run("directory is flat", func(t *testing.T) {
		files, err := adapter.Get(ctx, []m.Path{m.Path(root)})
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}

		if len(files) != 2 {
			t.Fatalf("Get() returned %d files, want 2: %v", len(files), files)
		}
	})

	t.Run("recursive suffix descends", func(t *testing.T) {
		files, err := adapter.Get(ctx, []m.Path{m.Path(root + "/...")})
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}

		if len(files) != 3 {
			t.Fatalf("Get() returned %d files, want 3", len(files))
		}

		for i := 1; i < len(files); i++ {
			if files[i-1].FullPath > files[i].FullPath {
				t.Fatalf("Get() result is not sorted: %v", files)
			}
		}

		if files[0].Hash == "" {
			t.Fatalf("Get() did not hash %s", files[0].FullPath)
		}
	})

	t.Run("exclude patterns", func(t *testing.T) {
		files, err := adapter.Get(ctx, []m.Path{m.Path(root + "/...")}, `/gen/`, `\.yaml$`)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}

		if len(files) != 1 || filepath.Base(string(files[0].FullPath)) != "Service.java" {
			t.Fatalf("Get() = %v, want only Service.java", files)
		}
	})

	t.Run("duplicate paths are reported once", func(t *testing.T) {
		file := m.Path(filepath.Join(root, "Service.java"))

		files, err := adapter.Get(ctx, []m.Path{file, file})
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}

		if len(files) != 1 {
			t.Fatalf("Get() returned %d files, want 1", len(files))
		}
	})

	t.Run("invalid exclude", func(t *testing.T) {
		if _, err := adapter.Get(ctx, []m.Path{m.Path(root)}, "("); err == nil {
			t.Fatalf("Get() error = nil, want regexp error")
		}
	})

	t.Run("missing path", func(t *testing.T) {
		if _, err := adapter.Get(ctx, []m.Path{m.Path(filepath.Join(root, "missing"))}); err == nil {
			t.Fatalf("Get() error = nil, want stat error")
		}
	})
}

func TestLocalSourceFSAdapter_ReadWriteFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "Main.java")
	content := "class Main {\n}\n"

	if err := adapter.WriteFile(ctx, m.Path(path), []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := adapter.ReadFile(ctx, m.Path(path))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if string(got) != content {
		t.Fatalf("ReadFile() = %q, want %q", string(got), content)
	}
}

func TestLocalSourceFSAdapter_HashFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	path := filepath.Join(t.TempDir(), "Main.java")
	content := []byte("class Main {}\n")
	writeTestBytes(t, path, content)

	expected := fmt.Sprintf("%x", sha256.Sum256(content))

	hash, err := adapter.HashFile(context.Background(), m.Path(path))
	if err != nil {
		t.Fatalf("HashFile() error = %v", err)
	}

	if hash != expected {
		t.Fatalf("HashFile() = %s, want %s", hash, expected)
	}

	if HashBytes(content) != expected {
		t.Fatalf("HashBytes() = %s, want %s", HashBytes(content), expected)
	}
}

func TestLocalSourceFSAdapter_PathHelpers(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()
	ctx := context.Background()

	base := m.Path("/tmp/project")
	target := m.Path("/tmp/project/sub/dir/File.java")

	rel, err := adapter.RelPath(ctx, base, target)
	if err != nil {
		t.Fatalf("RelPath() error = %v", err)
	}

	if string(rel) != filepath.Join("sub", "dir", "File.java") {
		t.Fatalf("RelPath() = %s, want %s", rel, filepath.Join("sub", "dir", "File.java"))
	}

	joined := adapter.JoinPath(ctx, "/tmp", "project", "sub", "File.java")
	if string(joined) != filepath.Join("/tmp", "project", "sub", "File.java") {
		t.Fatalf("JoinPath() = %s, want %s", joined, filepath.Join("/tmp", "project", "sub", "File.java"))
	}
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	writeTestBytes(t, path, []byte(contents))
}

func writeTestBytes(t *testing.T, path string, contents []byte) {
	t.Helper()
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("failed to create dir %s: %v", path, err)
	}
}

func containsPath(paths []string, target string) bool {
	for _, p := range paths {
		if p == target {
			return true
		}
	}

	return false
}
