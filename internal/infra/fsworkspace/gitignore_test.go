package fsworkspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnsureGitignore_CreatesFile(t *testing.T) {
	tmp := t.TempDir()

	if err := ensureGitignore(tmp); err != nil {
		t.Fatalf("ensureGitignore error: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(tmp, ".gitignore"))
	if err != nil {
		t.Fatalf("read .gitignore: %v", err)
	}

	s := string(b)
	wants := []string{
		"# knockbot",
		"data/credentials.yaml",
		"data/runs/",
		"data/logs/",
		"data/*.tmp",
	}
	for _, w := range wants {
		if !strings.Contains(s, w) {
			t.Fatalf("expected .gitignore to contain %q, got:\n%s", w, s)
		}
	}
}

func TestEnsureGitignore_AppendsMissingEntries(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, ".gitignore")

	existing := "node_modules/\n# knockbot\ndata/runs/"
	if err := os.WriteFile(path, []byte(existing), 0o644); err != nil {
		t.Fatalf("write .gitignore: %v", err)
	}

	if err := ensureGitignore(tmp); err != nil {
		t.Fatalf("ensureGitignore error: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read .gitignore: %v", err)
	}
	s := string(b)

	if !strings.HasPrefix(s, "node_modules/\n") {
		t.Fatalf("expected existing content preserved, got:\n%s", s)
	}
	if strings.Count(s, "# knockbot") != 1 {
		t.Fatalf("expected 1 header, got:\n%s", s)
	}
	if strings.Count(s, "data/runs/") != 1 {
		t.Fatalf("expected data/runs/ not duplicated, got:\n%s", s)
	}
	if !strings.Contains(s, "data/runs/\n") {
		t.Fatalf("expected newline added after unterminated last line, got:\n%s", s)
	}

	for _, w := range []string{"data/credentials.yaml", "data/logs/", "data/*.tmp"} {
		if !strings.Contains(s, w) {
			t.Fatalf("expected .gitignore to contain %q, got:\n%s", w, s)
		}
	}
}

func TestEnsureGitignore_NoopWhenComplete(t *testing.T) {
	tmp := t.TempDir()
	if err := ensureGitignore(tmp); err != nil {
		t.Fatalf("first call: %v", err)
	}
	before, _ := os.ReadFile(filepath.Join(tmp, ".gitignore"))

	if err := ensureGitignore(tmp); err != nil {
		t.Fatalf("second call: %v", err)
	}
	after, _ := os.ReadFile(filepath.Join(tmp, ".gitignore"))

	if string(before) != string(after) {
		t.Fatalf("expected unchanged .gitignore, got:\n%s", after)
	}
}
