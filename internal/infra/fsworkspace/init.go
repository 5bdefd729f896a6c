package fsworkspace

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knockbot/knockbot/internal/domain"
	"github.com/knockbot/knockbot/internal/ports"
)

// Initializer scaffolds a knockbot home:
//
//	<root>/knockbot.toml
//	<root>/data/credentials.yaml
//	<root>/data/runs/
//	<root>/data/logs/
type Initializer struct{}

func NewInitializer() *Initializer {
	return &Initializer{}
}

var _ ports.WorkspaceInitializer = (*Initializer)(nil)

func (i *Initializer) Init(root string, force bool) error {
	root = filepath.Clean(root)

	dirs := []string{
		filepath.Join(root, "data"),
		filepath.Join(root, "data", "runs"),
		filepath.Join(root, "data", "logs"),
	}

	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return &domain.OpError{Op: "fsworkspace.mkdir", Kind: domain.KindExecution, Path: d, Err: err}
		}
	}

	if err := ensureGitignore(root); err != nil {
		return &domain.OpError{Op: "fsworkspace.gitignore", Kind: domain.KindExecution, Path: root, Err: err}
	}

	err := fs.WalkDir(templatesFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel := strings.TrimPrefix(p, "templates/")
		dst := filepath.Join(root, filepath.FromSlash(rel))

		if !force {
			if _, statErr := os.Stat(dst); statErr == nil {
				return nil
			}
		}

		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}

		b, err := fs.ReadFile(templatesFS, p)
		if err != nil {
			return err
		}

		mode := fs.FileMode(0o644)
		if strings.Contains(strings.ToLower(rel), "credentials") {
			mode = 0o600
		}

		if err := os.WriteFile(dst, b, mode); err != nil {
			return err
		}
		// WriteFile keeps the mode of an existing file.
		return os.Chmod(dst, mode)
	})
	if err != nil {
		return &domain.OpError{Op: "fsworkspace.templates", Kind: domain.KindExecution, Path: root, Err: err}
	}
	return nil
}

func ensureGitignore(root string) error {
	const header = "# knockbot"
	entries := []string{
		"data/credentials.yaml",
		"data/runs/",
		"data/logs/",
		"data/*.tmp",
	}

	path := filepath.Join(root, ".gitignore")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			lines := append([]string{header}, entries...)
			lines = append(lines, "")
			return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
		}
		return err
	}

	existing := string(b)
	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		present[trimmed] = true
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var out strings.Builder
	out.Grow(len(existing) + 64)

	out.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	if !present[header] {
		out.WriteString(header)
		out.WriteByte('\n')
	}
	for _, e := range missing {
		out.WriteString(e)
		out.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(out.String()), 0o644)
}
