package fsworkspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/knockbot/knockbot/internal/infra/settings"
)

func TestInitializer_Init_CreatesHome(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), ".knockbot")

	i := NewInitializer()
	if err := i.Init(tmp, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	assertFileExists(t, filepath.Join(tmp, "knockbot.toml"))
	assertDirExists(t, filepath.Join(tmp, "data", "runs"))
	assertDirExists(t, filepath.Join(tmp, "data", "logs"))

	credPath := filepath.Join(tmp, "data", "credentials.yaml")
	assertFileExists(t, credPath)
	info, err := os.Stat(credPath)
	if err != nil {
		t.Fatalf("stat credentials file: %v", err)
	}
	if got := info.Mode().Perm(); got != 0o600 {
		t.Fatalf("expected credentials file mode 600, got %o", got)
	}

	b, err := os.ReadFile(credPath)
	if err != nil {
		t.Fatalf("read credentials: %v", err)
	}
	for _, key := range []string{"consumer_key", "consumer_secret", "access_token", "access_token_secret"} {
		if !strings.Contains(string(b), key+":") {
			t.Fatalf("expected %s in credentials template", key)
		}
	}
}

func TestInitializer_Init_SkipsExistingFilesUnlessForce(t *testing.T) {
	tmp := t.TempDir()

	cfgPath := filepath.Join(tmp, "knockbot.toml")
	if err := os.WriteFile(cfgPath, []byte("custom\n"), 0o644); err != nil {
		t.Fatalf("write existing knockbot.toml: %v", err)
	}

	i := NewInitializer()

	if err := i.Init(tmp, false); err != nil {
		t.Fatalf("Init (force=false) error: %v", err)
	}

	b, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read knockbot.toml: %v", err)
	}
	if string(b) != "custom\n" {
		t.Fatalf("expected knockbot.toml preserved, got %q", string(b))
	}

	if err := i.Init(tmp, true); err != nil {
		t.Fatalf("Init (force=true) error: %v", err)
	}

	b, err = os.ReadFile(cfgPath)
	if err != nil {
		t.Fatalf("read knockbot.toml after force: %v", err)
	}
	if !strings.Contains(string(b), `data_dir = "data"`) {
		t.Fatalf("expected knockbot.toml overwritten with template, got %q", string(b))
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file %s, stat err=%v", path, err)
	}
}

func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected dir %s, stat err=%v", path, err)
	}
}

func TestInitializer_Init_ConfigLoads(t *testing.T) {
	tmp := t.TempDir()
	if err := NewInitializer().Init(tmp, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	res, err := settings.Load(settings.Options{Path: filepath.Join(tmp, "knockbot.toml")})
	if err != nil {
		t.Fatalf("scaffolded config does not load: %v", err)
	}
	if res.Config.DataDir != filepath.Join(tmp, "data") {
		t.Fatalf("expected data dir inside home, got %s", res.Config.DataDir)
	}
	if res.Config.CredentialsPath() != filepath.Join(tmp, "data", "credentials.yaml") {
		t.Fatalf("unexpected credentials path %s", res.Config.CredentialsPath())
	}
}
