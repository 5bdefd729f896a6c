package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestSetup_WritesJSONLines(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	cleanup, err := Setup(Config{Dir: dir})
	if err != nil {
		t.Fatalf("Setup error: %v", err)
	}
	if err := IsReady(); err != nil {
		t.Fatalf("expected ready logger: %v", err)
	}

	L().Info("corpus.fetch.start", zap.String("url", "https://example.com/names.txt"))
	L().Debug("hidden")

	if err := cleanup(); err != nil {
		t.Fatalf("cleanup error: %v", err)
	}
	if IsReady() == nil {
		t.Fatalf("expected logger reset after cleanup")
	}

	b, err := os.ReadFile(filepath.Join(dir, "knockbot.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 log lines (init + info), got %d:\n%s", len(lines), b)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &entry); err != nil {
		t.Fatalf("expected JSON line: %v", err)
	}
	if entry["msg"] != "corpus.fetch.start" {
		t.Fatalf("unexpected msg: %v", entry["msg"])
	}
	if entry["url"] != "https://example.com/names.txt" {
		t.Fatalf("unexpected url field: %v", entry["url"])
	}
}

func TestNew_DebugLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(zapcore.AddSync(&buf), true)
	l.Debug("compose.seed", zap.Uint64("seed", 9))
	_ = l.Sync()

	if !strings.Contains(buf.String(), `"seed":9`) {
		t.Fatalf("expected debug entry, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), `"caller"`) {
		t.Fatalf("expected caller in debug mode, got %q", buf.String())
	}
}

func TestL_DefaultsToNop(t *testing.T) {
	if L() == nil {
		t.Fatalf("expected non-nil logger before Setup")
	}
}
