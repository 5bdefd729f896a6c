package domain

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig_VariantsReferenceSources(t *testing.T) {
	cfg := DefaultConfig()

	for _, v := range cfg.Variants {
		for _, name := range append(append([]string{}, v.FirstNames...), v.Surnames...) {
			if _, ok := cfg.Source(name); !ok {
				t.Fatalf("variant %q references unknown corpus %q", v.Name, name)
			}
		}
	}
}

func TestDefaultConfig_OneInFourFinnish(t *testing.T) {
	cfg := DefaultConfig()

	en, ok := FindVariantSpec(cfg.Variants, "en")
	if !ok {
		t.Fatalf("expected en variant")
	}
	fi, ok := FindVariantSpec(cfg.Variants, "fi")
	if !ok {
		t.Fatalf("expected fi variant")
	}
	if en.Weight != 3 || fi.Weight != 1 {
		t.Fatalf("expected weights 3/1, got %d/%d", en.Weight, fi.Weight)
	}
}

func TestParseCorpusFormat(t *testing.T) {
	cases := []struct {
		in      string
		want    CorpusFormat
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"lines", FormatLines, false},
		{"txt", FormatLines, false},
		{"csv", "", true},
		{"", "", true},
	}
	for _, c := range cases {
		got, err := ParseCorpusFormat(c.in)
		if (err != nil) != c.wantErr {
			t.Errorf("ParseCorpusFormat(%q) err=%v, wantErr=%v", c.in, err, c.wantErr)
			continue
		}
		if got != c.want {
			t.Errorf("ParseCorpusFormat(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestConfigDerivedPaths(t *testing.T) {
	cfg := Config{DataDir: filepath.Join("home", "data")}

	if got := cfg.CredentialsPath(); got != filepath.Join("home", "data", "credentials.yaml") {
		t.Fatalf("unexpected credentials path %q", got)
	}
	if got := cfg.RunsDir(); got != filepath.Join("home", "data", "runs") {
		t.Fatalf("unexpected runs dir %q", got)
	}

	cfg.Credentials = "/etc/knockbot/creds.yaml"
	cfg.History.Dir = "/var/lib/knockbot"
	if cfg.CredentialsPath() != "/etc/knockbot/creds.yaml" || cfg.RunsDir() != "/var/lib/knockbot" {
		t.Fatalf("explicit paths must win")
	}
}
