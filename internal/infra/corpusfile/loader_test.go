package corpusfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/knockbot/knockbot/internal/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestLoadNames_Lines(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    []string
	}{
		{name: "trailing blanks", content: "Alice\nBob\n\n", want: []string{"Alice", "Bob"}},
		{name: "crlf and padding", content: "  Aino \r\n\r\nEero\r\n", want: []string{"Aino", "Eero"}},
		{name: "bom", content: "\ufeffÄijälä\nÖhman", want: []string{"Äijälä", "Öhman"}},
		{name: "only blanks", content: "\n \n\t\n", want: []string{}},
	}

	l := NewLoader()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := writeFile(t, "names.txt", tc.content)
			got, err := l.LoadNames(p, domain.CorpusSource{Format: domain.FormatLines})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("names mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadNames_LinesInvalidUTF8(t *testing.T) {
	p := writeFile(t, "bad.txt", "Alice\n\xff\xfe\n")
	_, err := NewLoader().LoadNames(p, domain.CorpusSource{Format: domain.FormatLines})
	if !domain.IsKind(err, domain.KindCorpusFormat) {
		t.Fatalf("expected corpus format error, got %v", err)
	}
}

func TestLoadNames_JSON(t *testing.T) {
	p := writeFile(t, "firstNames.json", `{
  "description": "first names",
  "firstNames": ["Alice", " Bob ", "", "Zoë"]
}`)

	got, err := NewLoader().LoadNames(p, domain.CorpusSource{Format: domain.FormatJSON, Field: "firstNames"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"Alice", "Bob", "Zoë"}, got); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadNames_JSONPathExpression(t *testing.T) {
	p := writeFile(t, "nested.json", `{"data": {"authors": ["Austen", "Brontë"]}}`)

	got, err := NewLoader().LoadNames(p, domain.CorpusSource{Format: domain.FormatJSON, Field: "$.data.authors"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"Austen", "Brontë"}, got); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadNames_JSONErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		field   string
	}{
		{name: "not json", content: "Alice\nBob", field: "firstNames"},
		{name: "missing field", content: `{"authors": ["A"]}`, field: "firstNames"},
		{name: "not array", content: `{"firstNames": "Alice"}`, field: "firstNames"},
		{name: "non string element", content: `{"firstNames": ["Alice", 3]}`, field: "firstNames"},
		{name: "no field", content: `{"firstNames": []}`, field: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := writeFile(t, "c.json", tc.content)
			_, err := NewLoader().LoadNames(p, domain.CorpusSource{Format: domain.FormatJSON, Field: tc.field})
			if !domain.IsKind(err, domain.KindCorpusFormat) {
				t.Fatalf("expected corpus format error, got %v", err)
			}
		})
	}
}

func TestLoadNames_MissingFile(t *testing.T) {
	_, err := NewLoader().LoadNames(filepath.Join(t.TempDir(), "nope.txt"), domain.CorpusSource{Format: domain.FormatLines})
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestExpr(t *testing.T) {
	cases := map[string]string{
		"firstNames": "$.firstNames",
		" authors ":  "$.authors",
		"$.a.b":      "$.a.b",
		"":           "",
	}
	for in, want := range cases {
		if got := Expr(in); got != want {
			t.Fatalf("Expr(%q) = %q, want %q", in, got, want)
		}
	}
}
