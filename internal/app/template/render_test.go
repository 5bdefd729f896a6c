package template

import (
	"testing"

	"github.com/knockbot/knockbot/internal/domain"
)

func TestRenderStringSingleVar(t *testing.T) {
	out, err := RenderString("Hello {{name}}", map[string]string{"name": "Ada"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Hello Ada" {
		t.Fatalf("expected replaced string, got %q", out)
	}
}

func TestRenderStringMultipleVars(t *testing.T) {
	out, err := RenderString("{{greet}}, {{name}}!", map[string]string{
		"greet": "Hi",
		"name":  "Sam",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "Hi, Sam!" {
		t.Fatalf("expected replaced string, got %q", out)
	}
}

func TestRenderStringMissingVar(t *testing.T) {
	_, err := RenderString("Hello {{name}}", map[string]string{})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid config kind, got %v", err)
	}
}

func TestRenderStringMalformed(t *testing.T) {
	for _, in := range []string{"Hello {{name", "Hello {{ }}"} {
		if _, err := RenderString(in, map[string]string{"name": "x"}); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestRenderStringValuesAreNotRescanned(t *testing.T) {
	out, err := RenderString("{{a}}", map[string]string{"a": "{{b}}"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "{{b}}" {
		t.Fatalf("expected literal value, got %q", out)
	}
}
