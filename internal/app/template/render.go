package template

import (
	"errors"
	"fmt"
	"strings"

	"github.com/knockbot/knockbot/internal/domain"
)

// RenderString substitutes {{name}} placeholders in one left-to-right pass.
// Substituted values are not scanned again.
func RenderString(input string, vars map[string]string) (string, error) {
	var b strings.Builder
	b.Grow(len(input))

	rest := input
	for rest != "" {
		before, after, found := strings.Cut(rest, "{{")
		b.WriteString(before)
		if !found {
			break
		}

		expr, tail, closed := strings.Cut(after, "}}")
		if !closed {
			return "", renderErr(errors.New("unclosed template expression"))
		}

		name := strings.TrimSpace(expr)
		if name == "" {
			return "", renderErr(errors.New("empty template expression"))
		}

		val, ok := vars[name]
		if !ok {
			return "", renderErr(fmt.Errorf("missing variable %q", name))
		}
		b.WriteString(val)
		rest = tail
	}
	return b.String(), nil
}

func renderErr(err error) error {
	return &domain.OpError{Op: "template.render", Kind: domain.KindInvalidConfig, Err: err}
}
