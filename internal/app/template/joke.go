package template

import (
	"errors"
	"strings"

	"github.com/knockbot/knockbot/internal/domain"
)

// JokeLayout is the five-line knock-knock layout.
const JokeLayout = "{{salutation}}\n" +
	"{{response}}\n" +
	"{{firstname}}.\n" +
	"{{firstname}} {{who}}?\n" +
	"{{firstname}} {{surname}}!"

// RenderJoke fills JokeLayout. Names are trimmed; both must be non-empty.
func RenderJoke(t domain.JokeTemplate, firstName, surname string) (string, error) {
	firstName = strings.TrimSpace(firstName)
	surname = strings.TrimSpace(surname)
	if firstName == "" || surname == "" {
		return "", &domain.OpError{
			Op:   "template.render_joke",
			Kind: domain.KindEmptyCorpus,
			Err:  errors.New("first name and surname must be non-empty"),
		}
	}

	return RenderString(JokeLayout, map[string]string{
		"salutation": t.Salutation,
		"response":   t.Response,
		"who":        t.Who,
		"firstname":  firstName,
		"surname":    surname,
	})
}
