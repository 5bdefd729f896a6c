// Package compose turns loaded variants into a joke.
//
// A Composer is pure apart from its random source: the same seed and the
// same variants always produce the same joke.
package compose

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/knockbot/knockbot/internal/app/template"
	"github.com/knockbot/knockbot/internal/domain"
)

type Composer struct {
	rng *rand.Rand
}

// New seeds a PCG source with seed.
func New(seed uint64) *Composer {
	return NewWithRand(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

func NewWithRand(r *rand.Rand) *Composer {
	return &Composer{rng: r}
}

// Compose picks a variant by weight, then a first name and a surname, and
// renders the variant's template.
func (c *Composer) Compose(variants []domain.Variant) (domain.Joke, error) {
	v, err := c.PickVariant(variants)
	if err != nil {
		return domain.Joke{}, err
	}
	return c.ComposeVariant(v)
}

// ComposeVariant skips the variant draw.
func (c *Composer) ComposeVariant(v domain.Variant) (domain.Joke, error) {
	if len(v.FirstNames) == 0 {
		return domain.Joke{}, emptyCorpus(v.Name, "first names")
	}
	if len(v.Surnames) == 0 {
		return domain.Joke{}, emptyCorpus(v.Name, "surnames")
	}

	first := strings.TrimSpace(v.FirstNames[c.rng.IntN(len(v.FirstNames))])
	last := strings.TrimSpace(v.Surnames[c.rng.IntN(len(v.Surnames))])

	text, err := template.RenderJoke(v.Template, first, last)
	if err != nil {
		return domain.Joke{}, err
	}

	return domain.Joke{
		Variant:   v.Name,
		FirstName: first,
		Surname:   last,
		Text:      text,
	}, nil
}

// PickVariant draws a variant with probability weight/total.
// Variants with a non-positive weight are never chosen.
func (c *Composer) PickVariant(variants []domain.Variant) (domain.Variant, error) {
	total := 0
	for _, v := range variants {
		if v.Weight > 0 {
			total += v.Weight
		}
	}
	if total == 0 {
		return domain.Variant{}, &domain.OpError{
			Op:   "compose.pick_variant",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("no variant has a positive weight"),
		}
	}

	n := c.rng.IntN(total)
	for _, v := range variants {
		if v.Weight <= 0 {
			continue
		}
		if n < v.Weight {
			return v, nil
		}
		n -= v.Weight
	}

	// Unreachable: n < total.
	return domain.Variant{}, &domain.OpError{
		Op:   "compose.pick_variant",
		Kind: domain.KindExecution,
		Err:  domain.ErrExecution,
	}
}

func emptyCorpus(variant, what string) error {
	return &domain.OpError{
		Op:   "compose",
		Kind: domain.KindEmptyCorpus,
		Err:  fmt.Errorf("variant %q has no %s", variant, what),
	}
}
