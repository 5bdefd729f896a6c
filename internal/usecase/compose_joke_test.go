package usecase

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knockbot/knockbot/internal/domain"
)

func TestComposeJoke_EnglishExample(t *testing.T) {
	uc := NewComposeJoke(&fakeFetcher{}, aliceLoader(), nil)

	joke, err := uc.Execute(context.Background(), ComposeRequest{Config: aliceConfig(), Seed: 1})
	require.NoError(t, err)

	assert.Equal(t, "Knock, knock!\nWho's there?\nAlice.\nAlice who?\nAlice Liddell!", joke.Text)
	assert.Equal(t, "en", joke.Variant)
}

func TestComposeJoke_DeterministicForSeed(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.DataDir = "/data"
	loader := fakeLoader{names: map[string][]string{
		"firstNames.json": {"Alice", "Bob", "Carol", "Dave"},
		"authors.json":    {"Austen", "Brontë", "Carroll"},
		"female.txt":      {"Aino", "Helmi"},
		"male.txt":        {"Eero", "Väinö"},
		"surname.txt":     {"Virtanen", "Mäkinen"},
	}}

	for seed := uint64(0); seed < 10; seed++ {
		a, err := NewComposeJoke(&fakeFetcher{}, loader, nil).Execute(context.Background(), ComposeRequest{Config: cfg, Seed: seed})
		require.NoError(t, err)
		b, err := NewComposeJoke(&fakeFetcher{}, loader, nil).Execute(context.Background(), ComposeRequest{Config: cfg, Seed: seed})
		require.NoError(t, err)
		assert.Equal(t, a.Text, b.Text, "seed %d", seed)
	}
}

func TestComposeJoke_ForcedVariantConcatenatesFirstNames(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.DataDir = "/data"
	loader := fakeLoader{names: map[string][]string{
		"female.txt":  {"Aino"},
		"male.txt":    {"Eero"},
		"surname.txt": {"Virtanen"},
	}}
	f := &fakeFetcher{}
	uc := NewComposeJoke(f, loader, nil)

	vs, err := uc.LoadVariants(context.Background(), cfg, "fi")
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, []string{"Aino", "Eero"}, vs[0].FirstNames)

	// Only the Finnish corpora are fetched.
	assert.Equal(t, []string{domain.FiFemaleURL, domain.FiMaleURL, domain.FiSurnamesURL}, f.calls)

	seen := map[string]bool{}
	for seed := uint64(0); seed < 50; seed++ {
		joke, err := uc.Execute(context.Background(), ComposeRequest{Config: cfg, Seed: seed, Variant: "fi"})
		require.NoError(t, err)
		assert.Equal(t, "fi", joke.Variant)
		assert.True(t, slices.Contains([]string{"Aino", "Eero"}, joke.FirstName))
		seen[joke.FirstName] = true
	}
	assert.Len(t, seen, 2, "both halves of the concatenated list are drawn")
}

func TestComposeJoke_ForcedVariantIgnoresZeroWeight(t *testing.T) {
	cfg := aliceConfig()
	cfg.Variants[0].Weight = 0

	joke, err := NewComposeJoke(&fakeFetcher{}, aliceLoader(), nil).
		Execute(context.Background(), ComposeRequest{Config: cfg, Variant: "en"})
	require.NoError(t, err)
	assert.Equal(t, "Alice", joke.FirstName)
}

func TestComposeJoke_UnknownVariant(t *testing.T) {
	_, err := NewComposeJoke(&fakeFetcher{}, aliceLoader(), nil).
		Execute(context.Background(), ComposeRequest{Config: aliceConfig(), Variant: "klingon"})
	require.Error(t, err)
	assert.True(t, domain.IsKind(err, domain.KindInvalidConfig))
}

func TestComposeJoke_EmptyCorpus(t *testing.T) {
	loader := fakeLoader{names: map[string][]string{
		"first.txt": {"Alice"},
		"last.txt":  {},
	}}

	joke, err := NewComposeJoke(&fakeFetcher{}, loader, nil).
		Execute(context.Background(), ComposeRequest{Config: aliceConfig()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrEmptyCorpus))
	assert.Equal(t, domain.Joke{}, joke)
}

func TestComposeJoke_LoaderErrorPropagates(t *testing.T) {
	boom := &domain.OpError{Op: "load", Kind: domain.KindCorpusFormat, Err: errors.New("bad json")}
	_, err := NewComposeJoke(&fakeFetcher{}, fakeLoader{err: boom}, nil).
		Execute(context.Background(), ComposeRequest{Config: aliceConfig()})
	assert.True(t, errors.Is(err, domain.ErrCorpusFormat))
}

func TestReferencedSources_UnknownSource(t *testing.T) {
	cfg := aliceConfig()
	cfg.Variants[0].Surnames = []string{"missing"}

	_, err := referencedSources(cfg, cfg.Variants)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"missing"`)
}
