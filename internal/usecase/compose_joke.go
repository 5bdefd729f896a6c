package usecase

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/knockbot/knockbot/internal/app/compose"
	"github.com/knockbot/knockbot/internal/domain"
	"github.com/knockbot/knockbot/internal/ports"
)

type ComposeRequest struct {
	Config domain.Config
	Seed   uint64
	// Variant forces one variant by name, ignoring weights. Empty means a
	// weighted draw.
	Variant string
}

type ComposeJoke struct {
	fetch  *FetchCorpora
	loader ports.CorpusLoader
	log    *zap.Logger
}

func NewComposeJoke(f ports.CorpusFetcher, l ports.CorpusLoader, log *zap.Logger) *ComposeJoke {
	if log == nil {
		log = zap.NewNop()
	}
	return &ComposeJoke{
		fetch:  NewFetchCorpora(f),
		loader: l,
		log:    log,
	}
}

func (uc *ComposeJoke) Execute(ctx context.Context, req ComposeRequest) (domain.Joke, error) {
	variants, err := uc.LoadVariants(ctx, req.Config, req.Variant)
	if err != nil {
		return domain.Joke{}, err
	}

	c := compose.New(req.Seed)
	uc.log.Debug("compose.start", zap.Uint64("seed", req.Seed), zap.String("variant", req.Variant))

	var joke domain.Joke
	if req.Variant != "" {
		joke, err = c.ComposeVariant(variants[0])
	} else {
		joke, err = c.Compose(variants)
	}
	if err != nil {
		return domain.Joke{}, err
	}

	uc.log.Info("compose.done", zap.String("variant", joke.Variant))
	return joke, nil
}

// LoadVariants fetches and loads the corpora behind the selected variants.
// With only set, just that variant (and its sources) is loaded.
func (uc *ComposeJoke) LoadVariants(ctx context.Context, cfg domain.Config, only string) ([]domain.Variant, error) {
	specs := cfg.Variants
	if only != "" {
		spec, ok := domain.FindVariantSpec(cfg.Variants, only)
		if !ok {
			return nil, &domain.OpError{
				Op:   "usecase.compose",
				Kind: domain.KindInvalidConfig,
				Err:  fmt.Errorf("unknown variant %q", only),
			}
		}
		specs = []domain.VariantSpec{spec}
	}

	sources, err := referencedSources(cfg, specs)
	if err != nil {
		return nil, err
	}

	fetched, err := uc.fetch.Execute(ctx, sources, cfg.CorpusDir())
	if err != nil {
		return nil, err
	}

	corpora := make(map[string]domain.NameCorpus, len(fetched))
	for _, f := range fetched {
		list, err := uc.loader.LoadNames(f.Path, f.Source)
		if err != nil {
			return nil, err
		}
		c := domain.NameCorpus{Name: f.Source.Name, Names: list}
		uc.log.Debug("corpus.loaded", zap.String("name", c.Name), zap.Int("count", c.Len()))
		corpora[c.Name] = c
	}

	out := make([]domain.Variant, 0, len(specs))
	for _, s := range specs {
		out = append(out, domain.Variant{
			Name:       s.Name,
			Weight:     s.Weight,
			FirstNames: concat(corpora, s.FirstNames),
			Surnames:   concat(corpora, s.Surnames),
			Template:   s.Template,
		})
	}
	return out, nil
}

// referencedSources keeps config order and lists each source once.
func referencedSources(cfg domain.Config, specs []domain.VariantSpec) ([]domain.CorpusSource, error) {
	want := map[string]bool{}
	for _, s := range specs {
		for _, n := range s.FirstNames {
			want[n] = true
		}
		for _, n := range s.Surnames {
			want[n] = true
		}
	}

	out := make([]domain.CorpusSource, 0, len(want))
	for _, src := range cfg.Sources {
		if want[src.Name] {
			out = append(out, src)
			delete(want, src.Name)
		}
	}
	if len(want) > 0 {
		missing := make([]string, 0, len(want))
		for name := range want {
			missing = append(missing, name)
		}
		sort.Strings(missing)
		return nil, &domain.OpError{
			Op:   "usecase.compose",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("variant references unknown source %q", missing[0]),
		}
	}
	return out, nil
}

func concat(corpora map[string]domain.NameCorpus, refs []string) []string {
	n := 0
	for _, r := range refs {
		n += corpora[r].Len()
	}
	out := make([]string, 0, n)
	for _, r := range refs {
		out = append(out, corpora[r].Names...)
	}
	return out
}
