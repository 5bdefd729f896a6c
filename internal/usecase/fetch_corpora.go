package usecase

import (
	"context"
	"fmt"

	"github.com/knockbot/knockbot/internal/domain"
	"github.com/knockbot/knockbot/internal/ports"
)

// FetchedCorpus pairs a source with its cached file.
type FetchedCorpus struct {
	Source domain.CorpusSource
	Path   string
}

type FetchCorpora struct {
	fetcher ports.CorpusFetcher
}

func NewFetchCorpora(f ports.CorpusFetcher) *FetchCorpora {
	return &FetchCorpora{fetcher: f}
}

// Execute ensures every source is cached in dir, in order, and stops at the
// first failure. Two different URLs resolving to the same local file is a
// configuration error.
func (uc *FetchCorpora) Execute(ctx context.Context, sources []domain.CorpusSource, dir string) ([]FetchedCorpus, error) {
	out := make([]FetchedCorpus, 0, len(sources))
	owners := make(map[string]string, len(sources))
	for _, s := range sources {
		if err := ctx.Err(); err != nil {
			return out, &domain.OpError{Op: "usecase.fetch", Kind: domain.KindDownload, Path: s.URL, Err: err}
		}

		p, err := uc.fetcher.EnsureLocal(ctx, s.URL, dir)
		if err != nil {
			return out, err
		}
		if prev, ok := owners[p]; ok && prev != s.URL {
			return out, &domain.OpError{
				Op:   "usecase.fetch",
				Kind: domain.KindInvalidConfig,
				Path: p,
				Err:  fmt.Errorf("%s and %s share the cache file", prev, s.URL),
			}
		}
		owners[p] = s.URL
		out = append(out, FetchedCorpus{Source: s, Path: p})
	}
	return out, nil
}
