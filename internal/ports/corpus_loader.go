package ports

import "github.com/knockbot/knockbot/internal/domain"

// CorpusLoader reads names from a cached corpus file.
type CorpusLoader interface {
	LoadNames(path string, source domain.CorpusSource) ([]string, error)
}
