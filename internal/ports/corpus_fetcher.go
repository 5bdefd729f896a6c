package ports

import "context"

// CorpusFetcher makes a remote corpus available as a local file.
type CorpusFetcher interface {
	EnsureLocal(ctx context.Context, url, dir string) (path string, err error)
}
