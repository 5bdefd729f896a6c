package usecase

import (
	"context"
	"errors"
	"path"

	"github.com/knockbot/knockbot/internal/domain"
)

// --- fakes shared by the usecase tests ---

// fakeFetcher "caches" a URL as dir/<last segment> and records every call.
type fakeFetcher struct {
	calls []string
	fail  map[string]error
}

func (f *fakeFetcher) EnsureLocal(_ context.Context, url, dir string) (string, error) {
	f.calls = append(f.calls, url)
	if err := f.fail[url]; err != nil {
		return "", err
	}
	return path.Join(dir, path.Base(url)), nil
}

// fakeLoader serves names keyed by file base name.
type fakeLoader struct {
	names map[string][]string
	err   error
}

func (l fakeLoader) LoadNames(p string, _ domain.CorpusSource) ([]string, error) {
	if l.err != nil {
		return nil, l.err
	}
	names, ok := l.names[path.Base(p)]
	if !ok {
		return nil, &domain.OpError{Op: "fake.load", Kind: domain.KindNotFound, Path: p, Err: errors.New("no such corpus")}
	}
	return names, nil
}

type fakeCreds struct {
	creds  domain.Credentials
	err    error
	loaded []string
	events *[]string
}

func (c *fakeCreds) LoadCredentials(p string) (domain.Credentials, error) {
	c.loaded = append(c.loaded, p)
	if c.events != nil {
		*c.events = append(*c.events, "credentials")
	}
	return c.creds, c.err
}

type fakePublisher struct {
	result domain.PublishResult
	err    error
	texts  []string
}

func (p *fakePublisher) Publish(_ context.Context, text string) (domain.PublishResult, error) {
	p.texts = append(p.texts, text)
	return p.result, p.err
}

type fakeOpener struct {
	urls []string
	err  error
}

func (o *fakeOpener) Open(u string) error {
	o.urls = append(o.urls, u)
	return o.err
}

type fakeStore struct {
	runs []domain.RunArtifact
	err  error
}

func (s *fakeStore) SaveRun(run domain.RunArtifact) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.runs = append(s.runs, run)
	return run.ID, nil
}

func (s *fakeStore) ListRuns(limit int) ([]domain.RunArtifact, error) {
	out := make([]domain.RunArtifact, 0, len(s.runs))
	for i := len(s.runs) - 1; i >= 0; i-- {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, s.runs[i])
	}
	return out, nil
}

var testCreds = domain.Credentials{
	ConsumerKey:       "ck",
	ConsumerSecret:    "cs",
	AccessToken:       "at",
	AccessTokenSecret: "ats",
}

// aliceConfig has a single English variant over one-name corpora.
func aliceConfig() domain.Config {
	return domain.Config{
		DataDir: "/data",
		Sources: []domain.CorpusSource{
			{Name: "first", URL: "https://example.com/first.txt", Format: domain.FormatLines},
			{Name: "last", URL: "https://example.com/last.txt", Format: domain.FormatLines},
		},
		Variants: []domain.VariantSpec{{
			Name:       "en",
			Weight:     1,
			FirstNames: []string{"first"},
			Surnames:   []string{"last"},
			Template:   domain.EnglishTemplate(),
		}},
	}
}

func aliceLoader() fakeLoader {
	return fakeLoader{names: map[string][]string{
		"first.txt": {"Alice"},
		"last.txt":  {"Liddell"},
	}}
}
