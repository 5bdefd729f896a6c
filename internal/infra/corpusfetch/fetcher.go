package corpusfetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/knockbot/knockbot/internal/domain"
	"github.com/knockbot/knockbot/internal/infra/httpclient"
)

// Fetcher downloads a corpus file once and reuses the local copy afterwards.
// An existing file is never refreshed.
type Fetcher struct {
	exec *httpclient.Executor
	log  *zap.Logger
}

type Option func(*Fetcher)

func WithExecutor(e *httpclient.Executor) Option {
	return func(f *Fetcher) { f.exec = e }
}

func WithLogger(l *zap.Logger) Option {
	return func(f *Fetcher) { f.log = l }
}

func New(opts ...Option) *Fetcher {
	f := &Fetcher{}
	for _, opt := range opts {
		opt(f)
	}
	if f.exec == nil {
		f.exec = httpclient.NewExecutor()
	}
	if f.log == nil {
		f.log = zap.NewNop()
	}
	return f
}

// FilenameFromURL returns the percent-decoded last path segment of rawURL.
func FilenameFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", &domain.OpError{Op: "corpusfetch.filename", Kind: domain.KindInvalidConfig, Path: rawURL, Err: err}
	}

	name := path.Base(u.Path)
	switch name {
	case "", ".", "/", "..":
		return "", &domain.OpError{
			Op:   "corpusfetch.filename",
			Kind: domain.KindInvalidConfig,
			Path: rawURL,
			Err:  errors.New("url has no file name"),
		}
	}
	if strings.ContainsAny(name, `/\`) {
		return "", &domain.OpError{
			Op:   "corpusfetch.filename",
			Kind: domain.KindInvalidConfig,
			Path: rawURL,
			Err:  fmt.Errorf("unsafe file name %q", name),
		}
	}
	return name, nil
}

// EnsureLocal returns dir/<filename>, downloading rawURL first when the file
// is absent. dir must already exist.
func (f *Fetcher) EnsureLocal(ctx context.Context, rawURL, dir string) (string, error) {
	name, err := FilenameFromURL(rawURL)
	if err != nil {
		return "", err
	}
	dst := filepath.Join(dir, name)

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		if err == nil {
			err = errors.New("not a directory")
		}
		return "", &domain.OpError{
			Op:   "corpusfetch.dir",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  fmt.Errorf("directory not found: %w", err),
		}
	}

	if _, err := os.Stat(dst); err == nil {
		f.log.Debug("corpus.cache.hit", zap.String("path", dst))
		return dst, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", &domain.OpError{Op: "corpusfetch.stat", Kind: domain.KindExecution, Path: dst, Err: err}
	}

	f.log.Info("corpus.fetch.start", zap.String("url", rawURL), zap.String("path", dst))

	body, err := f.download(ctx, rawURL)
	if err != nil {
		f.log.Warn("corpus.fetch.failed", zap.String("url", rawURL), zap.Error(err))
		return "", err
	}

	if err := writeAtomic(dst, body); err != nil {
		return "", &domain.OpError{Op: "corpusfetch.write", Kind: domain.KindExecution, Path: dst, Err: err}
	}

	f.log.Info("corpus.fetch.done", zap.String("path", dst), zap.Int("bytes", len(body)))
	return dst, nil
}

func (f *Fetcher) download(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &domain.OpError{Op: "corpusfetch.request", Kind: domain.KindInvalidConfig, Path: rawURL, Err: err}
	}

	resp, err := f.exec.Do(ctx, req)
	if err != nil {
		return nil, &domain.OpError{Op: "corpusfetch.get", Kind: domain.KindDownload, Path: rawURL, Err: err}
	}
	if resp.Status < 200 || resp.Status > 299 {
		return nil, &domain.OpError{
			Op:   "corpusfetch.get",
			Kind: domain.KindDownload,
			Path: rawURL,
			Err:  fmt.Errorf("unexpected status %d", resp.Status),
		}
	}

	if err := checkText(resp.BodyBytes); err != nil {
		return nil, &domain.OpError{Op: "corpusfetch.content", Kind: domain.KindDownload, Path: rawURL, Err: err}
	}
	return resp.BodyBytes, nil
}

// checkText accepts non-empty UTF-8 plain text or JSON. Markup that sniffs as
// a text/plain descendant (HTML error pages, XML) is rejected.
func checkText(body []byte) error {
	if len(body) == 0 {
		return errors.New("empty body")
	}
	if !utf8.Valid(body) {
		return errors.New("body is not valid UTF-8")
	}

	mt := mimetype.Detect(body)
	if mt.Is("text/html") || mt.Is("text/xml") {
		return fmt.Errorf("unexpected content type %s", mt.String())
	}
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("text/plain") || m.Is("application/json") {
			return nil
		}
	}
	return fmt.Errorf("unexpected content type %s", mt.String())
}

func writeAtomic(path string, b []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
