package browser

import (
	"fmt"
	"io"
	"net/url"

	pkgbrowser "github.com/pkg/browser"

	"github.com/knockbot/knockbot/internal/domain"
	"github.com/knockbot/knockbot/internal/ports"
)

// Opener shows URLs in the user's default browser.
type Opener struct {
	open func(string) error
}

type Option func(*Opener)

// WithOpenFunc replaces the platform launcher.
func WithOpenFunc(fn func(string) error) Option {
	return func(o *Opener) { o.open = fn }
}

var _ ports.URLOpener = (*Opener)(nil)

func New(opts ...Option) *Opener {
	o := &Opener{open: launch}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func launch(u string) error {
	// The launcher's own output would garble the terminal UI.
	pkgbrowser.Stdout = io.Discard
	pkgbrowser.Stderr = io.Discard
	return pkgbrowser.OpenURL(u)
}

// Open only accepts absolute http(s) URLs.
func (o *Opener) Open(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		if err == nil {
			err = fmt.Errorf("unsupported url %q", raw)
		}
		return &domain.OpError{Op: "browser.open", Kind: domain.KindInvalidConfig, Path: raw, Err: err}
	}

	if err := o.open(u.String()); err != nil {
		return &domain.OpError{Op: "browser.open", Kind: domain.KindExecution, Path: raw, Err: err}
	}
	return nil
}
