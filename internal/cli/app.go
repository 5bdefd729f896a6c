package cli

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/knockbot/knockbot/internal/domain"
	"github.com/knockbot/knockbot/internal/infra/browser"
	"github.com/knockbot/knockbot/internal/infra/corpusfetch"
	"github.com/knockbot/knockbot/internal/infra/corpusfile"
	"github.com/knockbot/knockbot/internal/infra/httpclient"
	"github.com/knockbot/knockbot/internal/infra/logger"
	"github.com/knockbot/knockbot/internal/infra/runstore"
	"github.com/knockbot/knockbot/internal/infra/settings"
	"github.com/knockbot/knockbot/internal/infra/sqlitestore"
	"github.com/knockbot/knockbot/internal/infra/twitter"
	"github.com/knockbot/knockbot/internal/infra/yamlcreds"
	"github.com/knockbot/knockbot/internal/ports"
	"github.com/knockbot/knockbot/internal/usecase"
)

const maxCorpusBytes = 32 << 20

// globalFlags are shared by every command.
type globalFlags struct {
	dataDir     string
	credentials string
	configPath  string
	debug       bool
}

// app is the wiring for one invocation.
type app struct {
	cfg     domain.Config
	log     *zap.Logger
	logPath string

	httpClient *http.Client
	fetcher    *corpusfetch.Fetcher
	loader     *corpusfile.Loader
	creds      *yamlcreds.Loader
	opener     ports.URLOpener
	twitterURL string

	store   ports.ArtifactStore
	closers []func() error
}

type appOption func(*app)

// withOpener replaces the system browser.
func withOpener(o ports.URLOpener) appOption {
	return func(a *app) { a.opener = o }
}

// withTwitterURL points the live publisher at another API host.
func withTwitterURL(u string) appOption {
	return func(a *app) { a.twitterURL = u }
}

func loadApp(g *globalFlags, opts ...appOption) (*app, error) {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	wd, _ = filepath.Abs(wd)
	home, _ := os.UserHomeDir()

	res, err := settings.Load(settings.Options{
		Path:     absPath(g.configPath, home),
		StartDir: wd,
		HomeDir:  home,
	})
	if err != nil {
		return nil, err
	}

	cfg := res.Config
	if strings.TrimSpace(g.dataDir) != "" {
		cfg.DataDir = absPath(g.dataDir, home)
	}
	if strings.TrimSpace(g.credentials) != "" {
		cfg.Credentials = absPath(g.credentials, home)
	}

	a := &app{
		cfg:    cfg,
		log:    zap.NewNop(),
		opener: browser.New(),
	}
	for _, opt := range opts {
		opt(a)
	}

	// Logging lives under the data dir; never create it just for logs.
	if dirExists(cfg.DataDir) {
		cleanup, err := logger.Setup(logger.Config{Dir: cfg.LogsDir(), Debug: g.debug})
		if err == nil && logger.IsReady() == nil {
			a.closers = append(a.closers, cleanup)
			a.log = logger.L()
			a.logPath = logger.Path()
		}
	}
	a.log.Debug("settings.loaded",
		zap.String("config", res.Path),
		zap.String("data_dir", cfg.DataDir),
		zap.String("history", string(cfg.History.Backend)),
	)

	hc := httpclient.DefaultConfig()
	hc.Timeout = cfg.HTTP.Timeout
	hc.UserAgent = cfg.HTTP.UserAgent
	a.httpClient = httpclient.New(hc)

	a.fetcher = corpusfetch.New(
		corpusfetch.WithExecutor(httpclient.NewExecutor(
			httpclient.WithClient(a.httpClient),
			httpclient.WithTimeout(cfg.HTTP.Timeout),
			httpclient.WithMaxBodyBytes(maxCorpusBytes),
		)),
		corpusfetch.WithLogger(a.log.Named("corpus")),
	)
	a.loader = corpusfile.NewLoader()
	a.creds = yamlcreds.NewLoader()

	if err := a.openStore(); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

// openStore selects the history backend. The SQLite file is only opened
// when the data dir exists.
func (a *app) openStore() error {
	switch a.cfg.History.Backend {
	case domain.HistoryNone:
		return nil
	case domain.HistorySQLite:
		if !dirExists(a.cfg.DataDir) {
			return nil
		}
		s, err := sqlitestore.Open(filepath.Join(a.cfg.RunsDir(), sqlitestore.FileName))
		if err != nil {
			return err
		}
		a.store = s
		a.closers = append(a.closers, s.Close)
		return nil
	default:
		a.store = runstore.NewJSONStore(a.cfg.RunsDir(),
			runstore.WithIndex(true),
			runstore.WithLogger(a.log.Named("runstore")),
		)
		return nil
	}
}

// Close runs the closers in reverse order and returns the first error.
func (a *app) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

func (a *app) composeJoke() *usecase.ComposeJoke {
	return usecase.NewComposeJoke(a.fetcher, a.loader, a.log.Named("compose"))
}

func (a *app) postJoke() *usecase.PostJoke {
	opts := []usecase.PostOption{
		usecase.WithOpener(a.opener),
		usecase.WithLogger(a.log.Named("post")),
	}
	if a.store != nil {
		opts = append(opts, usecase.WithStore(a.store))
	}
	return usecase.NewPostJoke(
		a.composeJoke(),
		a.creds,
		a.newPublisher,
		twitter.DryRun{Log: a.log.Named("dryrun")},
		opts...,
	)
}

func (a *app) newPublisher(creds domain.Credentials) (ports.Publisher, error) {
	opts := []twitter.Option{
		twitter.WithHTTPClient(a.httpClient),
		twitter.WithTimeout(a.cfg.HTTP.Timeout),
		twitter.WithLogger(a.log.Named("twitter")),
	}
	if a.twitterURL != "" {
		opts = append(opts, twitter.WithBaseURL(a.twitterURL))
	}
	return twitter.New(creds, opts...)
}

func (a *app) fetchCorpora() *usecase.FetchCorpora {
	return usecase.NewFetchCorpora(a.fetcher)
}

func (a *app) listHistory() *usecase.ListHistory {
	return usecase.NewListHistory(a.store)
}

// absPath expands "~" and makes p absolute. Empty stays empty.
func absPath(p, home string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	p = settings.ExpandHome(p, home)
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}

func dirExists(p string) bool {
	if p == "" {
		return false
	}
	st, err := os.Stat(p)
	return err == nil && st.IsDir()
}

func defaultHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".knockbot"), nil
}
