package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/knockbot/knockbot/internal/domain"
	"github.com/knockbot/knockbot/internal/ports"
)

// PublisherFactory builds the live publisher once credentials are known.
type PublisherFactory func(domain.Credentials) (ports.Publisher, error)

type PostRequest struct {
	Config  domain.Config
	Seed    uint64
	Variant string
	DryRun  bool
	NoWeb   bool

	// OnComposed runs as soon as the joke exists, before credentials are
	// read or anything is posted.
	OnComposed func(domain.Joke)
}

type PostResult struct {
	Joke    domain.Joke
	Publish domain.PublishResult
	RunID   string
}

// PostJoke is the default flow: compose, print, authenticate, publish,
// open the permalink, record the run.
type PostJoke struct {
	compose *ComposeJoke
	creds   ports.CredentialsLoader
	newLive PublisherFactory
	dryRun  ports.Publisher
	opener  ports.URLOpener
	store   ports.ArtifactStore
	log     *zap.Logger
	now     func() time.Time
}

type PostOption func(*PostJoke)

// WithStore records every run. Without it nothing is persisted.
func WithStore(s ports.ArtifactStore) PostOption {
	return func(uc *PostJoke) { uc.store = s }
}

func WithOpener(o ports.URLOpener) PostOption {
	return func(uc *PostJoke) { uc.opener = o }
}

func WithLogger(l *zap.Logger) PostOption {
	return func(uc *PostJoke) { uc.log = l }
}

// WithClock is useful for tests.
func WithClock(now func() time.Time) PostOption {
	return func(uc *PostJoke) { uc.now = now }
}

func NewPostJoke(c *ComposeJoke, creds ports.CredentialsLoader, live PublisherFactory, dryRun ports.Publisher, opts ...PostOption) *PostJoke {
	uc := &PostJoke{
		compose: c,
		creds:   creds,
		newLive: live,
		dryRun:  dryRun,
		log:     zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *PostJoke) Execute(ctx context.Context, req PostRequest) (PostResult, error) {
	started := uc.now()

	joke, err := uc.compose.Execute(ctx, ComposeRequest{
		Config:  req.Config,
		Seed:    req.Seed,
		Variant: req.Variant,
	})
	if err != nil {
		return PostResult{}, err
	}
	if req.OnComposed != nil {
		req.OnComposed(joke)
	}

	creds, err := uc.creds.LoadCredentials(req.Config.CredentialsPath())
	if err != nil {
		return PostResult{Joke: joke}, err
	}

	pub := uc.dryRun
	if !req.DryRun {
		pub, err = uc.newLive(creds)
		if err != nil {
			return PostResult{Joke: joke}, err
		}
	}

	published, err := pub.Publish(ctx, joke.Text)
	if err != nil {
		uc.log.Error("publish.failed", zap.Bool("dry_run", req.DryRun), zap.Error(err))
		return PostResult{Joke: joke}, err
	}

	res := PostResult{Joke: joke, Publish: published}

	if !req.DryRun && !req.NoWeb && uc.opener != nil && published.Permalink != "" {
		if err := uc.opener.Open(published.Permalink); err != nil {
			uc.log.Warn("browser.open.failed", zap.String("url", published.Permalink), zap.Error(err))
		}
	}

	if uc.store == nil {
		return res, nil
	}

	id, err := uuid.NewV7()
	if err != nil {
		return res, &domain.OpError{Op: "usecase.post.id", Kind: domain.KindExecution, Err: err}
	}

	runID, err := uc.store.SaveRun(domain.RunArtifact{
		ID:         id.String(),
		StartedAt:  started,
		FinishedAt: uc.now(),
		Seed:       req.Seed,
		Variant:    joke.Variant,
		FirstName:  joke.FirstName,
		Surname:    joke.Surname,
		Text:       joke.Text,
		DryRun:     req.DryRun,
		PostID:     published.PostID,
		Permalink:  published.Permalink,
	})
	if err != nil {
		return res, err
	}
	res.RunID = runID

	uc.log.Info("run.saved", zap.String("id", runID), zap.Bool("dry_run", req.DryRun))
	return res, nil
}
