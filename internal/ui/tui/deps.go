package tui

import (
	"context"

	"go.uber.org/zap"

	"github.com/knockbot/knockbot/internal/domain"
	"github.com/knockbot/knockbot/internal/usecase"
)

// Composer is satisfied by *usecase.ComposeJoke.
type Composer interface {
	Execute(ctx context.Context, req usecase.ComposeRequest) (domain.Joke, error)
}

// Poster is satisfied by *usecase.PostJoke.
type Poster interface {
	Execute(ctx context.Context, req usecase.PostRequest) (usecase.PostResult, error)
}

type Deps struct {
	Config  domain.Config
	Compose Composer
	Post    Poster

	// NextSeed draws the seed for each new joke.
	NextSeed func() uint64

	// DryRun starts the screen in test mode.
	DryRun bool
	NoWeb  bool

	Logger *zap.Logger
	Debug  bool

	// LogPath is shown in debug mode.
	LogPath string
}
