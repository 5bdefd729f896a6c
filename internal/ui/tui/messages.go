package tui

import (
	"github.com/knockbot/knockbot/internal/domain"
	"github.com/knockbot/knockbot/internal/usecase"
)

type jokeComposedMsg struct {
	seed    uint64
	variant string
	joke    domain.Joke
	err     error
}

type jokePostedMsg struct {
	dryRun bool
	res    usecase.PostResult
	err    error
}
