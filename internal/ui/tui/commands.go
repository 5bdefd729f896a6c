package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/knockbot/knockbot/internal/usecase"
)

const opTimeout = 5 * time.Minute

func cmdCompose(deps Deps, seed uint64, variant string) tea.Cmd {
	return func() tea.Msg {
		if deps.Compose == nil {
			return jokeComposedMsg{seed: seed, variant: variant, err: errors.New("Compose is nil")}
		}

		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		joke, err := deps.Compose.Execute(ctx, usecase.ComposeRequest{
			Config:  deps.Config,
			Seed:    seed,
			Variant: variant,
		})
		if err != nil {
			logger(deps).Error("tui.compose.failed", zap.Uint64("seed", seed), zap.Error(err))
		}
		return jokeComposedMsg{seed: seed, variant: variant, joke: joke, err: err}
	}
}

// cmdPost recomposes with the same seed and variant, so the posted joke is
// the one on screen.
func cmdPost(deps Deps, seed uint64, variant string, dryRun bool) tea.Cmd {
	return func() tea.Msg {
		if deps.Post == nil {
			return jokePostedMsg{dryRun: dryRun, err: errors.New("Post is nil")}
		}

		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		res, err := deps.Post.Execute(ctx, usecase.PostRequest{
			Config:  deps.Config,
			Seed:    seed,
			Variant: variant,
			DryRun:  dryRun,
			NoWeb:   deps.NoWeb,
		})
		if err != nil {
			logger(deps).Error("tui.post.failed", zap.Bool("dry_run", dryRun), zap.Error(err))
		} else {
			logger(deps).Info("tui.post.ok", zap.Bool("dry_run", dryRun), zap.String("run_id", res.RunID))
		}
		return jokePostedMsg{dryRun: dryRun, res: res, err: err}
	}
}

func logger(deps Deps) *zap.Logger {
	if deps.Logger == nil {
		return zap.NewNop()
	}
	return deps.Logger
}
