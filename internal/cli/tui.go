package cli

import (
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/knockbot/knockbot/internal/ui/tui"
)

func tuiCmd(g *globalFlags, opts ...appOption) *cobra.Command {
	var (
		dryRun bool
		noWeb  bool
	)

	c := &cobra.Command{
		Use:   "tui",
		Short: "Preview jokes interactively and post the one you like",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			a, err := loadApp(g, opts...)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			return tui.Run(tui.Deps{
				Config:   a.cfg,
				Compose:  a.composeJoke(),
				Post:     a.postJoke(),
				NextSeed: rand.Uint64,
				DryRun:   dryRun,
				NoWeb:    noWeb,
				Logger:   a.log.Named("tui"),
				Debug:    g.debug,
				LogPath:  a.logPath,
			})
		},
	}

	c.Flags().BoolVarP(&dryRun, "test", "x", false, "start in test mode")
	c.Flags().BoolVar(&noWeb, "no-web", false, "do not open posts in a browser")
	return c
}
