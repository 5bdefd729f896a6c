package cli

import (
	"context"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/knockbot/knockbot/internal/domain"
	"github.com/knockbot/knockbot/internal/usecase"
)

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd(opts ...appOption) *cobra.Command {
	g := &globalFlags{}

	var (
		dryRun  bool
		noWeb   bool
		seed    uint64
		variant string
	)

	cmd := &cobra.Command{
		Use:   "knockbot",
		Short: "Compose a knock-knock joke from random names and post it",
		Long: "knockbot downloads name lists once, builds a knock-knock joke " +
			"around a random first name and surname, and posts it.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(g, opts...)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			out := cmd.OutOrStdout()
			res, err := a.postJoke().Execute(cmd.Context(), usecase.PostRequest{
				Config:  a.cfg,
				Seed:    seedFor(cmd, seed),
				Variant: variant,
				DryRun:  dryRun,
				NoWeb:   noWeb,
				OnComposed: func(j domain.Joke) {
					printPosting(out, j)
				},
			})
			if err != nil {
				return err
			}

			printPosted(out, dryRun, res.Publish)
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&g.dataDir, "datadir", "d", "", "directory for cached name lists, history and logs (default ~/.knockbot/data)")
	pf.StringVarP(&g.credentials, "credentials", "y", "", "credentials YAML file (default <datadir>/credentials.yaml)")
	pf.StringVar(&g.credentials, "yaml", "", "alias for --credentials")
	_ = pf.MarkHidden("yaml")
	pf.StringVarP(&g.configPath, "config", "c", "", "knockbot.toml to load (default: search upward, then ~/.knockbot)")
	pf.BoolVar(&g.debug, "debug", false, "enable verbose logging to <datadir>/logs/knockbot.log")

	f := cmd.Flags()
	f.BoolVarP(&dryRun, "test", "x", false, "compose and print only, do not post")
	f.BoolVar(&noWeb, "no-web", false, "do not open the post in a browser")
	f.Uint64Var(&seed, "seed", 0, "random seed (default: random)")
	f.StringVar(&variant, "variant", "", "force a variant by name, ignoring weights")

	cmd.AddCommand(
		composeCmd(g, opts...),
		fetchCmd(g, opts...),
		historyCmd(g, opts...),
		initCmd(),
		tuiCmd(g, opts...),
		versionCmd(),
	)
	return cmd
}

// seedFor returns the --seed value when given, a random one otherwise.
func seedFor(cmd *cobra.Command, seed uint64) uint64 {
	if cmd.Flags().Changed("seed") {
		return seed
	}
	return rand.Uint64()
}
