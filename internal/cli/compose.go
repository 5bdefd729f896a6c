package cli

import (
	"github.com/spf13/cobra"

	"github.com/knockbot/knockbot/internal/usecase"
)

func composeCmd(g *globalFlags, opts ...appOption) *cobra.Command {
	var (
		seed    uint64
		variant string
		format  string
	)

	c := &cobra.Command{
		Use:   "compose",
		Short: "Print a joke without reading credentials or posting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(g, opts...)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			s := seedFor(cmd, seed)
			joke, err := a.composeJoke().Execute(cmd.Context(), usecase.ComposeRequest{
				Config:  a.cfg,
				Seed:    s,
				Variant: variant,
			})
			if err != nil {
				return err
			}
			return printJoke(cmd.OutOrStdout(), joke, s, format)
		},
	}

	c.Flags().Uint64Var(&seed, "seed", 0, "random seed (default: random)")
	c.Flags().StringVar(&variant, "variant", "", "force a variant by name, ignoring weights")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|plain|json")
	return c
}
