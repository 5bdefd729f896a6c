package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func fetchCmd(g *globalFlags, opts ...appOption) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Download every configured name list that is not cached yet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(g, opts...)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			fetched, err := a.fetchCorpora().Execute(cmd.Context(), a.cfg.Sources, a.cfg.CorpusDir())
			out := cmd.OutOrStdout()
			for _, f := range fetched {
				fmt.Fprintf(out, "%-16s %s\n", f.Source.Name, f.Path)
			}
			return err
		},
	}
}
