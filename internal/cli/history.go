package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func historyCmd(g *globalFlags, opts ...appOption) *cobra.Command {
	var (
		limit  int
		format string
	)

	c := &cobra.Command{
		Use:   "history",
		Short: "List recent runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must be >= 0")
			}

			a, err := loadApp(g, opts...)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			runs, err := a.listHistory().Execute(limit)
			if err != nil {
				return err
			}
			return printHistory(cmd.OutOrStdout(), runs, format)
		},
	}

	c.Flags().IntVarP(&limit, "limit", "n", 10, "number of runs to show (0 = all)")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}
