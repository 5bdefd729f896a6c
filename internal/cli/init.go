package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/knockbot/knockbot/internal/infra/fsworkspace"
	"github.com/knockbot/knockbot/internal/usecase"
)

func initCmd() *cobra.Command {
	var (
		path  string
		force bool
	)

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a knockbot home with a sample config and credentials file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root := path
			if root == "" {
				h, err := defaultHome()
				if err != nil {
					return err
				}
				root = h
			} else {
				root = absPath(root, "")
			}

			uc := usecase.NewInitWorkspace(fsworkspace.NewInitializer())
			if err := uc.Execute(root, force); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Initialized knockbot home at %s\n", root)
			fmt.Fprintln(out, "Fill in data/credentials.yaml before posting.")
			return nil
		},
	}

	c.Flags().StringVarP(&path, "path", "p", "", "directory to initialize (default ~/.knockbot)")
	c.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing sample files")
	return c
}
