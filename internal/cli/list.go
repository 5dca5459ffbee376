package cli

import "github.com/spf13/cobra"

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"tasks"},
		Short:   "List registered tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveSettings()
			if err != nil {
				return err
			}
			r := buildRunner(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
			r.PrintUsage()
			return nil
		},
	}
}
