package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the definitions file without running anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveSettings()
			if err != nil {
				return err
			}
			r := buildRunner(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err := r.Check(); err != nil {
				return fmt.Errorf("validate: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "valid: %d tasks, max depth %d\n", r.Len(), r.MaxDepth())
			return nil
		},
	}
}
