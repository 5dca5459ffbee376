package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/rmake/internal/history"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveSettings()
			if err != nil {
				return err
			}
			path := cfg.History
			if path == "" {
				path = history.DefaultPath()
			}
			store, err := history.Open(path)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer func() { _ = store.Close() }()

			entries, err := store.Recent(limit)
			if err != nil {
				return err
			}
			printHistory(cmd.OutOrStdout(), entries)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "max entries to show")

	return cmd
}

func printHistory(w io.Writer, entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "no recorded runs")
		return
	}
	for _, e := range entries {
		line := fmt.Sprintf("%s  %-6s  %8s  %s",
			e.StartedAt.Local().Format("2006-01-02 15:04:05"),
			e.Status,
			e.Duration.Round(10*time.Millisecond),
			strings.Join(e.Requested, ","),
		)
		if e.Error != "" {
			line += "  " + e.Error
		}
		fmt.Fprintln(w, line)
	}
}
