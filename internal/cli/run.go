package cli

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/rmake/internal/config"
	"github.com/ppiankov/rmake/internal/history"
	"github.com/ppiankov/rmake/internal/reporter"
	"github.com/ppiankov/rmake/internal/task"
)

// ErrRunFailed signals a contained task fault; the detailed report has
// already been written by the failure boundary.
var ErrRunFailed = errors.New("run failed")

func newRunCmd() *cobra.Command {
	var noHistory bool

	cmd := &cobra.Command{
		Use:   "run [task ...]",
		Short: "Invoke tasks after their prerequisites",
		Long:  "Run invokes each named task in order, resolving dependencies first and executing every action at most once. With no names the default task runs.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveSettings()
			if err != nil {
				return err
			}
			return runTasks(cfg, args, noHistory, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().BoolVar(&noHistory, "no-history", false, "skip recording the run in history")

	return cmd
}

func runTasks(cfg *config.Settings, names []string, noHistory bool, out, errW io.Writer) error {
	r := buildRunner(cfg, out, errW)

	start := time.Now()
	satisfied, runErr := r.Run(names...)
	duration := time.Since(start)

	helpOnly := runErr == nil && len(satisfied) == 1 && satisfied[0] == "help"
	if !noHistory && !helpOnly {
		recordRun(cfg, names, satisfied, start, duration, runErr)
	}

	if runErr != nil {
		return ErrRunFailed
	}
	if !helpOnly {
		reporter.NewTextReporter(out, isTerminal()).PrintRun(satisfied, duration, nil)
	}
	return nil
}

// recordRun appends the sweep to the history log. History trouble never
// fails the run itself.
func recordRun(cfg *config.Settings, requested, satisfied []string, start time.Time, duration time.Duration, runErr error) {
	path := cfg.History
	if path == "" {
		path = history.DefaultPath()
	}
	store, err := history.Open(path)
	if err != nil {
		slog.Warn("history unavailable", "error", err)
		return
	}
	defer func() { _ = store.Close() }()

	canonical := make([]string, len(requested))
	for i, n := range requested {
		canonical[i] = task.Canonical(n)
	}
	if len(canonical) == 0 {
		canonical = []string{task.DefaultTask}
	}

	entry := history.Entry{
		StartedAt: start,
		Duration:  duration,
		Requested: canonical,
		Satisfied: satisfied,
		Status:    history.StatusOK,
	}
	if runErr != nil {
		entry.Status = history.StatusFailed
		entry.Error = runErr.Error()
	}
	if err := store.Record(entry); err != nil {
		slog.Warn("record history", "error", err)
	}
}
