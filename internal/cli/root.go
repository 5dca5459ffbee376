package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/rmake/internal/config"
	"github.com/ppiankov/rmake/internal/task"
)

// Version, Commit and BuildDate are set via LDFLAGS at build time.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

var (
	verbose    bool
	configFile string
	defsFile   string
	trace      bool
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rmake",
		Short: "Dependency-ordered task runner",
		Long:  "rmake reads a task definitions file and invokes named tasks after their prerequisites, each at most once per run.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&configFile, "config", ".rmake.yml", "path to config file")
	root.PersistentFlags().StringVarP(&defsFile, "file", "f", "", "path to task definitions file (default RMakefile.yml)")
	root.PersistentFlags().BoolVar(&trace, "trace", false, "include origin traces in fault reports")

	root.AddCommand(newRunCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newValidateCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newHistoryCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// resolveSettings loads the settings file and applies flag overrides.
func resolveSettings() (*config.Settings, error) {
	cfg, err := config.LoadSettings(configFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if defsFile != "" {
		cfg.File = defsFile
	}
	if cfg.File == "" {
		cfg.File = config.DefaultFile
	}
	if trace {
		cfg.Trace = true
	}
	return cfg, nil
}

// buildRunner constructs a runner collecting tasks from the configured
// definitions file.
func buildRunner(cfg *config.Settings, out, errW io.Writer) *task.Runner {
	return task.NewRunner(task.Options{
		Collect: config.Collector(config.FileSource(cfg.File), config.RegisterOptions{}, out),
		Trace:   cfg.Trace,
		Out:     out,
		Err:     errW,
	})
}

// isTerminal reports whether stdout is a TTY.
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
