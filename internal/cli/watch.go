package cli

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/ppiankov/rmake/internal/config"
	"github.com/ppiankov/rmake/internal/reporter"
	"github.com/ppiankov/rmake/internal/runner"
	"github.com/ppiankov/rmake/internal/task"
)

// debounceDefault coalesces editor write bursts into one sweep.
const debounceDefault = 200 * time.Millisecond

func newWatchCmd() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "watch [task ...]",
		Short: "Re-run tasks whenever the definitions file changes",
		Long:  "Watch runs the requested tasks, then re-runs them with a fresh registry every time the definitions file is written.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveSettings()
			if err != nil {
				return err
			}
			return watchTasks(cfg, args, plain, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print sweeps as text instead of the live display")

	return cmd
}

func watchTasks(cfg *config.Settings, names []string, plain bool, out io.Writer) error {
	// each sweep builds a fresh runner so edits to the definitions take
	// effect and every task starts un-invoked; action output is captured
	// to keep it off the live display
	sweep := func() reporter.SweepResult {
		var buf bytes.Buffer
		opts := config.RegisterOptions{
			Shell: func(command string) task.Action {
				return runner.ShellTo(command, &buf, &buf)
			},
		}
		r := task.NewRunner(task.Options{
			Collect: config.Collector(config.FileSource(cfg.File), opts, &buf),
			Trace:   cfg.Trace,
			Out:     &buf,
			Err:     &buf,
		})

		start := time.Now()
		satisfied, err := r.Run(names...)
		return reporter.SweepResult{
			Satisfied: satisfied,
			Err:       err,
			Output:    buf.String(),
			Duration:  time.Since(start),
			At:        time.Now(),
		}
	}

	if plain || !isTerminal() {
		return watchPlain(cfg.File, sweep, out)
	}

	display := names
	if len(display) == 0 {
		display = []string{task.DefaultTask}
	}
	program := tea.NewProgram(reporter.NewWatchModel(cfg.File, display, sweep), tea.WithAltScreen())

	stop := make(chan struct{})
	defer close(stop)
	go watchFile(cfg.File, stop, func() {
		program.Send(reporter.FileChangedMsg{})
	})

	_, err := program.Run()
	return err
}

// watchPlain re-runs on change and prints each sweep, until interrupted.
func watchPlain(file string, sweep func() reporter.SweepResult, out io.Writer) error {
	rep := reporter.NewTextReporter(out, isTerminal())
	runOnce := func() {
		res := sweep()
		if res.Output != "" {
			fmt.Fprint(out, res.Output)
		}
		rep.PrintRun(res.Satisfied, res.Duration, res.Err)
	}
	runOnce()

	changes := make(chan struct{}, 1)
	stop := make(chan struct{})
	defer close(stop)
	go watchFile(file, stop, func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	fmt.Fprintf(out, "watching %s (interrupt to stop)\n", file)
	for {
		select {
		case <-changes:
			runOnce()
		case <-sigCh:
			return nil
		}
	}
}

// watchFile watches the definitions file for writes, debouncing bursts.
// The parent directory is watched so editor rename-and-replace saves are
// still observed.
func watchFile(path string, stop <-chan struct{}, onChange func()) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Error("create watcher", "error", err)
		return
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		slog.Error("watch dir", "dir", dir, "error", err)
		return
	}
	base := filepath.Base(path)
	slog.Debug("watching definitions", "file", path)

	var mu sync.Mutex
	var pending *time.Timer

	for {
		select {
		case <-stop:
			mu.Lock()
			if pending != nil {
				pending.Stop()
			}
			mu.Unlock()
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			mu.Lock()
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(debounceDefault, onChange)
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Error("watcher error", "error", err)
		}
	}
}
