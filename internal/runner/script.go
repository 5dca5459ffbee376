package runner

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/ppiankov/rmake/internal/task"
)

// Shell builds a task action that executes a command via sh -c,
// inheriting the process stdout and stderr.
func Shell(command string) task.Action {
	return ShellTo(command, os.Stdout, os.Stderr)
}

// ShellTo builds a shell action writing to the given streams. Watch mode
// uses it to capture output instead of interleaving with the display.
func ShellTo(command string, stdout, stderr io.Writer) task.Action {
	return func() error {
		slog.Debug("spawning script", "command", command)

		cmd := exec.Command("sh", "-c", command)
		cmd.Stdout = stdout
		cmd.Stderr = stderr

		if err := cmd.Run(); err != nil {
			return fmt.Errorf("script exited: %w", err)
		}
		return nil
	}
}
