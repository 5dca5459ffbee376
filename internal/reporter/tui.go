package reporter

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var spinnerChars = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// watch styles
var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	failedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	runStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")) // cyan
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// SweepResult is the outcome of one watch-triggered run sweep.
type SweepResult struct {
	Satisfied []string
	Err       error
	Output    string
	Duration  time.Duration
	At        time.Time
}

// FileChangedMsg is sent by the file watcher when the definitions file
// changes; the model reacts by starting a sweep.
type FileChangedMsg struct{}

type sweepDoneMsg SweepResult

type tickMsg time.Time

// WatchModel is the Bubbletea model for watch mode: it shows the result
// of the last sweep and re-runs on definitions changes.
type WatchModel struct {
	file      string
	requested []string
	sweep     func() SweepResult

	last    *SweepResult
	sweeps  int
	running bool
	frame   int
	width   int
	height  int
}

// NewWatchModel creates a watch model. sweep executes one full run and
// is called off the update loop.
func NewWatchModel(file string, requested []string, sweep func() SweepResult) WatchModel {
	return WatchModel{file: file, requested: requested, sweep: sweep}
}

// Init implements tea.Model: an initial sweep plus the spinner tick.
func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(m.startSweep(), tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m WatchModel) startSweep() tea.Cmd {
	run := m.sweep
	return func() tea.Msg {
		return sweepDoneMsg(run())
	}
}

// Update implements tea.Model.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			if !m.running {
				m.running = true
				return m, m.startSweep()
			}
		}

	case FileChangedMsg:
		if !m.running {
			m.running = true
			return m, m.startSweep()
		}

	case sweepDoneMsg:
		result := SweepResult(msg)
		m.last = &result
		m.running = false
		m.sweeps++

	case tickMsg:
		m.frame++
		return m, tickCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View implements tea.Model.
func (m WatchModel) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("rmake watch — %s", m.file)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("tasks: %s  sweeps: %d", strings.Join(m.requested, ", "), m.sweeps)))
	b.WriteString("\n\n")

	switch {
	case m.running:
		spinner := spinnerChars[m.frame%len(spinnerChars)]
		b.WriteString(runStyle.Render(fmt.Sprintf("%s running...", spinner)))
		b.WriteString("\n")
	case m.last == nil:
		b.WriteString(dimStyle.Render("waiting for first sweep"))
		b.WriteString("\n")
	case m.last.Err != nil:
		b.WriteString(failedStyle.Render(fmt.Sprintf("✗ %v", m.last.Err)))
		b.WriteString(dimStyle.Render(fmt.Sprintf("  (%s at %s)", round(m.last.Duration), m.last.At.Format("15:04:05"))))
		b.WriteString("\n")
	default:
		b.WriteString(doneStyle.Render(fmt.Sprintf("✓ %s", strings.Join(m.last.Satisfied, ", "))))
		b.WriteString(dimStyle.Render(fmt.Sprintf("  (%s at %s)", round(m.last.Duration), m.last.At.Format("15:04:05"))))
		b.WriteString("\n")
	}

	if m.last != nil && m.last.Output != "" {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(outputTail(m.last.Output, m.outputLines())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("r rerun · q quit"))
	b.WriteString("\n")
	return b.String()
}

// outputLines returns how many trailing output lines fit the window.
func (m WatchModel) outputLines() int {
	if m.height == 0 {
		return 12
	}
	// header, status and help rows take ~7 lines
	n := m.height - 7
	if n < 3 {
		n = 3
	}
	return n
}

func outputTail(output string, n int) string {
	lines := strings.Split(strings.TrimRight(output, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
