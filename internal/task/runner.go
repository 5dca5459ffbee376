package task

import (
	"fmt"
	"io"
	"os"
)

// DefaultTask is the name substituted when a run requests no names.
const DefaultTask = "default"

// Options configure a Runner.
type Options struct {
	// Collect populates the registry once, at construction, from an
	// external definitions source. A nil Collect leaves the registry
	// empty. Collection runs inside the failure boundary.
	Collect func(*Runner) error

	// Trace enables panic origin traces in fault reports.
	Trace bool

	// Out receives the usage listing; defaults to stdout.
	Out io.Writer
	// Err receives fault reports; defaults to stderr.
	Err io.Writer
}

// Runner owns the task registry and drives invocation. Tasks reference
// each other only by name; the Runner is the sole resolver.
type Runner struct {
	registry map[string]*Task
	order    []string // registration order, governs the usage listing

	pending    string
	hasPending bool

	trace bool
	out   io.Writer
	err   io.Writer
}

// NewRunner creates a runner and collects task declarations exactly once.
func NewRunner(opts Options) *Runner {
	r := &Runner{
		registry: make(map[string]*Task),
		trace:    opts.Trace,
		out:      opts.Out,
		err:      opts.Err,
	}
	if r.out == nil {
		r.out = os.Stdout
	}
	if r.err == nil {
		r.err = os.Stderr
	}
	if opts.Collect != nil {
		_ = r.contain(func() error { return opts.Collect(r) })
	}
	return r
}

// PrepareDescription stores text for the next registered task and
// returns it. An unconsumed description is discarded by the next call.
func (r *Runner) PrepareDescription(text string) string {
	r.pending = text
	r.hasPending = true
	return text
}

// Add registers a task, attaching any pending description. Re-declaring
// a name silently replaces the prior task, dependencies and all.
func (r *Runner) Add(t *Task) *Task {
	if r.hasPending {
		t.Describe(r.pending)
		r.pending = ""
		r.hasPending = false
	}
	if _, exists := r.registry[t.Name()]; !exists {
		r.order = append(r.order, t.Name())
	}
	r.registry[t.Name()] = t
	return t
}

// Task returns the registered task for a name, nil if absent.
func (r *Runner) Task(name string) *Task {
	return r.registry[Canonical(name)]
}

// Names returns the registered task names in registration order.
func (r *Runner) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Len returns the number of registered tasks.
func (r *Runner) Len() int { return len(r.registry) }

// InvokeTask invokes the named task, dependencies first. An unregistered
// name is a fault: it indicates a broken dependency declaration and must
// propagate to the outer boundary, never be swallowed.
func (r *Runner) InvokeTask(name string) (bool, error) {
	t, ok := r.registry[Canonical(name)]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownTask, Canonical(name))
	}
	return t.Invoke(r)
}

// ClearAll resets the invoked flag on every registered task and returns
// the registry for inspection. Tasks themselves are kept.
func (r *Runner) ClearAll() map[string]*Task {
	for _, t := range r.registry {
		t.Clear()
	}
	return r.registry
}

// PrintUsage writes the task listing: a fixed two-line header followed
// by one row per task in registration order. The exact layout is part of
// the observable contract.
func (r *Runner) PrintUsage() {
	fmt.Fprintln(r.out, "Usage: rmake [:task[, :task ...]]")
	fmt.Fprintln(r.out, "Tasks:")
	for _, name := range r.order {
		desc := r.registry[name].Description()
		if desc == "" {
			desc = "(undescribed)"
		}
		fmt.Fprintf(r.out, "%-16.16s  %s\n", name, desc)
	}
}

// Run is the top-level entry. No names runs the default task; a "help"
// or "tasks" sentinel anywhere in the request prints the usage listing
// and runs nothing else. Otherwise each requested task is invoked in the
// order given, inside the failure boundary, and the returned list holds
// every requested name satisfied by the sweep, including names already
// covered by an earlier task's dependency chain.
func (r *Runner) Run(names ...string) ([]string, error) {
	requested := make([]string, len(names))
	for i, n := range names {
		requested[i] = Canonical(n)
	}

	for _, n := range requested {
		if n == "help" || n == "tasks" {
			r.PrintUsage()
			return []string{"help"}, nil
		}
	}

	if len(requested) == 0 {
		requested = []string{DefaultTask}
	}

	var satisfied []string
	err := r.contain(func() error {
		for _, name := range requested {
			if _, err := r.InvokeTask(name); err != nil {
				return err
			}
			satisfied = append(satisfied, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return satisfied, nil
}
