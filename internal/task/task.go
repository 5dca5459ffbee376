package task

import (
	"fmt"
	"strings"
)

// Action is the deferred unit of work attached to a task. A nil action
// makes the task a pure dependency aggregator.
type Action func() error

// Resolver resolves task names to registered tasks and invokes them.
// The Runner implements it; tests can substitute fakes.
type Resolver interface {
	InvokeTask(name string) (bool, error)
}

// Task is a named unit of work with ordered prerequisites. Name,
// dependencies and action are fixed at construction; only the run state
// mutates afterwards.
type Task struct {
	name       string
	deps       []string
	desc       string
	action     Action
	invoked    bool
	inProgress bool
}

// Canonical normalizes a task name: surrounding whitespace and a leading
// ':' are dropped, the rest is lowercased.
func Canonical(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimPrefix(name, ":")
	return strings.ToLower(name)
}

// New creates a task. The name and each dependency are canonicalized.
// Dependency existence is not checked here; resolution happens at
// invocation time.
func New(name string, deps []string, action Action) *Task {
	canonical := make([]string, len(deps))
	for i, d := range deps {
		canonical[i] = Canonical(d)
	}
	return &Task{name: Canonical(name), deps: canonical, action: action}
}

// Name returns the canonical task name.
func (t *Task) Name() string { return t.name }

// Deps returns the dependency names in declaration order.
func (t *Task) Deps() []string { return t.deps }

// Description returns the task description, empty if undescribed.
func (t *Task) Description() string { return t.desc }

// Describe sets the description and returns it.
func (t *Task) Describe(text string) string {
	t.desc = text
	return text
}

// Invoked reports whether the action has already run in the current sweep.
func (t *Task) Invoked() bool { return t.invoked }

// Clear resets the invoked flag so the task can run again. Returns the
// task for chaining by bulk clears.
func (t *Task) Clear() *Task {
	t.invoked = false
	return t
}

// Invoke runs the task's dependencies in declaration order, then its own
// action, exactly once per sweep. The second return distinguishes "ran"
// from "already satisfied": an already-invoked task is a no-op reporting
// false, not an error.
//
// Revisiting a task whose dependency chain is still resolving means the
// graph loops back on itself; that fails with ErrCycle instead of
// recursing until the stack is exhausted.
func (t *Task) Invoke(res Resolver) (bool, error) {
	if res == nil {
		return false, nil
	}
	if t.inProgress {
		return false, fmt.Errorf("task %q: %w", t.name, ErrCycle)
	}
	if t.invoked {
		return false, nil
	}

	t.inProgress = true
	defer func() { t.inProgress = false }()

	for _, dep := range t.deps {
		if _, err := res.InvokeTask(dep); err != nil {
			return false, err
		}
	}

	if t.action != nil {
		if err := t.action(); err != nil {
			return false, fmt.Errorf("task %q: %w", t.name, err)
		}
	}

	t.invoked = true
	return true, nil
}
