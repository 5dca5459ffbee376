package runner

import "github.com/ppiankov/rmake/internal/task"

// Registry maps action names to Go callbacks. Definitions bind a task to
// a callback through the `action:` key; this is the structured
// replacement for evaluating arbitrary script text in the runner's
// process.
type Registry map[string]task.Action

// Lookup resolves a callback by canonical name.
func (r Registry) Lookup(name string) (task.Action, bool) {
	if r == nil {
		return nil, false
	}
	a, ok := r[task.Canonical(name)]
	return a, ok
}

// Bind registers a callback under a canonical name. The last binding for
// a name wins.
func (r Registry) Bind(name string, action task.Action) {
	r[task.Canonical(name)] = action
}
