package config

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/rmake/internal/runner"
	"github.com/ppiankov/rmake/internal/task"
)

// Declaration mirrors one entry of the definitions file.
type Declaration struct {
	Name   string   `yaml:"name"`
	Deps   []string `yaml:"deps,omitempty"`
	Desc   string   `yaml:"desc,omitempty"`
	Run    string   `yaml:"run,omitempty"`    // shell command, executed via sh -c
	Action string   `yaml:"action,omitempty"` // name of a registered Go callback
}

// Makefile is the top-level structure of the definitions file.
type Makefile struct {
	Tasks []Declaration `yaml:"tasks"`
}

// Decode parses definitions text into declarations.
func Decode(text string) ([]Declaration, error) {
	var mf Makefile
	if err := yaml.Unmarshal([]byte(text), &mf); err != nil {
		return nil, fmt.Errorf("parse definitions: %w", err)
	}
	for i, d := range mf.Tasks {
		if task.Canonical(d.Name) == "" {
			return nil, fmt.Errorf("task %d: empty name", i)
		}
		if d.Run != "" && d.Action != "" {
			return nil, fmt.Errorf("task %q: run and action are mutually exclusive", d.Name)
		}
	}
	return mf.Tasks, nil
}

// RegisterOptions control how declarations are turned into tasks.
type RegisterOptions struct {
	// Actions resolves `action:` names to registered Go callbacks.
	Actions runner.Registry
	// Shell builds the action for a `run:` command; defaults to runner.Shell.
	Shell func(command string) task.Action
}

// Register feeds declarations to a runner through its declaration
// surface: a pending description first, then the task itself.
func Register(r *task.Runner, decls []Declaration, opts RegisterOptions) error {
	shell := opts.Shell
	if shell == nil {
		shell = runner.Shell
	}
	for _, d := range decls {
		var action task.Action
		switch {
		case d.Run != "":
			action = shell(d.Run)
		case d.Action != "":
			var ok bool
			action, ok = opts.Actions.Lookup(d.Action)
			if !ok {
				return fmt.Errorf("task %q: no registered action %q", d.Name, d.Action)
			}
		}
		if d.Desc != "" {
			r.PrepareDescription(d.Desc)
		}
		r.Add(task.New(d.Name, d.Deps, action))
	}
	return nil
}

// Collector returns the registry population step used at runner
// construction. A missing source is not fatal: a diagnostic goes to out
// and the registry stays empty.
func Collector(src Source, opts RegisterOptions, out io.Writer) func(*task.Runner) error {
	return func(r *task.Runner) error {
		text, err := src.Read()
		if errors.Is(err, ErrNotFound) {
			fmt.Fprintf(out, "rmake: no definitions at %s\n", src.Location())
			return nil
		}
		if err != nil {
			return err
		}
		decls, err := Decode(text)
		if err != nil {
			return fmt.Errorf("%s: %w", src.Location(), err)
		}
		return Register(r, decls, opts)
	}
}
