// Package managertest provides a scripted manager.Runner for tests.
package managertest

import (
	"context"
	"strings"
	"sync"
)

// Call records one invocation made through a Runner.
type Call struct {
	Name string
	Args []string
}

// String renders the call as a shell command line.
func (c Call) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Result is the scripted outcome of a command line.
type Result struct {
	Output string
	Err    error
}

// Runner answers command lines from a table and records every call.
// Command lines without an entry produce empty output.
type Runner struct {
	mu      sync.Mutex
	results map[string]Result
	calls   []Call
}

// NewRunner creates an empty scripted runner.
func NewRunner() *Runner {
	return &Runner{results: make(map[string]Result)}
}

// On scripts the output for a full command line such as "pip list".
func (r *Runner) On(line, output string) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[line] = Result{Output: output}
	return r
}

// Fail scripts a launch failure for a full command line.
func (r *Runner) Fail(line string, err error) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results[line] = Result{Err: err}
	return r
}

// Output implements manager.Runner.
func (r *Runner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	call := Call{Name: name, Args: append([]string(nil), args...)}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)

	res := r.results[call.String()]
	if res.Err != nil {
		return nil, res.Err
	}
	return []byte(res.Output), nil
}

// Calls returns every recorded call in order.
func (r *Runner) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// CallCount returns how many times a command line was run.
func (r *Runner) CallCount(line string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c.String() == line {
			n++
		}
	}
	return n
}

// Reset forgets the recorded calls but keeps the script.
func (r *Runner) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}
