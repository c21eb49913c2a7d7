package execx

import (
	"context"
	"strings"
	"sync"
)

// FakeResponse is the scripted outcome for one command in a Fake runner.
type FakeResponse struct {
	Output   string
	ExitCode int
	Err      error
}

// Fake is a scripted Runner implementation for testing. Responses are keyed
// by the space-joined argument vector; unmatched commands succeed with empty
// output by default.
type Fake struct {
	mu        sync.Mutex
	responses map[string]FakeResponse
	calls     [][]string
}

// NewFake creates an empty Fake runner.
func NewFake() *Fake {
	return &Fake{responses: map[string]FakeResponse{}}
}

// Respond scripts the response for the given argument vector.
func (f *Fake) Respond(argv []string, resp FakeResponse) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[strings.Join(argv, " ")] = resp
	return f
}

// RespondPrefix scripts a response for every command whose joined argv
// starts with the given prefix. Exact matches take precedence.
func (f *Fake) RespondPrefix(prefix string, resp FakeResponse) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses["prefix:"+prefix] = resp
	return f
}

// Run implements Runner.
func (f *Fake) Run(_ context.Context, _ string, argv ...string) (Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, argv)

	key := strings.Join(argv, " ")
	if resp, ok := f.responses[key]; ok {
		return f.result(argv, resp)
	}
	for k, resp := range f.responses {
		if p, ok := strings.CutPrefix(k, "prefix:"); ok && strings.HasPrefix(key, p) {
			return f.result(argv, resp)
		}
	}
	return Result{Argv: argv, ExitCode: 0}, nil
}

func (f *Fake) result(argv []string, resp FakeResponse) (Result, error) {
	if resp.Err != nil {
		return Result{Argv: argv, ExitCode: -1}, resp.Err
	}
	return Result{Argv: argv, Output: resp.Output, ExitCode: resp.ExitCode}, nil
}

// Calls returns every argument vector Run has received, in order.
func (f *Fake) Calls() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	calls := make([][]string, len(f.calls))
	copy(calls, f.calls)
	return calls
}

// CalledWith reports whether any recorded call's joined argv starts with the
// given prefix.
func (f *Fake) CalledWith(prefix string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, argv := range f.calls {
		if strings.HasPrefix(strings.Join(argv, " "), prefix) {
			return true
		}
	}
	return false
}
