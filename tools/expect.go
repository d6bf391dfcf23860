// Package tools has some utilities for working with CSP scripts and
// traces: YAML-driven session tests, Graphviz and Mermaid renderings
// of process graphs, and HTML rendering of documented scripts.
package tools

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/Comcast/csp/core"

	"github.com/jsccast/yaml"
)

// GuardSource is procedural code that verifies a step.
type GuardSource struct {
	// Interpreter names the interpreter that runs the code
	// ("goja" usually).
	Interpreter string `json:"interpreter,omitempty" yaml:"interpreter,omitempty"`

	// Source is the code.  It sees the step's bindings at
	// _.bindings and should return bindings to pass or null to
	// fail.
	Source string `json:"source" yaml:"source"`
}

// Step is one expected interaction in a Session.
type Step struct {
	// Doc is an opaque documentation string.
	Doc string `json:"doc,omitempty" yaml:"doc,omitempty"`

	// Event is offered to the process.  An empty Event means the
	// step only checks the current state.
	Event string `json:"event,omitempty" yaml:"event,omitempty"`

	// Acceptable, if non-nil, is the exact set of events the
	// process must be willing to engage in before the Event is
	// offered.
	Acceptable []string `json:"acceptable,omitempty" yaml:"acceptable,omitempty"`

	// Refused, if true, means the process must refuse the Event.
	Refused bool `json:"refused,omitempty" yaml:"refused,omitempty"`

	// Guard is optional procedural verification.
	Guard *GuardSource `json:"guard,omitempty" yaml:"guard,omitempty"`
}

// Session drives a process through a sequence of Steps.
type Session struct {
	// Doc is an opaque documentation string.
	Doc string `json:"doc,omitempty" yaml:"doc,omitempty"`

	// Seed seeds the trace's generator, so a session that
	// depends on how ties break is reproducible.
	Seed int64 `json:"seed,omitempty" yaml:"seed,omitempty"`

	// Steps is the sequence of expected interactions.
	Steps []Step `json:"steps" yaml:"steps"`

	// Interpreters are used to compile and run Guards.
	Interpreters map[string]core.Interpreter `json:"-" yaml:"-"`

	// Verbose logs each step as it happens.
	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// LoadSession parses a YAML session.
func LoadSession(bs []byte) (*Session, error) {
	var s Session
	if err := yaml.Unmarshal(bs, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Run drives the process through the session's steps.  The first
// violated expectation is returned as an error.
func (s *Session) Run(ctx context.Context, p core.Process) error {
	status := core.NewStatus(s.Seed)

	for i, step := range s.Steps {
		acceptable := p.Acceptable(status).Events()

		if s.Verbose {
			log.Printf("step %d: acceptable %v", i, acceptable)
		}

		if step.Acceptable != nil {
			want := append([]string{}, step.Acceptable...)
			sort.Strings(want)
			if !sameStrings(acceptable, want) {
				return fmt.Errorf("step %d: acceptable %v, want %v", i, acceptable, want)
			}
		}

		if step.Guard != nil {
			passed, err := s.guard(ctx, i, step, acceptable)
			if err != nil {
				return err
			}
			if !passed {
				return fmt.Errorf("step %d: guard failed", i)
			}
		}

		if step.Event == "" {
			continue
		}

		next, st := p.Proceed(step.Event, status)
		if next == nil {
			if step.Refused {
				continue
			}
			return fmt.Errorf("step %d: %q refused", i, step.Event)
		}
		if step.Refused {
			return fmt.Errorf("step %d: %q not refused", i, step.Event)
		}
		p, status = next, st
	}

	return nil
}

func (s *Session) guard(ctx context.Context, i int, step Step, acceptable []string) (bool, error) {
	name := step.Guard.Interpreter
	if name == "" {
		name = "goja"
	}
	interpreter, have := s.Interpreters[name]
	if !have {
		return false, core.InterpreterNotFound
	}

	bs := core.NewBindings()
	bs["step"] = i
	bs["event"] = step.Event
	xs := make([]interface{}, len(acceptable))
	for j, e := range acceptable {
		xs[j] = e
	}
	bs["acceptable"] = xs

	result, err := interpreter.Exec(ctx, bs, step.Guard.Source, nil)
	if err != nil {
		return false, fmt.Errorf("step %d: guard: %w", i, err)
	}
	return result != nil, nil
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
