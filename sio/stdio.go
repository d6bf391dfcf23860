/* Copyright 2019 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package sio

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"
)

// Stdio is a fairly simple coupling that reads events from stdin and
// reports the trace on stdout.
type Stdio struct {
	// In supplies events, whitespace-separated.
	In io.Reader

	// Out gets the trace output.
	Out io.Writer

	// ErrOut gets complaints (refusals).
	ErrOut io.Writer

	// PrintProcess prints the current process after each event.
	PrintProcess bool

	// PrintAcceptable prints the acceptable set after each event.
	PrintAcceptable bool

	// EchoEvents prints each accepted event.
	EchoEvents bool

	// Timestamps prepends a timestamp to each output line.
	Timestamps bool

	// Auto, if positive, drives the trace automatically for up to
	// Auto events drawn from the acceptable sets, instead of
	// reading from In.
	Auto int

	// Store, if non-nil, gets every accepted event.
	Store TraceStore
}

// NewStdio creates a new Stdio coupling over stdin/stdout.
func NewStdio() *Stdio {
	return &Stdio{
		In:              os.Stdin,
		Out:             os.Stdout,
		ErrOut:          os.Stderr,
		PrintProcess:    true,
		PrintAcceptable: true,
	}
}

func (s *Stdio) printf(format string, args ...interface{}) {
	if s.Timestamps {
		ts := fmt.Sprintf("%-31s", time.Now().UTC().Format(time.RFC3339Nano))
		format = ts + " " + format
	}
	fmt.Fprintf(s.Out, format, args...)
}

// Run drives the trace until the process terminates, the input runs
// dry, or the process refuses an event.
//
// The startup lines ("Tracing:", "Alphabet:", "Acceptable:") are the
// caller's business; see cmd/csptrace.
func (s *Stdio) Run(ctx context.Context, t *Trace) (Outcome, error) {
	if t.Done() {
		s.printf("OK\n")
		return Terminated, nil
	}

	if 0 < s.Auto {
		return s.auto(ctx, t)
	}

	in := bufio.NewScanner(s.In)
	in.Split(bufio.ScanWords)

	for in.Scan() {
		if ctx.Err() != nil {
			return Exhausted, ctx.Err()
		}
		event := in.Text()

		if !t.Process.Alphabet().Contains(event) {
			s.printf("Not in alphabet: %s\n", event)
			continue
		}

		outcome, done := s.offer(t, event)
		if done {
			return outcome, nil
		}
	}

	s.printf("OK\n")
	return Exhausted, in.Err()
}

// auto draws random acceptable events.
func (s *Stdio) auto(ctx context.Context, t *Trace) (Outcome, error) {
	for i := 0; i < s.Auto; i++ {
		if ctx.Err() != nil {
			return Exhausted, ctx.Err()
		}
		events := t.Acceptable().Events()
		if len(events) == 0 {
			s.printf("deadlock\n")
			return Deadlocked, nil
		}
		event := events[t.Status.Draw(len(events))]

		outcome, done := s.offer(t, event)
		if done {
			return outcome, nil
		}
	}
	s.printf("OK\n")
	return Exhausted, nil
}

// offer hands one event to the trace and prints per the flags.  The
// boolean says the trace is over.
func (s *Stdio) offer(t *Trace, event string) (Outcome, bool) {
	if !t.Step(event) {
		fmt.Fprintf(s.ErrOut, "cannot accept %s\n", event)
		return Refused, true
	}

	if s.Store != nil {
		if err := s.Store.Record(event, t.Process.String()); err != nil {
			fmt.Fprintf(s.ErrOut, "trace store: %v\n", err)
		}
	}

	if t.Done() {
		s.printf("OK\n")
		return Terminated, true
	}
	if s.EchoEvents {
		s.printf("%s\n", event)
	}
	if s.PrintProcess {
		s.printf("Process: %s\n", t.Process)
	}
	if s.PrintAcceptable {
		s.printf("Acceptable: %s\n", t.Acceptable())
	}
	return Exhausted, false
}
