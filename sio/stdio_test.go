package sio

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/Comcast/csp/core"
)

type memStore struct {
	events []string
}

func (m *memStore) Record(event, process string) error {
	m.events = append(m.events, event)
	return nil
}

func TestStdioRun(t *testing.T) {
	var out, errOut bytes.Buffer
	store := &memStore{}
	s := &Stdio{
		In:              strings.NewReader("coin choc coin toffee"),
		Out:             &out,
		ErrOut:          &errOut,
		PrintProcess:    true,
		PrintAcceptable: true,
		Store:           store,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	outcome, err := s.Run(ctx, NewTrace(core.VendingMachine(), 1))
	if err != nil {
		t.Fatal(err)
	}
	if outcome != Exhausted {
		t.Fatalf("outcome: %s", outcome)
	}
	if len(store.events) != 4 {
		t.Fatalf("stored: %v", store.events)
	}
	text := out.String()
	if !strings.Contains(text, "Acceptable: {choc, toffee}") {
		t.Fatalf("out: %q", text)
	}
	if !strings.HasSuffix(text, "OK\n") {
		t.Fatalf("out: %q", text)
	}
}

func TestStdioNotInAlphabet(t *testing.T) {
	var out, errOut bytes.Buffer
	s := &Stdio{
		In:     strings.NewReader("tea"),
		Out:    &out,
		ErrOut: &errOut,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := s.Run(ctx, NewTrace(core.VendingMachine(), 1)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Not in alphabet: tea") {
		t.Fatalf("out: %q", out.String())
	}
}

func TestStdioRefusal(t *testing.T) {
	var out, errOut bytes.Buffer
	s := &Stdio{
		In:     strings.NewReader("b"),
		Out:    &out,
		ErrOut: &errOut,
	}

	// a -> b -> STOP refuses b at the start even though b is in
	// the alphabet.
	p := core.NewPrefixed("a", core.NewPrefixed("b", core.NewStop(core.NewAlphabet("a", "b"))))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	outcome, _ := s.Run(ctx, NewTrace(p, 1))
	if outcome != Refused {
		t.Fatalf("outcome: %s", outcome)
	}
	if !strings.Contains(errOut.String(), "cannot accept b") {
		t.Fatalf("err: %q", errOut.String())
	}
}

func TestStdioAuto(t *testing.T) {
	var out, errOut bytes.Buffer
	s := &Stdio{
		Out:    &out,
		ErrOut: &errOut,
		Auto:   10,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	outcome, err := s.Run(ctx, NewTrace(core.VendingMachine(), 42))
	if err != nil {
		t.Fatal(err)
	}
	if outcome != Exhausted {
		t.Fatalf("outcome: %s", outcome)
	}
}

func TestStdioTermination(t *testing.T) {
	var out, errOut bytes.Buffer
	s := &Stdio{
		In:     strings.NewReader("a"),
		Out:    &out,
		ErrOut: &errOut,
	}

	p := core.NewPrefixed("a", core.NewSkip(core.NewAlphabet("a")))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	outcome, err := s.Run(ctx, NewTrace(p, 1))
	if err != nil {
		t.Fatal(err)
	}
	if outcome != Terminated {
		t.Fatalf("outcome: %s", outcome)
	}
	if !strings.Contains(out.String(), "OK") {
		t.Fatalf("out: %q", out.String())
	}
}

func TestStdioDeadlockAuto(t *testing.T) {
	var out, errOut bytes.Buffer
	s := &Stdio{
		Out:    &out,
		ErrOut: &errOut,
		Auto:   10,
	}

	p := core.NewPrefixed("a", core.NewStop(core.NewAlphabet("a")))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	outcome, err := s.Run(ctx, NewTrace(p, 1))
	if err != nil {
		t.Fatal(err)
	}
	if outcome != Deadlocked {
		t.Fatalf("outcome: %s", outcome)
	}
}
