package core

import (
	"testing"
)

// drive offers the events in order, failing the test on any refusal.
func drive(t *testing.T, p Process, s *Status, events ...string) (Process, *Status) {
	t.Helper()
	for _, event := range events {
		next, st := p.Proceed(event, s)
		if next == nil {
			t.Fatalf("refused %q at %s", event, p)
		}
		p, s = next, st
	}
	return p, s
}

func TestVendingMachine(t *testing.T) {
	vm := VendingMachine()
	s := NewStatus(1)

	if got := vm.Alphabet(); !got.Equal(NewAlphabet("coin", "choc", "toffee")) {
		t.Fatalf("alphabet: %s", got)
	}
	if got := vm.Acceptable(s); !got.Equal(NewAlphabet("coin")) {
		t.Fatalf("initial: %s", got)
	}

	p, s := drive(t, vm, s, "coin")
	if got := p.Acceptable(s); !got.Equal(NewAlphabet("choc", "toffee")) {
		t.Fatalf("after coin: %s", got)
	}

	p, s = drive(t, p, s, "choc")
	if got := p.Acceptable(s); !got.Equal(NewAlphabet("coin")) {
		t.Fatalf("after choc: %s", got)
	}

	p, s = drive(t, p, s, "coin", "toffee")
	if got := p.Acceptable(s); !got.Equal(NewAlphabet("coin")) {
		t.Fatalf("after toffee: %s", got)
	}
}

func TestParallelHandshake(t *testing.T) {
	r := Handshake()
	s := NewStatus(1)

	if got := r.Alphabet(); !got.Equal(NewAlphabet("a", "b", "c")) {
		t.Fatalf("alphabet: %s", got)
	}
	if got := r.Acceptable(s); !got.Equal(NewAlphabet("a")) {
		t.Fatalf("initial: %s", got)
	}

	p, s := drive(t, r, s, "a")
	if got := p.Acceptable(s); !got.Equal(NewAlphabet("b")) {
		t.Fatalf("after a: %s", got)
	}

	p, s = drive(t, p, s, "b")
	if got := p.Acceptable(s); !got.Equal(NewAlphabet("a", "c")) {
		t.Fatalf("after b: %s", got)
	}
}

func TestParallelSynchronises(t *testing.T) {
	// b is shared, so it needs both sides ready.
	left := NewPrefixed("a", NewPrefixed("b", NewStop(NewAlphabet("a", "b"))))
	right := NewPrefixed("b", NewStop(NewAlphabet("b")))
	r := NewParallel(left, right)
	s := NewStatus(1)

	if next, _ := r.Proceed("b", s); next != nil {
		t.Fatal("b should be refused while the left side is at a")
	}
}

func TestInterleavingTicks(t *testing.T) {
	mk := func() Process {
		return NewPrefixed("tick", NewStop(NewAlphabet("tick")))
	}
	p := NewInterleaving(mk(), mk())
	s := NewStatus(1)

	if got := p.Acceptable(s); !got.Equal(NewAlphabet("tick")) {
		t.Fatalf("initial: %s", got)
	}
	next, s := drive(t, p, s, "tick")
	if got := next.Acceptable(s); !got.Equal(NewAlphabet("tick")) {
		t.Fatalf("after one tick: %s", got)
	}
	next, s = drive(t, next, s, "tick")
	if got := next.Acceptable(s); !got.IsEmpty() {
		t.Fatalf("after two ticks: %s", got)
	}
}

func TestSequenceAndSkip(t *testing.T) {
	p := NewPrefixed("a", NewSkip(NewAlphabet("a")))
	s := NewStatus(1)

	if got := p.Acceptable(s); !got.Equal(NewAlphabet("a")) {
		t.Fatalf("initial: %s", got)
	}
	next, s := drive(t, p, s, "a")
	if !AcceptsSuccess(next, s) {
		t.Fatal("should accept success after a")
	}

	// a -> SKIP ; b -> STOP runs the two phases in order.
	seq := NewSequence(
		NewPrefixed("a", NewSkip(NewAlphabet("a"))),
		NewPrefixed("b", NewStop(NewAlphabet("b"))))
	s = NewStatus(1)
	if got := seq.Acceptable(s); !got.Equal(NewAlphabet("a")) {
		t.Fatalf("sequence initial: %s", got)
	}
	next, s = drive(t, seq, s, "a")
	if got := next.Acceptable(s); !got.Equal(NewAlphabet("b")) {
		t.Fatalf("sequence after a: %s", got)
	}
	next, s = drive(t, next, s, "b")
	if got := next.Acceptable(s); !got.IsEmpty() {
		t.Fatalf("sequence after b: %s", got)
	}
}

func TestConstants(t *testing.T) {
	alpha := NewAlphabet("a", "b")
	s := NewStatus(1)

	if got := NewStop(alpha).Acceptable(s); !got.IsEmpty() {
		t.Fatalf("STOP: %s", got)
	}
	if got := NewRun(alpha).Acceptable(s); !got.Equal(alpha) {
		t.Fatalf("RUN: %s", got)
	}
	if got := NewSkip(alpha).Acceptable(s); !got.Equal(NewAlphabet(Success)) {
		t.Fatalf("SKIP: %s", got)
	}

	run := NewRun(alpha)
	next, _ := run.Proceed("a", s)
	if next != Process(run) {
		t.Fatal("RUN should step to itself")
	}

	skip := NewSkip(alpha)
	next, _ = skip.Proceed(Success, s)
	if next == nil {
		t.Fatal("SKIP should step on success")
	}
	if got := next.Acceptable(s); !got.IsEmpty() {
		t.Fatalf("SKIP successor: %s", got)
	}
}

func TestChaosMoodIsConsumedByStep(t *testing.T) {
	alpha := NewAlphabet("a", "b", "c")
	chaos := NewChaos(alpha)
	s := NewStatus(42)

	for i := 0; i < 100; i++ {
		acc := chaos.Acceptable(s)
		// Asking again must not change the answer.
		if again := chaos.Acceptable(s); !acc.Equal(again) {
			t.Fatalf("mood changed between calls: %s then %s", acc, again)
		}
		if !acc.SubsetOf(alpha) {
			t.Fatalf("accepting outside the alphabet: %s", acc)
		}
		event := "a"
		next, _ := chaos.Proceed(event, s)
		if acc.Contains(event) && next == nil {
			t.Fatal("refused an event it promised to accept")
		}
		if !acc.Contains(event) && next != nil {
			t.Fatal("accepted an event it promised to refuse")
		}
	}
}

func TestProceedOutsideAlphabet(t *testing.T) {
	p := NewPrefixed("a", NewStop(NewAlphabet("a")))
	s := NewStatus(1)

	next, st := p.Proceed("zebra", s)
	if next != Process(p) || st != s {
		t.Fatal("an event outside the alphabet is none of our business")
	}
}

func TestInternalChoiceCommits(t *testing.T) {
	left := NewPrefixed("a", NewStop(NewAlphabet("a")))
	right := NewPrefixed("b", NewStop(NewAlphabet("b")))
	p := NewInternalChoice(left, right)

	for seed := int64(0); seed < 20; seed++ {
		s := NewStatus(seed)
		acc := p.Acceptable(s)
		if !acc.Equal(NewAlphabet("a")) && !acc.Equal(NewAlphabet("b")) {
			t.Fatalf("seed %d: %s", seed, acc)
		}
		// The commitment binds the step that follows.
		event := acc.Events()[0]
		next, _ := p.Proceed(event, s)
		if next == nil {
			t.Fatalf("seed %d: refused its own commitment %q", seed, event)
		}
	}
}

func TestExternalChoiceDefers(t *testing.T) {
	left := NewPrefixed("a", NewStop(NewAlphabet("a")))
	right := NewPrefixed("b", NewStop(NewAlphabet("b")))
	p := NewExternalChoice(left, right)
	s := NewStatus(1)

	if got := p.Acceptable(s); !got.Equal(NewAlphabet("a", "b")) {
		t.Fatalf("acceptable: %s", got)
	}
	next, _ := p.Proceed("b", s)
	if next == nil {
		t.Fatal("refused b")
	}
	if got := next.Acceptable(NewStatus(1)); !got.IsEmpty() {
		t.Fatalf("after b: %s", got)
	}
}

func TestDeterministicTraces(t *testing.T) {
	// The same seed and the same events must yield the same
	// successors, flips and all.
	run := func(seed int64) []string {
		p := Process(NewInterleaving(
			NewPrefixed("x", NewPrefixed("y", NewStop(NewAlphabet("x", "y")))),
			NewPrefixed("x", NewPrefixed("z", NewStop(NewAlphabet("x", "z"))))))
		s := NewStatus(seed)
		var trace []string
		for i := 0; i < 4; i++ {
			acc := p.Acceptable(s).Events()
			if len(acc) == 0 {
				break
			}
			event := acc[s.Draw(len(acc))]
			next, st := p.Proceed(event, s)
			if next == nil {
				break
			}
			trace = append(trace, event+"/"+next.String())
			p, s = next, st
		}
		return trace
	}

	for seed := int64(0); seed < 10; seed++ {
		a, b := run(seed), run(seed)
		if len(a) != len(b) {
			t.Fatalf("seed %d: %v vs %v", seed, a, b)
		}
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("seed %d: %v vs %v", seed, a, b)
			}
		}
	}
}
