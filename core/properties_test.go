package core

import (
	"testing"
)

// The operators' algebraic obligations, checked over a grab bag of
// processes.

func samples() map[string]Process {
	mk := func() (Process, Process) {
		left := NewPrefixed("a", NewPrefixed("b", NewStop(NewAlphabet("a", "b"))))
		right := NewPrefixed("b", NewPrefixed("c", NewStop(NewAlphabet("b", "c"))))
		return left, right
	}

	acc := make(map[string]Process)

	l, r := mk()
	acc["parallel"] = NewParallel(l, r)
	l, r = mk()
	acc["interleave"] = NewInterleaving(l, r)
	l, r = mk()
	acc["external"] = NewExternalChoice(l, r)
	l, r = mk()
	acc["internal"] = NewInternalChoice(l, r)
	l, r = mk()
	acc["selection"] = NewSelection(l, r)
	l, r = mk()
	acc["sequence"] = NewSequence(l, r)
	l, _ = mk()
	acc["conceal"] = NewConcealed(l, NewAlphabet("a"))
	l, _ = mk()
	acc["mapped"] = NewMapped(l, Qualifier{Label: "q"})
	acc["vm"] = VendingMachine()
	acc["handshake"] = Handshake()
	acc["stop"] = NewStop(NewAlphabet("a"))
	acc["run"] = NewRun(NewAlphabet("a", "b"))
	acc["skip"] = NewSkip(NewAlphabet("a"))
	acc["chaos"] = NewChaos(NewAlphabet("a", "b"))
	return acc
}

func TestAcceptableWithinAlphabet(t *testing.T) {
	for name, p := range samples() {
		for seed := int64(0); seed < 5; seed++ {
			s := NewStatus(seed)
			acc := p.Acceptable(s)
			bound := p.Alphabet().Plus(NewAlphabet(Success))
			if !acc.SubsetOf(bound) {
				t.Fatalf("%s: acceptable %s outside %s", name, acc, bound)
			}
		}
	}
}

func TestBinaryOperatorAlphabets(t *testing.T) {
	// The binary compositions all have the union alphabet.
	want := NewAlphabet("a", "b", "c")
	for _, name := range []string{"parallel", "interleave", "external", "internal", "selection", "sequence"} {
		p := samples()[name]
		if got := p.Alphabet(); !got.Equal(want) {
			t.Fatalf("%s: alphabet %s", name, got)
		}
	}
}

func TestConcealmentAlphabet(t *testing.T) {
	p := samples()["conceal"]
	if got := p.Alphabet(); !got.Equal(NewAlphabet("b")) {
		t.Fatalf("alphabet %s", got)
	}
}

func TestForeignEventsAreIgnored(t *testing.T) {
	for name, p := range samples() {
		s := NewStatus(1)
		next, st := p.Proceed("zzz_not_an_event", s)
		if next != p || st != s {
			t.Fatalf("%s: a foreign event should change nothing", name)
		}
	}
}

func TestPropagationIsMonotone(t *testing.T) {
	p := NewPrefixed("a", NewStop(NewAlphabet("a")))
	before := p.Alphabet()

	p.base().Propagate(NewAlphabet("x", "y"))
	after := p.Alphabet()
	if !before.SubsetOf(after) {
		t.Fatalf("shrank from %s to %s", before, after)
	}
	if !after.Contains("x") {
		t.Fatalf("missing x in %s", after)
	}

	// And more propagation never removes anything.
	p.base().Propagate(NewAlphabet("z"))
	if got := p.Alphabet(); !after.SubsetOf(got) {
		t.Fatalf("shrank from %s to %s", after, got)
	}
}

func TestExplicitAlphabetIsFrozen(t *testing.T) {
	p := NewPrefixed("a", NewStop(NewAlphabet("a")))
	p.SetAlphabet(NewAlphabet("a", "b"))

	p.base().Propagate(NewAlphabet("x"))
	if got := p.Alphabet(); !got.Equal(NewAlphabet("a", "b")) {
		t.Fatalf("alphabet %s", got)
	}
}
