package core

import (
	"testing"
)

// loop builds P = a -> b -> P as a named definition and returns it.
func loop(t *testing.T) Process {
	symtab := NewSymTable()
	symtab.Open()
	def := NewDefinition("P", nil, nil)
	symtab.Insert("P", def)
	ref := NewProcessReference("P", nil, Location{}, symtab, nil)
	ref.Register()
	def.SetBody(NewPrefixed("a", NewPrefixed("b", ref)))
	symtab.Close()
	return def
}

func TestConcealment(t *testing.T) {
	p := NewConcealed(loop(t), NewAlphabet("a"))
	s := NewStatus(1)

	if got := p.Alphabet(); !got.Equal(NewAlphabet("b")) {
		t.Fatalf("alphabet: %s", got)
	}

	// The concealed a is consumed silently, so b is acceptable
	// right away, and the observable behaviour repeats.
	q := Process(p)
	for i := 0; i < 10; i++ {
		if got := q.Acceptable(s); !got.Equal(NewAlphabet("b")) {
			t.Fatalf("round %d: %s", i, got)
		}
		next, st := q.Proceed("b", s)
		if next == nil {
			t.Fatalf("round %d: refused b", i)
		}
		q, s = next, st
	}
}

func TestConcealmentDeadlock(t *testing.T) {
	// Concealing everything a finite process can do leaves STOP.
	inner := NewPrefixed("a", NewStop(NewAlphabet("a", "b")))
	p := NewConcealed(inner, NewAlphabet("a", "b"))
	s := NewStatus(1)

	if got := p.Acceptable(s); !got.IsEmpty() {
		t.Fatalf("acceptable: %s", got)
	}
	if next, _ := p.Proceed("a", s); next != Process(p) {
		// a is concealed, hence not in our alphabet at all.
		t.Fatal("a concealed event is none of our business")
	}
}

func TestConcealmentDivergenceCap(t *testing.T) {
	// P = a -> P with a concealed diverges; the cap turns it into
	// STOP instead of spinning forever.
	symtab := NewSymTable()
	symtab.Open()
	def := NewDefinition("P", nil, nil)
	symtab.Insert("P", def)
	ref := NewProcessReference("P", nil, Location{}, symtab, nil)
	ref.Register()
	def.SetBody(NewPrefixed("a", ref))
	symtab.Close()

	p := NewConcealed(def, NewAlphabet("a"))
	s := NewStatus(1)

	if got := p.Acceptable(s); !got.IsEmpty() {
		t.Fatalf("divergent concealment should look like STOP, got %s", got)
	}
}

func TestConcealmentDecisionConsumed(t *testing.T) {
	p := NewConcealed(loop(t), NewAlphabet("a"))
	s := NewStatus(7)

	// Asking twice must not advance the hidden process twice.
	first := p.Acceptable(s)
	second := p.Acceptable(s)
	if !first.Equal(second) {
		t.Fatalf("decision not held: %s then %s", first, second)
	}
}

func TestMappedProcess(t *testing.T) {
	inner := NewPrefixed("a", NewPrefixed("b", NewStop(NewAlphabet("a", "b"))))
	p := NewMapped(inner, Qualifier{Label: "l"})
	s := NewStatus(1)

	if got := p.Alphabet(); !got.Equal(NewAlphabet("l.a", "l.b")) {
		t.Fatalf("alphabet: %s", got)
	}
	if got := p.Acceptable(s); !got.Equal(NewAlphabet("l.a")) {
		t.Fatalf("acceptable: %s", got)
	}
	next, s := p.Proceed("l.a", s)
	if next == nil {
		t.Fatal("refused l.a")
	}
	if got := next.Acceptable(s); !got.Equal(NewAlphabet("l.b")) {
		t.Fatalf("after l.a: %s", got)
	}
}

func TestPipe(t *testing.T) {
	symtab := NewSymTable()
	symtab.Open()

	left := NewChannel("left")
	right := NewChannel("right")

	// COPY = left?x -> right!x -> COPY, twice, piped.
	copyDef := func(name string) *ProcessDefinition {
		def := NewDefinition(name, nil, nil)
		symtab.Insert(name, def)
		ref := NewProcessReference(name, nil, Location{}, symtab, nil)
		ref.Register()
		out := NewWriting(right, &Variable{Name: "x"}, ref, name)
		def.SetBody(NewReading(left, "x", out, name))
		return def
	}
	left.SetAlphabet(NewAlphabet("0", "1"))
	right.SetAlphabet(NewAlphabet("0", "1"))

	a := copyDef("A")
	b := copyDef("B")
	symtab.Close()

	pipe := NewPipe(a, b, symtab)
	s := NewStatus(3)

	want := NewAlphabet("left.0", "left.1", "right.0", "right.1")
	if got := pipe.Alphabet(); !got.Equal(want) {
		t.Fatalf("alphabet: %s", got)
	}

	if got := pipe.Acceptable(s); !got.Equal(NewAlphabet("left.0", "left.1")) {
		t.Fatalf("initial: %s", got)
	}

	p, s := drive(t, pipe, s, "left.1")
	// The message crosses the hidden middle channel; eventually
	// right.1 is the only visible output.
	acc := p.Acceptable(s)
	if !acc.SubsetOf(want) {
		t.Fatalf("after left.1: %s", acc)
	}
	if !acc.Contains("right.1") && !acc.Contains("left.0") {
		t.Fatalf("after left.1: %s", acc)
	}
}

func TestSubordination(t *testing.T) {
	// The subordinate's own events are hidden; only the master's
	// extra events remain visible.
	sub := NewPrefixed("ask", NewPrefixed("reply", NewStop(NewAlphabet("ask", "reply"))))
	main := NewPrefixed("go", NewPrefixed("ask", NewPrefixed("reply",
		NewStop(NewAlphabet("go", "ask", "reply")))))
	p := NewSubordination(sub, main)
	s := NewStatus(1)

	if got := p.Alphabet(); !got.Equal(NewAlphabet("go")) {
		t.Fatalf("alphabet: %s", got)
	}
	if got := p.Acceptable(s); !got.Equal(NewAlphabet("go")) {
		t.Fatalf("initial: %s", got)
	}
}
