package core

import (
	"testing"
)

func TestAlphabetOps(t *testing.T) {
	a := NewAlphabet("a", "b", "c")
	b := NewAlphabet("b", "c", "d")

	if got := a.Plus(b); !got.Equal(NewAlphabet("a", "b", "c", "d")) {
		t.Fatalf("union: %s", got)
	}
	if got := a.Minus(b); !got.Equal(NewAlphabet("a")) {
		t.Fatalf("difference: %s", got)
	}
	if got := a.Times(b); !got.Equal(NewAlphabet("b", "c")) {
		t.Fatalf("intersection: %s", got)
	}
	if got := a.Div(b); !got.Equal(NewAlphabet("a", "d")) {
		t.Fatalf("symmetric difference: %s", got)
	}
	if !NewAlphabet("a", "b").SubsetOf(a) {
		t.Fatal("subset")
	}
	if a.SubsetOf(b) {
		t.Fatal("not subset")
	}
}

func TestAlphabetKinds(t *testing.T) {
	ints := NewWildAlphabet(Integer)
	strs := NewWildAlphabet(String)

	cases := []struct {
		a     Alphabet
		event string
		want  bool
	}{
		{ints, "0", true},
		{ints, "12345", true},
		{ints, "", false},
		{ints, "12a", false},
		{strs, `"hello"`, true},
		{strs, `""`, true},
		{strs, `hello`, false},
	}
	for _, c := range cases {
		if got := c.a.Contains(c.event); got != c.want {
			t.Fatalf("%s contains %q: %v", c.a, c.event, got)
		}
	}
}

func TestAlphabetTemplates(t *testing.T) {
	a := NewAlphabet("c."+IntegerTemplate, "s."+StringTemplate, "done")

	if !a.Contains("c.42") {
		t.Fatal("c.42")
	}
	if a.Contains("c.x") {
		t.Fatal("c.x")
	}
	if !a.Contains(`s."hi"`) {
		t.Fatal(`s."hi"`)
	}
	if !a.Contains("done") {
		t.Fatal("done")
	}
	if a.Contains("d.42") {
		t.Fatal("d.42")
	}

	// A literal event and the template that covers it intersect
	// via element-wise membership, not lexically.
	b := NewAlphabet("c.7", "other")
	got := a.Times(b)
	if !got.Contains("c.7") {
		t.Fatalf("template intersection: %s", got)
	}
	if got.Contains("other") {
		t.Fatalf("template intersection: %s", got)
	}
}

func TestAlphabetMixedKindUnion(t *testing.T) {
	a := NewAlphabet("a").Plus(NewWildAlphabet(Integer))
	if !a.Contains("a") || !a.Contains("99") {
		t.Fatalf("mixed union: %s", a)
	}
	if a.Contains("b") {
		t.Fatalf("mixed union: %s", a)
	}
}

func TestSelectPrefix(t *testing.T) {
	a := NewAlphabet("c.0", "c.1", "d.0", "x")
	if got := SelectPrefix(a, "c"); !got.Equal(NewAlphabet("c.0", "c.1")) {
		t.Fatalf("select: %s", got)
	}
	if got := ExcludePrefix(a, "c"); !got.Equal(NewAlphabet("d.0", "x")) {
		t.Fatalf("exclude: %s", got)
	}
}
