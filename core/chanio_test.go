package core

import (
	"testing"
)

// echo builds P = c?x -> c!x -> P on a channel with messages 0 and 1.
func echo(t *testing.T) Process {
	symtab := NewSymTable()
	symtab.Open()

	c := NewChannel("c")
	c.SetAlphabet(NewAlphabet("0", "1"))

	def := NewDefinition("P", nil, nil)
	symtab.Insert("P", def)
	ref := NewProcessReference("P", nil, Location{}, symtab, nil)
	ref.Register()
	def.SetBody(NewReading(c, "x",
		NewWriting(c, &Variable{Name: "x"}, ref, "P"), "P"))
	symtab.Close()
	return def
}

func TestChannelEcho(t *testing.T) {
	p := echo(t)
	s := NewStatus(1)

	if got := p.Alphabet(); !got.Equal(NewAlphabet("c.0", "c.1")) {
		t.Fatalf("alphabet: %s", got)
	}
	if got := p.Acceptable(s); !got.Equal(NewAlphabet("c.0", "c.1")) {
		t.Fatalf("initial: %s", got)
	}

	q, s := drive(t, p, s, "c.0")
	if got := q.Acceptable(s); !got.Equal(NewAlphabet("c.0")) {
		t.Fatalf("after c.0: %s", got)
	}

	q, s = drive(t, q, s, "c.0")
	if got := q.Acceptable(s); !got.Equal(NewAlphabet("c.0", "c.1")) {
		t.Fatalf("after echo: %s", got)
	}

	q, s = drive(t, q, s, "c.1")
	if got := q.Acceptable(s); !got.Equal(NewAlphabet("c.1")) {
		t.Fatalf("after c.1: %s", got)
	}
}

func TestChannelAlphabetFreeze(t *testing.T) {
	c := NewChannel("c")
	c.AddSymbol("a")
	if !c.SetAlphabet(NewAlphabet("x", "y")) {
		t.Fatal("first SetAlphabet should succeed")
	}
	if c.SetAlphabet(NewAlphabet("z")) {
		t.Fatal("second SetAlphabet should be refused")
	}
	c.AddSymbol("w") // ignored once fixed
	if got := c.DefaultAlphabet(); !got.Equal(NewAlphabet("c.x", "c.y")) {
		t.Fatalf("alphabet: %s", got)
	}
}

func TestChannelPerProcessAlphabet(t *testing.T) {
	c := NewChannel("c")
	c.SetAlphabet(NewAlphabet("0"))
	if !c.SetProcessAlphabet("P", NewAlphabet("0", "1")) {
		t.Fatal("assignment refused")
	}
	if got := c.AlphabetFor("P"); !got.Equal(NewAlphabet("c.0", "c.1")) {
		t.Fatalf("for P: %s", got)
	}
	if got := c.AlphabetFor("Q"); !got.Equal(NewAlphabet("c.0")) {
		t.Fatalf("for Q: %s", got)
	}
}

func TestChannelWildcardAlphabet(t *testing.T) {
	c := NewChannel("c")
	c.SetAlphabet(NewWildAlphabet(Integer))
	a := c.DefaultAlphabet()
	if !a.Contains("c.42") {
		t.Fatalf("c.42 not in %s", a)
	}
	if a.Contains("c.x") {
		t.Fatalf("c.x in %s", a)
	}
}

type recordingReporter struct {
	errors []string
}

func (r *recordingReporter) Errorf(loc Location, format string, args ...interface{}) {
	r.errors = append(r.errors, loc.String())
}

func TestWritingArithmetic(t *testing.T) {
	symtab := NewSymTable()
	symtab.Open()
	c := NewChannel("c")
	c.SetAlphabet(NewWildAlphabet(Integer))

	// c?x -> c!x+1 -> STOP
	expr := &Binary{
		Left:  &Variable{Name: "x"},
		Right: &IntegerLiteral{Value: 1},
		Op:    "+",
		F:     Add,
	}
	p := NewReading(c, "x",
		NewWriting(c, expr, NewStop(NewAlphabet("c."+IntegerTemplate)), ""), "")
	symtab.Close()

	s := NewStatus(1)
	q, s := drive(t, Process(p), s, "c.41")
	if got := q.Acceptable(s); !got.Equal(NewAlphabet("c.42")) {
		t.Fatalf("after c.41: %s", got)
	}
}

func TestWritingNonIntegerVariable(t *testing.T) {
	rep := &recordingReporter{}
	s := NewStatus(1)
	s.Bind("x", "hello")

	expr := &Binary{
		Left:  &Variable{Name: "x", Loc: Location{File: "t.csp", Line: 3, Col: 7}, Rep: rep},
		Right: &IntegerLiteral{Value: 2},
		Op:    "*",
		F:     Mul,
	}
	if got := expr.Eval(s); got != 0 {
		t.Fatalf("non-integer variable should count as zero, got %d", got)
	}
	if len(rep.errors) != 1 || rep.errors[0] != "t.csp:3:7" {
		t.Fatalf("errors: %v", rep.errors)
	}
}

func TestExpressionOps(t *testing.T) {
	s := NewStatus(1)
	cases := []struct {
		op   string
		f    func(Value, Value) Value
		a, b Value
		want Value
	}{
		{"+", Add, 2, 3, 5},
		{"-", Sub, 7, 3, 4},
		{"*", Mul, 4, 5, 20},
		{"div", Div, 17, 5, 3},
		{"div", Div, 17, 0, 0},
		{"mod", Mod, 17, 5, 2},
		{"mod", Mod, 17, 0, 0},
	}
	for _, c := range cases {
		e := &Binary{
			Left:  &IntegerLiteral{Value: c.a},
			Right: &IntegerLiteral{Value: c.b},
			Op:    c.op,
			F:     c.f,
		}
		if got := e.Eval(s); got != c.want {
			t.Fatalf("%d %s %d = %d", c.a, c.op, c.b, got)
		}
	}
}
