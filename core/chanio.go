package core

import (
	"strconv"
	"strings"
)

// ReadingProcess is c?v -> P: engage in any event of channel c and
// bind the received message to v for the rest of the trace through
// P.
type ReadingProcess struct {
	node
	Channel  *Channel
	Variable string
	Next     Process

	// Proc is the name of the enclosing process definition, used
	// to pick a per-process channel alphabet if one was assigned.
	Proc string
}

// NewReading makes the process channel?variable -> next.
func NewReading(channel *Channel, variable string, next Process, proc string) *ReadingProcess {
	p := &ReadingProcess{Channel: channel, Variable: variable, Next: next, Proc: proc}
	p.init(p)
	return p
}

func (p *ReadingProcess) Acceptable(s *Status) Alphabet {
	return SelectPrefix(p.Alphabet(), p.Channel.Name)
}

func (p *ReadingProcess) step(event string, s *Status) (Process, *Status) {
	message, ok := strings.CutPrefix(event, p.Channel.Name+".")
	if !ok {
		return nil, s
	}
	st := s.Child()
	st.Bind(p.Variable, message)
	return p.Next, st
}

func (p *ReadingProcess) baseAlphabet() Alphabet {
	// The events themselves come from the channel subscription;
	// see initDependencies.
	return p.Next.Alphabet()
}

func (p *ReadingProcess) initDependencies() {
	p.AddChannel(p.Channel, p.Proc)
	p.Next.AddDependant(p)
}

func (p *ReadingProcess) String() string {
	return p.Channel.Name + "?" + p.Variable + " -> " + p.Next.String()
}

// WritingProcess is c!expr -> P: engage in exactly the event
// "c.m" where m is the message the expression evaluates to.
type WritingProcess struct {
	node
	Channel *Channel
	Expr    Expression
	Next    Process
	Proc    string
}

// NewWriting makes the process channel!expr -> next.
func NewWriting(channel *Channel, expr Expression, next Process, proc string) *WritingProcess {
	p := &WritingProcess{Channel: channel, Expr: expr, Next: next, Proc: proc}
	p.init(p)
	return p
}

// message evaluates the output expression under the current
// bindings.  A bare bound variable passes its value through
// unchanged, so non-numeric messages survive a read-then-write
// round trip; anything else is arithmetic.
func (p *WritingProcess) message(s *Status) string {
	if v, isVar := p.Expr.(*Variable); isVar {
		if value, have := s.Lookup(v.Name); have {
			return value
		}
	}
	return strconv.FormatUint(p.Expr.Eval(s), 10)
}

func (p *WritingProcess) Acceptable(s *Status) Alphabet {
	return NewAlphabet(p.Channel.Event(p.message(s)))
}

func (p *WritingProcess) step(event string, s *Status) (Process, *Status) {
	if event == p.Channel.Event(p.message(s)) {
		return p.Next, s
	}
	return nil, s
}

func (p *WritingProcess) baseAlphabet() Alphabet {
	return p.Next.Alphabet()
}

func (p *WritingProcess) initDependencies() {
	p.AddChannel(p.Channel, p.Proc)
	p.Next.AddDependant(p)
}

func (p *WritingProcess) String() string {
	return p.Channel.Name + "!" + p.Expr.String() + " -> " + p.Next.String()
}
