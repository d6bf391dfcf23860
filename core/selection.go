package core

import (
	"strings"
)

// SelectingProcess is the event-prefixed choice P1 | P2 | ... | Pn.
//
// The branches are tried left to right; the first branch that does
// not refuse the event wins.  The parser guarantees at least one
// branch; NewSelection panics otherwise, since an empty choice has
// no meaning.
type SelectingProcess struct {
	node
	Branches []Process
}

// NewSelection makes the choice over the given branches.
func NewSelection(branches ...Process) *SelectingProcess {
	if len(branches) == 0 {
		panic("selection with no branches")
	}
	p := &SelectingProcess{Branches: branches}
	p.init(p)
	return p
}

func (p *SelectingProcess) Acceptable(s *Status) Alphabet {
	acc := NewAlphabet()
	for _, b := range p.Branches {
		acc = acc.Plus(b.Acceptable(s))
	}
	return acc
}

func (p *SelectingProcess) step(event string, s *Status) (Process, *Status) {
	for _, b := range p.Branches {
		if successor, st := b.Proceed(event, s); successor != nil {
			return successor, st
		}
	}
	return nil, s
}

func (p *SelectingProcess) baseAlphabet() Alphabet {
	a := NewAlphabet()
	for _, b := range p.Branches {
		a = a.Plus(b.Alphabet())
	}
	return a
}

func (p *SelectingProcess) initDependencies() {
	for _, b := range p.Branches {
		b.AddDependant(p)
	}
}

func (p *SelectingProcess) String() string {
	parts := make([]string, len(p.Branches))
	for i, b := range p.Branches {
		parts[i] = b.String()
	}
	return "(" + strings.Join(parts, " | ") + ")"
}
