package core

// ProcessSequence is P; Q.  While P has not terminated, the sequence
// behaves as P; once P accepts Success, the sequence behaves as Q.
type ProcessSequence struct {
	node
	First  Process
	Second Process
}

// NewSequence makes the process first; second.
func NewSequence(first, second Process) *ProcessSequence {
	p := &ProcessSequence{First: first, Second: second}
	p.init(p)
	return p
}

func (p *ProcessSequence) Acceptable(s *Status) Alphabet {
	if AcceptsSuccess(p.First, s) {
		return p.Second.Acceptable(s)
	}
	return p.First.Acceptable(s)
}

func (p *ProcessSequence) step(event string, s *Status) (Process, *Status) {
	if AcceptsSuccess(p.First, s) {
		return p.Second.Proceed(event, s)
	}
	first, st := p.First.Proceed(event, s)
	if first == nil {
		return nil, s
	}
	return NewSequence(first, p.Second), st
}

func (p *ProcessSequence) baseAlphabet() Alphabet {
	return p.First.Alphabet().Plus(p.Second.Alphabet())
}

func (p *ProcessSequence) initDependencies() {
	p.First.AddDependant(p)
	p.Second.AddDependant(p)
}

func (p *ProcessSequence) String() string {
	return p.First.String() + "; " + p.Second.String()
}
