package core

// InterleavingProcesses is P ||| Q: both sides progress on their own
// events with no synchronisation at all.  When both sides would
// accept an event, a coin flip picks the one that engages.
type InterleavingProcesses struct {
	node
	Left  Process
	Right Process
}

// NewInterleaving makes the process left ||| right.
func NewInterleaving(left, right Process) *InterleavingProcesses {
	p := &InterleavingProcesses{Left: left, Right: right}
	p.init(p)
	return p
}

func (p *InterleavingProcesses) Acceptable(s *Status) Alphabet {
	return p.Left.Acceptable(s).Plus(p.Right.Acceptable(s))
}

func (p *InterleavingProcesses) step(event string, s *Status) (Process, *Status) {
	ok1 := p.Left.Acceptable(s).Contains(event)
	ok2 := p.Right.Acceptable(s).Contains(event)
	if ok1 && ok2 {
		if s.Flip() {
			ok1 = false
		} else {
			ok2 = false
		}
	}
	switch {
	case ok1:
		left, st := p.Left.Proceed(event, s)
		if left == nil {
			return nil, s
		}
		return NewInterleaving(left, p.Right), st
	case ok2:
		right, st := p.Right.Proceed(event, s)
		if right == nil {
			return nil, s
		}
		return NewInterleaving(p.Left, right), st
	}
	return nil, s
}

func (p *InterleavingProcesses) baseAlphabet() Alphabet {
	return p.Left.Alphabet().Plus(p.Right.Alphabet())
}

func (p *InterleavingProcesses) initDependencies() {
	p.Left.AddDependant(p)
	p.Right.AddDependant(p)
}

func (p *InterleavingProcesses) String() string {
	return p.Left.String() + " ||| " + p.Right.String()
}
