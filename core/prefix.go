package core

// PrefixedProcess is event -> P.
type PrefixedProcess struct {
	node
	Event string
	Next  Process
}

// NewPrefixed makes the process event -> next.
func NewPrefixed(event string, next Process) *PrefixedProcess {
	p := &PrefixedProcess{Event: event, Next: next}
	p.init(p)
	return p
}

func (p *PrefixedProcess) Acceptable(s *Status) Alphabet {
	return NewAlphabet(p.Event)
}

func (p *PrefixedProcess) step(event string, s *Status) (Process, *Status) {
	if event == p.Event {
		return p.Next, s
	}
	return nil, s
}

func (p *PrefixedProcess) baseAlphabet() Alphabet {
	return NewAlphabet(p.Event).Plus(p.Next.Alphabet())
}

func (p *PrefixedProcess) initDependencies() {
	p.Next.AddDependant(p)
}

func (p *PrefixedProcess) String() string {
	return p.Event + " -> " + p.Next.String()
}
