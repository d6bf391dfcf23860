package core

// MappedProcess is f(P): the process that behaves like P with every
// event renamed through f.
//
// Acceptable sets and alphabets flow outward through f; the event
// offered from outside travels inward through f's inverse.
type MappedProcess struct {
	node
	F     SymbolChanger
	Inner Process
}

// NewMapped makes the process f(inner).
func NewMapped(inner Process, f SymbolChanger) *MappedProcess {
	p := &MappedProcess{F: f, Inner: inner}
	p.init(p)
	return p
}

func (p *MappedProcess) Acceptable(s *Status) Alphabet {
	return MapAlphabet(p.F, p.Inner.Acceptable(s))
}

func (p *MappedProcess) step(event string, s *Status) (Process, *Status) {
	inner, st := p.Inner.Proceed(ReverseEvent(p.F, event), s)
	if inner == nil {
		return nil, s
	}
	return NewMapped(inner, p.F), st
}

func (p *MappedProcess) baseAlphabet() Alphabet {
	// The renaming is applied by mapAlphabet on the way in.
	return p.Inner.Alphabet()
}

func (p *MappedProcess) mapAlphabet(a Alphabet) Alphabet {
	return MapAlphabet(p.F, a)
}

func (p *MappedProcess) initDependencies() {
	p.Inner.AddDependant(p)
}

func (p *MappedProcess) String() string {
	return p.F.Rename(p.Inner.String())
}
