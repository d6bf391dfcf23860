package core

// DivergenceLimit bounds the number of silent steps Concealment
// takes while looking for its next visible state.  Concealment is
// inherently non-deterministic and possibly divergent; when the
// limit is reached the process turns into STOP rather than looping
// forever.
var DivergenceLimit = 1000

// ConcealedProcess is P \ A: the events of A happen silently.
//
// Whenever the process is asked anything after a consumed decision,
// it runs the inner process forward: it draws uniformly from the
// inner acceptable set, silently engages concealed events, and stops
// at the first state whose drawn event is visible.  That state is
// the decision; it is stored in the Status and consumed by the next
// Proceed().
type ConcealedProcess struct {
	node
	Inner     Process
	Concealed Alphabet
}

// NewConcealed makes the process inner \ concealed.
func NewConcealed(inner Process, concealed Alphabet) *ConcealedProcess {
	if concealed.IsEmpty() {
		panic("concealing nothing")
	}
	p := &ConcealedProcess{Inner: inner, Concealed: concealed}
	p.init(p)
	return p
}

type concealScratch struct {
	next Process // nil means the process turned into STOP
	st   *Status
}

func (p *ConcealedProcess) decide(s *Status) *concealScratch {
	if x, have := s.Extended(p); have {
		return x.(*concealScratch)
	}
	sc := &concealScratch{st: s}
	inner, st := p.Inner, s
	for count := 0; inner != nil && count < DivergenceLimit; count++ {
		acc := inner.Acceptable(st)
		events := acc.Events()
		if len(events) == 0 {
			// Deadlock inside: so are we.
			inner = nil
			break
		}
		event := events[st.Draw(len(events))]
		if !p.Concealed.Contains(event) {
			sc.next, sc.st = inner, st
			s.SetExtended(p, sc)
			return sc
		}
		inner, st = inner.Proceed(event, st)
	}
	// Either the inner process deadlocked or we ran out of
	// attempts.  The only option left is STOP.
	sc.next = nil
	s.SetExtended(p, sc)
	return sc
}

func (p *ConcealedProcess) Acceptable(s *Status) Alphabet {
	sc := p.decide(s)
	if sc.next == nil {
		return NewAlphabet()
	}
	return sc.next.Acceptable(sc.st).Minus(p.Concealed)
}

func (p *ConcealedProcess) step(event string, s *Status) (Process, *Status) {
	sc := p.decide(s)
	s.ClearExtended(p)
	if sc.next == nil {
		return nil, s
	}
	inner, st := sc.next.Proceed(event, sc.st)
	if inner == nil {
		return nil, s
	}
	successor := NewConcealed(inner, p.Concealed)
	successor.SetAlphabet(p.Inner.Alphabet().Minus(p.Concealed))
	return successor, st
}

func (p *ConcealedProcess) baseAlphabet() Alphabet {
	return p.Inner.Alphabet().Minus(p.Concealed)
}

func (p *ConcealedProcess) String() string {
	return p.Inner.String() + " \\ " + p.Concealed.String()
}
