package core

// ExternalChoice is P [] Q: the environment resolves the choice by
// the first event it offers.  Each side runs under an independent
// sub-status, materialised the first time the operator is asked
// anything.  When both sides would accept the event, a coin flip
// decides.
type ExternalChoice struct {
	node
	Left  Process
	Right Process
}

// NewExternalChoice makes the process left [] right.
func NewExternalChoice(left, right Process) *ExternalChoice {
	p := &ExternalChoice{Left: left, Right: right}
	p.init(p)
	return p
}

type choiceScratch struct {
	left  *Status
	right *Status
}

func (p *ExternalChoice) substatus(s *Status) *choiceScratch {
	if x, have := s.Extended(p); have {
		return x.(*choiceScratch)
	}
	sc := &choiceScratch{left: s.Child(), right: s.Child()}
	s.SetExtended(p, sc)
	return sc
}

func (p *ExternalChoice) Acceptable(s *Status) Alphabet {
	sc := p.substatus(s)
	return p.Left.Acceptable(sc.left).Plus(p.Right.Acceptable(sc.right))
}

func (p *ExternalChoice) step(event string, s *Status) (Process, *Status) {
	sc := p.substatus(s)
	ok1 := p.Left.Acceptable(sc.left).Contains(event)
	ok2 := p.Right.Acceptable(sc.right).Contains(event)
	if ok1 && ok2 {
		if s.Flip() {
			ok1 = false
		} else {
			ok2 = false
		}
	}
	s.ClearExtended(p)
	if ok1 {
		return p.Left.Proceed(event, sc.left)
	}
	return p.Right.Proceed(event, sc.right)
}

func (p *ExternalChoice) baseAlphabet() Alphabet {
	return p.Left.Alphabet().Plus(p.Right.Alphabet())
}

func (p *ExternalChoice) initDependencies() {
	p.Left.AddDependant(p)
	p.Right.AddDependant(p)
}

func (p *ExternalChoice) String() string {
	return p.Left.String() + " [] " + p.Right.String()
}

// InternalChoice is P |~| Q: the process makes up its own mind.  The
// commitment is drawn from the trace's generator the first time the
// operator is asked anything, binds the Acceptable() answer and the
// Proceed() that follows, and is then discarded so the next
// interaction draws afresh.
type InternalChoice struct {
	node
	Left  Process
	Right Process
}

// NewInternalChoice makes the process left |~| right.
func NewInternalChoice(left, right Process) *InternalChoice {
	p := &InternalChoice{Left: left, Right: right}
	p.init(p)
	return p
}

// chosen returns the committed side, committing now if undecided.
func (p *InternalChoice) chosen(s *Status) Process {
	if x, have := s.Extended(p); have {
		return x.(Process)
	}
	side := p.Right
	if s.Flip() {
		side = p.Left
	}
	s.SetExtended(p, side)
	return side
}

func (p *InternalChoice) Acceptable(s *Status) Alphabet {
	return p.chosen(s).Acceptable(s)
}

func (p *InternalChoice) step(event string, s *Status) (Process, *Status) {
	side := p.chosen(s)
	s.ClearExtended(p)
	return side.Proceed(event, s)
}

func (p *InternalChoice) baseAlphabet() Alphabet {
	return p.Left.Alphabet().Plus(p.Right.Alphabet())
}

func (p *InternalChoice) initDependencies() {
	p.Left.AddDependant(p)
	p.Right.AddDependant(p)
}

func (p *InternalChoice) String() string {
	return p.Left.String() + " |~| " + p.Right.String()
}
