package core

// The constant processes.  Each takes its alphabet either from an
// explicit set or from another process.

// StopProcess is STOP: the deadlocked process.  It accepts nothing.
type StopProcess struct {
	node
	alpha Alphabet
	from  Process
}

// NewStop makes STOP with the given alphabet.
func NewStop(a Alphabet) *StopProcess {
	p := &StopProcess{alpha: a}
	p.init(p)
	return p
}

// NewStopFrom makes STOP with the alphabet of another process.
func NewStopFrom(from Process) *StopProcess {
	p := &StopProcess{from: from}
	p.init(p)
	return p
}

func (p *StopProcess) Acceptable(s *Status) Alphabet {
	return NewAlphabet()
}

func (p *StopProcess) step(event string, s *Status) (Process, *Status) {
	return nil, s
}

func (p *StopProcess) baseAlphabet() Alphabet {
	if p.from != nil {
		return p.from.Alphabet()
	}
	return p.alpha
}

func (p *StopProcess) initDependencies() {
	if p.from != nil {
		p.from.AddDependant(p)
	}
}

func (p *StopProcess) String() string {
	return "STOP " + p.Alphabet().String()
}

// RunProcess is RUN: it accepts every event of its alphabet,
// forever.
type RunProcess struct {
	node
	alpha Alphabet
	from  Process
}

// NewRun makes RUN with the given alphabet.
func NewRun(a Alphabet) *RunProcess {
	p := &RunProcess{alpha: a}
	p.init(p)
	return p
}

// NewRunFrom makes RUN with the alphabet of another process.
func NewRunFrom(from Process) *RunProcess {
	p := &RunProcess{from: from}
	p.init(p)
	return p
}

func (p *RunProcess) Acceptable(s *Status) Alphabet {
	return p.Alphabet()
}

func (p *RunProcess) step(event string, s *Status) (Process, *Status) {
	return p, s
}

func (p *RunProcess) baseAlphabet() Alphabet {
	if p.from != nil {
		return p.from.Alphabet()
	}
	return p.alpha
}

func (p *RunProcess) initDependencies() {
	if p.from != nil {
		p.from.AddDependant(p)
	}
}

func (p *RunProcess) String() string {
	return "RUN " + p.Alphabet().String()
}

// SkipProcess is SKIP: successful termination.  It accepts exactly
// Success and then behaves as STOP.
type SkipProcess struct {
	node
	alpha Alphabet
	from  Process
}

// NewSkip makes SKIP with the given alphabet.
func NewSkip(a Alphabet) *SkipProcess {
	p := &SkipProcess{alpha: a}
	p.init(p)
	return p
}

// NewSkipFrom makes SKIP with the alphabet of another process.
func NewSkipFrom(from Process) *SkipProcess {
	p := &SkipProcess{from: from}
	p.init(p)
	return p
}

func (p *SkipProcess) Acceptable(s *Status) Alphabet {
	return NewAlphabet(Success)
}

func (p *SkipProcess) step(event string, s *Status) (Process, *Status) {
	// Usually never asked: drivers check for Success and stop.
	if event == Success {
		if p.from != nil {
			return NewStopFrom(p.from), s
		}
		return NewStop(p.alpha), s
	}
	return nil, s
}

func (p *SkipProcess) baseAlphabet() Alphabet {
	a := p.alpha
	if p.from != nil {
		a = p.from.Alphabet()
	}
	return a.Plus(NewAlphabet(Success))
}

func (p *SkipProcess) initDependencies() {
	if p.from != nil {
		p.from.AddDependant(p)
	}
}

func (p *SkipProcess) String() string {
	return "SKIP " + p.Alphabet().String()
}

// ChaosProcess is CHAOS: on each interaction it accepts an arbitrary
// subset of its alphabet.  The subset is drawn by flipping the
// trace's generator once per event, held in the Status, and consumed
// by the step that follows.
type ChaosProcess struct {
	node
	alpha Alphabet
	from  Process
}

// NewChaos makes CHAOS with the given alphabet.
func NewChaos(a Alphabet) *ChaosProcess {
	p := &ChaosProcess{alpha: a}
	p.init(p)
	return p
}

// NewChaosFrom makes CHAOS with the alphabet of another process.
func NewChaosFrom(from Process) *ChaosProcess {
	p := &ChaosProcess{from: from}
	p.init(p)
	return p
}

func (p *ChaosProcess) mood(s *Status) Alphabet {
	if x, have := s.Extended(p); have {
		return x.(Alphabet)
	}
	accepting := NewAlphabet()
	for _, event := range p.Alphabet().Events() {
		if s.Flip() {
			accepting.Add(event)
		}
	}
	s.SetExtended(p, accepting)
	return accepting
}

func (p *ChaosProcess) Acceptable(s *Status) Alphabet {
	return p.mood(s)
}

func (p *ChaosProcess) step(event string, s *Status) (Process, *Status) {
	accepting := p.mood(s)
	s.ClearExtended(p)
	if accepting.Contains(event) {
		return p, s
	}
	return nil, s
}

func (p *ChaosProcess) baseAlphabet() Alphabet {
	if p.from != nil {
		return p.from.Alphabet()
	}
	return p.alpha
}

func (p *ChaosProcess) initDependencies() {
	if p.from != nil {
		p.from.AddDependant(p)
	}
}

func (p *ChaosProcess) String() string {
	return "CHAOS " + p.Alphabet().String()
}
