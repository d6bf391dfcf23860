package core

// Subordination is P // Q: the subordinate P serves Q, and all the
// traffic between them is hidden.  Only the events that are Q's
// alone remain visible.
//
// Like Pipe, the operator reduces itself on first use, here to
// (P || Q) \ (α(P) ∩ α(Q)).
type Subordination struct {
	node
	Sub  Process // P
	Main Process // Q
	pq   Process // the reduction, built lazily
}

// NewSubordination makes the process sub // main.
func NewSubordination(sub, main Process) *Subordination {
	p := &Subordination{Sub: sub, Main: main}
	p.init(p)
	return p
}

func (p *Subordination) reduction() Process {
	if p.pq == nil {
		pair := NewParallel(p.Sub, p.Main)
		conceal := p.Sub.Alphabet().Times(p.Main.Alphabet())
		if conceal.IsEmpty() {
			p.pq = pair
		} else {
			p.pq = NewConcealed(pair, conceal)
		}
	}
	return p.pq
}

func (p *Subordination) Acceptable(s *Status) Alphabet {
	return p.reduction().Acceptable(s)
}

func (p *Subordination) step(event string, s *Status) (Process, *Status) {
	return p.reduction().Proceed(event, s)
}

func (p *Subordination) baseAlphabet() Alphabet {
	return p.Main.Alphabet().Minus(p.Sub.Alphabet())
}

func (p *Subordination) initDependencies() {
	// The master shares all of the subordinate's events, so its
	// alphabet must cover them: α(Main) ⊇ α(Sub).  Only then is
	// α(Main) − α(Sub) the master's own events.
	p.Sub.AddDependant(p.Main)
}

func (p *Subordination) String() string {
	return p.Sub.String() + " // " + p.Main.String()
}
