package core

// ParallelProcesses is P || Q: lock-step synchronisation on the
// shared alphabet.
//
// Events in both alphabets require both sides to engage; events in
// only one alphabet are that side's own business.  Each side runs
// under its own sub-status so that, say, a variable bound by channel
// input on the left is invisible on the right.
type ParallelProcesses struct {
	node
	Left  Process
	Right Process
}

// NewParallel makes the process left || right.
func NewParallel(left, right Process) *ParallelProcesses {
	p := &ParallelProcesses{Left: left, Right: right}
	p.init(p)
	return p
}

type parallelScratch struct {
	left  *Status
	right *Status
}

// substatus materialises the pair of sub-statuses on first use.
func (p *ParallelProcesses) substatus(s *Status) *parallelScratch {
	if x, have := s.Extended(p); have {
		return x.(*parallelScratch)
	}
	sc := &parallelScratch{left: s.Child(), right: s.Child()}
	s.SetExtended(p, sc)
	return sc
}

func (p *ParallelProcesses) Acceptable(s *Status) Alphabet {
	// An event is acceptable either if both sides accept it, or
	// if it belongs to the alphabet of one side only and that
	// side accepts it.
	sc := p.substatus(s)
	sd := p.Left.Alphabet().Div(p.Right.Alphabet())
	la := p.Left.Acceptable(sc.left)
	ra := p.Right.Acceptable(sc.right)
	return la.Times(ra).Plus(sd.Times(la)).Plus(sd.Times(ra))
}

func (p *ParallelProcesses) step(event string, s *Status) (Process, *Status) {
	sc := p.substatus(s)
	left, ls := p.Left.Proceed(event, sc.left)
	right, rs := p.Right.Proceed(event, sc.right)
	if left == nil || right == nil {
		return nil, s
	}
	successor := NewParallel(left, right)
	s.ClearExtended(p)
	s.SetExtended(successor, &parallelScratch{left: ls, right: rs})
	return successor, s
}

func (p *ParallelProcesses) baseAlphabet() Alphabet {
	return p.Left.Alphabet().Plus(p.Right.Alphabet())
}

func (p *ParallelProcesses) initDependencies() {
	p.Left.AddDependant(p)
	p.Right.AddDependant(p)
}

func (p *ParallelProcesses) String() string {
	return p.Left.String() + " || " + p.Right.String()
}
