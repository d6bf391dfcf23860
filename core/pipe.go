package core

// Pipe is P >> Q: P's "right" channel is spliced onto Q's "left"
// channel, and the traffic between them is hidden.
//
// The operator carries no stepping logic of its own.  On first use
// it reduces itself to the equivalent composition: mint a fresh
// internal channel M, rename right→M in P and left→M in Q, conceal
// everything in each side that is neither its outer channel nor M,
// run the two in parallel, and finally conceal all of M's events.
type Pipe struct {
	node
	Left  Process
	Right Process

	symtab *SymTable
	pipe   Process // the reduction, built lazily
}

// NewPipe makes the process left >> right.  The symbol table mints
// the internal channel name.
func NewPipe(left, right Process, symtab *SymTable) *Pipe {
	p := &Pipe{Left: left, Right: right, symtab: symtab}
	p.init(p)
	return p
}

// concealExcept hides every event of p that is on neither of the two
// named channels.
func concealExcept(p Process, keep1, keep2 string) Process {
	conceal := ExcludePrefix(ExcludePrefix(p.Alphabet(), keep1), keep2)
	if conceal.IsEmpty() {
		return p
	}
	return NewConcealed(p, conceal)
}

func (p *Pipe) reduction() Process {
	if p.pipe == nil {
		mid := p.symtab.UniqueSymbol()
		producer := concealExcept(
			NewMapped(p.Left, MapChannel{From: "right", To: mid}),
			"left", mid)
		consumer := concealExcept(
			NewMapped(p.Right, MapChannel{From: "left", To: mid}),
			mid, "right")
		pair := NewParallel(producer, consumer)
		hidden := SelectPrefix(pair.Alphabet(), mid)
		if hidden.IsEmpty() {
			p.pipe = pair
		} else {
			p.pipe = NewConcealed(pair, hidden)
		}
	}
	return p.pipe
}

func (p *Pipe) Acceptable(s *Status) Alphabet {
	return p.reduction().Acceptable(s)
}

func (p *Pipe) step(event string, s *Status) (Process, *Status) {
	return p.reduction().Proceed(event, s)
}

func (p *Pipe) baseAlphabet() Alphabet {
	return SelectPrefix(p.Left.Alphabet(), "left").
		Plus(SelectPrefix(p.Right.Alphabet(), "right"))
}

func (p *Pipe) String() string {
	return p.Left.String() + " >> " + p.Right.String()
}
