package core

import (
	"strings"
)

// ProcessDefinition is a named, reusable process: N = P or
// N(p1, ..., pk) = P.  It behaves exactly like its body; the name
// survives for printing and for references.
type ProcessDefinition struct {
	node
	Name   string
	Params []string
	Body   Process
}

// NewDefinition makes the definition name(params...) = body.  The
// body may be installed later with SetBody for recursive forms.
func NewDefinition(name string, params []string, body Process) *ProcessDefinition {
	p := &ProcessDefinition{Name: name, Params: params, Body: body}
	p.init(p)
	return p
}

// SetBody installs the right-hand side.  Must be called exactly once
// if the definition was created without a body.
func (p *ProcessDefinition) SetBody(body Process) {
	if p.Body != nil {
		panic("definition " + p.Name + " already has a body")
	}
	p.Body = body
}

func (p *ProcessDefinition) Acceptable(s *Status) Alphabet {
	return p.Body.Acceptable(s)
}

func (p *ProcessDefinition) step(event string, s *Status) (Process, *Status) {
	return p.Body.Proceed(event, s)
}

func (p *ProcessDefinition) baseAlphabet() Alphabet {
	return p.Body.Alphabet()
}

func (p *ProcessDefinition) initDependencies() {
	p.Body.AddDependant(p)
}

func (p *ProcessDefinition) String() string {
	if len(p.Params) == 0 {
		return p.Name
	}
	return p.Name + "(" + strings.Join(p.Params, ", ") + ")"
}

// RecursiveProcess is mu N . P: a process defined in terms of
// itself, with N in scope only inside P.  Runtime behaviour is
// identical to a named definition.
//
// The alphabet may be given explicitly (mu N : {a, b} . P) or
// borrowed from another process.
type RecursiveProcess struct {
	node
	Name      string
	Body      Process
	alphaFrom Process
}

// NewRecursive makes the recursion head; the body follows via
// SetBody once it has been parsed (it refers back to the head).
func NewRecursive(name string) *RecursiveProcess {
	p := &RecursiveProcess{Name: name}
	p.init(p)
	return p
}

// NewRecursiveFrom is NewRecursive with the alphabet borrowed from
// another process.
func NewRecursiveFrom(name string, alphaFrom Process) *RecursiveProcess {
	p := &RecursiveProcess{Name: name, alphaFrom: alphaFrom}
	p.init(p)
	return p
}

// SetBody installs the recursion body.
func (p *RecursiveProcess) SetBody(body Process) {
	if p.Body != nil {
		panic("recursion " + p.Name + " already has a body")
	}
	p.Body = body
}

func (p *RecursiveProcess) Acceptable(s *Status) Alphabet {
	return p.Body.Acceptable(s)
}

func (p *RecursiveProcess) step(event string, s *Status) (Process, *Status) {
	return p.Body.Proceed(event, s)
}

func (p *RecursiveProcess) baseAlphabet() Alphabet {
	if p.alphaFrom != nil {
		return p.alphaFrom.Alphabet()
	}
	return p.Body.Alphabet()
}

func (p *RecursiveProcess) initDependencies() {
	if p.alphaFrom != nil {
		p.alphaFrom.AddDependant(p)
	} else {
		p.Body.AddDependant(p)
	}
}

func (p *RecursiveProcess) String() string {
	return "mu " + p.Name
}

// ProcessReference is a use of a name: N, or N(e1, ..., ek) for a
// parameterised definition.  The name is resolved lazily; uses that
// precede the definition are queued in the symbol table and retried
// when the enclosing scope closes.
type ProcessReference struct {
	node
	Name string
	Args []string
	Loc  Location

	symtab *SymTable
	Rep    Reporter

	target Process
	params []string
}

// NewProcessReference makes a reference to the named process.
func NewProcessReference(name string, args []string, loc Location, symtab *SymTable, rep Reporter) *ProcessReference {
	p := &ProcessReference{Name: name, Args: args, Loc: loc, symtab: symtab, Rep: rep}
	p.init(p)
	return p
}

// Register queues the reference for deferred resolution if the name
// is not known yet.
func (p *ProcessReference) Register() {
	if !p.resolve() {
		p.symtab.AddPending(p.Name, p.Loc, p.resolve)
	}
}

func (p *ProcessReference) resolve() bool {
	if p.target != nil {
		return true
	}
	def, have := p.symtab.Lookup(p.Name)
	if !have {
		return false
	}
	switch d := def.(type) {
	case *ProcessDefinition:
		p.target = d
		p.params = d.Params
	case *RecursiveProcess:
		p.target = d
	default:
		return false
	}
	if len(p.params) != len(p.Args) {
		if p.Rep != nil {
			p.Rep.Errorf(p.Loc, "%s expects %d parameter(s), got %d",
				p.Name, len(p.params), len(p.Args))
		}
	}
	return true
}

// callStatus binds the formal parameters to the actuals in a fresh
// child status.  An actual that is itself bound in the caller's
// status is dereferenced first.
func (p *ProcessReference) callStatus(s *Status) *Status {
	if len(p.params) == 0 {
		return s
	}
	st := s.Child()
	for i, formal := range p.params {
		if len(p.Args) <= i {
			break
		}
		actual := p.Args[i]
		if v, have := s.Lookup(actual); have {
			actual = v
		}
		st.Bind(formal, actual)
	}
	return st
}

func (p *ProcessReference) Acceptable(s *Status) Alphabet {
	if !p.resolve() {
		return NewAlphabet()
	}
	return p.target.Acceptable(p.callStatus(s))
}

func (p *ProcessReference) step(event string, s *Status) (Process, *Status) {
	if !p.resolve() {
		return nil, s
	}
	return p.target.Proceed(event, p.callStatus(s))
}

func (p *ProcessReference) baseAlphabet() Alphabet {
	if !p.resolve() {
		return NewAlphabet()
	}
	return p.target.Alphabet()
}

func (p *ProcessReference) initDependencies() {
	if !p.resolve() {
		return
	}
	p.target.AddDependant(p)
}

// Target returns the definition the reference resolved to, if any.
func (p *ProcessReference) Target() Process {
	if !p.resolve() {
		return nil
	}
	return p.target
}

func (p *ProcessReference) String() string {
	if len(p.Args) == 0 {
		return p.Name
	}
	return p.Name + "(" + strings.Join(p.Args, ", ") + ")"
}
