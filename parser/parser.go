package parser

import (
	"errors"
	"io"
	"strconv"

	"github.com/Comcast/csp/core"
)

// Parser builds the process graph for a script.
type Parser struct {
	scanner *Scanner
	diags   *Diagnostics
	symtab  *core.SymTable

	cur  Token
	peek Token

	// current is the name of the process definition being parsed,
	// used to attach per-process channel alphabets.
	current string

	root core.Process
}

// Parse parses a script.  It returns the root process (the first
// process defined) and the symbol table.  Diagnostics go to out; a
// non-nil error means at least one was reported.
func Parse(name, src string, out io.Writer) (core.Process, *core.SymTable, error) {
	diags := NewDiagnostics(src, out)
	p := &Parser{
		scanner: NewScanner(name, src, diags),
		diags:   diags,
		symtab:  core.NewSymTable(),
	}
	p.cur = p.scanner.Next()
	p.peek = p.scanner.Next()

	p.symtab.Open()
	p.script()
	for _, ref := range p.symtab.Close() {
		diags.Errorf(ref.Loc, "unable to resolve %s", ref.Name)
	}

	if p.root == nil && diags.Count() == 0 {
		diags.Errorf(core.Location{File: name, Line: 1, Col: 1},
			"no process defined")
	}
	if 0 < diags.Count() {
		return nil, nil, errors.New("errors in " + name)
	}
	return p.root, p.symtab, nil
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.scanner.Next()
}

// expect consumes a token of the wanted type, complaining otherwise.
func (p *Parser) expect(t TokenType) Token {
	if p.cur.Type == t {
		tok := p.cur
		p.next()
		return tok
	}
	p.errorf("expected %s, found %s", t, p.cur)
	return p.cur
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.diags.ErrorfAt(p.cur.Begin, p.cur.End, format, args...)
}

// script is a sequence of equations.  An equation may carry an
// optional trailing period.
func (p *Parser) script() {
	for p.cur.Type != EOF {
		switch {
		case p.cur.Type == EVENT && p.cur.Literal == "channel":
			p.channelDecl()
		case p.cur.Type == ALPHA:
			p.alphaDecl()
		case p.cur.Type == PROCESS && (p.peek.Type == EQUAL || p.peek.Type == LPAREN):
			p.definition()
		case p.cur.Type == EVENT && p.peek.Type == EQUAL:
			p.changerDef()
		default:
			p.errorf("expected an equation, found %s", p.cur)
			p.recover()
			continue
		}
		if p.cur.Type == PERIOD {
			p.next()
		}
	}
}

// recover skips ahead to something that looks like the start of the
// next equation.
func (p *Parser) recover() {
	for p.cur.Type != EOF {
		p.next()
		switch {
		case p.cur.Type == ALPHA:
			return
		case p.cur.Type == PROCESS && (p.peek.Type == EQUAL || p.peek.Type == LPAREN):
			return
		case p.cur.Type == EVENT && (p.cur.Literal == "channel" || p.peek.Type == EQUAL):
			return
		}
	}
}

// channelDecl is
//
//	channel c : {m1, m2, ...}
//	channel c : integer
//	channel c alpha P : {...}
func (p *Parser) channelDecl() {
	p.next() // "channel"
	name := p.expect(EVENT)
	c := p.symtab.LookupChannel(name.Literal)

	proc := ""
	if p.cur.Type == ALPHA {
		p.next()
		proc = p.expect(PROCESS).Literal
	}
	p.expect(COLON)
	set := p.alphabetSet()

	if proc != "" {
		if !c.SetProcessAlphabet(proc, set) {
			p.diags.ErrorfAt(name.Begin, name.End,
				"alphabet of channel %s for %s is already set", name.Literal, proc)
		}
		return
	}
	if !c.SetAlphabet(set) {
		p.diags.ErrorfAt(name.Begin, name.End,
			"alphabet of channel %s is already set", name.Literal)
	}
}

// alphaDecl is
//
//	alpha P = {e1, e2, ...}
func (p *Parser) alphaDecl() {
	p.next() // alpha
	name := p.expect(PROCESS)
	p.expect(EQUAL)
	setTok := p.cur
	set := p.alphabetSet()
	if set.Kind() != core.Regular {
		p.diags.ErrorfAt(setTok.Begin, setTok.End,
			"cannot assign an alphabet of non-regular kind to %s", name.Literal)
		return
	}

	apply := func() bool {
		def, have := p.symtab.LookupProcess(name.Literal)
		if !have {
			return false
		}
		def.SetAlphabet(set)
		return true
	}
	if !apply() {
		p.symtab.AddPending(name.Literal, name.Begin, apply)
	}
}

// changerDef is a symbol-change function:
//
//	f = {a -> b, c -> d}
func (p *Parser) changerDef() {
	name := p.expect(EVENT)
	p.expect(EQUAL)
	p.expect(LBRACE)

	f := core.NewFuncChanger(name.Literal)
	for p.cur.Type != RBRACE && p.cur.Type != EOF {
		from := p.expect(EVENT)
		p.expect(ARROW)
		to := p.expect(EVENT)
		f.AddPair(from.Literal, to.Literal)
		if p.cur.Type != COMMA {
			break
		}
		p.next()
	}
	p.expect(RBRACE)

	if !p.symtab.Insert(name.Literal, f) {
		p.diags.ErrorfAt(name.Begin, name.End, "%s is already defined", name.Literal)
	}
}

// definition is
//
//	P = body
//	P(x, y) = body
func (p *Parser) definition() {
	name := p.expect(PROCESS)

	var params []string
	if p.cur.Type == LPAREN {
		p.next()
		for p.cur.Type != RPAREN && p.cur.Type != EOF {
			params = append(params, p.expect(EVENT).Literal)
			if p.cur.Type != COMMA {
				break
			}
			p.next()
		}
		p.expect(RPAREN)
	}
	p.expect(EQUAL)

	def := core.NewDefinition(name.Literal, params, nil)
	if !p.symtab.Insert(name.Literal, def) {
		p.diags.ErrorfAt(name.Begin, name.End, "%s is already defined", name.Literal)
	}

	outer := p.current
	p.current = name.Literal
	body := p.process()
	p.current = outer

	if body == nil {
		body = core.NewStop(core.NewAlphabet())
	}
	def.SetBody(body)

	if p.root == nil {
		p.root = def
	}
}

// process parses with the loosest binding: sequential composition.
func (p *Parser) process() core.Process {
	proc := p.binary()
	for p.cur.Type == SEMICOLON {
		p.next()
		proc = core.NewSequence(proc, p.binary())
	}
	return proc
}

// binary parses the binary process operators, all left-associative
// and of equal precedence.
func (p *Parser) binary() core.Process {
	proc := p.conceal()
	for {
		switch p.cur.Type {
		case PARALLEL:
			p.next()
			proc = core.NewParallel(proc, p.conceal())
		case INTERLEAVES:
			p.next()
			proc = core.NewInterleaving(proc, p.conceal())
		case EXTCHOICE:
			p.next()
			proc = core.NewExternalChoice(proc, p.conceal())
		case INTCHOICE:
			p.next()
			proc = core.NewInternalChoice(proc, p.conceal())
		case PIPE:
			p.next()
			proc = core.NewPipe(proc, p.conceal(), p.symtab)
		case SUBORD:
			p.next()
			proc = core.NewSubordination(proc, p.conceal())
		default:
			return proc
		}
	}
}

// conceal parses P \ {a, b}.
func (p *Parser) conceal() core.Process {
	proc := p.selection()
	for p.cur.Type == CONCEAL {
		p.next()
		setTok := p.cur
		set := p.alphabetSet()
		if set.IsEmpty() {
			p.diags.ErrorfAt(setTok.Begin, setTok.End, "concealing nothing")
			continue
		}
		proc = core.NewConcealed(proc, set)
	}
	return proc
}

// selection parses P1 | P2 | ... | Pn.
func (p *Parser) selection() core.Process {
	branches := []core.Process{p.prefix()}
	for p.cur.Type == OR {
		p.next()
		branches = append(branches, p.prefix())
	}
	if len(branches) == 1 {
		return branches[0]
	}
	return core.NewSelection(branches...)
}

// prefix parses the prefix forms
//
//	e -> P
//	c?x -> P
//	c!expr -> P
//	l:P      (qualifier)
//	f(P)     (symbol-change application)
//
// and falls through to primary for everything else.
func (p *Parser) prefix() core.Process {
	if p.cur.Type != EVENT {
		return p.primary()
	}
	name := p.cur
	switch p.peek.Type {
	case ARROW:
		p.next()
		p.next()
		return core.NewPrefixed(name.Literal, p.prefix())
	case QUESTION:
		p.next()
		p.next()
		variable := p.expect(EVENT)
		p.expect(ARROW)
		c := p.symtab.LookupChannel(name.Literal)
		return core.NewReading(c, variable.Literal, p.prefix(), p.current)
	case EXCLAIM:
		p.next()
		p.next()
		expr := p.expression()
		p.expect(ARROW)
		c := p.symtab.LookupChannel(name.Literal)
		if lit, is := expr.(*core.IntegerLiteral); is {
			c.AddSymbol(lit.String())
		}
		return core.NewWriting(c, expr, p.prefix(), p.current)
	case COLON:
		p.next()
		p.next()
		return core.NewMapped(p.prefix(), core.Qualifier{Label: name.Literal})
	case LPAREN:
		def, have := p.symtab.Lookup(name.Literal)
		f, is := def.(core.SymbolChanger)
		if !have || !is {
			p.errorf("%s is not a symbol-change function", name.Literal)
			f = core.Identity{}
		}
		p.next()
		p.next()
		inner := p.process()
		p.expect(RPAREN)
		return core.NewMapped(inner, f)
	}
	p.errorf("event %s is not followed by ->", name.Literal)
	p.next()
	return core.NewStop(core.NewAlphabet())
}

// primary parses parenthesised processes, the constants, process
// references, and mu recursion.
func (p *Parser) primary() core.Process {
	switch p.cur.Type {
	case LPAREN:
		p.next()
		proc := p.process()
		p.expect(RPAREN)
		return proc
	case STOP:
		p.next()
		a, from := p.constantAlphabet()
		if from != nil {
			return core.NewStopFrom(from)
		}
		return core.NewStop(a)
	case RUN:
		p.next()
		a, from := p.constantAlphabet()
		if from != nil {
			return core.NewRunFrom(from)
		}
		return core.NewRun(a)
	case SKIP:
		p.next()
		a, from := p.constantAlphabet()
		if from != nil {
			return core.NewSkipFrom(from)
		}
		return core.NewSkip(a)
	case CHAOS:
		p.next()
		a, from := p.constantAlphabet()
		if from != nil {
			return core.NewChaosFrom(from)
		}
		return core.NewChaos(a)
	case PROCESS:
		return p.reference()
	case MU:
		return p.recursion()
	}
	p.errorf("expected a process, found %s", p.cur)
	p.next()
	return core.NewStop(core.NewAlphabet())
}

// reference parses N or N(e1, ..., ek).
func (p *Parser) reference() core.Process {
	name := p.expect(PROCESS)

	var args []string
	if p.cur.Type == LPAREN {
		p.next()
		for p.cur.Type != RPAREN && p.cur.Type != EOF {
			switch p.cur.Type {
			case EVENT, INTEGER, STRING:
				args = append(args, p.cur.Literal)
				p.next()
			default:
				p.errorf("expected an actual parameter, found %s", p.cur)
				p.next()
			}
			if p.cur.Type != COMMA {
				break
			}
			p.next()
		}
		p.expect(RPAREN)
	}

	ref := core.NewProcessReference(name.Literal, args, name.Begin, p.symtab, p.diags)
	ref.Register()
	return ref
}

// recursion parses mu N . P and mu N : {a, b} . P, with N in scope
// only inside P.
func (p *Parser) recursion() core.Process {
	p.expect(MU)
	name := p.expect(PROCESS)

	rec := core.NewRecursive(name.Literal)
	if p.cur.Type == COLON {
		p.next()
		setTok := p.cur
		set := p.alphabetSet()
		if set.Kind() != core.Regular {
			p.diags.ErrorfAt(setTok.Begin, setTok.End,
				"cannot assign an alphabet of non-regular kind to %s", name.Literal)
		} else {
			rec.SetAlphabet(set)
		}
	}
	p.expect(PERIOD)

	p.symtab.Open()
	if !p.symtab.Insert(name.Literal, rec) {
		p.diags.ErrorfAt(name.Begin, name.End, "%s is already defined", name.Literal)
	}
	body := p.process()
	for _, ref := range p.symtab.Close() {
		p.diags.Errorf(ref.Loc, "unable to resolve %s", ref.Name)
	}
	if body == nil {
		body = core.NewStop(core.NewAlphabet())
	}
	rec.SetBody(body)
	return rec
}

// constantAlphabet parses the alphabet of a constant process: an
// explicit set, a wildcard kind, or the name of a process to borrow
// the alphabet from.
func (p *Parser) constantAlphabet() (core.Alphabet, core.Process) {
	switch p.cur.Type {
	case LBRACE, INTEGERKW, STRINGKW:
		return p.alphabetSet(), nil
	case PROCESS:
		if p.peek.Type == EQUAL || p.peek.Type == LPAREN {
			// That's the start of the next equation.
			break
		}
		return core.Alphabet{}, p.reference()
	}
	p.errorf("expected an alphabet, found %s", p.cur)
	return core.NewAlphabet(), nil
}

// alphabetSet parses {m1, m2, ...}, "integer", or "string".
func (p *Parser) alphabetSet() core.Alphabet {
	switch p.cur.Type {
	case INTEGERKW:
		p.next()
		return core.NewWildAlphabet(core.Integer)
	case STRINGKW:
		p.next()
		return core.NewWildAlphabet(core.String)
	}

	set := core.NewAlphabet()
	p.expect(LBRACE)
	for p.cur.Type != RBRACE && p.cur.Type != EOF {
		switch p.cur.Type {
		case EVENT, INTEGER, STRING:
			set.Add(p.cur.Literal)
			p.next()
		default:
			p.errorf("expected an event, found %s", p.cur)
			p.next()
		}
		if p.cur.Type != COMMA {
			break
		}
		p.next()
	}
	p.expect(RBRACE)
	return set
}

// expression parses the arithmetic allowed after '!': + and - over
// * , div, and mod.
func (p *Parser) expression() core.Expression {
	e := p.mulExpression()
	for p.cur.Type == PLUS || p.cur.Type == MINUS {
		op := p.cur
		p.next()
		right := p.mulExpression()
		switch op.Type {
		case PLUS:
			e = &core.Binary{Left: e, Right: right, Op: "+", F: core.Add}
		case MINUS:
			e = &core.Binary{Left: e, Right: right, Op: "-", F: core.Sub}
		}
	}
	return e
}

func (p *Parser) mulExpression() core.Expression {
	e := p.term()
	for p.cur.Type == STAR || p.cur.Type == DIV || p.cur.Type == MOD {
		op := p.cur
		p.next()
		right := p.term()
		switch op.Type {
		case STAR:
			e = &core.Binary{Left: e, Right: right, Op: "*", F: core.Mul}
		case DIV:
			e = &core.Binary{Left: e, Right: right, Op: "div", F: core.Div}
		case MOD:
			e = &core.Binary{Left: e, Right: right, Op: "mod", F: core.Mod}
		}
	}
	return e
}

func (p *Parser) term() core.Expression {
	switch p.cur.Type {
	case INTEGER:
		v, err := strconv.ParseUint(p.cur.Literal, 10, 64)
		if err != nil {
			p.errorf("integer %s out of range", p.cur.Literal)
		}
		p.next()
		return &core.IntegerLiteral{Value: v}
	case EVENT:
		e := &core.Variable{Name: p.cur.Literal, Loc: p.cur.Begin, Rep: p.diags}
		p.next()
		return e
	case LPAREN:
		p.next()
		e := p.expression()
		p.expect(RPAREN)
		return e
	}
	p.errorf("expected an expression, found %s", p.cur)
	p.next()
	return &core.IntegerLiteral{Value: 0}
}
