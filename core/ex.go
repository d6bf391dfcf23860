package core

// VendingMachine makes an example process that's useful to have
// around:
//
//	VM = coin -> (choc -> VM | toffee -> VM)
//
// See CSP 1.1.2.
func VendingMachine() Process {
	symtab := NewSymTable()
	symtab.Open()

	vm := NewDefinition("VM", nil, nil)
	symtab.Insert("VM", vm)

	ref1 := NewProcessReference("VM", nil, Location{}, symtab, nil)
	ref1.Register()
	ref2 := NewProcessReference("VM", nil, Location{}, symtab, nil)
	ref2.Register()

	vm.SetBody(NewPrefixed("coin", NewSelection(
		NewPrefixed("choc", ref1),
		NewPrefixed("toffee", ref2),
	)))

	symtab.Close()
	return vm
}

// Handshake makes the example
//
//	P = a -> b -> P
//	Q = b -> c -> Q
//	R = P || Q
//
// in which a is P's own, c is Q's own, and b synchronises the two.
func Handshake() Process {
	symtab := NewSymTable()
	symtab.Open()

	p := NewDefinition("P", nil, nil)
	symtab.Insert("P", p)
	q := NewDefinition("Q", nil, nil)
	symtab.Insert("Q", q)

	refP := NewProcessReference("P", nil, Location{}, symtab, nil)
	refP.Register()
	refQ := NewProcessReference("Q", nil, Location{}, symtab, nil)
	refQ.Register()

	p.SetBody(NewPrefixed("a", NewPrefixed("b", refP)))
	q.SetBody(NewPrefixed("b", NewPrefixed("c", refQ)))

	symtab.Close()
	return NewParallel(p, q)
}
