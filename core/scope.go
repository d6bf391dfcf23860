package core

import (
	"strconv"
)

// Scope maps names to definitions: process definitions, channels,
// symbol-change functions.  Scopes nest; lookups walk outwards.
type Scope struct {
	outer *Scope
	defs  map[string]interface{}
}

// NewScope makes a scope nested in outer (which may be nil).
func NewScope(outer *Scope) *Scope {
	return &Scope{
		outer: outer,
		defs:  make(map[string]interface{}, 8),
	}
}

// Insert binds the name in this scope.  Reports false if the name is
// already bound here.
func (sc *Scope) Insert(name string, def interface{}) bool {
	if _, have := sc.defs[name]; have {
		return false
	}
	sc.defs[name] = def
	return true
}

// Lookup finds the innermost definition of the name.
func (sc *Scope) Lookup(name string) (interface{}, bool) {
	for at := sc; at != nil; at = at.outer {
		if def, have := at.defs[name]; have {
			return def, true
		}
	}
	return nil, false
}

// Outer returns the enclosing scope.
func (sc *Scope) Outer() *Scope {
	return sc.outer
}

// PendingRef is a name that was referenced before it was defined.
// Resolve retries the lookup and patches the referencing node; it
// reports whether it succeeded.
type PendingRef struct {
	Name    string
	Loc     Location
	Resolve func() bool
}

// SymTable is the symbol table: a spaghetti stack of scopes plus the
// list of references that are still waiting for their definitions.
type SymTable struct {
	scope   *Scope
	global  *Scope
	pending []*PendingRef
	uniq    int
}

// NewSymTable makes an empty symbol table.  Open() must be called
// before anything is inserted.
func NewSymTable() *SymTable {
	return &SymTable{}
}

// Open pushes a scope.
func (t *SymTable) Open() {
	inner := NewScope(t.scope)
	if t.scope == nil {
		t.global = inner
	}
	t.scope = inner
}

// Close pops the current scope.  Pending references are retried on
// every close, which is what makes mutual recursion work.  The
// references that are still unresolved after the outermost scope
// closes are returned; the caller turns them into diagnostics.
func (t *SymTable) Close() []*PendingRef {
	var survivors []*PendingRef
	for _, ref := range t.pending {
		if !ref.Resolve() {
			survivors = append(survivors, ref)
		}
	}
	t.pending = survivors
	t.scope = t.scope.Outer()
	if t.scope == nil {
		unresolved := t.pending
		t.pending = nil
		return unresolved
	}
	return nil
}

// Insert binds the name in the current scope.
func (t *SymTable) Insert(name string, def interface{}) bool {
	return t.scope.Insert(name, def)
}

// InsertGlobal binds the name in the outermost scope.
func (t *SymTable) InsertGlobal(name string, def interface{}) bool {
	return t.global.Insert(name, def)
}

// Lookup finds the innermost definition of the name.
func (t *SymTable) Lookup(name string) (interface{}, bool) {
	at := t.scope
	if at == nil {
		at = t.global
	}
	if at == nil {
		return nil, false
	}
	return at.Lookup(name)
}

// LookupProcess finds a process definition.
func (t *SymTable) LookupProcess(name string) (*ProcessDefinition, bool) {
	def, have := t.Lookup(name)
	if !have {
		return nil, false
	}
	p, is := def.(*ProcessDefinition)
	return p, is
}

// LookupChannel finds a channel, creating it on first use if it was
// never declared.
func (t *SymTable) LookupChannel(name string) *Channel {
	if def, have := t.Lookup(name); have {
		if c, is := def.(*Channel); is {
			return c
		}
	}
	c := NewChannel(name)
	t.InsertGlobal(name, c)
	return c
}

// AddPending queues a reference for retry on scope close.
func (t *SymTable) AddPending(name string, loc Location, resolve func() bool) {
	t.pending = append(t.pending, &PendingRef{Name: name, Loc: loc, Resolve: resolve})
}

// UniqueSymbol mints a synthetic name that cannot collide with
// anything a script can write: "$0", "$1", ...
func (t *SymTable) UniqueSymbol() string {
	name := "$" + strconv.Itoa(t.uniq)
	t.uniq++
	return name
}
