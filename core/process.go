package core

import (
	"fmt"
)

// Process is a CSP process.
//
// The interface has unexported methods, so the set of implementations
// is closed: one per combinator of the process algebra, plus the
// constant processes STOP, RUN, SKIP, and CHAOS.
//
// A Process is immutable apart from its cached alphabet data, which
// only grows (see Alphabet inference below).  Everything that changes
// during a trace lives in the Status.
type Process interface {
	fmt.Stringer

	// Acceptable returns the set of events the process is
	// currently willing to engage in.  An empty set means
	// deadlock; a set containing Success means the process can
	// terminate successfully.
	Acceptable(s *Status) Alphabet

	// Proceed attempts to engage in the event.  If the event is
	// not in the process's alphabet, the process is returned
	// unchanged: the event is none of its business.  Otherwise
	// the successor process is returned, or nil if the process
	// refuses the event.
	Proceed(event string, s *Status) (Process, *Status)

	// Alphabet returns the process's alphabet, inferring it on
	// first use.
	Alphabet() Alphabet

	// SetAlphabet installs an explicit alphabet and freezes it:
	// inference will not grow it further.
	SetAlphabet(a Alphabet)

	// AddDependant registers a process whose alphabet depends on
	// this one, for fixed-point propagation.
	AddDependant(p Process)

	// AddChannel subscribes the process's alphabet to the
	// channel's alphabet (as assigned to the named enclosing
	// process, if an assignment exists).
	AddChannel(c *Channel, proc string)

	// step is the combinator-specific part of Proceed; it can
	// assume the event is in the alphabet.
	step(event string, s *Status) (Process, *Status)

	// baseAlphabet computes the initial alphabet, typically the
	// union of the children's alphabets plus any literal events
	// the combinator introduces.
	baseAlphabet() Alphabet

	// initDependencies registers this process on its children's
	// dependant lists and installs channel links.
	initDependencies()

	// mapAlphabet is the hook a renaming applies to every
	// alphabet flowing into the node.  Identity for everything
	// else.
	mapAlphabet(a Alphabet) Alphabet

	base() *node
}

// AcceptsSuccess reports whether the process accepts Success, i.e.
// whether it is SKIP-equivalent at this point.
func AcceptsSuccess(p Process, s *Status) bool {
	return p.Acceptable(s).Contains(Success)
}

type channelLink struct {
	channel *Channel
	proc    string
}

// node carries the cached metadata common to all processes.  The
// fields are monotone, so sharing a node between parents is safe.
type node struct {
	self       Process
	alphabet   Alphabet
	fixed      bool
	alphaInit  bool
	depsInit   bool
	dependants []Process
	channels   []channelLink
}

// init installs the back-reference used for dispatch from the shared
// machinery into the combinator-specific methods.
func (n *node) init(self Process) {
	n.self = self
}

func (n *node) base() *node {
	return n
}

// Alphabet computes the alphabet on first use.
//
// The initialized flag is set before the computation: the graph may
// be cyclic, and a cycle that reaches back here must see the
// (possibly still empty) cached alphabet rather than recurse.  The
// propagation pass then grows it to the fixed point.
func (n *node) Alphabet() Alphabet {
	if !n.depsInit {
		n.depsInit = true
		n.self.initDependencies()
	}
	if !n.alphaInit {
		n.alphaInit = true
		a := n.self.baseAlphabet().Minus(NewAlphabet(Success))
		for _, link := range n.channels {
			a = a.Plus(link.channel.AlphabetFor(link.proc))
		}
		n.Propagate(a)
	}
	return n.alphabet
}

// SetAlphabet is called by the parser before forward references have
// been resolved, so it must not look at children.
func (n *node) SetAlphabet(a Alphabet) {
	n.alphabet = a
	n.fixed = true
	n.alphaInit = true
}

// Propagate unions the alphabet into the cache.  If the cache grows,
// the new alphabet is forwarded to all dependants.  A process whose
// alphabet was set explicitly never changes.
func (n *node) Propagate(a Alphabet) {
	if n.fixed {
		return
	}
	mapped := n.self.mapAlphabet(a)
	if mapped.SubsetOf(n.alphabet) {
		return
	}
	n.alphabet = n.alphabet.Plus(mapped)
	for _, d := range n.dependants {
		d.base().Propagate(n.alphabet)
	}
}

func (n *node) AddDependant(p Process) {
	n.dependants = append(n.dependants, p)
}

func (n *node) AddChannel(c *Channel, proc string) {
	n.channels = append(n.channels, channelLink{channel: c, proc: proc})
}

// Proceed gates on the alphabet and then hands off to the
// combinator.  Success is always handed off: it is deliberately kept
// out of every alphabet.
func (n *node) Proceed(event string, s *Status) (Process, *Status) {
	if event != Success && !n.Alphabet().Contains(event) {
		return n.self, s
	}
	return n.self.step(event, s)
}

// Default hooks.  Combinators override the ones they need.

func (n *node) initDependencies() {}

func (n *node) mapAlphabet(a Alphabet) Alphabet {
	return a
}
