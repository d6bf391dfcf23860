package core

import (
	"math/rand"
)

// Status is the runtime state threaded through every Acceptable()
// and Proceed() call.
//
// A Status carries three things: a lexically nested map from names to
// values (variable bindings made by channel input and parameter
// bindings made by process references), a pseudo-random generator
// shared by the whole trace, and per-node scratch memory for the
// operators that need to remember a decision between an Acceptable()
// call and the Proceed() that consumes it.
//
// Child statuses share the generator with their parent, so a single
// seed determines an entire trace.  Bindings are never modified in
// place: binding a variable always happens in a fresh child, so a
// branch that is abandoned leaves no traces in its siblings.
type Status struct {
	parent *Status
	vals   map[string]string
	rand   *rand.Rand
	ext    map[Process]interface{}
}

// NewStatus makes a root Status whose generator is seeded as given.
func NewStatus(seed int64) *Status {
	return &Status{
		rand: rand.New(rand.NewSource(seed)),
	}
}

// Child makes a nested Status.  Lookups fall through to the parent;
// the generator is shared.
func (s *Status) Child() *Status {
	return &Status{
		parent: s,
		rand:   s.rand,
	}
}

// Bind sets a value in this Status (not in any parent).
func (s *Status) Bind(name, value string) {
	if s.vals == nil {
		s.vals = make(map[string]string, 4)
	}
	s.vals[name] = value
}

// Lookup finds the innermost binding for the name.
func (s *Status) Lookup(name string) (string, bool) {
	for at := s; at != nil; at = at.parent {
		if v, have := at.vals[name]; have {
			return v, true
		}
	}
	return "", false
}

// Flip returns a fair coin flip from the shared generator.
func (s *Status) Flip() bool {
	return s.rand.Intn(2) == 0
}

// Draw returns a uniform draw from [0, n).
func (s *Status) Draw(n int) int {
	return s.rand.Intn(n)
}

// Extended returns the scratch value this Status holds for the node,
// if any.
//
// Scratch is keyed by node identity: the same node referenced from
// two places in a composition gets two independent scratch values
// because the sub-statuses holding them are independent.
func (s *Status) Extended(p Process) (interface{}, bool) {
	for at := s; at != nil; at = at.parent {
		if x, have := at.ext[p]; have {
			return x, true
		}
	}
	return nil, false
}

// SetExtended installs scratch for the node.
func (s *Status) SetExtended(p Process, x interface{}) {
	if s.ext == nil {
		s.ext = make(map[Process]interface{}, 2)
	}
	s.ext[p] = x
}

// ClearExtended drops the node's scratch wherever it is held.
func (s *Status) ClearExtended(p Process) {
	for at := s; at != nil; at = at.parent {
		delete(at.ext, p)
	}
}
