package core

// These errors are user errors, not internal errors.

import (
	"fmt"
)

// Location is a position in a source script.
type Location struct {
	File string
	Line int
	Col  int
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
}

// Reporter receives located runtime diagnostics.  The parser's
// diagnostics engine implements it; tests usually use a small fake.
type Reporter interface {
	Errorf(loc Location, format string, args ...interface{})
}

// Refusal occurs when a process rejects an event that is in its
// alphabet.
type Refusal struct {
	Event string
}

func (e *Refusal) Error() string {
	return "cannot accept " + e.Event
}
