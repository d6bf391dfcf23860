package core

import (
	"context"
	"errors"
)

// Bindings is a map from names to values, the environment that guard
// code in session scripts runs against.
//
// Distinct from the Status bindings inside a trace: these carry
// whatever the session runner wants to expose (the last event, the
// acceptable set, counters), and guard code may compute new ones.
type Bindings map[string]interface{}

// NewBindings makes empty Bindings.
func NewBindings() Bindings {
	return make(Bindings, 8)
}

// Copy makes a shallow copy.
func (bs Bindings) Copy() Bindings {
	acc := make(Bindings, len(bs))
	for p, v := range bs {
		acc[p] = v
	}
	return acc
}

// Extend adds the property; modifies and returns the Bindings.
func (bs Bindings) Extend(p string, v interface{}) Bindings {
	bs[p] = v
	return bs
}

// InterpreterNotFound occurs when you try to compile guard code and
// the required interpreter isn't in the given map of interpreters.
var InterpreterNotFound = errors.New("interpreter not found")

// Interpreter can optionally compile and execute guard code.
type Interpreter interface {
	// Compile can make something that helps when Exec()ing the
	// code later.
	Compile(ctx context.Context, code string) (interface{}, error)

	// Exec executes the code against the bindings.  The result of
	// a previous Compile() might be provided.  A nil result means
	// the guard failed.
	Exec(ctx context.Context, bs Bindings, code string, compiled interface{}) (Bindings, error)
}
