package noop

import (
	"context"
	"log"

	"github.com/Comcast/csp/core"
)

// Interpreter is a core.Interpreter which just returns the bindings
// without modification.
type Interpreter struct {
	// Silent, if true, will suppress warning log messages.
	Silent bool
}

func NewInterpreter() *Interpreter {
	return &Interpreter{}
}

func (i *Interpreter) Compile(ctx context.Context, code string) (interface{}, error) {
	if !i.Silent {
		log.Printf("warning: Using noop Interpreter for compilation")
	}
	return nil, nil
}

func (i *Interpreter) Exec(ctx context.Context, bs core.Bindings, code string, compiled interface{}) (core.Bindings, error) {
	if !i.Silent {
		log.Printf("warning: Using noop Interpreter for execution")
	}
	return bs, nil
}
