package interpreters

import (
	"github.com/Comcast/csp/core"
	"github.com/Comcast/csp/interpreters/goja"
	"github.com/Comcast/csp/interpreters/noop"
)

// Standard returns the stock interpreters, keyed by the names that
// session files use.
func Standard() map[string]core.Interpreter {
	is := make(map[string]core.Interpreter)

	is["goja"] = goja.NewInterpreter()
	is["ecmascript"] = is["goja"]
	is["noop"] = noop.NewInterpreter()

	return is
}
