// csptool renders CSP scripts: the process graph as Graphviz dot or
// Mermaid, and the documented script as HTML.
//
// Usage:
//
//	csptool dot source.csp > g.dot
//	csptool mermaid source.csp > g.mmd
//	csptool html source.csp > doc.html
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Comcast/csp/parser"
	"github.com/Comcast/csp/tools"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s dot|mermaid|html source.csp\n", os.Args[0])
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}
	verb, filename := flag.Arg(0), flag.Arg(1)

	src, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if verb == "html" {
		if err := tools.RenderScriptPage(filename, string(src), os.Stdout, nil); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	process, _, err := parser.Parse(filename, string(src), os.Stderr)
	if err != nil {
		os.Exit(1)
	}

	switch verb {
	case "dot":
		err = tools.Dot(process, os.Stdout)
	case "mermaid":
		err = tools.Mermaid(process, os.Stdout)
	default:
		flag.Usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
