package tools

import (
	"fmt"
	"io"
	"strings"

	"github.com/Comcast/csp/core"
)

// Mermaid writes a Mermaid flowchart for the process graph.
//
// Paste the output at https://mermaid.live or into anything that
// renders Mermaid.
func Mermaid(p core.Process, w io.Writer) error {
	fmt.Fprintf(w, "graph TD\n")

	walk := &walker{
		ids: make(map[core.Process]string),
		node: func(id string, p core.Process) {
			fmt.Fprintf(w, "  %s[\"%s\"]\n", id, mermaidEscape(label(p)))
		},
		edge: func(from, to, l string) {
			if l == "" {
				fmt.Fprintf(w, "  %s --> %s\n", from, to)
				return
			}
			fmt.Fprintf(w, "  %s -->|%s| %s\n", from, mermaidEscape(l), to)
		},
	}
	walk.visit(p)

	return nil
}

func mermaidEscape(s string) string {
	s = strings.Replace(s, `"`, `#quot;`, -1)
	s = strings.Replace(s, `|`, `#124;`, -1)
	return s
}
