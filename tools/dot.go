package tools

// dot -Tpng g.dot > g.png

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Comcast/csp/core"
)

// walker assigns stable ids to the nodes of a process graph and
// hands each node and edge to callbacks exactly once.  The graph may
// be cyclic.
type walker struct {
	ids  map[core.Process]string
	node func(id string, p core.Process)
	edge func(from, to, label string)
}

func (w *walker) visit(p core.Process) string {
	if p == nil {
		return ""
	}
	if id, have := w.ids[p]; have {
		return id
	}
	id := "n" + strconv.Itoa(len(w.ids))
	w.ids[p] = id
	w.node(id, p)

	link := func(child core.Process, label string) {
		if child == nil {
			return
		}
		w.edge(id, w.visit(child), label)
	}

	switch v := p.(type) {
	case *core.PrefixedProcess:
		link(v.Next, v.Event)
	case *core.SelectingProcess:
		for i, b := range v.Branches {
			link(b, strconv.Itoa(i+1))
		}
	case *core.ProcessSequence:
		link(v.First, "first")
		link(v.Second, "then")
	case *core.ParallelProcesses:
		link(v.Left, "")
		link(v.Right, "")
	case *core.InterleavingProcesses:
		link(v.Left, "")
		link(v.Right, "")
	case *core.ExternalChoice:
		link(v.Left, "")
		link(v.Right, "")
	case *core.InternalChoice:
		link(v.Left, "")
		link(v.Right, "")
	case *core.ConcealedProcess:
		link(v.Inner, "")
	case *core.Pipe:
		link(v.Left, "producer")
		link(v.Right, "consumer")
	case *core.Subordination:
		link(v.Sub, "subordinate")
		link(v.Main, "master")
	case *core.MappedProcess:
		link(v.Inner, "")
	case *core.ReadingProcess:
		link(v.Next, v.Channel.Name+"?"+v.Variable)
	case *core.WritingProcess:
		link(v.Next, v.Channel.Name+"!"+v.Expr.String())
	case *core.ProcessDefinition:
		link(v.Body, "")
	case *core.RecursiveProcess:
		link(v.Body, "")
	case *core.ProcessReference:
		link(v.Target(), "")
	}

	return id
}

func label(p core.Process) string {
	switch v := p.(type) {
	case *core.PrefixedProcess:
		return v.Event + " ->"
	case *core.SelectingProcess:
		return "|"
	case *core.ProcessSequence:
		return ";"
	case *core.ParallelProcesses:
		return "||"
	case *core.InterleavingProcesses:
		return "|||"
	case *core.ExternalChoice:
		return "[]"
	case *core.InternalChoice:
		return "|~|"
	case *core.ConcealedProcess:
		return "\\ " + v.Concealed.String()
	case *core.Pipe:
		return ">>"
	case *core.Subordination:
		return "//"
	case *core.MappedProcess:
		return v.F.Rename("·")
	case *core.ReadingProcess:
		return v.Channel.Name + "?" + v.Variable
	case *core.WritingProcess:
		return v.Channel.Name + "!" + v.Expr.String()
	case *core.ProcessDefinition:
		return v.Name
	case *core.RecursiveProcess:
		return "mu " + v.Name
	case *core.ProcessReference:
		return v.String()
	case *core.StopProcess:
		return "STOP"
	case *core.RunProcess:
		return "RUN"
	case *core.SkipProcess:
		return "SKIP"
	case *core.ChaosProcess:
		return "CHAOS"
	}
	return fmt.Sprintf("%T", p)
}

// Dot writes a Graphviz dot file for the process graph.  A really
// ugly dot file.
func Dot(p core.Process, w io.Writer) error {
	fmt.Fprintf(w, "digraph G {\n")
	fmt.Fprintf(w, `  graph [ordering=out,rankdir=TB,nodesep=0.3,ranksep=0.6]
  node [shape="record" style="rounded,filled" fillcolor="#99ddc8"]
  edge [fontsize = "12"]
`)

	walk := &walker{
		ids: make(map[core.Process]string),
		node: func(id string, p core.Process) {
			fill := "#99ddc8"
			switch p.(type) {
			case *core.ProcessDefinition, *core.RecursiveProcess:
				fill = "#2d93ad"
			case *core.ProcessReference:
				fill = "#52aa5e"
			}
			fmt.Fprintf(w, "  %s [fillcolor=\"%s\", label=\"%s\"]\n",
				id, fill, escape(label(p)))
		},
		edge: func(from, to, l string) {
			if l == "" {
				fmt.Fprintf(w, "  %s -> %s\n", from, to)
				return
			}
			fmt.Fprintf(w, "  %s -> %s [ label = \"%s\" ]\n", from, to, escape(l))
		},
	}
	walk.visit(p)

	fmt.Fprintf(w, "}\n")
	return nil
}

// PNG generates a PNG image based on output from Dot.
//
// This function will write two files: basename.dot and basename.png,
// where the basename is the given string.
func PNG(p core.Process, basename string) (string, error) {
	dotname := basename + ".dot"
	pngname := basename + ".png"

	// ToDo: Use mktemp
	dotfile, err := os.Create(dotname)
	if err != nil {
		return pngname, err
	}
	if err := Dot(p, dotfile); err != nil {
		dotfile.Close()
		return pngname, err
	}
	if err := dotfile.Close(); err != nil {
		return pngname, err
	}
	cmd := "dot -Tpng -Gstart=1 " + dotname + " > " + pngname
	if err := exec.Command("bash", "-c", cmd).Run(); err != nil {
		return pngname, err
	}
	return pngname, nil
}

func escape(s string) string {
	return strings.Replace(s, `"`, `\"`, -1)
}
