package core

import (
	"strings"
)

// SymbolChanger maps events to events.  Renamed processes f(P) and
// the pipe reduction use changers to relabel alphabets and to
// translate events both ways between the outer and the inner view.
//
// Events beginning with '_' (notably Success) are never changed;
// MapEvent and ReverseEvent take care of that before consulting the
// concrete changer.
type SymbolChanger interface {
	// Rename derives the display name for a process to which
	// this changer was applied.
	Rename(name string) string

	forward(event string) string
	backward(event string) string
}

// MapEvent applies the changer to one event.
func MapEvent(f SymbolChanger, event string) string {
	if strings.HasPrefix(event, "_") {
		return event
	}
	return f.forward(event)
}

// ReverseEvent applies the changer's inverse to one event.
func ReverseEvent(f SymbolChanger, event string) string {
	if strings.HasPrefix(event, "_") {
		return event
	}
	return f.backward(event)
}

// MapAlphabet applies the changer to every member of an alphabet.
func MapAlphabet(f SymbolChanger, a Alphabet) Alphabet {
	mapped := NewAlphabet()
	for _, event := range a.normalized().Events() {
		mapped.Add(MapEvent(f, event))
	}
	return mapped
}

// Identity changes nothing.
type Identity struct{}

func (Identity) Rename(name string) string    { return name }
func (Identity) forward(event string) string  { return event }
func (Identity) backward(event string) string { return event }

// Qualifier prefixes every event with a label, turning P into the
// labelled process l:P with events "l.e".
type Qualifier struct {
	Label string
}

func (q Qualifier) Rename(name string) string {
	return q.Label + ":" + name
}

func (q Qualifier) forward(event string) string {
	return q.Label + "." + event
}

func (q Qualifier) backward(event string) string {
	return strings.TrimPrefix(event, q.Label+".")
}

// Inverse swaps the directions of another changer.
type Inverse struct {
	F SymbolChanger
}

func (i Inverse) Rename(name string) string    { return i.F.Rename(name) }
func (i Inverse) forward(event string) string  { return i.F.backward(event) }
func (i Inverse) backward(event string) string { return i.F.forward(event) }

// MapChannel relabels the events of one channel onto another,
// leaving all other events alone.  The pipe reduction uses it to
// splice "right" of the producer and "left" of the consumer onto a
// freshly minted internal channel.
type MapChannel struct {
	From string
	To   string
}

func (m MapChannel) Rename(name string) string {
	return name + "[" + m.From + "→" + m.To + "]"
}

func (m MapChannel) forward(event string) string {
	if rest, ok := strings.CutPrefix(event, m.From+"."); ok {
		return m.To + "." + rest
	}
	return event
}

func (m MapChannel) backward(event string) string {
	if rest, ok := strings.CutPrefix(event, m.To+"."); ok {
		return m.From + "." + rest
	}
	return event
}

// FuncChanger is a finite renaming given by explicit pairs, the form
// a symbol-change function takes in a script.
type FuncChanger struct {
	Name    string
	Forward map[string]string
	Reverse map[string]string
}

// NewFuncChanger makes an empty renaming with the given name.
func NewFuncChanger(name string) *FuncChanger {
	return &FuncChanger{
		Name:    name,
		Forward: make(map[string]string, 4),
		Reverse: make(map[string]string, 4),
	}
}

// AddPair installs one a→b renaming pair.
func (f *FuncChanger) AddPair(from, to string) {
	f.Forward[from] = to
	f.Reverse[to] = from
}

func (f *FuncChanger) Rename(name string) string {
	return f.Name + "(" + name + ")"
}

func (f *FuncChanger) forward(event string) string {
	if to, have := f.Forward[event]; have {
		return to
	}
	return event
}

func (f *FuncChanger) backward(event string) string {
	if from, have := f.Reverse[event]; have {
		return from
	}
	return event
}
