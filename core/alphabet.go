package core

import (
	"sort"
	"strings"
)

// Success is the distinguished event that signals successful
// termination of a process (SKIP).
const Success = "_success_"

// Kind classifies an Alphabet.
//
// Most alphabets are Regular: explicit, finite sets of events.  The
// two wildcard kinds stand for infinite families of events whose
// membership is decided syntactically.
type Kind int

const (
	// Regular is an explicit finite set of events.
	Regular Kind = iota

	// Integer stands for the set of all non-empty digit strings.
	Integer

	// String stands for the set of all quoted strings.
	String
)

// Wildcard members.  A Regular alphabet may contain templated members
// such as "c.*integer*", standing for all events with prefix "c."
// whose payload is a digit string.  The bare templates arise when an
// Integer or String alphabet is combined with a Regular one.
const (
	IntegerTemplate = "*integer*"
	StringTemplate  = "*string*"
)

// Alphabet is a set of events.
//
// The zero value is the empty Regular alphabet and is ready to use.
// Alphabets are value-ish: the set operations return new Alphabets
// and never modify their operands.  Add() is the only mutator and is
// meant for construction.
type Alphabet struct {
	kind    Kind
	members map[string]bool
}

// NewAlphabet makes a Regular alphabet containing the given events.
func NewAlphabet(events ...string) Alphabet {
	a := Alphabet{members: make(map[string]bool, len(events))}
	for _, event := range events {
		a.members[event] = true
	}
	return a
}

// NewWildAlphabet makes an alphabet of the given wildcard kind.
//
// Kind Regular gets you an empty alphabet.
func NewWildAlphabet(kind Kind) Alphabet {
	return Alphabet{kind: kind}
}

// Kind reports the alphabet's kind.
func (a Alphabet) Kind() Kind {
	return a.kind
}

// Add inserts an event.  Only used during construction.
func (a *Alphabet) Add(event string) {
	if a.members == nil {
		a.members = make(map[string]bool)
	}
	a.members[event] = true
}

// IsInteger reports whether the event is a non-empty digit string.
func IsInteger(event string) bool {
	if len(event) == 0 {
		return false
	}
	for i := 0; i < len(event); i++ {
		if event[i] < '0' || event[i] > '9' {
			return false
		}
	}
	return true
}

// IsString reports whether the event is a quoted string.
func IsString(event string) bool {
	return len(event) >= 2 && event[0] == '"' && event[len(event)-1] == '"'
}

// matchesTemplate reports whether the event matches the templated
// member.  A template is either a bare wildcard ("*integer*",
// "*string*") or a prefixed one ("c.*integer*").
func matchesTemplate(member, event string) bool {
	var payload func(string) bool
	var prefix string
	switch {
	case strings.HasSuffix(member, IntegerTemplate):
		prefix = member[:len(member)-len(IntegerTemplate)]
		payload = IsInteger
	case strings.HasSuffix(member, StringTemplate):
		prefix = member[:len(member)-len(StringTemplate)]
		payload = IsString
	default:
		return false
	}
	if !strings.HasPrefix(event, prefix) {
		return false
	}
	return payload(event[len(prefix):])
}

// isTemplate reports whether the member is a templated member.
func isTemplate(member string) bool {
	return strings.HasSuffix(member, IntegerTemplate) ||
		strings.HasSuffix(member, StringTemplate)
}

// Contains decides membership.
//
// For the wildcard kinds membership is a syntactic predicate.  For
// Regular alphabets an event is a member if it is present literally
// or if it matches a templated member.
func (a Alphabet) Contains(event string) bool {
	switch a.kind {
	case Integer:
		if IsInteger(event) {
			return true
		}
	case String:
		if IsString(event) {
			return true
		}
	}
	if a.members[event] {
		return true
	}
	for m := range a.members {
		if isTemplate(m) && matchesTemplate(m, event) {
			return true
		}
	}
	return false
}

// Cardinality returns the number of (explicit) members.
//
// Wildcard kinds are conceptually infinite; the count here only
// covers explicit members, which is what the stepping code needs.
func (a Alphabet) Cardinality() int {
	return len(a.members)
}

// IsEmpty reports whether the alphabet has no members at all.
func (a Alphabet) IsEmpty() bool {
	return a.kind == Regular && len(a.members) == 0
}

// Events returns the explicit members in sorted order.
//
// The order is deterministic so that random draws over an alphabet
// are reproducible from a seed.
func (a Alphabet) Events() []string {
	events := make([]string, 0, len(a.members))
	for event := range a.members {
		events = append(events, event)
	}
	sort.Strings(events)
	return events
}

// normalized returns an equivalent Regular alphabet, turning a
// wildcard kind into its bare template member.
func (a Alphabet) normalized() Alphabet {
	if a.kind == Regular {
		return a
	}
	n := NewAlphabet()
	switch a.kind {
	case Integer:
		n.Add(IntegerTemplate)
	case String:
		n.Add(StringTemplate)
	}
	for m := range a.members {
		n.Add(m)
	}
	return n
}

// Plus is set union.
func (a Alphabet) Plus(b Alphabet) Alphabet {
	if a.kind != b.kind {
		return a.normalized().Plus(b.normalized())
	}
	result := Alphabet{kind: a.kind, members: make(map[string]bool, len(a.members)+len(b.members))}
	for m := range a.members {
		result.members[m] = true
	}
	for m := range b.members {
		result.members[m] = true
	}
	return result
}

// Minus is set difference.
//
// Difference probes element-wise, so a literal member is removed by a
// matching template on the other side.  A template member survives a
// literal on the other side; there is no way to subtract one event
// from an infinite family.
func (a Alphabet) Minus(b Alphabet) Alphabet {
	an := a.normalized()
	result := NewAlphabet()
	for m := range an.members {
		if isTemplate(m) {
			if !b.normalized().members[m] {
				result.Add(m)
			}
			continue
		}
		if !b.Contains(m) {
			result.Add(m)
		}
	}
	return result
}

// Times is set intersection.
//
// Membership is probed element-wise in both directions so that a
// literal event and the template that covers it intersect correctly.
func (a Alphabet) Times(b Alphabet) Alphabet {
	result := NewAlphabet()
	for m := range a.normalized().members {
		if b.Contains(m) || (isTemplate(m) && b.normalized().members[m]) {
			result.Add(m)
		}
	}
	for m := range b.normalized().members {
		if a.Contains(m) {
			result.Add(m)
		}
	}
	return result
}

// Div is symmetric difference.
func (a Alphabet) Div(b Alphabet) Alphabet {
	return a.Minus(b).Plus(b.Minus(a))
}

// SubsetOf reports whether every member of a is a member of b.
func (a Alphabet) SubsetOf(b Alphabet) bool {
	for m := range a.normalized().members {
		if isTemplate(m) {
			if !b.normalized().members[m] {
				return false
			}
			continue
		}
		if !b.Contains(m) {
			return false
		}
	}
	return true
}

// Equal reports set equality.
func (a Alphabet) Equal(b Alphabet) bool {
	return a.SubsetOf(b) && b.SubsetOf(a)
}

func (a Alphabet) String() string {
	switch a.kind {
	case Integer:
		return "integer"
	case String:
		return "string"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for i, event := range a.Events() {
		if 0 < i {
			sb.WriteString(", ")
		}
		sb.WriteString(event)
	}
	sb.WriteByte('}')
	return sb.String()
}

// SelectPrefix returns the members of a with the given channel
// prefix ("c" selects "c.x", "c.y", ...).
func SelectPrefix(a Alphabet, channel string) Alphabet {
	prefix := channel + "."
	result := NewAlphabet()
	for m := range a.normalized().members {
		if strings.HasPrefix(m, prefix) {
			result.Add(m)
		}
	}
	return result
}

// ExcludePrefix returns the members of a without the given channel
// prefix.
func ExcludePrefix(a Alphabet, channel string) Alphabet {
	prefix := channel + "."
	result := NewAlphabet()
	for m := range a.normalized().members {
		if !strings.HasPrefix(m, prefix) {
			result.Add(m)
		}
	}
	return result
}
