// Package parser turns a CSP script into a process graph and a
// symbol table.
//
// The scanner and parser are hand-written.  The parser is a plain
// recursive-descent parser with two tokens of lookahead; it reports
// diagnostics with source locations and keeps going where it can, so
// a script with several mistakes gets several messages.
package parser

import (
	"fmt"

	"github.com/Comcast/csp/core"
)

// TokenType identifies a lexical token.
type TokenType int

const (
	EOF TokenType = iota

	// Identifiers and literals.
	EVENT   // lowercase identifier
	PROCESS // uppercase identifier
	INTEGER // unsigned integer literal
	STRING  // quoted string, quotes included

	// Reserved words.
	STOP
	RUN
	SKIP
	CHAOS
	ALPHA
	MU
	STRINGKW  // "string"
	INTEGERKW // "integer"
	DIV
	MOD

	// Punctuators and operators.
	LPAREN      // (
	RPAREN      // )
	LBRACE      // {
	RBRACE      // }
	EQUAL       // =
	COMMA       // ,
	SEMICOLON   // ;
	COLON       // :
	PERIOD      // .
	CONCEAL     // \
	QUESTION    // ?
	EXCLAIM     // !
	PLUS        // +
	MINUS       // -
	STAR        // *
	ARROW       // ->
	OR          // |
	PARALLEL    // ||
	INTERLEAVES // |||
	EXTCHOICE   // []
	INTCHOICE   // |~|
	PIPE        // >>
	SUBORD      // //
)

var tokenNames = map[TokenType]string{
	EOF:         "end of input",
	EVENT:       "event",
	PROCESS:     "process name",
	INTEGER:     "integer",
	STRING:      "string",
	STOP:        "STOP",
	RUN:         "RUN",
	SKIP:        "SKIP",
	CHAOS:       "CHAOS",
	ALPHA:       "alpha",
	MU:          "mu",
	STRINGKW:    "string",
	INTEGERKW:   "integer",
	DIV:         "div",
	MOD:         "mod",
	LPAREN:      "(",
	RPAREN:      ")",
	LBRACE:      "{",
	RBRACE:      "}",
	EQUAL:       "=",
	COMMA:       ",",
	SEMICOLON:   ";",
	COLON:       ":",
	PERIOD:      ".",
	CONCEAL:     "\\",
	QUESTION:    "?",
	EXCLAIM:     "!",
	PLUS:        "+",
	MINUS:       "-",
	STAR:        "*",
	ARROW:       "->",
	OR:          "|",
	PARALLEL:    "||",
	INTERLEAVES: "|||",
	EXTCHOICE:   "[]",
	INTCHOICE:   "|~|",
	PIPE:        ">>",
	SUBORD:      "//",
}

func (t TokenType) String() string {
	if name, have := tokenNames[t]; have {
		return name
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// Token is one lexical token with its source region.
type Token struct {
	Type    TokenType
	Literal string
	Begin   core.Location
	End     core.Location
}

func (t Token) String() string {
	switch t.Type {
	case EVENT, PROCESS, INTEGER, STRING:
		return fmt.Sprintf("%s %q", t.Type, t.Literal)
	}
	return t.Type.String()
}

var reserved = map[string]TokenType{
	"STOP":    STOP,
	"RUN":     RUN,
	"SKIP":    SKIP,
	"CHAOS":   CHAOS,
	"alpha":   ALPHA,
	"mu":      MU,
	"string":  STRINGKW,
	"integer": INTEGERKW,
	"div":     DIV,
	"mod":     MOD,
}
