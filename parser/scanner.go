package parser

import (
	"strings"

	"github.com/Comcast/csp/core"
)

// Scanner tokenizes a CSP script.
//
// Lowercase identifiers are events, uppercase identifiers are
// process names.  Comments come in two shapes: delimited /* ... */,
// and the single-line form --, which runs to the end of the line.
// Whitespace only separates tokens.  A tab advances the column to
// the next multiple of eight.
type Scanner struct {
	diags *Diagnostics
	input string
	name  string

	pos  int // byte offset of ch
	ch   byte
	eof  bool
	line int
	col  int

	tokenBegin core.Location
	prevEnd    core.Location
}

// NewScanner makes a scanner over src.  The name labels locations in
// diagnostics.
func NewScanner(name, src string, diags *Diagnostics) *Scanner {
	s := &Scanner{
		diags: diags,
		input: src,
		name:  name,
		pos:   -1,
		line:  1,
		col:   0,
	}
	s.next()
	return s
}

func (s *Scanner) here() core.Location {
	return core.Location{File: s.name, Line: s.line, Col: s.col}
}

// next advances one character, maintaining line and column.
func (s *Scanner) next() {
	s.prevEnd = s.here()
	s.pos++
	if len(s.input) <= s.pos {
		s.ch = 0
		s.eof = true
		return
	}
	switch s.ch = s.input[s.pos]; s.ch {
	case '\n':
		s.line++
		s.col = 0
	case '\t':
		// Advance to the next multiple of eight.
		s.col = (s.col/8 + 1) * 8
	default:
		s.col++
	}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isLower(ch byte) bool {
	return 'a' <= ch && ch <= 'z'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' ||
		ch == '\f' || ch == '\v'
}

func (s *Scanner) errorf(format string, args ...interface{}) {
	s.diags.Errorf(s.here(), format, args...)
}

// Next returns the next token.
func (s *Scanner) Next() Token {
restart:
	for !s.eof && isWhitespace(s.ch) {
		s.next()
	}
	s.tokenBegin = s.here()

	if s.eof {
		return s.token(EOF, "")
	}

	if isLetter(s.ch) {
		start := s.pos
		lower := isLower(s.ch)
		for !s.eof && (isLetter(s.ch) || isDigit(s.ch)) {
			s.next()
		}
		word := s.input[start:s.pos]
		if t, is := reserved[word]; is {
			return s.token(t, word)
		}
		if lower {
			return s.token(EVENT, word)
		}
		return s.token(PROCESS, word)
	}

	if isDigit(s.ch) {
		start := s.pos
		for !s.eof && isDigit(s.ch) {
			s.next()
		}
		return s.token(INTEGER, s.input[start:s.pos])
	}

	switch s.ch {
	case '"':
		var sb strings.Builder
		sb.WriteByte('"')
		s.next()
		for !s.eof && s.ch != '"' && s.ch != '\n' {
			sb.WriteByte(s.ch)
			s.next()
		}
		if s.eof || s.ch != '"' {
			s.errorf("unterminated string")
		} else {
			s.next()
		}
		sb.WriteByte('"')
		return s.token(STRING, sb.String())
	case '(':
		s.next()
		return s.token(LPAREN, "(")
	case ')':
		s.next()
		return s.token(RPAREN, ")")
	case '{':
		s.next()
		return s.token(LBRACE, "{")
	case '}':
		s.next()
		return s.token(RBRACE, "}")
	case '=':
		s.next()
		return s.token(EQUAL, "=")
	case ',':
		s.next()
		return s.token(COMMA, ",")
	case ';':
		s.next()
		return s.token(SEMICOLON, ";")
	case ':':
		s.next()
		return s.token(COLON, ":")
	case '.':
		s.next()
		return s.token(PERIOD, ".")
	case '\\':
		s.next()
		return s.token(CONCEAL, "\\")
	case '?':
		s.next()
		return s.token(QUESTION, "?")
	case '!':
		s.next()
		return s.token(EXCLAIM, "!")
	case '+':
		s.next()
		return s.token(PLUS, "+")
	case '*':
		s.next()
		return s.token(STAR, "*")
	case '-':
		s.next()
		if s.ch == '>' {
			s.next()
			return s.token(ARROW, "->")
		}
		if s.ch == '-' {
			// Ada-style single-line comment.
			for !s.eof && s.ch != '\n' {
				s.next()
			}
			goto restart
		}
		return s.token(MINUS, "-")
	case '>':
		s.next()
		if s.ch == '>' {
			s.next()
			return s.token(PIPE, ">>")
		}
		s.errorf("invalid token")
		goto restart
	case '/':
		s.next()
		if s.ch == '/' {
			s.next()
			return s.token(SUBORD, "//")
		}
		if s.ch == '*' {
			// Delimited comment.
			s.next()
			star := false
			for !s.eof && (!star || s.ch != '/') {
				star = s.ch == '*'
				s.next()
			}
			if s.eof {
				s.errorf("unterminated comment")
			} else {
				s.next()
			}
			goto restart
		}
		s.errorf("invalid token")
		goto restart
	case '|':
		s.next()
		if s.ch == '|' {
			s.next()
			if s.ch == '|' {
				s.next()
				return s.token(INTERLEAVES, "|||")
			}
			return s.token(PARALLEL, "||")
		}
		if s.ch == '~' {
			s.next()
			if s.ch == '|' {
				s.next()
				return s.token(INTCHOICE, "|~|")
			}
			s.errorf("invalid token")
			goto restart
		}
		return s.token(OR, "|")
	case '[':
		s.next()
		if s.ch == ']' {
			s.next()
			return s.token(EXTCHOICE, "[]")
		}
		s.errorf("invalid token")
		goto restart
	default:
		s.errorf("invalid token")
		s.next()
		goto restart
	}
}

func (s *Scanner) token(t TokenType, literal string) Token {
	return Token{
		Type:    t,
		Literal: literal,
		Begin:   s.tokenBegin,
		End:     s.prevEnd,
	}
}
