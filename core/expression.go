package core

import (
	"strconv"
)

// Value is the type arithmetic in message expressions works on.
type Value = uint64

// Expression is an arithmetic expression in a channel output prefix,
// c!expr.  Expressions evaluate against the bindings in a Status.
type Expression interface {
	Eval(s *Status) Value
	String() string
}

// IntegerLiteral is an unsigned integer literal.
type IntegerLiteral struct {
	Value Value
}

func (e *IntegerLiteral) Eval(s *Status) Value {
	return e.Value
}

func (e *IntegerLiteral) String() string {
	return strconv.FormatUint(e.Value, 10)
}

// Variable evaluates a bound variable.  A value that is not an
// integer literal is a runtime error: it is reported with its source
// location, counts as zero, and the trace carries on.
type Variable struct {
	Name string
	Loc  Location
	Rep  Reporter
}

func (e *Variable) Eval(s *Status) Value {
	value, have := s.Lookup(e.Name)
	if !have {
		if e.Rep != nil {
			e.Rep.Errorf(e.Loc, "variable %s is not bound", e.Name)
		}
		return 0
	}
	v, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		if e.Rep != nil {
			e.Rep.Errorf(e.Loc, "bound variable %s is not of integer type", e.Name)
		}
		return 0
	}
	return v
}

func (e *Variable) String() string {
	return e.Name
}

// Binary combines two expressions with one of + - * div mod.
type Binary struct {
	Left  Expression
	Right Expression
	Op    string
	F     func(Value, Value) Value
}

func (e *Binary) Eval(s *Status) Value {
	return e.F(e.Left.Eval(s), e.Right.Eval(s))
}

func (e *Binary) String() string {
	return "(" + e.Left.String() + " " + e.Op + " " + e.Right.String() + ")"
}

// The operator functions.  Division and modulus by zero yield zero:
// a trace should not panic on script arithmetic.

func Add(a, b Value) Value { return a + b }
func Sub(a, b Value) Value { return a - b }
func Mul(a, b Value) Value { return a * b }

func Div(a, b Value) Value {
	if b == 0 {
		return 0
	}
	return a / b
}

func Mod(a, b Value) Value {
	if b == 0 {
		return 0
	}
	return a % b
}
