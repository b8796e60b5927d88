// Package evaluator computes fully dereferenced arithmetic expressions, the
// text left once every cell reference has been replaced by its value.
//
// Two backends are available: "hcl" evaluates with the HCL expression
// language and is the default, "expr" uses expr-lang/expr. validate narrows
// both to the same input: decimal numbers with digits on both sides of any
// point, the operators + - * / %, parentheses and whitespace. Division or
// modulo by zero is an error on either backend.
package evaluator

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Backend names accepted by New.
const (
	KindHCL  = "hcl"
	KindExpr = "expr"
)

var (
	// ErrMalformedExpression is returned when an expression cannot be parsed
	// or does not produce a finite number.
	ErrMalformedExpression = errors.New("malformed expression")

	// ErrUnsupportedCharacter is returned for input outside the arithmetic
	// alphabet, such as a letter left over from an unresolved reference.
	ErrUnsupportedCharacter = errors.New("unsupported character")

	// ErrUnknownBackend is returned by New for an unrecognised backend name.
	ErrUnknownBackend = errors.New("unknown evaluator backend")
)

// Evaluator turns an arithmetic expression into a number.
type Evaluator interface {
	Evaluate(expression string) (float64, error)
}

// Func adapts a plain function to the Evaluator interface.
type Func func(expression string) (float64, error)

// Evaluate calls f.
func (f Func) Evaluate(expression string) (float64, error) {
	return f(expression)
}

// Kinds lists the backend names accepted by New.
func Kinds() []string {
	return []string{KindHCL, KindExpr}
}

// New returns the evaluator backend with the given name. An empty name
// selects the HCL backend.
func New(kind string) (Evaluator, error) {
	switch strings.ToLower(kind) {
	case "", KindHCL:
		return NewHCL(), nil
	case KindExpr:
		return NewExpr(), nil
	default:
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownBackend, kind, strings.Join(Kinds(), ", "))
	}
}

// validate rejects blank input and any character outside the arithmetic
// alphabet before a backend sees it.
func validate(expression string) error {
	if strings.TrimSpace(expression) == "" {
		return fmt.Errorf("%w: empty expression", ErrMalformedExpression)
	}
	for i, r := range expression {
		switch {
		case r >= '0' && r <= '9':
		case r == '.', r == '+', r == '-', r == '*', r == '/', r == '%', r == '(', r == ')':
		case r == ' ', r == '\t', r == '\n', r == '\r':
		default:
			return fmt.Errorf("%w: %q at offset %d in %q", ErrUnsupportedCharacter, r, i, expression)
		}
	}
	if i := strings.Index(expression, "**"); i >= 0 {
		return fmt.Errorf("%w: exponent operator at offset %d in %q", ErrMalformedExpression, i, expression)
	}
	for i := 0; i < len(expression); i++ {
		if expression[i] != '.' {
			continue
		}
		if i == 0 || i == len(expression)-1 || !isDigit(expression[i-1]) || !isDigit(expression[i+1]) {
			return fmt.Errorf("%w: bare decimal point at offset %d in %q", ErrMalformedExpression, i, expression)
		}
	}
	return nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// finite rejects NaN and infinities.
func finite(expression string, v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not a finite number", ErrMalformedExpression, expression)
	}
	return v, nil
}
