package evaluator

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/vm"
)

// moduloFunc replaces the % operator in compiled programs. Letters never pass
// validate, so the name cannot clash with user input.
const moduloFunc = "modulo"

// Expr evaluates expressions with expr-lang/expr. Compiled programs are
// cached by expression text.
//
// expr-lang does integer arithmetic on integer literals and wraps on
// overflow, so every literal is compiled as a float and % is routed through
// moduloFunc. Results then match the HCL backend.
type Expr struct {
	cache sync.Map // expression string → compiled *vm.Program
}

// NewExpr returns the expr-lang backend.
func NewExpr() *Expr {
	return &Expr{}
}

// Evaluate compiles (or reuses) and runs expression.
func (e *Expr) Evaluate(expression string) (float64, error) {
	if err := validate(expression); err != nil {
		return 0, err
	}

	program, err := e.compile(expression)
	if err != nil {
		return 0, fmt.Errorf("%w: compile %q: %v", ErrMalformedExpression, expression, err)
	}
	result, err := expr.Run(program, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: evaluate %q: %v", ErrMalformedExpression, expression, err)
	}

	v, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: %q evaluated to %T, want number", ErrMalformedExpression, expression, result)
	}
	return finite(expression, v)
}

func (e *Expr) compile(expression string) (*vm.Program, error) {
	if cached, ok := e.cache.Load(expression); ok {
		return cached.(*vm.Program), nil
	}
	program, err := expr.Compile(floatLiterals(expression),
		expr.Function(moduloFunc, modulo, new(func(float64, float64) float64)),
		expr.Patch(moduloPatcher{}),
	)
	if err != nil {
		return nil, err
	}
	e.cache.Store(expression, program)
	return program, nil
}

// floatLiterals appends ".0" to every integer literal so the parser produces
// float nodes, including for literals beyond the int64 range.
func floatLiterals(expression string) string {
	var sb strings.Builder
	sb.Grow(len(expression) + 8)
	for i := 0; i < len(expression); {
		if !isDigit(expression[i]) {
			sb.WriteByte(expression[i])
			i++
			continue
		}
		j := i
		for j < len(expression) && (isDigit(expression[j]) || expression[j] == '.') {
			j++
		}
		sb.WriteString(expression[i:j])
		if !strings.Contains(expression[i:j], ".") {
			sb.WriteString(".0")
		}
		i = j
	}
	return sb.String()
}

// moduloPatcher rewrites "a % b" as a call to moduloFunc, since expr-lang only
// defines % for integers.
type moduloPatcher struct{}

func (moduloPatcher) Visit(node *ast.Node) {
	n, ok := (*node).(*ast.BinaryNode)
	if !ok || n.Operator != "%" {
		return
	}
	ast.Patch(node, &ast.CallNode{
		Callee:    &ast.IdentifierNode{Value: moduloFunc},
		Arguments: []ast.Node{n.Left, n.Right},
	})
}

var errModuloByZero = errors.New("modulo by zero")

// modulo is the truncated remainder, the same result HCL gives.
func modulo(params ...any) (any, error) {
	a, okA := params[0].(float64)
	b, okB := params[1].(float64)
	if !okA || !okB {
		return nil, fmt.Errorf("modulo of %T and %T", params[0], params[1])
	}
	if b == 0 {
		return nil, errModuloByZero
	}
	return math.Mod(a, b), nil
}
