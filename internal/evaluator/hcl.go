package evaluator

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// HCL evaluates expressions with the HCL native syntax. No variables or
// functions are in scope, so only literal arithmetic can succeed.
type HCL struct{}

// NewHCL returns the HCL backend.
func NewHCL() *HCL {
	return &HCL{}
}

// Evaluate parses and evaluates expression, requiring a known number result.
func (h *HCL) Evaluate(expression string) (float64, error) {
	if err := validate(expression); err != nil {
		return 0, err
	}

	expr, diags := hclsyntax.ParseExpression([]byte(expression), "cell", hcl.InitialPos)
	if diags.HasErrors() {
		return 0, fmt.Errorf("%w: %s", ErrMalformedExpression, diags.Error())
	}
	if diags := hclsyntax.VisitAll(expr, rejectModuloByZero); diags.HasErrors() {
		return 0, fmt.Errorf("%w: %s", ErrMalformedExpression, diags.Error())
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return 0, fmt.Errorf("%w: %s", ErrMalformedExpression, diags.Error())
	}
	if val.IsNull() || !val.IsKnown() || !val.Type().Equals(cty.Number) {
		return 0, fmt.Errorf("%w: %q evaluated to %s, want number", ErrMalformedExpression, expression, val.GoString())
	}

	var out float64
	if err := gocty.FromCtyValue(val, &out); err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrMalformedExpression, expression, err)
	}
	return finite(expression, out)
}

// rejectModuloByZero fails a % operation whose divisor is zero. cty returns
// the dividend unchanged in that case.
func rejectModuloByZero(node hclsyntax.Node) hcl.Diagnostics {
	op, ok := node.(*hclsyntax.BinaryOpExpr)
	if !ok || op.Op != hclsyntax.OpModulo {
		return nil
	}
	divisor, diags := op.RHS.Value(nil)
	if diags.HasErrors() || divisor.IsNull() || !divisor.IsKnown() || !divisor.Type().Equals(cty.Number) {
		return nil
	}
	if divisor.Equals(cty.Zero).True() {
		return hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Modulo by zero",
			Detail:   "The right operand of % must not be zero.",
			Subject:  op.RHS.Range().Ptr(),
		}}
	}
	return nil
}
