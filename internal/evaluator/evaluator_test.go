package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Evaluator {
	t.Helper()
	out := map[string]Evaluator{}
	for _, kind := range Kinds() {
		e, err := New(kind)
		require.NoError(t, err)
		out[kind] = e
	}
	return out
}

func TestEvaluate_Success(t *testing.T) {
	cases := []struct {
		expression string
		want       float64
	}{
		{"3", 3},
		{"1 + 2", 3},
		{"3 + 2", 5},
		{"2 * (3 + 4)", 14},
		{"7 / 2", 3.5},
		{"10 % 3", 1},
		{"-5 + 2", -3},
		{"5 - (-3)", 8},
		{"(-3) * 2", -6},
		{"1.5 * 2", 3},
		{" 4\t- 1 ", 3},
		{"-7 % 3", -1},
		{"7.5 % 2", 1.5},
		{"(10 % 4) % 3", 2},
		{"9223372036854775807 + 1", 9223372036854775808},
		{"99999999999999999999 * 10", 1e21},
	}

	for kind, e := range backends(t) {
		t.Run(kind, func(t *testing.T) {
			for _, tc := range cases {
				got, err := e.Evaluate(tc.expression)
				require.NoError(t, err, "expression %q", tc.expression)
				assert.InDelta(t, tc.want, got, 1e-9, "expression %q", tc.expression)
			}
		})
	}
}

func TestEvaluate_Failure(t *testing.T) {
	cases := []struct {
		expression string
		want       error
	}{
		{"1 + )", ErrMalformedExpression},
		{"", ErrMalformedExpression},
		{"   ", ErrMalformedExpression},
		{"3 5", ErrMalformedExpression},
		{"1 / 0", ErrMalformedExpression},
		{"abc", ErrUnsupportedCharacter},
		{"1 + a1", ErrUnsupportedCharacter},
		{"#ERR + 1", ErrUnsupportedCharacter},
		{"1 == 1", ErrUnsupportedCharacter},
		{"5 % 0", ErrMalformedExpression},
		{"19 % (2 - 2)", ErrMalformedExpression},
		{"1 + (4 % 0.0)", ErrMalformedExpression},
		{"2 ** 3", ErrMalformedExpression},
		{".5", ErrMalformedExpression},
		{"5.", ErrMalformedExpression},
		{"1 + .5", ErrMalformedExpression},
	}

	for kind, e := range backends(t) {
		t.Run(kind, func(t *testing.T) {
			for _, tc := range cases {
				_, err := e.Evaluate(tc.expression)
				assert.ErrorIs(t, err, tc.want, "expression %q", tc.expression)
			}
		})
	}
}

func TestEvaluate_BackendsAgree(t *testing.T) {
	expressions := []string{
		"9223372036854775807 * 2",
		"(0 - 9223372036854775807) - 10",
		"17 % 5 * 3",
		"(0 - 17) % 5",
		"1 / 3",
		"1000000 * 1000000 * 1000000 * 1000000",
	}

	hclBackend, exprBackend := NewHCL(), NewExpr()
	for _, expression := range expressions {
		want, err := hclBackend.Evaluate(expression)
		require.NoError(t, err, "hcl %q", expression)
		got, err := exprBackend.Evaluate(expression)
		require.NoError(t, err, "expr %q", expression)
		assert.Equal(t, want, got, "expression %q", expression)
	}
}

func TestFloatLiterals(t *testing.T) {
	assert.Equal(t, "1.0 + 2.5 * (30.0 % 4.0)", floatLiterals("1 + 2.5 * (30 % 4)"))
	assert.Equal(t, "", floatLiterals(""))
}

func TestNew(t *testing.T) {
	e, err := New("")
	require.NoError(t, err)
	assert.IsType(t, &HCL{}, e)

	e, err = New("EXPR")
	require.NoError(t, err)
	assert.IsType(t, &Expr{}, e)

	_, err = New("lua")
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestExpr_CachesPrograms(t *testing.T) {
	e := NewExpr()
	for i := 0; i < 3; i++ {
		got, err := e.Evaluate("6 * 7")
		require.NoError(t, err)
		assert.Equal(t, 42.0, got)
	}

	n := 0
	e.cache.Range(func(_, _ any) bool {
		n++
		return true
	})
	assert.Equal(t, 1, n)
}

func TestFunc(t *testing.T) {
	calls := 0
	f := Func(func(string) (float64, error) {
		calls++
		return 1, nil
	})
	v, err := f.Evaluate("anything")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
	assert.Equal(t, 1, calls)
}
