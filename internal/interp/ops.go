package interp

import (
	"github.com/cirius-lang/cirius/internal/ast"
	"github.com/cirius-lang/cirius/internal/ciriuserrors"
	"github.com/cirius-lang/cirius/internal/token"
)

// applyBinary implements BinaryOp evaluation for every operator the
// lexer/parser can produce in an expression position (spec §4.2's
// Term/Factor/Comparison/Equality levels; AND/OR are handled by the
// caller for short-circuiting).
func applyBinary(e *ast.BinaryOp, lhs, rhs Value) (Value, error) {
	switch e.Op {
	case token.PLUS:
		if ls, ok := lhs.(string); ok {
			return ls + formatValue(rhs), nil
		}
		if rs, ok := rhs.(string); ok {
			return formatValue(lhs) + rs, nil
		}
		return numericBinary(e, lhs, rhs, func(a, b int64) (Value, error) { return a + b, nil }, func(a, b float64) (Value, error) { return a + b, nil })
	case token.MINUS:
		return numericBinary(e, lhs, rhs, func(a, b int64) (Value, error) { return a - b, nil }, func(a, b float64) (Value, error) { return a - b, nil })
	case token.MUL:
		return numericBinary(e, lhs, rhs, func(a, b int64) (Value, error) { return a * b, nil }, func(a, b float64) (Value, error) { return a * b, nil })
	case token.DIV:
		return numericBinary(e, lhs, rhs,
			func(a, b int64) (Value, error) {
				if b == 0 {
					return nil, ciriuserrors.New(ciriuserrors.Runtime, e.Pos(), "division by zero")
				}
				return a / b, nil
			},
			func(a, b float64) (Value, error) { return a / b, nil })
	case token.MOD:
		return numericBinary(e, lhs, rhs,
			func(a, b int64) (Value, error) {
				if b == 0 {
					return nil, ciriuserrors.New(ciriuserrors.Runtime, e.Pos(), "division by zero")
				}
				return a % b, nil
			},
			nil)
	case token.LT:
		return compare(e, lhs, rhs, func(c int) bool { return c < 0 })
	case token.LE:
		return compare(e, lhs, rhs, func(c int) bool { return c <= 0 })
	case token.GT:
		return compare(e, lhs, rhs, func(c int) bool { return c > 0 })
	case token.GE:
		return compare(e, lhs, rhs, func(c int) bool { return c >= 0 })
	case token.EQ:
		return valuesEqual(lhs, rhs), nil
	case token.NE:
		return !valuesEqual(lhs, rhs), nil
	}
	return nil, ciriuserrors.New(ciriuserrors.Runtime, e.Pos(), "unsupported operator %s", e.Op)
}

func evalUnary(e *ast.UnaryOp, v Value) (Value, error) {
	switch e.Op {
	case token.MINUS:
		switch x := v.(type) {
		case int64:
			return -x, nil
		case float64:
			return -x, nil
		}
		return nil, ciriuserrors.New(ciriuserrors.Runtime, e.Pos(), "unary '-' on non-numeric value")
	case token.NOT:
		return !truthy(v), nil
	}
	return nil, ciriuserrors.New(ciriuserrors.Runtime, e.Pos(), "unsupported unary operator %s", e.Op)
}

// numericBinary promotes to float64 when either operand is a float;
// otherwise applies the integer form.
func numericBinary(e *ast.BinaryOp, lhs, rhs Value, intOp func(a, b int64) (Value, error), floatOp func(a, b float64) (Value, error)) (Value, error) {
	lf, lIsFloat, lOk := asNumber(lhs)
	rf, rIsFloat, rOk := asNumber(rhs)
	if !lOk || !rOk {
		return nil, ciriuserrors.New(ciriuserrors.Runtime, e.Pos(), "operator %s requires numeric operands", e.Op)
	}
	if lIsFloat || rIsFloat {
		if floatOp == nil {
			return nil, ciriuserrors.New(ciriuserrors.Runtime, e.Pos(), "operator %s does not support float operands", e.Op)
		}
		return floatOp(lf, rf)
	}
	return intOp(int64(lf), int64(rf))
}

func asNumber(v Value) (value float64, isFloat, ok bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), false, true
	case float64:
		return x, true, true
	}
	return 0, false, false
}

func compare(e *ast.BinaryOp, lhs, rhs Value, pred func(c int) bool) (Value, error) {
	lf, _, lOk := asNumber(lhs)
	rf, _, rOk := asNumber(rhs)
	if !lOk || !rOk {
		return nil, ciriuserrors.New(ciriuserrors.Runtime, e.Pos(), "operator %s requires numeric operands", e.Op)
	}
	switch {
	case lf < rf:
		return pred(-1), nil
	case lf > rf:
		return pred(1), nil
	default:
		return pred(0), nil
	}
}

func valuesEqual(lhs, rhs Value) bool {
	lf, _, lOk := asNumber(lhs)
	rf, _, rOk := asNumber(rhs)
	if lOk && rOk {
		return lf == rf
	}
	return lhs == rhs
}
