package interp

import (
	"fmt"
	"strconv"

	"github.com/cirius-lang/cirius/internal/ast"
	"github.com/cirius-lang/cirius/internal/ciriuserrors"
)

// Value is a Cirius runtime value: int64, float64, bool, string,
// *UserFn, or *BuiltinFn (spec §3: "the tagged union {integer,
// floating-point, boolean, text, function-declaration reference,
// built-in callable}").
type Value any

// UserFn is a function-declaration reference value.
type UserFn struct {
	Decl *ast.FunctionDecl
}

// BuiltinFn is a host-implemented callable (spec §9 "Built-ins":
// Callable = UserFn | BuiltinFn(arity, implementation)).
type BuiltinFn struct {
	Name  string
	Arity int
	Impl  func(args []Value) (Value, error)
}

func truthy(v Value) bool {
	switch x := v.(type) {
	case int64:
		return x != 0
	case float64:
		return x != 0
	case bool:
		return x
	case string:
		return x != ""
	case nil:
		return false
	default:
		return true
	}
}

func formatValue(v Value) string {
	switch x := v.(type) {
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		if x {
			return "true"
		}
		return "false"
	case string:
		return x
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", x)
	}
}

// builtins returns the first-class built-in callables bound at global
// scope (spec §9 "Built-ins"; SPEC_FULL supplemented feature #1). `input`
// is omitted: INPUT is tokenized as a keyword, not an identifier, so the
// grammar never produces a FunctionCall node that could reach it.
func builtins() map[string]Value {
	return map[string]Value{
		"str":   &BuiltinFn{Name: "str", Arity: 1, Impl: builtinStr},
		"int":   &BuiltinFn{Name: "int", Arity: 1, Impl: builtinInt},
		"float": &BuiltinFn{Name: "float", Arity: 1, Impl: builtinFloat},
		"bool":  &BuiltinFn{Name: "bool", Arity: 1, Impl: builtinBool},
	}
}

func builtinStr(args []Value) (Value, error) {
	return formatValue(args[0]), nil
}

func builtinInt(args []Value) (Value, error) {
	switch x := args[0].(type) {
	case int64:
		return x, nil
	case float64:
		return int64(x), nil
	case bool:
		if x {
			return int64(1), nil
		}
		return int64(0), nil
	case string:
		n, err := strconv.ParseInt(x, 10, 64)
		if err != nil {
			return nil, ciriuserrors.New(ciriuserrors.Runtime, noPos, "int(): cannot convert %q", x)
		}
		return n, nil
	}
	return nil, ciriuserrors.New(ciriuserrors.Runtime, noPos, "int(): unsupported argument")
}

func builtinFloat(args []Value) (Value, error) {
	switch x := args[0].(type) {
	case int64:
		return float64(x), nil
	case float64:
		return x, nil
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return nil, ciriuserrors.New(ciriuserrors.Runtime, noPos, "float(): cannot convert %q", x)
		}
		return f, nil
	}
	return nil, ciriuserrors.New(ciriuserrors.Runtime, noPos, "float(): unsupported argument")
}

func builtinBool(args []Value) (Value, error) {
	return truthy(args[0]), nil
}
