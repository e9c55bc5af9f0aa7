// Package interp implements the Cirius tree-walking interpreter (spec
// §4.7): it evaluates an AST directly, producing side effects on
// stdin/stdout.
package interp

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cirius-lang/cirius/internal/ast"
	"github.com/cirius-lang/cirius/internal/ciriuserrors"
	"github.com/cirius-lang/cirius/internal/token"
)

var noPos = token.Position{}

// scope is one frame of the runtime environment: a mutable map of
// bindings with a parent pointer (spec §3 "Environment").
type scope struct {
	vars   map[string]Value
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{vars: make(map[string]Value), parent: parent}
}

func (s *scope) get(name string) (Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// assign writes into the innermost scope that already binds name,
// walking up the parent chain; if no ancestor binds it, the name is
// defined fresh in s. This is what makes a loop body able to mutate a
// counter declared outside it while still keeping a genuinely new name
// scoped to the block it was first assigned in (spec §4.7, §9).
func (s *scope) assign(name string, v Value) {
	for cur := s; cur != nil; cur = cur.parent {
		if _, ok := cur.vars[name]; ok {
			cur.vars[name] = v
			return
		}
	}
	s.vars[name] = v
}

// signal is the explicit non-local control-flow result threaded up the
// walk by ReturnStatement (spec §9: "value | returned(value) | normal",
// not the host's exception machinery).
type signal struct {
	returned bool
	value    Value
}

var normal = signal{}

// Interpreter runs a checked Program against a stdin/stdout pair.
type Interpreter struct {
	global *scope
	in     *bufio.Reader
	out    io.Writer
}

// New creates an Interpreter bound to the given stdin/stdout.
func New(in io.Reader, out io.Writer) *Interpreter {
	return &Interpreter{global: newScope(nil), in: bufio.NewReader(in), out: out}
}

// Run binds every function in prog at global scope, injects built-ins,
// then invokes `main` with no arguments. Missing `main` is a RuntimeError
// (spec §4.7).
func Run(prog *ast.Program, in io.Reader, out io.Writer) error {
	it := New(in, out)
	for name, fn := range builtins() {
		it.global.vars[name] = fn
	}
	for _, fn := range prog.Functions {
		it.global.vars[fn.Name] = &UserFn{Decl: fn}
	}

	mainFn, ok := it.global.vars["main"]
	if !ok {
		return ciriuserrors.New(ciriuserrors.Runtime, noPos, "missing main function")
	}
	user, ok := mainFn.(*UserFn)
	if !ok {
		return ciriuserrors.New(ciriuserrors.Runtime, noPos, "main is not a function")
	}
	_, err := it.callUser(user, nil)
	return err
}

func (it *Interpreter) execBlock(block *ast.Block, parent *scope) (signal, error) {
	s := newScope(parent)
	for _, stmt := range block.Statements {
		sig, err := it.execStatement(stmt, s)
		if err != nil {
			return normal, err
		}
		if sig.returned {
			return sig, nil
		}
	}
	return normal, nil
}

func (it *Interpreter) execStatement(stmt ast.Statement, s *scope) (signal, error) {
	switch st := stmt.(type) {
	case *ast.Assignment:
		v, err := it.eval(st.Expr, s)
		if err != nil {
			return normal, err
		}
		s.assign(st.Target.Name, v)
		return normal, nil

	case *ast.IfStatement:
		cond, err := it.eval(st.Cond, s)
		if err != nil {
			return normal, err
		}
		if truthy(cond) {
			return it.execBlock(st.Then, s)
		}
		for _, clause := range st.Elifs {
			cv, err := it.eval(clause.Cond, s)
			if err != nil {
				return normal, err
			}
			if truthy(cv) {
				return it.execBlock(clause.Block, s)
			}
		}
		if st.Otherwise != nil {
			return it.execBlock(st.Otherwise, s)
		}
		return normal, nil

	case *ast.WhileStatement:
		for {
			cond, err := it.eval(st.Cond, s)
			if err != nil {
				return normal, err
			}
			if !truthy(cond) {
				return normal, nil
			}
			sig, err := it.execBlock(st.Body, s)
			if err != nil {
				return normal, err
			}
			if sig.returned {
				return sig, nil
			}
		}

	case *ast.ForStatement:
		startV, err := it.eval(st.Start, s)
		if err != nil {
			return normal, err
		}
		endV, err := it.eval(st.End, s)
		if err != nil {
			return normal, err
		}
		start, err := asInt(startV)
		if err != nil {
			return normal, err
		}
		end, err := asInt(endV)
		if err != nil {
			return normal, err
		}
		loopScope := newScope(s)
		for i := start; i <= end; i++ {
			loopScope.vars[st.Var] = i
			sig, err := it.execBlock(st.Body, loopScope)
			if err != nil {
				return normal, err
			}
			if sig.returned {
				return sig, nil
			}
		}
		return normal, nil

	case *ast.ReturnStatement:
		if st.Value == nil {
			return signal{returned: true, value: nil}, nil
		}
		v, err := it.eval(st.Value, s)
		if err != nil {
			return normal, err
		}
		return signal{returned: true, value: v}, nil

	case *ast.PrintStatement:
		v, err := it.eval(st.Value, s)
		if err != nil {
			return normal, err
		}
		fmt.Fprintf(it.out, "%s\n", formatValue(v))
		return normal, nil

	case *ast.InputStatement:
		_, err := it.readInt()
		return normal, err

	case *ast.FunctionCall:
		_, err := it.evalCall(st, s)
		return normal, err

	case *ast.Block:
		return it.execBlock(st, s)
	}
	return normal, ciriuserrors.New(ciriuserrors.Runtime, stmt.Pos(), "interpreter: unsupported statement %T", stmt)
}

func (it *Interpreter) eval(expr ast.Expression, s *scope) (Value, error) {
	switch e := expr.(type) {
	case *ast.Number:
		if e.IsFloat {
			return e.FloatVal, nil
		}
		return e.IntVal, nil
	case *ast.String:
		return e.Value, nil
	case *ast.Boolean:
		return e.Value, nil
	case *ast.Var:
		v, ok := s.get(e.Name)
		if !ok {
			return nil, ciriuserrors.New(ciriuserrors.Runtime, e.Pos(), "undefined name %q", e.Name)
		}
		return v, nil
	case *ast.InputStatement:
		return it.readInt()
	case *ast.BinaryOp:
		return it.evalBinary(e, s)
	case *ast.UnaryOp:
		v, err := it.eval(e.Operand, s)
		if err != nil {
			return nil, err
		}
		return evalUnary(e, v)
	case *ast.FunctionCall:
		return it.evalCall(e, s)
	}
	return nil, ciriuserrors.New(ciriuserrors.Runtime, expr.Pos(), "interpreter: unsupported expression %T", expr)
}

// evalBinary implements AND/OR as short-circuiting: the right operand is
// evaluated only when the left one does not decide the result, so an
// input() call in a skipped right operand reads nothing from stdin.
func (it *Interpreter) evalBinary(e *ast.BinaryOp, s *scope) (Value, error) {
	if e.Op == token.AND || e.Op == token.OR {
		lhs, err := it.eval(e.Left, s)
		if err != nil {
			return nil, err
		}
		if e.Op == token.AND && !truthy(lhs) {
			return false, nil
		}
		if e.Op == token.OR && truthy(lhs) {
			return true, nil
		}
		rhs, err := it.eval(e.Right, s)
		if err != nil {
			return nil, err
		}
		return truthy(rhs), nil
	}

	lhs, err := it.eval(e.Left, s)
	if err != nil {
		return nil, err
	}
	rhs, err := it.eval(e.Right, s)
	if err != nil {
		return nil, err
	}
	return applyBinary(e, lhs, rhs)
}

func (it *Interpreter) evalCall(call *ast.FunctionCall, s *scope) (Value, error) {
	callee, ok := s.get(call.Name)
	if !ok {
		return nil, ciriuserrors.New(ciriuserrors.Runtime, call.Pos(), "%q is not a function", call.Name)
	}

	args := make([]Value, len(call.Args))
	for i, a := range call.Args {
		v, err := it.eval(a, s)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	switch fn := callee.(type) {
	case *BuiltinFn:
		if fn.Arity != len(args) {
			return nil, ciriuserrors.New(ciriuserrors.Runtime, call.Pos(),
				"%q expects %d argument(s), got %d", call.Name, fn.Arity, len(args))
		}
		return fn.Impl(args)
	case *UserFn:
		if len(fn.Decl.Params) != len(args) {
			return nil, ciriuserrors.New(ciriuserrors.Runtime, call.Pos(),
				"%q expects %d argument(s), got %d", call.Name, len(fn.Decl.Params), len(args))
		}
		return it.callUser(fn, args)
	}
	return nil, ciriuserrors.New(ciriuserrors.Runtime, call.Pos(), "%q is not callable", call.Name)
}

// callUser opens a call scope parented to globals (not the caller's
// scope), binds parameters, and evaluates the body (spec §3, §4.7: "every
// function call pushes a new scope whose parent is globals").
func (it *Interpreter) callUser(fn *UserFn, args []Value) (Value, error) {
	callScope := newScope(it.global)
	for i, p := range fn.Decl.Params {
		callScope.vars[p] = args[i]
	}
	sig, err := it.execBlock(fn.Decl.Body, callScope)
	if err != nil {
		return nil, err
	}
	return sig.value, nil
}

func (it *Interpreter) readInt() (Value, error) {
	line, err := it.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" && err != nil {
		return nil, ciriuserrors.New(ciriuserrors.Runtime, noPos, "input(): no value available")
	}
	n, perr := strconv.ParseInt(line, 10, 64)
	if perr != nil {
		return nil, ciriuserrors.New(ciriuserrors.Runtime, noPos, "input(): %q is not an integer", line)
	}
	return n, nil
}

func asInt(v Value) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case float64:
		return int64(x), nil
	}
	return 0, ciriuserrors.New(ciriuserrors.Runtime, noPos, "expected integer range bound")
}
