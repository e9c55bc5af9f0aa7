// Package semantic implements the Cirius scope- and arity-checking pass
// (spec §4.3). It walks the AST in place and reports the first violation;
// it never rewrites the tree.
package semantic

import (
	"github.com/cirius-lang/cirius/internal/ast"
	"github.com/cirius-lang/cirius/internal/ciriuserrors"
)

// bindingKind distinguishes what a name in scope refers to.
type bindingKind int

const (
	bindVar bindingKind = iota
	bindParam
	bindFunc
)

type binding struct {
	kind  bindingKind
	arity int // meaningful only for bindFunc
}

// scope is one frame of the lexical stack: a map of local bindings plus a
// parent pointer (spec §3, "Symbol table").
type scope struct {
	names  map[string]binding
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{names: make(map[string]binding), parent: parent}
}

func (s *scope) lookup(name string) (binding, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if b, ok := cur.names[name]; ok {
			return b, true
		}
	}
	return binding{}, false
}

// Builtins is the set of built-in callables visible at global scope,
// alongside user functions (spec §9 "Built-ins"; SPEC_FULL "supplemented
// features" #1). Each has arity 1.
var Builtins = map[string]int{
	"str":   1,
	"int":   1,
	"float": 1,
	"bool":  1,
}

// Analyzer runs the scope/arity pass described in spec §4.3.
type Analyzer struct {
	global *scope
}

// Analyze checks prog and returns the first violation found, or nil.
func Analyze(prog *ast.Program) error {
	a := &Analyzer{global: newScope(nil)}
	for name, arity := range Builtins {
		a.global.names[name] = binding{kind: bindFunc, arity: arity}
	}

	// Register every function in the global scope first, so forward
	// references and recursion resolve (spec §4.3: "two-pass behavior
	// through a single recursive walk").
	for _, fn := range prog.Functions {
		if _, exists := a.global.names[fn.Name]; exists {
			return ciriuserrors.New(ciriuserrors.Semantic, fn.Pos(), "duplicate declaration of %q", fn.Name)
		}
		a.global.names[fn.Name] = binding{kind: bindFunc, arity: len(fn.Params)}
	}

	for _, fn := range prog.Functions {
		if err := a.analyzeFunction(fn); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) analyzeFunction(fn *ast.FunctionDecl) error {
	fnScope := newScope(a.global)
	for _, p := range fn.Params {
		if _, exists := fnScope.names[p]; exists {
			return ciriuserrors.New(ciriuserrors.Semantic, fn.Pos(), "duplicate declaration of %q", p)
		}
		fnScope.names[p] = binding{kind: bindParam}
	}
	return a.analyzeBlock(fn.Body, fnScope)
}

func (a *Analyzer) analyzeBlock(block *ast.Block, parent *scope) error {
	s := newScope(parent)
	for _, stmt := range block.Statements {
		if err := a.analyzeStatement(stmt, s); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) analyzeStatement(stmt ast.Statement, s *scope) error {
	switch st := stmt.(type) {
	case *ast.Assignment:
		if err := a.analyzeExpr(st.Expr, s); err != nil {
			return err
		}
		// Implicit declaration on first store in the current scope
		// (spec §4.3, preserved exactly per spec §9).
		if _, exists := s.names[st.Target.Name]; !exists {
			s.names[st.Target.Name] = binding{kind: bindVar}
		}
		return nil

	case *ast.IfStatement:
		if err := a.analyzeExpr(st.Cond, s); err != nil {
			return err
		}
		if err := a.analyzeBlock(st.Then, s); err != nil {
			return err
		}
		for _, e := range st.Elifs {
			if err := a.analyzeExpr(e.Cond, s); err != nil {
				return err
			}
			if err := a.analyzeBlock(e.Block, s); err != nil {
				return err
			}
		}
		if st.Otherwise != nil {
			return a.analyzeBlock(st.Otherwise, s)
		}
		return nil

	case *ast.WhileStatement:
		if err := a.analyzeExpr(st.Cond, s); err != nil {
			return err
		}
		return a.analyzeBlock(st.Body, s)

	case *ast.ForStatement:
		if err := a.analyzeExpr(st.Start, s); err != nil {
			return err
		}
		if err := a.analyzeExpr(st.End, s); err != nil {
			return err
		}
		loopScope := newScope(s)
		loopScope.names[st.Var] = binding{kind: bindVar}
		return a.analyzeBlock(st.Body, loopScope)

	case *ast.ReturnStatement:
		if st.Value != nil {
			return a.analyzeExpr(st.Value, s)
		}
		return nil

	case *ast.PrintStatement:
		return a.analyzeExpr(st.Value, s)

	case *ast.InputStatement:
		return nil

	case *ast.FunctionCall:
		return a.analyzeCall(st, s)

	case *ast.Block:
		return a.analyzeBlock(st, s)
	}
	return ciriuserrors.New(ciriuserrors.Semantic, stmt.Pos(), "unsupported statement form")
}

func (a *Analyzer) analyzeExpr(expr ast.Expression, s *scope) error {
	switch e := expr.(type) {
	case *ast.Number, *ast.String, *ast.Boolean:
		return nil
	case *ast.InputStatement:
		return nil
	case *ast.Var:
		if _, ok := s.lookup(e.Name); !ok {
			return ciriuserrors.New(ciriuserrors.Semantic, e.Pos(), "undeclared reference to %q", e.Name)
		}
		return nil
	case *ast.BinaryOp:
		if err := a.analyzeExpr(e.Left, s); err != nil {
			return err
		}
		return a.analyzeExpr(e.Right, s)
	case *ast.UnaryOp:
		return a.analyzeExpr(e.Operand, s)
	case *ast.FunctionCall:
		return a.analyzeCall(e, s)
	}
	return ciriuserrors.New(ciriuserrors.Semantic, expr.Pos(), "unsupported expression form")
}

func (a *Analyzer) analyzeCall(call *ast.FunctionCall, s *scope) error {
	for _, arg := range call.Args {
		if err := a.analyzeExpr(arg, s); err != nil {
			return err
		}
	}
	// FunctionCall resolves at the global scope only (spec §3 invariant).
	b, ok := a.global.names[call.Name]
	if !ok || b.kind != bindFunc {
		return ciriuserrors.New(ciriuserrors.Semantic, call.Pos(), "%q is not a function", call.Name)
	}
	if b.arity != len(call.Args) {
		return ciriuserrors.New(ciriuserrors.Semantic, call.Pos(),
			"function %q expects %d argument(s), got %d", call.Name, b.arity, len(call.Args))
	}
	return nil
}
