package ir

import (
	"fmt"

	"github.com/cirius-lang/cirius/internal/ast"
	"github.com/cirius-lang/cirius/internal/ciriuserrors"
	"github.com/cirius-lang/cirius/internal/semantic"
	"github.com/cirius-lang/cirius/internal/token"
)

// Generator lowers a semantically-checked AST into a flat instruction
// list (spec §4.4), allocating fresh temporaries and labels as it goes.
type Generator struct {
	instrs   []Instr
	tempNo   int
	labelNos map[string]int
}

// NewGenerator creates an empty Generator.
func NewGenerator() *Generator {
	return &Generator{labelNos: make(map[string]int)}
}

// Generate lowers prog to a flat instruction list.
func Generate(prog *ast.Program) ([]Instr, error) {
	g := NewGenerator()
	for _, fn := range prog.Functions {
		if err := g.genFunction(fn); err != nil {
			return nil, err
		}
	}
	return g.instrs, nil
}

func (g *Generator) emit(in Instr) { g.instrs = append(g.instrs, in) }

func (g *Generator) newTemp() string {
	g.tempNo++
	return fmt.Sprintf("t%d", g.tempNo)
}

// newLabel allocates a fresh label with the given domain prefix (spec
// §4.4: "END_IF, ELIF, ELSE, WHILE, END_WHILE, FOR, END_FOR"), each with
// its own monotonically increasing counter.
func (g *Generator) newLabel(prefix string) string {
	g.labelNos[prefix]++
	return fmt.Sprintf("%s_%d", prefix, g.labelNos[prefix])
}

func (g *Generator) genFunction(fn *ast.FunctionDecl) error {
	g.emit(FuncBegin(fn.Name))
	if err := g.genBlock(fn.Body); err != nil {
		return err
	}
	g.emit(FuncEnd(fn.Name))
	return nil
}

func (g *Generator) genBlock(block *ast.Block) error {
	for _, stmt := range block.Statements {
		if err := g.genStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) genStatement(stmt ast.Statement) error {
	switch st := stmt.(type) {
	case *ast.Assignment:
		val, err := g.genExpr(st.Expr)
		if err != nil {
			return err
		}
		g.emit(Assign(st.Target.Name, val))
		return nil

	case *ast.IfStatement:
		return g.genIf(st)

	case *ast.WhileStatement:
		return g.genWhile(st)

	case *ast.ForStatement:
		return g.genFor(st)

	case *ast.ReturnStatement:
		if st.Value == nil {
			g.emit(Return(nil))
			return nil
		}
		val, err := g.genExpr(st.Value)
		if err != nil {
			return err
		}
		g.emit(Return(&val))
		return nil

	case *ast.PrintStatement:
		val, err := g.genExpr(st.Value)
		if err != nil {
			return err
		}
		g.emit(Print(val))
		return nil

	case *ast.InputStatement:
		// Standalone `input();` as a statement discards the value; spec
		// §4.4's INPUT op always requires a dest, so route it through a
		// throwaway temporary.
		g.emit(Input(g.newTemp()))
		return nil

	case *ast.FunctionCall:
		_, err := g.genCall(st, "")
		return err

	case *ast.Block:
		return g.genBlock(st)
	}
	return ciriuserrors.New(ciriuserrors.Runtime, stmt.Pos(), "ir generator: unsupported statement %T", stmt)
}

// genIf lowers if/elif/else exactly per spec §4.4.
func (g *Generator) genIf(st *ast.IfStatement) error {
	endLabel := g.newLabel("END_IF")

	// Precompute the label each IF_FALSE_GOTO branches to when its
	// condition is false: the next elif, or the else clause, or the end.
	branchLabels := make([]string, len(st.Elifs))
	for i := range st.Elifs {
		branchLabels[i] = g.newLabel("ELIF")
	}
	elseLabel := ""
	if st.Otherwise != nil {
		elseLabel = g.newLabel("ELSE")
	}

	nextLabel := func(i int) string {
		if i < len(branchLabels) {
			return branchLabels[i]
		}
		if elseLabel != "" {
			return elseLabel
		}
		return endLabel
	}

	condVal, err := g.genExpr(st.Cond)
	if err != nil {
		return err
	}
	condTemp := g.materialize(condVal)
	g.emit(IfFalseGoto(condTemp, nextLabel(0)))
	if err := g.genBlock(st.Then); err != nil {
		return err
	}
	g.emit(Goto(endLabel))

	for i, clause := range st.Elifs {
		g.emit(Label(branchLabels[i]))
		cv, err := g.genExpr(clause.Cond)
		if err != nil {
			return err
		}
		ct := g.materialize(cv)
		g.emit(IfFalseGoto(ct, nextLabel(i+1)))
		if err := g.genBlock(clause.Block); err != nil {
			return err
		}
		g.emit(Goto(endLabel))
	}

	if st.Otherwise != nil {
		g.emit(Label(elseLabel))
		if err := g.genBlock(st.Otherwise); err != nil {
			return err
		}
	}

	g.emit(Label(endLabel))
	return nil
}

func (g *Generator) genWhile(st *ast.WhileStatement) error {
	startLabel := g.newLabel("WHILE")
	endLabel := g.newLabel("END_WHILE")

	g.emit(Label(startLabel))
	cv, err := g.genExpr(st.Cond)
	if err != nil {
		return err
	}
	ct := g.materialize(cv)
	g.emit(IfFalseGoto(ct, endLabel))
	if err := g.genBlock(st.Body); err != nil {
		return err
	}
	g.emit(Goto(startLabel))
	g.emit(Label(endLabel))
	return nil
}

func (g *Generator) genFor(st *ast.ForStatement) error {
	startLabel := g.newLabel("FOR")
	endLabel := g.newLabel("END_FOR")

	startVal, err := g.genExpr(st.Start)
	if err != nil {
		return err
	}
	g.emit(Assign(st.Var, startVal))

	g.emit(Label(startLabel))
	endVal, err := g.genExpr(st.End)
	if err != nil {
		return err
	}
	endTemp := g.materialize(endVal)
	condTemp := g.newTemp()
	g.emit(LtEq(condTemp, st.Var, endTemp))
	g.emit(IfFalseGoto(condTemp, endLabel))
	if err := g.genBlock(st.Body); err != nil {
		return err
	}
	g.emit(Binary(ADD, st.Var, NameArg(st.Var), LitArg(int64(1))))
	g.emit(Goto(startLabel))
	g.emit(Label(endLabel))
	return nil
}

// materialize copies an Arg into a fresh temp when it is not already a
// name, since IF_FALSE_GOTO/LT_EQ address their condition by name.
func (g *Generator) materialize(v Arg) string {
	if v.IsName {
		return v.Name
	}
	t := g.newTemp()
	g.emit(Assign(t, v))
	return t
}

// genExpr lowers an expression, returning the Arg that holds its value:
// a literal or name for leaves, or a fresh temp for every non-leaf node
// (spec §4.4: "each non-leaf expression allocates a fresh temporary").
func (g *Generator) genExpr(expr ast.Expression) (Arg, error) {
	switch e := expr.(type) {
	case *ast.Number:
		if e.IsFloat {
			return LitArg(e.FloatVal), nil
		}
		return LitArg(e.IntVal), nil
	case *ast.String:
		return LitArg(e.Value), nil
	case *ast.Boolean:
		return LitArg(e.Value), nil
	case *ast.Var:
		return NameArg(e.Name), nil
	case *ast.InputStatement:
		t := g.newTemp()
		g.emit(Input(t))
		return NameArg(t), nil
	case *ast.BinaryOp:
		lhs, err := g.genExpr(e.Left)
		if err != nil {
			return Arg{}, err
		}
		rhs, err := g.genExpr(e.Right)
		if err != nil {
			return Arg{}, err
		}
		op, err := binaryOp(e.Op)
		if err != nil {
			return Arg{}, ciriuserrors.New(ciriuserrors.Runtime, e.Pos(), "%s", err.Error())
		}
		t := g.newTemp()
		g.emit(Binary(op, t, lhs, rhs))
		return NameArg(t), nil
	case *ast.UnaryOp:
		operand, err := g.genExpr(e.Operand)
		if err != nil {
			return Arg{}, err
		}
		op, err := unaryOp(e.Op)
		if err != nil {
			return Arg{}, ciriuserrors.New(ciriuserrors.Runtime, e.Pos(), "%s", err.Error())
		}
		t := g.newTemp()
		g.emit(Unary(op, t, operand))
		return NameArg(t), nil
	case *ast.FunctionCall:
		return g.genCall(e, g.newTemp())
	}
	return Arg{}, ciriuserrors.New(ciriuserrors.Runtime, expr.Pos(), "ir generator: unsupported expression %T", expr)
}

// genCall emits one ARG per argument followed by CALL. destName is empty
// when the call appears in statement position and its result is
// discarded.
func (g *Generator) genCall(call *ast.FunctionCall, destName string) (Arg, error) {
	if _, ok := semantic.Builtins[call.Name]; ok {
		return Arg{}, ciriuserrors.New(ciriuserrors.Runtime, call.Pos(),
			"built-in %q has no compiled form", call.Name)
	}
	for _, arg := range call.Args {
		v, err := g.genExpr(arg)
		if err != nil {
			return Arg{}, err
		}
		g.emit(ArgInstr(v))
	}
	g.emit(Call(destName, call.Name, len(call.Args)))
	if destName == "" {
		return Arg{}, nil
	}
	return NameArg(destName), nil
}

func binaryOp(kind token.Kind) (Op, error) {
	switch kind {
	case token.PLUS:
		return ADD, nil
	case token.MINUS:
		return SUB, nil
	case token.MUL:
		return MUL, nil
	case token.DIV:
		return DIV, nil
	case token.MOD:
		return MOD, nil
	case token.LT:
		return LT, nil
	case token.LE:
		return LE, nil
	case token.GT:
		return GT, nil
	case token.GE:
		return GE, nil
	case token.EQ:
		return EQ, nil
	case token.NE:
		return NE, nil
	case token.AND:
		return AND, nil
	case token.OR:
		return OR, nil
	}
	return 0, fmt.Errorf("unsupported binary operator %s", kind)
}

func unaryOp(kind token.Kind) (Op, error) {
	switch kind {
	case token.NOT:
		return NOT, nil
	case token.MINUS:
		return MINUS, nil
	}
	return 0, fmt.Errorf("unsupported unary operator %s", kind)
}
