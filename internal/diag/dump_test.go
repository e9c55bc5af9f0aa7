package diag

import (
	"testing"

	"github.com/tidwall/gjson"

	"github.com/cirius-lang/cirius/internal/ast"
	"github.com/cirius-lang/cirius/internal/ir"
)

func TestDumpIRFieldsRoundTrip(t *testing.T) {
	instrs := []ir.Instr{
		ir.FuncBegin("main"),
		ir.Assign("t1", ir.LitArg(int64(5))),
		ir.Print(ir.NameArg("t1")),
	}
	doc, err := DumpIR(instrs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op := gjson.Get(doc, "0.op").String(); op != ir.FUNC_BEGIN.String() {
		t.Errorf("instr 0 op = %q, want %q", op, ir.FUNC_BEGIN.String())
	}
	if dest := gjson.Get(doc, "1.dest").String(); dest != "t1" {
		t.Errorf("instr 1 dest = %q, want %q", dest, "t1")
	}
	if !gjson.Get(doc, "2.arg1").Exists() {
		t.Error("instr 2 (PRINT) should carry arg1")
	}
}

func TestDumpASTListsFunctions(t *testing.T) {
	prog := &ast.Program{
		Functions: []*ast.FunctionDecl{
			{Name: "add", Params: []string{"a", "b"}, Body: &ast.Block{}},
			{Name: "main", Params: nil, Body: &ast.Block{Statements: []ast.Statement{
				&ast.PrintStatement{Value: &ast.Number{IntVal: 1}},
			}}},
		},
	}
	doc, err := DumpAST(prog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name := gjson.Get(doc, "functions.0.name").String(); name != "add" {
		t.Errorf("functions.0.name = %q, want %q", name, "add")
	}
	if n := gjson.Get(doc, "functions.0.params.#").Int(); n != 2 {
		t.Errorf("functions.0.params count = %d, want 2", n)
	}
	if n := gjson.Get(doc, "functions.1.statementCount").Int(); n != 1 {
		t.Errorf("functions.1.statementCount = %d, want 1", n)
	}
}
