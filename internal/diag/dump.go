// Package diag builds the JSON debug dumps behind `compile --dump-ir=json`
// and `run --dump-ast=json` (SPEC_FULL "Debug dumps"). It never touches
// the core pipeline packages; only cmd/cirius imports it.
package diag

import (
	"fmt"

	"github.com/tidwall/sjson"

	"github.com/cirius-lang/cirius/internal/ast"
	"github.com/cirius-lang/cirius/internal/ir"
)

// DumpIR renders instrs as a JSON array of {op, dest?, arg1?, arg2?}
// objects, one per instruction, in order.
func DumpIR(instrs []ir.Instr) (string, error) {
	doc := "[]"
	var err error
	for i, in := range instrs {
		prefix := fmt.Sprintf("%d.", i)
		if doc, err = sjson.Set(doc, prefix+"op", in.Op.String()); err != nil {
			return "", err
		}
		if in.Dest != nil {
			if doc, err = sjson.Set(doc, prefix+"dest", in.Dest.String()); err != nil {
				return "", err
			}
		}
		if in.Arg1 != nil {
			if doc, err = sjson.Set(doc, prefix+"arg1", in.Arg1.String()); err != nil {
				return "", err
			}
		}
		if in.Arg2 != nil {
			if doc, err = sjson.Set(doc, prefix+"arg2", in.Arg2.String()); err != nil {
				return "", err
			}
		}
	}
	return doc, nil
}

// DumpAST renders a summary of prog: one entry per function with its
// name and parameter list. Full-fidelity AST serialization is not
// required by spec.md (CLI debug dumps are explicitly listed as thin
// plumbing outside the core pipeline, §1).
func DumpAST(prog *ast.Program) (string, error) {
	doc := "{\"functions\":[]}"
	var err error
	for i, fn := range prog.Functions {
		base := fmt.Sprintf("functions.%d.", i)
		if doc, err = sjson.Set(doc, base+"name", fn.Name); err != nil {
			return "", err
		}
		if doc, err = sjson.Set(doc, base+"params", fn.Params); err != nil {
			return "", err
		}
		if doc, err = sjson.Set(doc, base+"statementCount", len(fn.Body.Statements)); err != nil {
			return "", err
		}
	}
	return doc, nil
}
