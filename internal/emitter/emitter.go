// Package emitter translates an optimized IR instruction list into C
// source text (spec §4.6). It is deliberately thin and integer-biased.
package emitter

import (
	"fmt"
	"strings"

	"github.com/cirius-lang/cirius/internal/ir"
)

var opSymbols = map[ir.Op]string{
	ir.ADD: "+",
	ir.SUB: "-",
	ir.MUL: "*",
	ir.DIV: "/",
}

// Emit renders instrs as a self-contained C source file.
func Emit(instrs []ir.Instr) string {
	var b strings.Builder
	b.WriteString("#include <stdio.h>\n\n")

	indent := 0
	write := func(line string) {
		b.WriteString(strings.Repeat("    ", indent))
		b.WriteString(line)
		b.WriteString("\n")
	}

	for _, in := range instrs {
		switch in.Op {
		case ir.FUNC_BEGIN:
			write(fmt.Sprintf("void %s() {", in.Dest.Name))
			indent++
		case ir.FUNC_END:
			indent--
			write("}")
		case ir.ASSIGN:
			write(fmt.Sprintf("int %s = %s;", in.Dest.Name, in.Arg1.String()))
		case ir.ADD, ir.SUB, ir.MUL, ir.DIV:
			write(fmt.Sprintf("int %s = %s %s %s;", in.Dest.Name, in.Arg1.String(), opSymbols[in.Op], in.Arg2.String()))
		case ir.PRINT:
			write(fmt.Sprintf(`printf("%%d\n", %s);`, in.Arg1.String()))
		case ir.INPUT:
			write(fmt.Sprintf(`scanf("%%d", &%s);`, in.Dest.Name))
		case ir.LABEL:
			write(fmt.Sprintf("%s: ;", in.Dest.Name))
		case ir.GOTO:
			write(fmt.Sprintf("goto %s;", in.Dest.Name))
		case ir.IF_FALSE_GOTO:
			write(fmt.Sprintf("if (!%s) goto %s;", in.Arg1.String(), in.Arg2.String()))
		default:
			write(fmt.Sprintf("// [ERROR] op not supported: %s", in))
		}
	}

	return b.String()
}
