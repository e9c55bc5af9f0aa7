// Package ir defines the Cirius three-address instruction form (spec §3,
// §4.4): a flat, ordered record list with control flow expressed only via
// LABEL/GOTO/IF_FALSE_GOTO.
package ir

import "fmt"

// Op is a closed instruction opcode.
type Op int

const (
	FUNC_BEGIN Op = iota
	FUNC_END
	ASSIGN
	PRINT
	INPUT
	ARG
	CALL
	RETURN
	GOTO
	IF_FALSE_GOTO
	LABEL
	ADD
	SUB
	MUL
	DIV
	MOD
	LT
	LE
	GT
	GE
	EQ
	NE
	AND
	OR
	NOT
	MINUS
	LT_EQ
)

var opNames = map[Op]string{
	FUNC_BEGIN:    "FUNC_BEGIN",
	FUNC_END:      "FUNC_END",
	ASSIGN:        "ASSIGN",
	PRINT:         "PRINT",
	INPUT:         "INPUT",
	ARG:           "ARG",
	CALL:          "CALL",
	RETURN:        "RETURN",
	GOTO:          "GOTO",
	IF_FALSE_GOTO: "IF_FALSE_GOTO",
	LABEL:         "LABEL",
	ADD:           "ADD",
	SUB:           "SUB",
	MUL:           "MUL",
	DIV:           "DIV",
	MOD:           "MOD",
	LT:            "LT",
	LE:            "LE",
	GT:            "GT",
	GE:            "GE",
	EQ:            "EQ",
	NE:            "NE",
	AND:           "AND",
	OR:            "OR",
	NOT:           "NOT",
	MINUS:         "MINUS",
	LT_EQ:         "LT_EQ",
}

func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Arg is an IR operand: either a named reference (identifier, temporary
// tN, or label) or a literal value (int64, float64, bool, string). A nil
// *Arg means the field is absent (spec §3: "Absent fields are omitted").
type Arg struct {
	Name    string // non-empty when this operand is a name
	IsName  bool
	Literal any // int64 | float64 | bool | string, when !IsName
}

// NameArg builds a named operand.
func NameArg(name string) Arg { return Arg{Name: name, IsName: true} }

// LitArg builds a literal operand.
func LitArg(v any) Arg { return Arg{Literal: v} }

func (a Arg) String() string {
	if a.IsName {
		return a.Name
	}
	return fmt.Sprintf("%v", a.Literal)
}

// Instr is one three-address instruction (spec §3: "Record {op, dest?,
// arg1?, arg2?}").
type Instr struct {
	Op      Op
	Dest    *Arg
	Arg1    *Arg
	Arg2    *Arg
	HasDest bool // CALL without an assignment target has no Dest even though its op supports one
}

func (i Instr) String() string {
	parts := []string{i.Op.String()}
	if i.Dest != nil {
		parts = append(parts, i.Dest.String())
	}
	if i.Arg1 != nil {
		parts = append(parts, i.Arg1.String())
	}
	if i.Arg2 != nil {
		parts = append(parts, i.Arg2.String())
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += " " + p
	}
	return out
}

func dest(a Arg) *Arg { return &a }

// Helper constructors used by the generator, one per instruction shape.

func FuncBegin(name string) Instr { return Instr{Op: FUNC_BEGIN, Dest: dest(NameArg(name))} }
func FuncEnd(name string) Instr   { return Instr{Op: FUNC_END, Dest: dest(NameArg(name))} }

func Assign(v string, value Arg) Instr {
	return Instr{Op: ASSIGN, Dest: dest(NameArg(v)), Arg1: &value}
}

func Print(value Arg) Instr { return Instr{Op: PRINT, Arg1: &value} }
func Input(v string) Instr  { return Instr{Op: INPUT, Dest: dest(NameArg(v))} }
func ArgInstr(value Arg) Instr { return Instr{Op: ARG, Arg1: &value} }

// Call emits a CALL. dest is empty when the call result is discarded
// (statement position), per spec §4.4's "dest-or-absent".
func Call(destName, callee string, argCount int) Instr {
	in := Instr{Op: CALL, Arg1: dest(NameArg(callee)), Arg2: dest(LitArg(int64(argCount)))}
	if destName != "" {
		in.Dest = dest(NameArg(destName))
		in.HasDest = true
	}
	return in
}

func Return(value *Arg) Instr { return Instr{Op: RETURN, Arg1: value} }
func Goto(label string) Instr { return Instr{Op: GOTO, Dest: dest(NameArg(label))} }

func IfFalseGoto(cond, label string) Instr {
	return Instr{Op: IF_FALSE_GOTO, Arg1: dest(NameArg(cond)), Arg2: dest(NameArg(label))}
}

func Label(name string) Instr { return Instr{Op: LABEL, Dest: dest(NameArg(name))} }

func Binary(op Op, temp string, lhs, rhs Arg) Instr {
	return Instr{Op: op, Dest: dest(NameArg(temp)), Arg1: &lhs, Arg2: &rhs}
}

func Unary(op Op, temp string, operand Arg) Instr {
	return Instr{Op: op, Dest: dest(NameArg(temp)), Arg1: &operand}
}

func LtEq(temp, v, end string) Instr {
	return Instr{Op: LT_EQ, Dest: dest(NameArg(temp)), Arg1: dest(NameArg(v)), Arg2: dest(NameArg(end))}
}
