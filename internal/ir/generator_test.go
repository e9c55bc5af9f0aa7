package ir

import (
	"testing"

	"github.com/cirius-lang/cirius/internal/lexer"
	"github.com/cirius-lang/cirius/internal/parser"
	"github.com/cirius-lang/cirius/internal/semantic"
)

func generateSource(t *testing.T, src string) []Instr {
	t.Helper()
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	prog, err := parser.Parse(tokens)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if err := semantic.Analyze(prog); err != nil {
		t.Fatalf("semantic error: %v", err)
	}
	instrs, err := Generate(prog)
	if err != nil {
		t.Fatalf("ir generation error: %v", err)
	}
	return instrs
}

func TestFuncBeginEnd(t *testing.T) {
	instrs := generateSource(t, `func main() { print(1); }`)
	if instrs[0].Op != FUNC_BEGIN || instrs[0].Dest.Name != "main" {
		t.Fatalf("first instruction = %v, want FUNC_BEGIN main", instrs[0])
	}
	last := instrs[len(instrs)-1]
	if last.Op != FUNC_END || last.Dest.Name != "main" {
		t.Fatalf("last instruction = %v, want FUNC_END main", last)
	}
}

// everyGotoHasMatchingLabel checks spec §8 property 4: every GOTO/
// IF_FALSE_GOTO target appears exactly once as a LABEL.
func everyGotoHasMatchingLabel(t *testing.T, instrs []Instr) {
	t.Helper()
	labelCount := map[string]int{}
	for _, in := range instrs {
		if in.Op == LABEL {
			labelCount[in.Dest.Name]++
		}
	}
	for _, in := range instrs {
		var target string
		switch in.Op {
		case GOTO:
			target = in.Dest.Name
		case IF_FALSE_GOTO:
			target = in.Arg2.Name
		default:
			continue
		}
		if labelCount[target] != 1 {
			t.Errorf("target %q appears as LABEL %d time(s), want exactly 1", target, labelCount[target])
		}
	}
}

func TestIfElifElseWellFormed(t *testing.T) {
	instrs := generateSource(t, `func main() {
		x=input();
		if x>0 { print(1); } elif x==0 { print(0); } else { print(-1); }
	}`)
	everyGotoHasMatchingLabel(t, instrs)
}

func TestWhileWellFormed(t *testing.T) {
	instrs := generateSource(t, `func main() { i=0; while i<3 { print(i); i=i+1; } }`)
	everyGotoHasMatchingLabel(t, instrs)
}

func TestForLoweringUsesLtEq(t *testing.T) {
	instrs := generateSource(t, `func main() { for i in 1..3 { print(i); } }`)
	everyGotoHasMatchingLabel(t, instrs)
	foundLtEq := false
	for _, in := range instrs {
		if in.Op == LT_EQ {
			foundLtEq = true
		}
	}
	if !foundLtEq {
		t.Error("expected an LT_EQ instruction in for-loop lowering")
	}
}

func TestCallLoweringEmitsArgsThenCall(t *testing.T) {
	instrs := generateSource(t, `func add(a,b) { return a+b; } func main() { print(add(1,2)); }`)
	argSeen, callSeen := false, false
	for _, in := range instrs {
		if in.Op == ARG {
			argSeen = true
		}
		if in.Op == CALL {
			if !argSeen {
				t.Fatal("CALL seen before any ARG")
			}
			callSeen = true
		}
	}
	if !callSeen {
		t.Fatal("expected a CALL instruction")
	}
}

func TestBuiltinCallIsCompilerInternalError(t *testing.T) {
	tokens, err := lexer.Tokenize(`func main() { print(str(1)); }`)
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	prog, err := parser.Parse(tokens)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if err := semantic.Analyze(prog); err != nil {
		t.Fatalf("semantic error: %v", err)
	}
	if _, err := Generate(prog); err == nil {
		t.Fatal("expected ir generation to reject a built-in call")
	}
}
