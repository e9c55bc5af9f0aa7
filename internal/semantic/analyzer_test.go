package semantic

import (
	"testing"

	"github.com/cirius-lang/cirius/internal/ciriuserrors"
	"github.com/cirius-lang/cirius/internal/lexer"
	"github.com/cirius-lang/cirius/internal/parser"
)

func analyzeSource(t *testing.T, src string) error {
	t.Helper()
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	prog, err := parser.Parse(tokens)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return Analyze(prog)
}

func TestValidProgramPasses(t *testing.T) {
	err := analyzeSource(t, `func fact(n) { if n<=1 { return 1; } return n*fact(n-1); } func main() { print(fact(5)); }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUndeclaredVariableRejected(t *testing.T) {
	err := analyzeSource(t, `func main() { print(x); }`)
	assertSemanticError(t, err)
}

func TestDuplicateFunctionRejected(t *testing.T) {
	err := analyzeSource(t, `func f() { print(1); } func f() { print(2); } func main() { }`)
	assertSemanticError(t, err)
}

func TestDuplicateParamRejected(t *testing.T) {
	err := analyzeSource(t, `func f(a, a) { print(a); } func main() { }`)
	assertSemanticError(t, err)
}

func TestArityMismatchRejected(t *testing.T) {
	err := analyzeSource(t, `func f(a) { print(a); } func main() { f(1, 2); }`)
	assertSemanticError(t, err)
}

func TestCallToNonFunctionRejected(t *testing.T) {
	err := analyzeSource(t, `func main() { x=1; x(); }`)
	assertSemanticError(t, err)
}

func TestForwardReferenceAllowed(t *testing.T) {
	err := analyzeSource(t, `func main() { print(helper(1)); } func helper(n) { return n; }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBuiltinCallResolvesWithoutDeclaration(t *testing.T) {
	err := analyzeSource(t, `func main() { print(str(1)); }`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBlockScopedAssignmentInvisibleOutsideBlock(t *testing.T) {
	// Per spec §9: writing a new name inside a block defines it only in
	// that block's scope; referencing it afterward is undeclared.
	err := analyzeSource(t, `func main() { if true { y=1; } print(y); }`)
	assertSemanticError(t, err)
}

func assertSemanticError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected a semantic error")
	}
	ce, ok := err.(*ciriuserrors.Error)
	if !ok {
		t.Fatalf("error type = %T, want *ciriuserrors.Error", err)
	}
	if ce.Category != ciriuserrors.Semantic {
		t.Errorf("category = %s, want SemanticError", ce.Category)
	}
}
