package cmd

import (
	"os"

	"github.com/cirius-lang/cirius/internal/ast"
	"github.com/cirius-lang/cirius/internal/ciriuserrors"
	"github.com/cirius-lang/cirius/internal/lexer"
	"github.com/cirius-lang/cirius/internal/parser"
	"github.com/cirius-lang/cirius/internal/semantic"
)

// frontend runs the lexer, parser, and semantic analyzer over the file at
// path — the stages shared by every subcommand (spec §2: "semantic
// analyzer is always run before either back end").
func frontend(path string) (*ast.Program, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	source := string(data)

	logVerbose("lexing %s", path)
	tokens, lerr := lexer.Tokenize(source)
	if lerr != nil {
		if le, ok := lerr.(*lexer.Error); ok {
			return nil, source, ciriuserrors.New(ciriuserrors.Lexical, le.Pos, "%s", le.Message)
		}
		return nil, source, lerr
	}

	logVerbose("parsing %s (%d tokens)", path, len(tokens))
	prog, perr := parser.Parse(tokens)
	if perr != nil {
		if pe, ok := perr.(*parser.Error); ok {
			return nil, source, ciriuserrors.New(ciriuserrors.Parse, pe.Actual.Pos,
				"expected %s, got %s", pe.Expected, pe.Actual)
		}
		return nil, source, perr
	}

	logVerbose("running semantic analysis")
	if serr := semantic.Analyze(prog); serr != nil {
		return nil, source, serr
	}

	return prog, source, nil
}
