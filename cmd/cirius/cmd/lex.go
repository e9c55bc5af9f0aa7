package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cirius-lang/cirius/internal/ciriuserrors"
	"github.com/cirius-lang/cirius/internal/lexer"
	"github.com/cirius-lang/cirius/internal/token"
)

var lexCmd = &cobra.Command{
	Use:   "lex <input>",
	Short: "Tokenize a Cirius source file and print the token stream (debug)",
	Args:  cobra.ExactArgs(1),
	RunE:  runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func runLex(_ *cobra.Command, args []string) error {
	input := args[0]
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	source := string(data)

	tokens, lerr := lexer.Tokenize(source)
	if lerr != nil {
		if le, ok := lerr.(*lexer.Error); ok {
			return reportError(ciriuserrors.New(ciriuserrors.Lexical, le.Pos, "%s", le.Message), input, source)
		}
		return lerr
	}

	for _, tok := range tokens {
		if tok.Kind == token.EOF {
			continue
		}
		fmt.Printf("%-12s %-20q %s\n", tok.Kind, tok.Literal, tok.Pos)
	}
	return nil
}
