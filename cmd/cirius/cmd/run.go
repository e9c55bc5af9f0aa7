package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cirius-lang/cirius/internal/ast"
	"github.com/cirius-lang/cirius/internal/diag"
	"github.com/cirius-lang/cirius/internal/interp"
)

var runDumpAST string

var runCmd = &cobra.Command{
	Use:   "run <input>",
	Short: "Interpret a Cirius source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&runDumpAST, "dump-ast", "", "dump the parsed AST; use 'json' for JSON form")
	runCmd.Flags().Lookup("dump-ast").NoOptDefVal = "text"
	rootCmd.AddCommand(runCmd)
}

func runRun(_ *cobra.Command, args []string) error {
	input := args[0]

	prog, source, err := frontend(input)
	if err != nil {
		return reportError(err, input, source)
	}

	if runDumpAST != "" {
		if err := dumpAST(prog); err != nil {
			return err
		}
	}

	logVerbose("interpreting %s", input)
	if err := interp.Run(prog, os.Stdin, os.Stdout); err != nil {
		return reportError(err, input, source)
	}
	return nil
}

func dumpAST(prog *ast.Program) error {
	if runDumpAST != "json" {
		fmt.Fprintln(os.Stderr, prog.String())
		return nil
	}
	doc, err := diag.DumpAST(prog)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, doc)
	return nil
}
