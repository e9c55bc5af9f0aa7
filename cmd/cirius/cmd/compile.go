package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cirius-lang/cirius/internal/diag"
	"github.com/cirius-lang/cirius/internal/emitter"
	"github.com/cirius-lang/cirius/internal/ir"
	"github.com/cirius-lang/cirius/internal/optimizer"
)

var (
	compileOutput     string
	compileNoOptimize bool
	compileDumpIR     string
)

var compileCmd = &cobra.Command{
	Use:   "compile <input>",
	Short: "Compile a Cirius source file to C",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompile,
}

func init() {
	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "output file path (default: input with extension replaced by .c)")
	compileCmd.Flags().BoolVar(&compileNoOptimize, "no-optimize", false, "skip the dead-code elimination pass")
	compileCmd.Flags().StringVar(&compileDumpIR, "dump-ir", "", "dump the IR instruction list; use 'json' for JSON form")
	compileCmd.Flags().Lookup("dump-ir").NoOptDefVal = "text"
	rootCmd.AddCommand(compileCmd)
}

func runCompile(_ *cobra.Command, args []string) error {
	input := args[0]
	cfg := loadConfig()

	prog, source, err := frontend(input)
	if err != nil {
		return reportError(err, input, source)
	}

	logVerbose("generating IR")
	instrs, err := ir.Generate(prog)
	if err != nil {
		return reportError(err, input, source)
	}

	doOptimize := cfg.OptimizeOrDefault() && !compileNoOptimize
	if doOptimize {
		logVerbose("optimizing (%d instructions before)", len(instrs))
		instrs = optimizer.Optimize(instrs)
		logVerbose("optimizing (%d instructions after)", len(instrs))
	}

	if compileDumpIR != "" {
		if err := dumpIR(instrs); err != nil {
			return err
		}
	}

	cSource := emitter.Emit(instrs)

	out := compileOutput
	if out == "" {
		out = defaultOutputPath(input, cfg.OutputDir)
	}
	logVerbose("writing %s", out)
	if err := os.WriteFile(out, []byte(cSource), 0o644); err != nil {
		return err
	}
	return nil
}

func dumpIR(instrs []ir.Instr) error {
	if compileDumpIR != "json" {
		for _, in := range instrs {
			fmt.Fprintln(os.Stderr, in.String())
		}
		return nil
	}
	doc, err := diag.DumpIR(instrs)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, doc)
	return nil
}

// defaultOutputPath replaces input's extension with .c, per spec §6.
func defaultOutputPath(input, outputDir string) string {
	ext := filepath.Ext(input)
	base := strings.TrimSuffix(filepath.Base(input), ext) + ".c"
	if outputDir == "" {
		dir := filepath.Dir(input)
		return filepath.Join(dir, base)
	}
	return filepath.Join(outputDir, base)
}
