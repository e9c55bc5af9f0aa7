package cmd

import (
	"fmt"
	"sort"

	"github.com/maruel/natural"
	"github.com/spf13/cobra"

	"github.com/cirius-lang/cirius/internal/semantic"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols <input>",
	Short: "Print the resolved top-level symbol table (debug)",
	Args:  cobra.ExactArgs(1),
	RunE:  runSymbols,
}

func init() {
	rootCmd.AddCommand(symbolsCmd)
}

func runSymbols(_ *cobra.Command, args []string) error {
	input := args[0]
	prog, source, err := frontend(input)
	if err != nil {
		return reportError(err, input, source)
	}

	names := make([]string, 0, len(prog.Functions)+len(semantic.Builtins))
	arity := make(map[string]int, len(prog.Functions)+len(semantic.Builtins))
	for _, fn := range prog.Functions {
		names = append(names, fn.Name)
		arity[fn.Name] = len(fn.Params)
	}
	for name, n := range semantic.Builtins {
		names = append(names, name)
		arity[name] = n
	}

	// Sorted with natural ordering so names differing only by a numeric
	// suffix (f1, f2, f10) list in numeric rather than lexicographic order.
	sort.Slice(names, func(i, j int) bool { return natural.Less(names[i], names[j]) })

	for _, name := range names {
		fmt.Printf("%s/%d\n", name, arity[name])
	}
	return nil
}
