// Package cmd implements the cirius command-line interface: cobra
// subcommands wrapping the language pipeline (spec §6).
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cirius-lang/cirius/internal/ciriuserrors"
	"github.com/cirius-lang/cirius/internal/config"
)

var (
	verbose bool
	noColor bool
	cfgPath string
)

var rootCmd = &cobra.Command{
	Use:           "cirius",
	Short:         "Compile or interpret Cirius source files",
	SilenceUsage:  true,
	SilenceErrors: true,
	// Load .ciriusrc.yaml before any subcommand runs, so its verbose
	// default applies to every subcommand (e.g. `run`, which otherwise
	// never touches config) and not just the ones that call loadConfig
	// directly for their own settings.
	PersistentPreRunE: func(*cobra.Command, []string) error {
		loadConfig()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "print progress diagnostics to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored error output")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".ciriusrc.yaml", "path to a .ciriusrc.yaml config file")
}

// Execute runs the cirius CLI; exit status is handled by main.
func Execute() error {
	return rootCmd.Execute()
}

func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}

func loadConfig() *config.Config {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logVerbose("warning: could not read %s: %v", cfgPath, err)
		return &config.Config{}
	}
	// Flags always override config file values; only fall back to the
	// config's verbose default when --verbose was not explicitly given.
	if !rootCmd.PersistentFlags().Changed("verbose") && cfg.Verbose {
		verbose = true
	}
	return cfg
}

// reportError prints err per spec §7 ("reported on stdout with a category
// prefix") and returns a non-zero-exit-worthy error to cobra.
func reportError(err error, file, source string) error {
	if ce, ok := err.(*ciriuserrors.Error); ok {
		color := !noColor
		if fi, serr := os.Stdout.Stat(); serr != nil || fi.Mode()&os.ModeCharDevice == 0 {
			color = false
		}
		fmt.Fprint(os.Stdout, ce.WithSource(file, source).Format(color))
	} else {
		fmt.Fprintln(os.Stdout, err.Error())
	}
	return err
}
