// Command cirius compiles or interprets Cirius source files.
package main

import (
	"os"

	"github.com/cirius-lang/cirius/cmd/cirius/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
