// The main package for the tablepull executable.
package main

import (
	"github.com/scbtools/tablepull/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
