// main is the entry point of the hammer CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/hammer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
