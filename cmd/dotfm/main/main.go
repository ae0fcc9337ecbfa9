package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dotfm/cmd/dotfm"
	"github.com/pterm/pterm"
)

func main() {
	rootCmd := dotfm.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, pterm.Red(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
