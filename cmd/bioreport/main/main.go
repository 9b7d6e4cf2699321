package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/bioreport/cmd/bioreport"
	"github.com/arthur-debert/bioreport/pkg/ui/styles"
)

func main() {
	rootCmd := bioreport.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := styles.Get("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
