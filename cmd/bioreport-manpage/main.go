package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/bioreport/cmd/bioreport"
	"github.com/arthur-debert/bioreport/internal/version"
)

func main() {
	rootCmd := bioreport.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "BIOREPORT",
		Section: "1",
		Source:  "bioreport " + version.Version,
		Manual:  "bioreport manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
