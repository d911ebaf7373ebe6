package main

// Main entry point of the application
// Runs the Cobra root command
// Any error is fatal: print it and exit 1

import (
	"fmt"
	"os"

	"revenue-chart/cmd/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
