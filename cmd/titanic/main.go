// Package main provides the CLI for the Titanic survival model workflow.
package main

import (
	"fmt"
	"os"

	"github.com/santiagoprado12/ML-e2e-challenge/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
