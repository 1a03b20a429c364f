package cli

import (
	"github.com/spf13/cobra"

	"github.com/santiagoprado12/ML-e2e-challenge/internal/makerun"
)

// NewTestCommand creates the test command, which runs the repository test
// suite through the Makefile.
func NewTestCommand() *cobra.Command {
	var coverage bool

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Run the test suite",
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := "test"
			if coverage {
				target = "test-coverage"
			}
			return makerun.RunTarget(cmd.Context(), target)
		},
	}

	cmd.Flags().BoolVarP(&coverage, "coverage", "c", false, "collect coverage")

	return cmd
}
