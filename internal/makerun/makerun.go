// Package makerun shells out to the project Makefile for targets that
// chain tool invocations, such as retraining or running the test suite.
package makerun

import (
	"context"
	"os"
	"os/exec"

	"github.com/santiagoprado12/ML-e2e-challenge/pkg/errors"
)

// RunTarget executes `make <target>` with stdout and stderr attached to
// the calling process.
func RunTarget(ctx context.Context, target string) error {
	cmd := exec.CommandContext(ctx, "make", target)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running make %s", target)
	}
	return nil
}
