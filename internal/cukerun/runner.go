package cukerun

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// Runner launches the external cucumber runner process and streams its
// combined output to a writer. The exit code is surfaced for reporting but
// never used to derive test outcomes; multi-module build tools are known to
// return unreliable codes when an error occurs outside the tests.
type Runner struct {
	Command string
	Args    []string
	Dir     string
}

// Result reports how the runner process ended.
type Result struct {
	ExitCode  int
	Cancelled bool
}

// Run executes the command, writing stdout and stderr interleaved to out as
// chunks arrive. Cancellation via ctx kills the process and is reported as
// a cancelled result, not an error.
func (r *Runner) Run(ctx context.Context, out io.Writer) (*Result, error) {
	if r.Command == "" {
		return nil, fmt.Errorf("no runner command configured")
	}

	cmd := exec.CommandContext(ctx, r.Command, r.Args...)
	cmd.Dir = r.Dir
	cmd.Stdout = out
	cmd.Stderr = out

	err := cmd.Run()
	if ctx.Err() != nil {
		return &Result{ExitCode: -1, Cancelled: true}, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &Result{ExitCode: exitErr.ExitCode()}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("running %s: %w", r.Command, err)
	}
	return &Result{ExitCode: 0}, nil
}
