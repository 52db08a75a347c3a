package raxml

import (
	"context"
	"os/exec"
)

// DefaultBinary is the raxml-ng executable looked up in PATH.
const DefaultBinary = "raxml-ng"

// Runner runs an external program to completion and returns its
// output. A non-nil error means the program could not be started or
// exited with a non-zero status.
type Runner interface {
	Run(ctx context.Context, binary string, args []string) (output []byte, err error)
}

// ExecRunner runs programs as child processes. Cancelling the context
// kills the child.
type ExecRunner struct {
	// Dir is the working directory, current directory if empty.
	Dir string
}

// Run runs binary with args and returns combined stdout and stderr.
func (e ExecRunner) Run(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = e.Dir
	log.Debugf("running %s %v", binary, args)
	return cmd.CombinedOutput()
}
