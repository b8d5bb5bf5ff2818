package adapter

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	m "github.com/mouse-blink/gild/internal/model"
)

// Invocation describes one subject-tool run.
type Invocation struct {
	// Tool is the binary to run, resolved via PATH when relative.
	Tool string

	// Args precede the source path on the command line.
	Args []string

	// Source is the test source file handed to the tool.
	Source m.Path

	// Dir is the working directory for the invocation.
	Dir string

	// Timeout bounds the run; zero means no limit.
	Timeout time.Duration
}

// InvocationResult captures everything the harness needs from one run.
type InvocationResult struct {
	// Output is the combined stdout and stderr stream, interleaved in
	// emission order.
	Output string

	ExitCode int

	// TimedOut is set when the run was killed by the invocation timeout.
	TimedOut bool

	// Crashed is set when the tool died from a signal other than the
	// timeout kill.
	Crashed bool
}

// ToolRunner invokes the subject tool. The only blocking step of an
// execution happens here, waiting for the subprocess or its deadline.
type ToolRunner interface {
	Invoke(ctx context.Context, inv Invocation) (InvocationResult, error)
}

// pipeGrace bounds how long an invocation waits for its output pipe to
// close after the tool exits or is killed. A tool that forks a long-lived
// child inherits the pipe into that child; without the grace cutoff the
// invocation would block until every descendant exits.
const pipeGrace = 250 * time.Millisecond

// LocalToolRunner runs the tool as a subprocess via os/exec.
type LocalToolRunner struct{}

// NewLocalToolRunner constructs a LocalToolRunner.
func NewLocalToolRunner() *LocalToolRunner {
	return &LocalToolRunner{}
}

// Invoke runs the tool to completion or until the timeout elapses. A
// non-zero exit is a normal result, not an error; the returned error is
// reserved for failures to run the tool at all.
func (r *LocalToolRunner) Invoke(ctx context.Context, inv Invocation) (InvocationResult, error) {
	runCtx := ctx
	if inv.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	args := append(append([]string{}, inv.Args...), string(inv.Source))
	cmd := exec.CommandContext(runCtx, inv.Tool, args...)
	cmd.Dir = inv.Dir
	cmd.WaitDelay = pipeGrace

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	err := cmd.Run()

	res := InvocationResult{Output: output.String()}

	if err == nil {
		return res, nil
	}

	// The deadline only matters on the error path: a tool that finished
	// cleanly is never reported as timed out.
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		res.TimedOut = true
		res.ExitCode = -1

		return res, nil
	}

	if errors.Is(err, exec.ErrWaitDelay) {
		// The tool exited but a descendant still holds the output pipe;
		// the grace cutoff abandoned it. The tool's own exit status
		// stands.
		res.ExitCode = cmd.ProcessState.ExitCode()
		if res.ExitCode < 0 {
			res.Crashed = true
		}

		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		if res.ExitCode < 0 {
			res.Crashed = true
		}

		return res, nil
	}

	return InvocationResult{}, err
}
