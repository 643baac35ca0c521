package executor

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	"github.com/semmidev/mongorotate/internal/domain"
)

type Runner struct {
	// commandContext is swapped in tests.
	commandContext func(ctx context.Context, name string, arg ...string) *exec.Cmd
}

func New() *Runner {
	return &Runner{commandContext: exec.CommandContext}
}

// Run starts name with args directly, without a shell, and waits for it. A
// failed start or a non-zero exit is returned as *domain.ProcessError with
// the captured output.
func (r *Runner) Run(ctx context.Context, name string, args ...string) error {
	cmd := r.commandContext(ctx, name, args...)
	setProcessGroup(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		err = errors.Join(ctxErr, err)
	}

	return &domain.ProcessError{
		Command:  name,
		ExitCode: exitCode,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Err:      err,
	}
}
