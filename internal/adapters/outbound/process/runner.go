package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/charmbracelet/log"

	"github.com/abdidvp/distkit/internal/domain"
)

// ExecRunner implements domain.ProcessRunner with os/exec. Output is captured
// in memory; there is no timeout beyond the one carried by ctx.
type ExecRunner struct {
	logger *log.Logger
}

// New creates an ExecRunner. A nil logger uses the package default.
func New(logger *log.Logger) *ExecRunner {
	if logger == nil {
		logger = log.Default()
	}
	return &ExecRunner{logger: logger}
}

func (r *ExecRunner) Run(ctx context.Context, inv domain.Invocation) (*domain.ProcessResult, error) {
	cmd := exec.CommandContext(ctx, inv.Path, inv.Args...)
	cmd.Env = inv.Env
	cmd.Dir = inv.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Debug("running", "path", inv.Path, "args", inv.Args)

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("running %s: %w", inv.Path, ctxErr)
	}

	res := &domain.ProcessResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("starting %s: %w", inv.Path, err)
		}
		res.ExitCode = exitErr.ExitCode()
	}

	r.logger.Debug("finished", "path", inv.Path, "exit", res.ExitCode)
	return res, nil
}
