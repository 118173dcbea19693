package check

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/abdidvp/distkit/internal/domain"
)

// Session is the state of one validation run against one distribution tree.
// The layout is resolved before the session exists and never changes.
type Session struct {
	Layout  domain.Layout
	Config  domain.DistConfig
	Runner  domain.ProcessRunner
	Copier  domain.TreeCopier
	Out     domain.Reporter
	BaseEnv []string
	// TempDir holds relocated copies and scratch scripts. Empty means os.TempDir().
	TempDir string

	current *domain.CheckResult
}

// Deps are the collaborators a session needs.
type Deps struct {
	Runner   domain.ProcessRunner
	Copier   domain.TreeCopier
	Reporter domain.Reporter
	BaseEnv  []string
	TempDir  string
}

// NewSession creates a session for an already resolved layout.
func NewSession(layout domain.Layout, cfg domain.DistConfig, deps Deps) *Session {
	s := &Session{
		Layout:  layout,
		Config:  cfg,
		Runner:  deps.Runner,
		Copier:  deps.Copier,
		Out:     deps.Reporter,
		BaseEnv: deps.BaseEnv,
		TempDir: deps.TempDir,
	}
	if s.Out == nil {
		s.Out = discard{}
	}
	if s.BaseEnv == nil {
		s.BaseEnv = os.Environ()
	}
	return s
}

// Interpreter runs the session's executable and fails on a non-zero exit.
func (s *Session) Interpreter(ctx context.Context, args ...string) (*domain.ProcessResult, error) {
	return s.checked(ctx, s.Layout, s.Layout.Executable, args...)
}

// TryInterpreter runs the session's executable and leaves the exit code to the caller.
func (s *Session) TryInterpreter(ctx context.Context, args ...string) (*domain.ProcessResult, error) {
	return s.exec(ctx, s.Layout, s.Layout.Executable, args...)
}

func (s *Session) exec(ctx context.Context, l domain.Layout, path string, args ...string) (*domain.ProcessResult, error) {
	return s.Runner.Run(ctx, domain.Invocation{
		Path: path,
		Args: args,
		Env:  l.Environ(s.BaseEnv),
	})
}

func (s *Session) checked(ctx context.Context, l domain.Layout, path string, args ...string) (*domain.ProcessResult, error) {
	res, err := s.exec(ctx, l, path, args...)
	if err != nil {
		return nil, err
	}
	if res.ExitCode != 0 {
		return res, &domain.ProcessError{
			Path:     path,
			Args:     args,
			ExitCode: res.ExitCode,
			Stdout:   res.Stdout,
			Stderr:   res.Stderr,
		}
	}
	return res, nil
}

// Info writes a transcript line.
func (s *Session) Info(format string, args ...any) {
	s.Out.Info(fmt.Sprintf(format, args...))
}

// Warn writes a transcript warning and records it on the running check.
func (s *Session) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if s.current != nil {
		s.current.Warnings = append(s.current.Warnings, msg)
	}
	s.Out.Warn(msg)
}

// Skip marks the running check as not applicable on this platform.
func (s *Session) Skip(format string, args ...any) {
	if s.current != nil {
		s.current.Skipped = true
	}
	s.Info(format, args...)
}

// relay forwards subprocess output to the transcript line by line.
func (s *Session) relay(out string) {
	out = strings.TrimRight(out, "\r\n")
	if out == "" {
		return
	}
	for _, line := range strings.Split(out, "\n") {
		s.Out.Info(strings.TrimRight(line, "\r"))
	}
}

func (s *Session) tempDir() string {
	if s.TempDir != "" {
		return s.TempDir
	}
	return os.TempDir()
}

type discard struct{}

func (discard) TestStarted(int, string)  {}
func (discard) Info(string)              {}
func (discard) Warn(string)              {}
func (discard) TestPassed(string)        {}
func (discard) TestFailed(string, error) {}
