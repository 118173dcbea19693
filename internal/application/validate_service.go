package application

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/abdidvp/distkit/internal/domain"
	"github.com/abdidvp/distkit/internal/domain/check"
)

// ValidateService builds validation sessions and runs the check suite
// against a distribution tree.
type ValidateService struct {
	configLoader domain.ConfigLoader
	runner       domain.ProcessRunner
	copier       domain.TreeCopier
	goos         string
}

// ValidateOption customizes a ValidateService.
type ValidateOption func(*ValidateService)

// WithGOOS resolves layouts for goos instead of the running system.
func WithGOOS(goos string) ValidateOption {
	return func(s *ValidateService) { s.goos = goos }
}

// NewValidateService creates a ValidateService with all required dependencies.
func NewValidateService(
	configLoader domain.ConfigLoader,
	runner domain.ProcessRunner,
	copier domain.TreeCopier,
	opts ...ValidateOption,
) *ValidateService {
	s := &ValidateService{
		configLoader: configLoader,
		runner:       runner,
		copier:       copier,
		goos:         runtime.GOOS,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateOptions are the per-run settings of a validation.
type ValidateOptions struct {
	ConfigPath string
	Reporter   domain.Reporter
	TempDir    string
	BaseEnv    []string
	// Checks overrides the default suite.
	Checks []check.Check
}

// ResolveLayout loads the config and locates the interpreter under distDir.
func (s *ValidateService) ResolveLayout(distDir, configPath string) (domain.Layout, domain.DistConfig, error) {
	info, err := os.Stat(distDir)
	if err != nil || !info.IsDir() {
		return domain.Layout{}, domain.DistConfig{}, fmt.Errorf("%w: %s", domain.ErrDistMissing, distDir)
	}

	cfg, err := s.configLoader.Load(configPath)
	if err != nil {
		return domain.Layout{}, domain.DistConfig{}, fmt.Errorf("loading config: %w", err)
	}

	layout, err := domain.ResolveLayout(distDir, s.goos, cfg)
	if err != nil {
		return domain.Layout{}, domain.DistConfig{}, err
	}
	return layout, cfg, nil
}

// NewSession resolves everything a run needs. It fails before any check
// runs when the tree or its interpreter is missing.
func (s *ValidateService) NewSession(distDir string, opts ValidateOptions) (*check.Session, error) {
	layout, cfg, err := s.ResolveLayout(distDir, opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	return check.NewSession(layout, cfg, check.Deps{
		Runner:   s.runner,
		Copier:   s.copier,
		Reporter: opts.Reporter,
		BaseEnv:  opts.BaseEnv,
		TempDir:  opts.TempDir,
	}), nil
}

// Run executes the suite on an existing session.
func (s *ValidateService) Run(ctx context.Context, session *check.Session, checks []check.Check) *domain.Report {
	if len(checks) == 0 {
		checks = check.Suite()
	}
	return check.Run(ctx, session, checks)
}

// Validate builds a session for distDir and runs the suite. The returned
// error covers initialization only; check failures live in the report.
func (s *ValidateService) Validate(ctx context.Context, distDir string, opts ValidateOptions) (*domain.Report, error) {
	session, err := s.NewSession(distDir, opts)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx, session, opts.Checks), nil
}
