package check

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdidvp/distkit/internal/domain"
)

func checkDirectoryStructure(_ context.Context, s *Session) error {
	for _, dir := range s.Layout.RequiredDirs {
		path := filepath.Join(s.Layout.Root, dir)
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("%s directory not found at %s", dir, path)
		}
	}
	return nil
}

// checkAliasExecutable runs the versioned alias (bin/python2) when it exists.
// The alias is optional, so its absence only produces an info line.
func checkAliasExecutable(ctx context.Context, s *Session) error {
	if s.Layout.Platform == domain.PlatformWindows {
		s.Skip("Skipping symlink test on Windows")
		return nil
	}

	name := filepath.Base(s.Layout.Alias)
	if _, err := os.Stat(s.Layout.Alias); err != nil {
		s.Info("INFO: %s symlink not found (optional)", name)
		return nil
	}

	res, err := s.exec(ctx, s.Layout, s.Layout.Alias, "--version")
	if err != nil {
		return fmt.Errorf("%s symlink is broken: %w", name, err)
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("%s symlink is broken (exit code %d): %s", name, res.ExitCode, res.Stderr)
	}
	return nil
}

// checkDevelopmentHeaders never fails: missing headers only affect building
// native extensions against the distribution.
func checkDevelopmentHeaders(_ context.Context, s *Session) error {
	if _, err := os.Stat(s.Layout.HeaderPath); err != nil {
		s.Warn("Python.h not found at %s", s.Layout.HeaderPath)
		s.Info("C extension development may not be supported")
		return nil
	}
	s.Info("Python.h found at %s", s.Layout.HeaderPath)
	s.Info("C extension development is supported")
	return nil
}
