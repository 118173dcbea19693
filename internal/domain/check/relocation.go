package check

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// checkRelocatability copies the tree to a fresh temp directory and runs the
// copy with an environment derived from the new location only.
func checkRelocatability(ctx context.Context, s *Session) error {
	moved, err := os.MkdirTemp(s.tempDir(), "python-moved-")
	if err != nil {
		return fmt.Errorf("creating temp directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(moved) }()

	s.Info("Copying Python to new location: %s", moved)
	dest := filepath.Join(moved, "python")
	if err := s.Copier.CopyTree(s.Layout.Root, dest); err != nil {
		return fmt.Errorf("copying distribution: %w", err)
	}

	relocated, err := s.Layout.Relocate(dest, s.Config)
	if err != nil {
		return fmt.Errorf("resolving relocated copy: %w", err)
	}
	s.Info("Testing from: %s", dest)

	res, err := s.exec(ctx, relocated, relocated.Executable, "--version")
	if err != nil {
		return fmt.Errorf("python failed in new location: %w", err)
	}
	if res.ExitCode != 0 {
		return fmt.Errorf("python failed in new location (exit code %d): %s", res.ExitCode, res.Stderr)
	}

	res, err = s.exec(ctx, relocated, relocated.Executable, "-c", "print('Relocatability: OK')")
	if err != nil {
		return fmt.Errorf("relocatability test failed: %w", err)
	}
	if !strings.Contains(res.Stdout, "Relocatability: OK") {
		return fmt.Errorf("relocatability test failed (exit code %d): stdout: %s stderr: %s", res.ExitCode, res.Stdout, res.Stderr)
	}

	s.Info("Python works correctly from new location")
	return nil
}
