package check

import (
	"context"
	_ "embed"
	"fmt"
	"os"
)

//go:embed scripts/smoke_test.py
var smokeTestScript []byte

// checkScriptExecution runs an end-to-end script from a temp file. The file is
// removed whether or not the script succeeds.
func checkScriptExecution(ctx context.Context, s *Session) error {
	f, err := os.CreateTemp(s.tempDir(), "distkit-script-*.py")
	if err != nil {
		return fmt.Errorf("creating test script: %w", err)
	}
	scriptPath := f.Name()
	defer func() { _ = os.Remove(scriptPath) }()

	if _, err := f.Write(smokeTestScript); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing test script: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing test script: %w", err)
	}

	res, err := s.Interpreter(ctx, scriptPath)
	if res != nil {
		s.relay(res.Stdout)
	}
	if err != nil {
		return fmt.Errorf("test script execution failed: %w", err)
	}
	return nil
}
