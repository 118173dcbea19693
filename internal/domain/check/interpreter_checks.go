package check

import (
	"context"
	"fmt"
	"strings"
)

const ctypesProgram = `
import ctypes
c_int = ctypes.c_int(42)
assert c_int.value == 42, 'ctypes.c_int failed'
print('ctypes functionality: OK')
`

const pathsProgram = `
import sys
print('sys.executable: ' + str(sys.executable))
print('sys.prefix: ' + str(sys.prefix))
print('sys.exec_prefix: ' + str(sys.exec_prefix))
print('sys.path:')
for p in sys.path:
    print('   ' + str(p))
`

func importProgram(module string) string {
	return fmt.Sprintf("import %s; print('%s: OK')", module, module)
}

func checkInterpreterVersion(ctx context.Context, s *Session) error {
	res, err := s.Interpreter(ctx, "--version")
	if err != nil {
		return err
	}

	// Python 2 prints the version on stderr, Python 3 on stdout.
	got := strings.TrimSpace(res.Combined())
	if !strings.Contains(got, s.Config.ExpectedVersion) {
		return fmt.Errorf("expected version %s, got: %s", s.Config.ExpectedVersion, got)
	}

	res, err = s.Interpreter(ctx, "-c", "print('Python binary: OK')")
	if err != nil {
		return err
	}
	if !strings.Contains(res.Stdout, "Python binary: OK") {
		return fmt.Errorf("basic Python execution failed: expected %q in stdout, got: %q", "Python binary: OK", res.Stdout)
	}
	return nil
}

// checkStandardLibrary imports each core module in its own interpreter and
// reports every failure at once. Optional modules only warn.
func checkStandardLibrary(ctx context.Context, s *Session) error {
	var failed []string
	for _, module := range s.Config.CoreModulesFor(s.Layout.Platform) {
		res, err := s.TryInterpreter(ctx, "-c", importProgram(module))
		if err != nil || res.ExitCode != 0 {
			failed = append(failed, module)
			continue
		}
		s.Info("  %s: OK", module)
	}

	for _, module := range s.Config.OptionalModules {
		res, err := s.TryInterpreter(ctx, "-c", importProgram(module))
		if err != nil || res.ExitCode != 0 {
			s.Warn("%s module not available (optional)", module)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("failed to import modules: %s", strings.Join(failed, ", "))
	}
	return nil
}

func checkNativeExtensions(ctx context.Context, s *Session) error {
	res, err := s.Interpreter(ctx, "-c", "import _ctypes; print('_ctypes: OK')")
	if err != nil {
		return fmt.Errorf("_ctypes module not available: %w", err)
	}
	if !strings.Contains(res.Stdout, "_ctypes: OK") {
		return fmt.Errorf("_ctypes module not available: got %q", res.Stdout)
	}

	res, err = s.Interpreter(ctx, "-c", ctypesProgram)
	if err != nil {
		return fmt.Errorf("ctypes functionality test failed: %w", err)
	}
	if !strings.Contains(res.Stdout, "ctypes functionality: OK") {
		return fmt.Errorf("ctypes functionality test failed: got %q", res.Stdout)
	}
	return nil
}

// checkInterpreterPaths is diagnostic: it passes whenever the program runs.
func checkInterpreterPaths(ctx context.Context, s *Session) error {
	res, err := s.Interpreter(ctx, "-c", pathsProgram)
	if err != nil {
		return err
	}
	s.relay(res.Stdout)
	return nil
}
