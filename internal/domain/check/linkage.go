package check

import (
	"context"
	"strings"

	"github.com/abdidvp/distkit/internal/domain"
)

// checkStaticLinkage looks for a load-time dependency on libpython. A dynamic
// link only matters for virtualenv and relocation, so it is a warning.
func checkStaticLinkage(ctx context.Context, s *Session) error {
	if s.Layout.Platform == domain.PlatformWindows || len(s.Layout.LinkageTool) == 0 {
		s.Skip("Skipping static linking test on Windows")
		return nil
	}

	tool := s.Layout.LinkageTool
	args := append(append([]string(nil), tool[1:]...), s.Layout.Executable)
	res, err := s.Runner.Run(ctx, domain.Invocation{Path: tool[0], Args: args, Env: s.BaseEnv})
	if err != nil {
		s.Warn("cannot inspect linkage with %s: %v", tool[0], err)
		return nil
	}

	var refs []string
	for _, line := range strings.Split(res.Stdout, "\n") {
		if strings.Contains(line, "libpython") {
			refs = append(refs, strings.TrimSpace(line))
		}
	}

	if len(refs) == 0 {
		s.Info("Python binary is statically linked (no libpython dependency)")
		return nil
	}

	s.Warn("Python binary references libpython (dynamically linked)")
	if s.Layout.GOOS == "darwin" {
		s.Info("This may cause issues with virtualenv")
	} else {
		s.Info("This may cause issues with relocatability")
	}
	for _, ref := range refs {
		s.Info("  %s", ref)
	}
	return nil
}
