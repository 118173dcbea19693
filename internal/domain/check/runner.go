package check

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/fatih/camelcase"

	"github.com/abdidvp/distkit/internal/domain"
)

// Func is the body of a check. It returns nil on success and a descriptive
// error on failure.
type Func func(ctx context.Context, s *Session) error

// Check is one named unit of the validation suite.
type Check struct {
	ID   string
	Name string
	Run  Func
}

// Slug turns the check ID into a kebab-case identifier, e.g.
// "DirectoryStructure" becomes "directory-structure".
func (c Check) Slug() string {
	words := camelcase.Split(c.ID)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "-")
}

// Suite returns the fixed, ordered list of checks.
func Suite() []Check {
	return []Check{
		{ID: "DirectoryStructure", Name: "Verify directory structure", Run: checkDirectoryStructure},
		{ID: "InterpreterVersion", Name: "Test Python version", Run: checkInterpreterVersion},
		{ID: "AliasExecutable", Name: "Test Python symlinks", Run: checkAliasExecutable},
		{ID: "StandardLibrary", Name: "Test standard library imports", Run: checkStandardLibrary},
		{ID: "NativeExtensions", Name: "Test C extensions", Run: checkNativeExtensions},
		{ID: "InterpreterPaths", Name: "Check Python paths", Run: checkInterpreterPaths},
		{ID: "Relocatability", Name: "Test relocatability", Run: checkRelocatability},
		{ID: "StaticLinkage", Name: "Check static linking", Run: checkStaticLinkage},
		{ID: "DevelopmentHeaders", Name: "Test C extension headers", Run: checkDevelopmentHeaders},
		{ID: "ScriptExecution", Name: "Run test script", Run: checkScriptExecution},
	}
}

// Run executes every check in order and returns the aggregate report. A
// failing check never stops the ones after it.
func Run(ctx context.Context, s *Session, checks []Check) *domain.Report {
	start := time.Now()
	report := &domain.Report{
		Root:      s.Layout.Root,
		Platform:  s.Layout.Platform,
		Arch:      runtime.GOARCH,
		StartedAt: start,
	}

	for i, c := range checks {
		res := domain.CheckResult{Index: i + 1, ID: c.Slug(), Name: c.Name}
		s.current = &res
		s.Out.TestStarted(res.Index, c.Name)

		err := runOne(ctx, s, c)
		s.current = nil

		if err != nil {
			res.Outcome = domain.OutcomeFail
			res.Error = err.Error()
			s.Out.TestFailed(c.Name, err)
		} else {
			res.Outcome = domain.OutcomePass
			s.Out.TestPassed(c.Name)
		}
		report.Record(res)
	}

	report.Duration = time.Since(start).Round(time.Millisecond).String()
	return report
}

func runOne(ctx context.Context, s *Session, c Check) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("check panicked: %v", r)
		}
	}()
	return c.Run(ctx, s)
}
