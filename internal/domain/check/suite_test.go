package check_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/distkit/internal/adapters/outbound/process"
	"github.com/abdidvp/distkit/internal/adapters/outbound/scanner"
	"github.com/abdidvp/distkit/internal/adapters/outbound/treecopy"
	"github.com/abdidvp/distkit/internal/domain"
	"github.com/abdidvp/distkit/internal/domain/check"
	"github.com/abdidvp/distkit/internal/testutil"
)

func fakeDistSession(t *testing.T, dist testutil.FakeDist) (*check.Session, *recorder, string) {
	t.Helper()
	root := dist.Build(t)
	cfg := domain.DefaultDistConfig()

	layout, err := domain.ResolveLayout(root, runtime.GOOS, cfg)
	require.NoError(t, err)

	tmp := t.TempDir()
	rec := &recorder{}
	s := check.NewSession(layout, cfg, check.Deps{
		Runner:   process.New(nil),
		Copier:   treecopy.New(scanner.New()),
		Reporter: rec,
		TempDir:  tmp,
	})
	return s, rec, tmp
}

func TestSuite_CompleteDistributionPasses(t *testing.T) {
	s, rec, tmp := fakeDistSession(t, testutil.FakeDist{})

	report := check.Run(context.Background(), s, check.Suite())

	for _, r := range report.Results {
		assert.Equal(t, domain.OutcomePass, r.Outcome, "%s: %s", r.Name, r.Error)
	}
	assert.Equal(t, 10, report.Total)
	assert.Equal(t, 10, report.Passed)
	assert.True(t, report.AllPassed())
	assert.Contains(t, rec.text(), "=== Test 10: Run test script ===")
	assert.Contains(t, rec.text(), "All script tests passed!")

	left, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Empty(t, left, "relocated copy and script must be cleaned up")
}

func TestSuite_MissingModuleAndVersion(t *testing.T) {
	s, _, _ := fakeDistSession(t, testutil.FakeDist{
		Version:        "2.7.17",
		MissingModules: []string{"sqlite3", "bz2"},
	})

	report := check.Run(context.Background(), s, check.Suite())

	assert.Equal(t, 10, report.Total)
	assert.Equal(t, 8, report.Passed)
	assert.Equal(t, 1, report.ExitCode())

	byID := map[string]domain.CheckResult{}
	for _, r := range report.Results {
		byID[r.ID] = r
	}
	assert.Contains(t, byID["interpreter-version"].Error, "expected version 2.7.18")
	assert.Equal(t, "failed to import modules: sqlite3", byID["standard-library"].Error)
	assert.Contains(t, byID["standard-library"].Warnings, "bz2 module not available (optional)")
}

func TestSuite_FailingScript(t *testing.T) {
	s, _, tmp := fakeDistSession(t, testutil.FakeDist{FailScript: true})

	res := runSingle(t, s, "ScriptExecution")
	assert.Equal(t, domain.OutcomeFail, res.Outcome)
	assert.Contains(t, res.Error, "exit code 1")

	left, err := os.ReadDir(tmp)
	require.NoError(t, err)
	assert.Empty(t, left)
}

func TestRelocatability_CopyWorksWithoutOriginal(t *testing.T) {
	testutil.RequirePOSIX(t)
	cfg := domain.DefaultDistConfig()
	root := testutil.FakeDist{}.Build(t)

	layout, err := domain.ResolveLayout(root, runtime.GOOS, cfg)
	require.NoError(t, err)

	dest := filepath.Join(t.TempDir(), "moved")
	require.NoError(t, treecopy.New(scanner.New()).CopyTree(root, dest))
	require.NoError(t, os.RemoveAll(root))

	moved, err := layout.Relocate(dest, cfg)
	require.NoError(t, err)

	res, err := process.New(nil).Run(context.Background(), domain.Invocation{
		Path: moved.Executable,
		Args: []string{"--version"},
		Env:  moved.Environ(os.Environ()),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Combined(), "2.7.18")
}

func TestAliasExecutable_RunsSymlink(t *testing.T) {
	s, rec, _ := fakeDistSession(t, testutil.FakeDist{})

	res := runSingle(t, s, "AliasExecutable")
	assert.Equal(t, domain.OutcomePass, res.Outcome, res.Error)
	assert.NotContains(t, rec.text(), "not found")
}
