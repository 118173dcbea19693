package tui_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abdidvp/distkit/internal/adapters/outbound/tui"
	"github.com/abdidvp/distkit/internal/domain"
)

func sampleReport(failing bool) *domain.Report {
	r := &domain.Report{Root: "/opt/python"}
	r.Record(domain.CheckResult{Index: 1, ID: "directory-structure", Name: "Verify directory structure", Outcome: domain.OutcomePass})
	r.Record(domain.CheckResult{
		Index: 2, ID: "static-linkage", Name: "Check static linking", Outcome: domain.OutcomePass,
		Warnings: []string{"Python binary references libpython (dynamically linked)"},
	})
	if failing {
		r.Record(domain.CheckResult{
			Index: 3, ID: "standard-library", Name: "Test standard library imports", Outcome: domain.OutcomeFail,
			Error: "failed to import modules: nosuchmod\nsecond line",
		})
	}
	return r
}

func TestRenderBanner(t *testing.T) {
	out := tui.RenderBanner("/opt/python", "linux", "amd64")
	assert.Contains(t, out, "Testing Python Distribution")
	assert.Contains(t, out, "Directory: /opt/python")
	assert.Contains(t, out, "Platform: linux")
	assert.Contains(t, out, "Architecture: amd64")
}

func TestRenderSummary_AllPassed(t *testing.T) {
	out := tui.RenderSummary(sampleReport(false))
	assert.Contains(t, out, "=== ALL TESTS PASSED SUCCESSFULLY ===")
	assert.Contains(t, out, "Passed: 2/2")
	assert.Contains(t, out, "Warnings: 1")
	assert.Contains(t, out, "Check static linking")
	assert.NotContains(t, out, "Failed:")
}

func TestRenderSummary_SomeFailed(t *testing.T) {
	out := tui.RenderSummary(sampleReport(true))
	assert.Contains(t, out, "=== SOME TESTS FAILED ===")
	assert.Contains(t, out, "Passed: 2/3")
	assert.Contains(t, out, "Failed: 1/3")
	assert.Contains(t, out, "Test standard library imports")
	assert.Contains(t, out, "failed to import modules: nosuchmod")
	assert.NotContains(t, out, "second line")
}

func TestRenderChecks(t *testing.T) {
	out := tui.RenderChecks(sampleReport(true))
	assert.Contains(t, out, "Verify directory structure")
	assert.Contains(t, out, "1 warning(s)")
	assert.Contains(t, out, "Test standard library imports")
}

func TestRenderArchive(t *testing.T) {
	job := domain.ArchiveJob{Source: "dist", Output: "out/python.tar.gz", Prefix: "python/"}
	start := tui.RenderArchiveStart(job)
	assert.Contains(t, start, "Creating archive: out/python.tar.gz")
	assert.Contains(t, start, "  Source: dist")
	assert.Contains(t, start, "  Prefix: python/")

	done := tui.RenderArchiveResult(&domain.ArchiveResult{Output: job.Output, Entries: 3, Bytes: 3 * 1024 * 1024 / 2})
	assert.Contains(t, done, "Archive created successfully")
	assert.Contains(t, done, "Size: 1.50 MB")
	assert.NotContains(t, done, "Commit:")
}

func TestRenderArchiveStart_NoPrefix(t *testing.T) {
	out := tui.RenderArchiveStart(domain.ArchiveJob{Source: "dist", Output: "a.tar.gz"})
	assert.NotContains(t, out, "Prefix")
}

func TestRenderLayout(t *testing.T) {
	l := domain.Layout{
		Root:         "/opt/python",
		Platform:     domain.PlatformPOSIX,
		Executable:   "/opt/python/bin/python",
		RequiredDirs: []string{"bin", "lib", "include"},
		LinkageTool:  []string{"ldd"},
	}
	out := tui.RenderLayout(l, map[string]string{"PYTHONDONTWRITEBYTECODE": "1"})
	assert.Contains(t, out, "/opt/python/bin/python")
	assert.Contains(t, out, "bin, lib, include")
	assert.Contains(t, out, "PYTHONDONTWRITEBYTECODE=1")
}

func TestTranscript(t *testing.T) {
	var buf bytes.Buffer
	tr := tui.NewTranscript(&buf)

	tr.TestStarted(4, "Test standard library imports")
	tr.Info("  os: OK")
	tr.Warn("bz2 module not available (optional)")
	tr.TestFailed("Test standard library imports", errors.New("failed to import modules: nosuchmod"))
	tr.TestPassed("Run test script")

	out := buf.String()
	assert.Contains(t, out, "=== Test 4: Test standard library imports ===")
	assert.Contains(t, out, "  os: OK\n")
	assert.Contains(t, out, "WARNING: bz2 module not available (optional)")
	assert.Contains(t, out, "FAIL: Test standard library imports")
	assert.Contains(t, out, "Error: failed to import modules: nosuchmod")
	assert.Contains(t, out, "PASS: Run test script")
}
