package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abdidvp/distkit/internal/domain"
)

// ── warm palette ──
var (
	accent    = lipgloss.Color("#D97706") // amber
	fg        = lipgloss.Color("#E8E6E3") // warm light gray
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	danger    = lipgloss.Color("#EF4444") // red
	warning   = lipgloss.Color("#F59E0B") // amber-yellow
	skipColor = lipgloss.Color("#4B5563") // dark gray
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(fg)
	dimStyle    = lipgloss.NewStyle().Foreground(dim)
	faintStyle  = lipgloss.NewStyle().Foreground(faint)
	passStyle   = lipgloss.NewStyle().Foreground(success)
	failStyle   = lipgloss.NewStyle().Foreground(danger)
	warnStyle   = lipgloss.NewStyle().Foreground(warning)
	skipStyle   = lipgloss.NewStyle().Foreground(skipColor)

	passBanner = lipgloss.NewStyle().Bold(true).Foreground(success)
	failBanner = lipgloss.NewStyle().Bold(true).Foreground(danger)
)

const ruleWidth = 50

func rule() string { return faintStyle.Render(strings.Repeat("=", ruleWidth)) }

// RenderBanner renders the header printed before the first check.
func RenderBanner(dir, goos, arch string) string {
	var b strings.Builder
	b.WriteString(rule() + "\n")
	b.WriteString(headerStyle.Render("Testing Python Distribution") + "\n")
	b.WriteString(rule() + "\n")
	fmt.Fprintf(&b, "Directory: %s\n", dir)
	fmt.Fprintf(&b, "Platform: %s\n", goos)
	fmt.Fprintf(&b, "Architecture: %s\n", arch)
	return b.String()
}

// RenderSummary renders the closing block of a validation run.
func RenderSummary(report *domain.Report) string {
	var b strings.Builder
	b.WriteString("\n" + rule() + "\n")

	if report.AllPassed() {
		b.WriteString(passBanner.Render("=== ALL TESTS PASSED SUCCESSFULLY ===") + "\n")
		b.WriteString(rule() + "\n\n")
		fmt.Fprintf(&b, "Passed: %d/%d\n", report.Passed, report.Total)
		writeWarningCount(&b, report)
		fmt.Fprintf(&b, "Python directory: %s\n", report.Root)
		b.WriteString("\n" + RenderChecks(report))
		b.WriteString("\n" + passStyle.Render("The Python distribution is working correctly!") + "\n")
		return b.String()
	}

	b.WriteString(failBanner.Render("=== SOME TESTS FAILED ===") + "\n")
	b.WriteString(rule() + "\n\n")
	fmt.Fprintf(&b, "Passed: %d/%d\n", report.Passed, report.Total)
	fmt.Fprintf(&b, "Failed: %d/%d\n", report.Failed(), report.Total)
	writeWarningCount(&b, report)

	b.WriteString("\n")
	for _, res := range report.Results {
		if res.Outcome != domain.OutcomeFail {
			continue
		}
		fmt.Fprintf(&b, "  %s %s\n", failStyle.Render("✗"), titleStyle.Render(res.Name))
		fmt.Fprintf(&b, "    %s\n", dimStyle.Render(firstLine(res.Error)))
	}
	return b.String()
}

// RenderChecks renders one status line per check result.
func RenderChecks(report *domain.Report) string {
	var b strings.Builder
	for _, res := range report.Results {
		var icon string
		switch {
		case res.Outcome == domain.OutcomeFail:
			icon = failStyle.Render("●")
		case res.Skipped:
			icon = skipStyle.Render("○")
		case len(res.Warnings) > 0:
			icon = warnStyle.Render("●")
		default:
			icon = passStyle.Render("●")
		}
		fmt.Fprintf(&b, "  %s %2d %s", icon, res.Index, padRight(res.Name, 32))
		if n := len(res.Warnings); n > 0 {
			b.WriteString(warnStyle.Render(fmt.Sprintf("%d warning(s)", n)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderArchiveStart renders the lines printed before an archive is written.
func RenderArchiveStart(job domain.ArchiveJob) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Creating archive: %s\n", job.Output)
	fmt.Fprintf(&b, "  Source: %s\n", job.Source)
	if p := strings.Trim(job.Prefix, "/"); p != "" {
		fmt.Fprintf(&b, "  Prefix: %s/\n", p)
	}
	return b.String()
}

// RenderArchiveResult renders the lines printed after a successful archive.
func RenderArchiveResult(res *domain.ArchiveResult) string {
	var b strings.Builder
	if res.Commit != "" {
		fmt.Fprintf(&b, "  Commit: %s\n", dimStyle.Render(res.Commit))
	}
	b.WriteString(passStyle.Render("✓ Archive created successfully") + "\n")
	fmt.Fprintf(&b, "  Entries: %d\n", res.Entries)
	fmt.Fprintf(&b, "  Size: %.2f MB\n", res.SizeMB())
	return b.String()
}

// RenderLayout renders a resolved layout and the variables it adds to the
// environment of every interpreter run.
func RenderLayout(l domain.Layout, env map[string]string) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Distribution layout") + "\n")
	row := func(k, v string) {
		if v == "" {
			v = faintStyle.Render("-")
		}
		fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render(padRight(k, 14)), v)
	}
	row("root", l.Root)
	row("platform", string(l.Platform))
	row("executable", l.Executable)
	row("alias", l.Alias)
	row("required dirs", strings.Join(l.RequiredDirs, ", "))
	row("header", l.HeaderPath)
	row("linkage tool", strings.Join(l.LinkageTool, " "))

	if len(env) > 0 {
		b.WriteString("\n" + titleStyle.Render("Environment") + "\n")
		keys := make([]string, 0, len(env))
		for k := range env {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s=%s\n", k, env[k])
		}
	}
	return b.String()
}

func writeWarningCount(b *strings.Builder, report *domain.Report) {
	if n := len(report.Warnings()); n > 0 {
		fmt.Fprintf(b, "%s\n", warnStyle.Render(fmt.Sprintf("Warnings: %d", n)))
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
