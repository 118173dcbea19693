// Package testutil builds throwaway distribution trees for tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// FakeDist describes a POSIX distribution tree whose bin/python is a shell
// script that answers the probes the check suite sends.
type FakeDist struct {
	Version        string
	MissingModules []string
	FailScript     bool
	NoExecutable   bool
	NoAlias        bool
	NoHeaders      bool
	SkipDirs       []string
}

// RequirePOSIX skips the test on systems without /bin/sh.
func RequirePOSIX(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake interpreter is a shell script")
	}
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("/bin/sh not available")
	}
}

// Build writes the tree under a fresh temp dir and returns its root.
func (d FakeDist) Build(t *testing.T) string {
	t.Helper()
	RequirePOSIX(t)

	root := filepath.Join(t.TempDir(), "python")
	skip := make(map[string]bool, len(d.SkipDirs))
	for _, dir := range d.SkipDirs {
		skip[dir] = true
	}
	for _, dir := range []string{"bin", "lib", "include"} {
		if !skip[dir] {
			require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o755))
		}
	}
	require.NoError(t, os.MkdirAll(root, 0o755))

	if !skip["lib"] {
		WriteFile(t, filepath.Join(root, "lib", "python2.7", "os.py"), "# stdlib\n")
	}
	if !skip["include"] && !d.NoHeaders {
		WriteFile(t, filepath.Join(root, "include", "python2.7", "Python.h"), "/* header */\n")
	}
	if !d.NoExecutable {
		require.NoError(t, os.MkdirAll(filepath.Join(root, "bin"), 0o755))
		exe := filepath.Join(root, "bin", "python")
		require.NoError(t, os.WriteFile(exe, []byte(d.script()), 0o755))
		if !d.NoAlias {
			require.NoError(t, os.Symlink("python", filepath.Join(root, "bin", "python2")))
		}
	}
	return root
}

func (d FakeDist) script() string {
	version := d.Version
	if version == "" {
		version = "2.7.18"
	}

	var missing strings.Builder
	for _, m := range d.MissingModules {
		fmt.Fprintf(&missing, "    *\"import %s;\"*) echo \"ImportError: No module named %s\" >&2; exit 1 ;;\n", m, m)
	}

	scriptExit := "0"
	if d.FailScript {
		scriptExit = "1"
	}

	return `#!/bin/sh
if [ "$1" = "--version" ]; then
  echo "Python ` + version + `" >&2
  exit 0
fi
if [ "$1" = "-c" ]; then
  case "$2" in
` + missing.String() + `  esac
  printf '%s\n' "$2" | sed -n "s/.*print('\([^']*\)').*/\1/p"
  exit 0
fi
if [ -f "$1" ]; then
  echo "Python Test Script"
  if [ ` + scriptExit + ` -ne 0 ]; then
    echo "AssertionError" >&2
    exit ` + scriptExit + `
  fi
  echo "All script tests passed!"
  exit 0
fi
echo "unsupported arguments: $*" >&2
exit 2
`
}

// WriteFile creates path with its parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
