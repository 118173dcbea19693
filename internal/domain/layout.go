package domain

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Platform names the executable-location convention of a distribution tree.
type Platform string

const (
	// PlatformWindows keeps the executable at the root with DLLs/ and Lib/ beside it.
	PlatformWindows Platform = "windows"
	// PlatformPOSIX keeps the executable under bin/.
	PlatformPOSIX Platform = "posix"
)

// PlatformFor maps a runtime.GOOS value to its layout convention.
func PlatformFor(goos string) Platform {
	if goos == "windows" {
		return PlatformWindows
	}
	return PlatformPOSIX
}

// Layout is the resolved shape of one distribution tree. It is computed once
// per session and never re-resolved.
type Layout struct {
	Root         string            `json:"root"`
	GOOS         string            `json:"goos"`
	Platform     Platform          `json:"platform"`
	Executable   string            `json:"executable"`
	Alias        string            `json:"alias,omitempty"`
	RequiredDirs []string          `json:"required_dirs"`
	HeaderPath   string            `json:"header_path"`
	LinkageTool  []string          `json:"linkage_tool,omitempty"`
	TclVersion   string            `json:"tcl_version,omitempty"`
	ExtraEnv     map[string]string `json:"extra_env,omitempty"`
}

// ResolveLayout locates the interpreter under root for the given operating
// system. It fails with ErrExecutableMissing when the executable is absent.
func ResolveLayout(root, goos string, cfg DistConfig) (Layout, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return Layout{}, fmt.Errorf("resolving path: %w", err)
	}

	l := Layout{
		Root:       abs,
		GOOS:       goos,
		Platform:   PlatformFor(goos),
		TclVersion: cfg.TclVersion,
		ExtraEnv:   cfg.Env,
	}

	switch l.Platform {
	case PlatformWindows:
		l.Executable = filepath.Join(abs, cfg.WindowsExecutable)
		l.RequiredDirs = cfg.RequiredDirs.Windows
		l.HeaderPath = filepath.Join(abs, "include", "Python.h")
	default:
		l.Executable = filepath.Join(abs, "bin", cfg.Executable)
		l.Alias = filepath.Join(abs, "bin", cfg.Executable+cfg.Major())
		l.RequiredDirs = cfg.RequiredDirs.POSIX
		l.HeaderPath = filepath.Join(abs, "include", "python"+cfg.MajorMinor(), "Python.h")
		if goos == "darwin" {
			l.LinkageTool = []string{"otool", "-L"}
		} else {
			l.LinkageTool = []string{"ldd"}
		}
	}

	if _, err := os.Stat(l.Executable); err != nil {
		return Layout{}, fmt.Errorf("%w at %s", ErrExecutableMissing, l.Executable)
	}

	return l, nil
}

// Relocate resolves the same layout convention for a copy of the tree at newRoot.
func (l Layout) Relocate(newRoot string, cfg DistConfig) (Layout, error) {
	return ResolveLayout(newRoot, l.GOOS, cfg)
}

// Overrides returns the variables set on top of the inherited environment.
// currentPath is the inherited PATH value.
func (l Layout) Overrides(currentPath string) map[string]string {
	vars := make(map[string]string, len(l.ExtraEnv)+4)
	for k, v := range l.ExtraEnv {
		vars[k] = v
	}

	if l.Platform != PlatformWindows {
		return vars
	}

	dlls := filepath.Join(l.Root, "DLLs")
	if isDir(dlls) {
		vars["PATH"] = dlls + string(os.PathListSeparator) + currentPath
	}

	vars["PYTHONHOME"] = l.Root

	tcl := filepath.Join(l.Root, "tcl")
	if isDir(tcl) {
		vars["TCL_LIBRARY"] = filepath.Join(tcl, "tcl"+l.TclVersion)
		vars["TK_LIBRARY"] = filepath.Join(tcl, "tk"+l.TclVersion)
	}

	return vars
}

// Environ returns base with the layout's overrides applied, ready for exec.Cmd.Env.
func (l Layout) Environ(base []string) []string {
	fold := l.Platform == PlatformWindows
	current, _ := lookupEnv(base, "PATH", fold)
	overrides := l.Overrides(current)

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := append([]string(nil), base...)
	for _, k := range keys {
		env = setEnv(env, k, overrides[k], fold)
	}
	return env
}

func lookupEnv(env []string, key string, fold bool) (string, bool) {
	for _, kv := range env {
		k, v, ok := strings.Cut(kv, "=")
		if ok && keyEqual(k, key, fold) {
			return v, true
		}
	}
	return "", false
}

func setEnv(env []string, key, value string, fold bool) []string {
	for i, kv := range env {
		k, _, ok := strings.Cut(kv, "=")
		if ok && keyEqual(k, key, fold) {
			env[i] = k + "=" + value
			return env
		}
	}
	return append(env, key+"="+value)
}

func keyEqual(a, b string, fold bool) bool {
	if fold {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
