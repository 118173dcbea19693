package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultExpectedVersion is the interpreter version the distributions are built for.
const DefaultExpectedVersion = "2.7.18"

// DefaultCoreModules must import on every supported platform.
var DefaultCoreModules = []string{
	"sys", "os", "json", "re", "io", "struct", "array",
	"math", "cmath", "itertools", "functools", "collections",
	"datetime", "time", "random", "hashlib", "binascii",
	"base64", "pickle", "csv", "xml.etree.ElementTree",
	"sqlite3", "zlib", "gzip", "zipfile", "tarfile",
	"socket", "threading", "subprocess", "unicodedata",
	"codecs", "locale", "tempfile", "shutil", "glob",
	"fnmatch", "logging", "traceback", "errno",
}

// DefaultPOSIXModules are core modules that only exist outside Windows.
var DefaultPOSIXModules = []string{"select", "signal"}

// DefaultOptionalModules depend on build options; their absence is tolerated.
var DefaultOptionalModules = []string{"bz2", "ssl", "readline"}

var moduleNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)*$`)

// DistConfig holds validation settings loaded from .distkit.yaml.
type DistConfig struct {
	ExpectedVersion   string            `yaml:"expected_version"   json:"expected_version"`
	Executable        string            `yaml:"executable"         json:"executable"`
	WindowsExecutable string            `yaml:"windows_executable" json:"windows_executable"`
	CoreModules       []string          `yaml:"core_modules"       json:"core_modules"`
	POSIXModules      []string          `yaml:"posix_modules"      json:"posix_modules"`
	OptionalModules   []string          `yaml:"optional_modules"   json:"optional_modules"`
	RequiredDirs      RequiredDirs      `yaml:"required_dirs"      json:"required_dirs"`
	TclVersion        string            `yaml:"tcl_version"        json:"tcl_version"`
	Env               map[string]string `yaml:"env"                json:"env,omitempty"`
	EnvFile           string            `yaml:"env_file"           json:"env_file,omitempty"`
}

// RequiredDirs lists the directories each layout convention must contain.
type RequiredDirs struct {
	Windows []string `yaml:"windows" json:"windows"`
	POSIX   []string `yaml:"posix"   json:"posix"`
}

// DefaultDistConfig returns the settings used when no config file exists.
func DefaultDistConfig() DistConfig {
	return DistConfig{
		ExpectedVersion:   DefaultExpectedVersion,
		Executable:        "python",
		WindowsExecutable: "python.exe",
		CoreModules:       append([]string(nil), DefaultCoreModules...),
		POSIXModules:      append([]string(nil), DefaultPOSIXModules...),
		OptionalModules:   append([]string(nil), DefaultOptionalModules...),
		RequiredDirs: RequiredDirs{
			Windows: []string{"Lib", "DLLs", "Scripts", "include", "libs"},
			POSIX:   []string{"bin", "lib", "include"},
		},
		TclVersion: "8.6",
	}
}

// MajorMinor returns "2.7" for "2.7.18". Versions without a dot are returned as-is.
func (c DistConfig) MajorMinor() string {
	parts := strings.SplitN(c.ExpectedVersion, ".", 3)
	if len(parts) < 2 {
		return c.ExpectedVersion
	}
	return parts[0] + "." + parts[1]
}

// Major returns the leading version component.
func (c DistConfig) Major() string {
	return strings.SplitN(c.ExpectedVersion, ".", 2)[0]
}

// CoreModulesFor returns the core import list adjusted for the platform.
func (c DistConfig) CoreModulesFor(p Platform) []string {
	mods := append([]string(nil), c.CoreModules...)
	if p != PlatformWindows {
		mods = append(mods, c.POSIXModules...)
	}
	return mods
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c DistConfig) Validate() error {
	if strings.TrimSpace(c.ExpectedVersion) == "" {
		return fmt.Errorf("%w: expected_version must not be empty", ErrInvalidConfig)
	}
	if strings.ContainsAny(c.Executable, `/\`) || strings.ContainsAny(c.WindowsExecutable, `/\`) {
		return fmt.Errorf("%w: executable names must not contain path separators", ErrInvalidConfig)
	}

	lists := map[string][]string{
		"core_modules":     c.CoreModules,
		"posix_modules":    c.POSIXModules,
		"optional_modules": c.OptionalModules,
	}
	for key, mods := range lists {
		for _, m := range mods {
			if !moduleNameRe.MatchString(m) {
				return fmt.Errorf("%w: invalid module name %q in %s", ErrInvalidConfig, m, key)
			}
		}
	}

	for k := range c.Env {
		if k == "" || strings.ContainsAny(k, "= ") {
			return fmt.Errorf("%w: invalid environment variable name %q", ErrInvalidConfig, k)
		}
	}

	return nil
}

// Merge overlays explicit overrides on top of c. Non-zero values win.
func (c DistConfig) Merge(override DistConfig) DistConfig {
	result := c

	if override.ExpectedVersion != "" {
		result.ExpectedVersion = override.ExpectedVersion
	}
	if override.Executable != "" {
		result.Executable = override.Executable
	}
	if override.WindowsExecutable != "" {
		result.WindowsExecutable = override.WindowsExecutable
	}
	// Explicit lists replace the defaults entirely.
	if len(override.CoreModules) > 0 {
		result.CoreModules = override.CoreModules
	}
	if override.POSIXModules != nil {
		result.POSIXModules = override.POSIXModules
	}
	if override.OptionalModules != nil {
		result.OptionalModules = override.OptionalModules
	}
	if len(override.RequiredDirs.Windows) > 0 {
		result.RequiredDirs.Windows = override.RequiredDirs.Windows
	}
	if len(override.RequiredDirs.POSIX) > 0 {
		result.RequiredDirs.POSIX = override.RequiredDirs.POSIX
	}
	if override.TclVersion != "" {
		result.TclVersion = override.TclVersion
	}
	if len(override.Env) > 0 {
		merged := make(map[string]string, len(result.Env)+len(override.Env))
		for k, v := range result.Env {
			merged[k] = v
		}
		for k, v := range override.Env {
			merged[k] = v
		}
		result.Env = merged
	}
	if override.EnvFile != "" {
		result.EnvFile = override.EnvFile
	}

	return result
}
