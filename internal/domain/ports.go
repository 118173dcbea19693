package domain

import "context"

// TreeScanner lists a directory tree in deterministic order.
type TreeScanner interface {
	Scan(root string) (*TreeListing, error)
}

// ArchiveWriter writes the files of a listing into a compressed archive at
// job.Output and returns the number of entries written.
type ArchiveWriter interface {
	Write(job ArchiveJob, listing *TreeListing) (int, error)
}

// TreeCopier copies a whole directory tree, keeping symlinks and modes.
type TreeCopier interface {
	CopyTree(src, dst string) error
}

// ConfigLoader loads validation settings. An empty path means the default
// location; a missing default file yields DefaultDistConfig.
type ConfigLoader interface {
	Load(path string) (DistConfig, error)
}

// GitInfo reads repository metadata.
type GitInfo interface {
	CommitHash(path string) (string, error)
}

// Invocation is one subprocess call.
type Invocation struct {
	Path string
	Args []string
	Env  []string
	Dir  string
}

// ProcessResult is the captured outcome of a finished subprocess.
type ProcessResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Combined returns stdout followed by stderr.
func (r *ProcessResult) Combined() string { return r.Stdout + r.Stderr }

// ProcessRunner executes subprocesses. It returns an error only when the
// process could not be started or was interrupted; a non-zero exit is
// reported through ProcessResult.ExitCode.
type ProcessRunner interface {
	Run(ctx context.Context, inv Invocation) (*ProcessResult, error)
}

// Reporter receives the transcript of a validation run as it happens.
type Reporter interface {
	TestStarted(index int, name string)
	Info(msg string)
	Warn(msg string)
	TestPassed(name string)
	TestFailed(name string, err error)
}
