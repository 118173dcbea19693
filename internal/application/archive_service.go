package application

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdidvp/distkit/internal/domain"
)

// ArchiveService orchestrates the archive pipeline:
// validate job -> scan source -> write tarball -> stat output -> read commit.
type ArchiveService struct {
	scanner domain.TreeScanner
	writer  domain.ArchiveWriter
	git     domain.GitInfo
}

// NewArchiveService creates an ArchiveService. git may be nil.
func NewArchiveService(
	scanner domain.TreeScanner,
	writer domain.ArchiveWriter,
	git domain.GitInfo,
) *ArchiveService {
	return &ArchiveService{
		scanner: scanner,
		writer:  writer,
		git:     git,
	}
}

// Prepare checks the job's preconditions without touching the output path.
func (s *ArchiveService) Prepare(job domain.ArchiveJob) error {
	if err := job.Validate(); err != nil {
		return err
	}
	info, err := os.Stat(job.Source)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", domain.ErrSourceMissing, job.Source)
	}
	return nil
}

// Create writes the archive described by job. Nothing is written when the
// source directory does not exist.
func (s *ArchiveService) Create(job domain.ArchiveJob) (*domain.ArchiveResult, error) {
	if err := s.Prepare(job); err != nil {
		return nil, err
	}

	// 1. Scan before the output exists so it never lists itself
	listing, err := s.scanner.Scan(job.Source)
	if err != nil {
		return nil, fmt.Errorf("scanning source: %w", err)
	}

	// 2. Create output parents
	if dir := filepath.Dir(job.Output); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	// 3. Write
	n, err := s.writer.Write(job, listing)
	if err != nil {
		return nil, fmt.Errorf("writing archive: %w", err)
	}

	info, err := os.Stat(job.Output)
	if err != nil {
		return nil, fmt.Errorf("reading archive size: %w", err)
	}

	result := &domain.ArchiveResult{
		Output:  job.Output,
		Entries: n,
		Bytes:   info.Size(),
	}

	// 4. Commit is informational only
	if s.git != nil {
		if hash, err := s.git.CommitHash(job.Source); err == nil {
			result.Commit = hash
		}
	}

	return result, nil
}
