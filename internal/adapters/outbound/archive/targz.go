package archive

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/abdidvp/distkit/internal/domain"
)

// TarGz implements domain.ArchiveWriter with a gzip-compressed tarball.
type TarGz struct {
	logger *log.Logger
}

// New creates a TarGz writer. A nil logger uses the package default.
func New(logger *log.Logger) *TarGz {
	if logger == nil {
		logger = log.Default()
	}
	return &TarGz{logger: logger}
}

// Write adds every regular file and symlink of the listing, in listing order.
// A partially written archive is removed on failure.
func (a *TarGz) Write(job domain.ArchiveJob, listing *domain.TreeListing) (written int, err error) {
	f, err := os.Create(job.Output)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", job.Output, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(job.Output)
		}
	}()
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	gz := gzip.NewWriter(f)
	defer func() {
		if closeErr := gz.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	tw := tar.NewWriter(gz)
	defer func() {
		if closeErr := tw.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	for _, entry := range listing.Files() {
		name := job.EntryName(entry.RelPath)
		if err := a.add(tw, listing.Root, entry, name); err != nil {
			return written, fmt.Errorf("adding %s: %w", entry.RelPath, err)
		}
		written++
	}

	return written, nil
}

func (a *TarGz) add(tw *tar.Writer, root string, entry domain.TreeEntry, name string) error {
	full := filepath.Join(root, filepath.FromSlash(entry.RelPath))
	info, err := os.Lstat(full)
	if err != nil {
		return err
	}

	hdr, err := tar.FileInfoHeader(info, entry.LinkTarget)
	if err != nil {
		return err
	}
	hdr.Name = name
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	a.logger.Debug("added archive entry", "name", name, "type", entry.Kind)

	if !info.Mode().IsRegular() {
		return nil
	}

	src, err := os.Open(full)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	_, err = io.Copy(tw, src)
	return err
}
