package treecopy

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/abdidvp/distkit/internal/domain"
)

// Copier implements domain.TreeCopier. Symlinks are recreated with their
// original targets; file modes and modification times are kept.
type Copier struct {
	scanner domain.TreeScanner
}

// New creates a Copier that lists the source tree with scanner.
func New(scanner domain.TreeScanner) *Copier {
	return &Copier{scanner: scanner}
}

// CopyTree copies src to dst. dst must not exist yet.
func (c *Copier) CopyTree(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return fmt.Errorf("destination %s already exists", dst)
	}

	listing, err := c.scanner.Scan(src)
	if err != nil {
		return fmt.Errorf("listing %s: %w", src, err)
	}

	rootInfo, err := os.Stat(listing.Root)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dst, 0o700); err != nil {
		return err
	}

	// Directories stay writable until every child is in place, then get
	// their real mode back, deepest first.
	dirs := []domain.TreeEntry{{Mode: rootInfo.Mode(), ModTime: rootInfo.ModTime()}}

	for _, e := range listing.Entries {
		from := filepath.Join(listing.Root, filepath.FromSlash(e.RelPath))
		to := filepath.Join(dst, filepath.FromSlash(e.RelPath))

		switch e.Kind {
		case domain.EntryDir:
			if err := os.Mkdir(to, 0o700); err != nil {
				return err
			}
			dirs = append(dirs, e)
		case domain.EntryFile:
			if err := copyFile(from, to, e); err != nil {
				return fmt.Errorf("copying %s: %w", e.RelPath, err)
			}
		case domain.EntrySymlink:
			if err := os.Symlink(e.LinkTarget, to); err != nil {
				return fmt.Errorf("linking %s: %w", e.RelPath, err)
			}
		}
	}

	for i := len(dirs) - 1; i >= 0; i-- {
		to := filepath.Join(dst, filepath.FromSlash(dirs[i].RelPath))
		if err := os.Chmod(to, dirs[i].Mode.Perm()); err != nil {
			return err
		}
		_ = os.Chtimes(to, dirs[i].ModTime, dirs[i].ModTime)
	}

	return nil
}

func copyFile(from, to string, e domain.TreeEntry) (err error) {
	src, err := os.Open(from)
	if err != nil {
		return err
	}
	defer func() { _ = src.Close() }()

	dst, err := os.OpenFile(to, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := dst.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	if _, err := io.Copy(dst, src); err != nil {
		return err
	}
	if err := dst.Chmod(e.Mode.Perm()); err != nil {
		return err
	}
	// Compiled bytecode is validated against source mtimes.
	return os.Chtimes(to, e.ModTime, e.ModTime)
}
