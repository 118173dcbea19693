package scanner

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/abdidvp/distkit/internal/domain"
)

// FileScanner implements domain.TreeScanner by walking the filesystem.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

// Scan lists every entry under root. Symlinks are reported as links and never
// followed, so a symlinked directory is a single entry.
func (s *FileScanner) Scan(root string) (*domain.TreeListing, error) {
	absPath, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", absPath)
	}

	result := &domain.TreeListing{Root: absPath}
	if err := walk(absPath, "", result); err != nil {
		return nil, err
	}
	return result, nil
}

// walk emits the files of rel first, then recurses into each subdirectory.
// os.ReadDir already returns entries sorted by name.
func walk(root, rel string, result *domain.TreeListing) error {
	entries, err := os.ReadDir(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return err
	}

	var dirs []os.DirEntry
	for _, d := range entries {
		if d.IsDir() {
			dirs = append(dirs, d)
			continue
		}
		entry, err := describe(root, path.Join(rel, d.Name()), d)
		if err != nil {
			return err
		}
		result.Entries = append(result.Entries, entry)
	}

	for _, d := range dirs {
		relPath := path.Join(rel, d.Name())
		info, err := d.Info()
		if err != nil {
			return err
		}
		result.Entries = append(result.Entries, domain.TreeEntry{
			RelPath: relPath,
			Kind:    domain.EntryDir,
			Mode:    info.Mode(),
			ModTime: info.ModTime(),
		})
		if err := walk(root, relPath, result); err != nil {
			return err
		}
	}

	return nil
}

func describe(root, relPath string, d os.DirEntry) (domain.TreeEntry, error) {
	info, err := d.Info()
	if err != nil {
		return domain.TreeEntry{}, err
	}

	entry := domain.TreeEntry{
		RelPath: relPath,
		Mode:    info.Mode(),
		ModTime: info.ModTime(),
	}

	switch {
	case info.Mode().IsRegular():
		entry.Kind = domain.EntryFile
		entry.Size = info.Size()
	case info.Mode()&os.ModeSymlink != 0:
		entry.Kind = domain.EntrySymlink
		target, err := os.Readlink(filepath.Join(root, filepath.FromSlash(relPath)))
		if err != nil {
			return domain.TreeEntry{}, err
		}
		entry.LinkTarget = target
	default:
		entry.Kind = domain.EntryOther
	}

	return entry, nil
}
