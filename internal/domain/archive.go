package domain

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"
)

// ArchiveJob describes one packaging run.
type ArchiveJob struct {
	Source string `json:"source"`
	Output string `json:"output"`
	Prefix string `json:"prefix,omitempty"`
}

// Validate rejects jobs that cannot produce a well-formed archive.
func (j ArchiveJob) Validate() error {
	if j.Source == "" {
		return fmt.Errorf("source directory must not be empty")
	}
	if j.Output == "" {
		return fmt.Errorf("output file must not be empty")
	}
	if j.Prefix != "" {
		p := strings.ReplaceAll(j.Prefix, `\`, "/")
		if path.IsAbs(p) {
			return fmt.Errorf("prefix %q must be relative", j.Prefix)
		}
		for _, seg := range strings.Split(p, "/") {
			if seg == ".." {
				return fmt.Errorf("prefix %q must not contain '..'", j.Prefix)
			}
		}
	}
	return nil
}

// EntryName returns the archive path for a slash-separated relative path.
func (j ArchiveJob) EntryName(rel string) string {
	p := strings.Trim(strings.ReplaceAll(j.Prefix, `\`, "/"), "/")
	if p == "" {
		return rel
	}
	return path.Join(p, rel)
}

// ArchiveResult describes a finished archive.
type ArchiveResult struct {
	Output  string `json:"output"`
	Entries int    `json:"entries"`
	Bytes   int64  `json:"bytes"`
	Commit  string `json:"commit,omitempty"`
}

// SizeMB returns the archive size in mebibytes.
func (r ArchiveResult) SizeMB() float64 {
	return float64(r.Bytes) / (1024 * 1024)
}

// EntryKind classifies an entry of a tree listing.
type EntryKind string

const (
	EntryDir     EntryKind = "dir"
	EntryFile    EntryKind = "file"
	EntrySymlink EntryKind = "symlink"
	EntryOther   EntryKind = "other"
)

// TreeEntry is one filesystem object found under a listing root.
type TreeEntry struct {
	RelPath    string      `json:"rel_path"`
	Kind       EntryKind   `json:"kind"`
	Mode       fs.FileMode `json:"mode"`
	Size       int64       `json:"size"`
	ModTime    time.Time   `json:"mod_time"`
	LinkTarget string      `json:"link_target,omitempty"`
}

// TreeListing is a deterministic listing of a directory tree. Within each
// directory the files come first in lexical order, then each subdirectory in
// lexical order followed by its own contents.
type TreeListing struct {
	Root    string      `json:"root"`
	Entries []TreeEntry `json:"entries"`
}

// Files returns the entries that become archive members: regular files and symlinks.
func (t *TreeListing) Files() []TreeEntry {
	var out []TreeEntry
	for _, e := range t.Entries {
		if e.Kind == EntryFile || e.Kind == EntrySymlink {
			out = append(out, e)
		}
	}
	return out
}
