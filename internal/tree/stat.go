package tree

import (
	"io/fs"
	"os"
)

// Stater reports what is on disk at a path. The builder uses it to tell
// pages backed by a file from folder pages.
type Stater interface {
	Stat(name string) (fs.FileInfo, error)
}

// OSStater stats the real filesystem.
type OSStater struct{}

// Stat implements Stater.
func (OSStater) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}
