package pages

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Filesystem is the read-only lookup pages are served from
type Filesystem interface {
	ReadFile(name string) ([]byte, error)
}

// Dir serves files from a directory on disk. Names are joined onto the
// directory as given; ".." segments are not rejected.
type Dir string

func (d Dir) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(string(d), filepath.FromSlash(name)))
}

// FS serves files from an fs.FS
type FS struct {
	FS fs.FS
}

func (f FS) ReadFile(name string) ([]byte, error) {
	return fs.ReadFile(f.FS, strings.TrimPrefix(name, "/"))
}
