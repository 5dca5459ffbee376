package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrNotFound marks a definitions source that does not exist. Callers
// treat it as non-fatal: the registry simply stays empty.
var ErrNotFound = errors.New("definitions not found")

const (
	// DefaultFile is the definitions file looked up in the working directory.
	DefaultFile = "RMakefile.yml"
	// DefaultEmbeddedName is the resource name used for embedded definitions.
	DefaultEmbeddedName = "RMakefile"
)

// Source locates the raw task definitions text: either a file on disk or
// a fixed name inside an embedded filesystem.
type Source struct {
	Path string
	FS   fs.FS
	Name string
}

// FileSource reads definitions from a path, DefaultFile when empty.
func FileSource(path string) Source {
	if path == "" {
		path = DefaultFile
	}
	return Source{Path: path}
}

// EmbeddedSource reads definitions from an embedded filesystem under a
// fixed resource name, DefaultEmbeddedName when empty.
func EmbeddedSource(fsys fs.FS, name string) Source {
	if name == "" {
		name = DefaultEmbeddedName
	}
	return Source{FS: fsys, Name: name}
}

// Read returns the raw definitions text. A missing file or resource maps
// to ErrNotFound.
func (s Source) Read() (string, error) {
	var data []byte
	var err error
	if s.FS != nil {
		data, err = fs.ReadFile(s.FS, s.Name)
	} else {
		data, err = os.ReadFile(s.Path)
	}
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, s.Location())
		}
		return "", fmt.Errorf("read definitions: %w", err)
	}
	return string(data), nil
}

// Location describes the source for diagnostics.
func (s Source) Location() string {
	if s.FS != nil {
		return "embedded:" + s.Name
	}
	return s.Path
}
