package source

import (
	"sync"

	e "github.com/pkg/errors"
	"github.com/spf13/afero"
)

// File is a readable, seekable source backed by a file of some filesystem.
// Unlike a bare *os.File it remembers being closed, so stencil views can
// answer reads on it with a clean error instead of hitting a stale fd.
type File struct {
	mu     sync.Mutex
	fd     afero.File
	closed bool
}

// Open opens the file at `path` on the real filesystem.
func Open(path string) (*File, error) {
	return OpenFs(afero.NewOsFs(), path)
}

// OpenFs opens the file at `path` of `fs`.
func OpenFs(fs afero.Fs, path string) (*File, error) {
	fd, err := fs.Open(path)
	if err != nil {
		return nil, e.Wrapf(err, "source: open %s", path)
	}

	return &File{fd: fd}, nil
}

func (f *File) Read(p []byte) (int, error) {
	return f.fd.Read(p)
}

func (f *File) Seek(off int64, whence int) (int64, error) {
	return f.fd.Seek(off, whence)
}

// Name returns the path the file was opened with.
func (f *File) Name() string {
	return f.fd.Name()
}

// Readable is true for files opened by this package.
func (f *File) Readable() bool {
	return true
}

// Seekable is true for files opened by this package.
func (f *File) Seekable() bool {
	return true
}

// Closed reports whether Close was called already.
func (f *File) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.closed
}

// Close closes the underlying file. The owner of a source is the only one
// supposed to call this; stencil views never do.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}

	f.closed = true
	return f.fd.Close()
}
