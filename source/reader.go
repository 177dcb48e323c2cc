package source

import (
	"errors"
	"io"
)

// ErrNotSeekable is returned when seeking a wrapped stream that does not
// support it.
var ErrNotSeekable = errors.New("source does not support seeking")

// Reader adapts a foreign io.Reader (optionally an io.ReadSeeker) into a
// source. It probes seek support once at construction. Closed() is always
// false; if the wrapped stream has a lifetime of its own, prefer a type
// that can track it (like File).
type Reader struct {
	r        io.Reader
	seekable bool
}

// NewReader wraps `r`. If `r` does not implement io.Seeker, Seekable()
// answers false and the stencil layer will refuse size queries on it.
func NewReader(r io.Reader) *Reader {
	_, seekable := r.(io.Seeker)
	return &Reader{r: r, seekable: seekable}
}

func (r *Reader) Read(p []byte) (int, error) {
	return r.r.Read(p)
}

func (r *Reader) Seek(off int64, whence int) (int64, error) {
	if seeker, ok := r.r.(io.Seeker); ok {
		return seeker.Seek(off, whence)
	}

	return 0, ErrNotSeekable
}

// Readable is always true.
func (r *Reader) Readable() bool {
	return true
}

// Seekable tells whether the wrapped stream can seek.
func (r *Reader) Seekable() bool {
	return r.seekable
}

// Closed is always false; the wrapped stream's lifetime is unknown here.
func (r *Reader) Closed() bool {
	return false
}
