package source

import (
	"io"
)

// Buffer is a seekable in-memory source. It is the cheapest way to put a
// byte slice behind a stencil table and also serves as chunk storage for
// the compress reader.
type Buffer struct {
	buf []byte
	off int64
}

// NewBuffer returns a buffer reading from `data`. The slice is not copied.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{buf: data}
}

func (b *Buffer) Read(p []byte) (int, error) {
	n := copy(p, b.buf[b.off:])
	b.off += int64(n)
	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}

	return n, nil
}

func (b *Buffer) Seek(off int64, whence int) (int64, error) {
	switch whence {
	case io.SeekCurrent:
		b.off += off
	case io.SeekEnd:
		b.off = int64(len(b.buf)) + off
	case io.SeekStart:
		b.off = off
	}

	if b.off < 0 {
		b.off = 0
	}

	if b.off > int64(len(b.buf)) {
		b.off = int64(len(b.buf))
	}

	return b.off, nil
}

// Len returns the number of unread bytes.
func (b *Buffer) Len() int {
	return int(int64(len(b.buf)) - b.off)
}

// Reset drops the contents and rewinds the buffer.
func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
	b.off = 0
}

func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.buf[b.off:])
	b.off += int64(n)
	return int64(n), err
}

// Readable is always true for buffers.
func (b *Buffer) Readable() bool {
	return true
}

// Seekable is always true for buffers.
func (b *Buffer) Seekable() bool {
	return true
}

// Closed is always false; a buffer has no resources to release.
func (b *Buffer) Closed() bool {
	return false
}

// Close is a no-op only existing to fulfill io.Closer.
func (b *Buffer) Close() error {
	return nil
}
