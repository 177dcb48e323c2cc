package stencil

import (
	"bufio"
	"io"
	"sync"
)

// DefaultBufferSize is the read-ahead used by NewFile. It matches the chunk
// size of the compress module, so sequential reads over compressed sources
// refill at chunk granularity.
const DefaultBufferSize = 64 * 1024

// File is the buffered, ergonomic sibling of RawFile. Its Read() fills the
// passed buffer completely unless the end of the virtual file comes first,
// looping internally over cut-out borders and buffer refills. Use it when
// consumers expect "give me exactly n bytes" semantics, e.g. header parsers.
type File struct {
	raw *RawFile
	br  *bufio.Reader
}

// NewFile wraps `table` into a buffered file with DefaultBufferSize of
// read-ahead. `lock` is handed down to the raw view, see NewRawFile.
func NewFile(table *Table, lock sync.Locker) *File {
	return NewFileBuffer(table, lock, DefaultBufferSize)
}

// NewFileBuffer is NewFile with an explicit read-ahead size.
func NewFileBuffer(table *Table, lock sync.Locker, bufSize int) *File {
	raw := NewRawFile(table, lock)
	return &File{
		raw: raw,
		br:  bufio.NewReaderSize(raw, bufSize),
	}
}

// Size returns the total size of the virtual file.
func (f *File) Size() int64 {
	return f.raw.Size()
}

// Tell returns the position the next Read() will deliver data for.
func (f *File) Tell() int64 {
	return f.raw.Tell() - int64(f.br.Buffered())
}

// Seek behaves like RawFile.Seek, including the unclamped upper end.
// Any buffered read-ahead is dropped.
func (f *File) Seek(off int64, whence int) (int64, error) {
	switch whence {
	case io.SeekCurrent:
		return f.Seek(f.Tell()+off, io.SeekStart)
	case io.SeekEnd:
		return f.Seek(f.raw.Size()+off, io.SeekStart)
	}

	if off < 0 {
		return 0, ErrInvalidSeek
	}

	if _, err := f.raw.Seek(off, io.SeekStart); err != nil {
		return 0, err
	}

	f.br.Reset(f.raw)
	return off, nil
}

// Read reads len(p) bytes, less only if the end of the virtual file is
// reached before. It never returns a short read at a cut-out border.
func (f *File) Read(p []byte) (int, error) {
	read := 0
	for read < len(p) {
		n, err := f.br.Read(p[read:])
		read += n

		if err == io.EOF {
			if read > 0 {
				return read, nil
			}

			return 0, io.EOF
		}

		if err != nil {
			return read, err
		}
	}

	return read, nil
}

// WriteTo streams everything from the current position to `w`.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	return f.br.WriteTo(w)
}

// Readable is always true.
func (f *File) Readable() bool {
	return true
}

// Writable is always false.
func (f *File) Writable() bool {
	return false
}

// Seekable mirrors the raw view's answer.
func (f *File) Seekable() bool {
	return f.raw.Seekable()
}

// Closed is always false.
func (f *File) Closed() bool {
	return false
}

// Close is a no-op; see RawFile.Close.
func (f *File) Close() error {
	return nil
}
