package stencil

import (
	"io"
	"sync"

	e "github.com/pkg/errors"
)

// RawFile is the unbuffered random access view over a stencil table.
//
// Every Read() triggers at most one seek+read pair on exactly one of the
// underlying sources and never crosses a cut-out border. Callers that want
// more than one border worth of data in a single call should use File or
// loop themselves (the usual io.Reader short read contract applies).
//
// A RawFile is itself a Source, so tables can be built over other views.
type RawFile struct {
	table *Table
	off   int64

	// lock, when non-nil, serializes the seek+read pair against other
	// views sharing the same underlying sources. Without it, concurrent
	// use of one source from several goroutines mixes up stream positions.
	lock sync.Locker
}

// NewRawFile returns a view over `table`. `lock` may be nil if the
// underlying sources are not shared between goroutines.
func NewRawFile(table *Table, lock sync.Locker) *RawFile {
	return &RawFile{
		table: table,
		lock:  lock,
	}
}

// Size returns the total size of the virtual file.
func (f *RawFile) Size() int64 {
	return f.table.Size()
}

// Tell returns the current cursor position without moving it.
func (f *RawFile) Tell() int64 {
	return f.off
}

// Seek moves the cursor like io.Seeker does. Seeking beyond the end is
// allowed and not clamped; a later Read() there simply yields io.EOF.
// That mirrors how sparse files behave and is relied upon by callers that
// probe "would-be" offsets. Seeking before the start fails with
// ErrInvalidSeek and does not move the cursor.
func (f *RawFile) Seek(off int64, whence int) (int64, error) {
	newOff := f.off

	switch whence {
	case io.SeekStart:
		newOff = off
	case io.SeekCurrent:
		newOff += off
	case io.SeekEnd:
		newOff = f.table.Size() + off
	default:
		return 0, e.Wrapf(ErrUnsupported, "bad whence %d", whence)
	}

	if newOff < 0 {
		return 0, ErrInvalidSeek
	}

	f.off = newOff
	return f.off, nil
}

// Read fills `p` with up to one stencil worth of data at the cursor.
// At or beyond the end of the virtual file it returns (0, io.EOF).
func (f *RawFile) Read(p []byte) (int, error) {
	idx := f.table.lookup(f.off)
	if idx >= len(f.table.stencils) {
		return 0, io.EOF
	}

	if f.lock != nil {
		f.lock.Lock()
		defer f.lock.Unlock()
	}

	stencil := f.table.stencils[idx]

	// The source itself does not guard against this and would hand the
	// read to a dead stream.
	if stencil.Src.Closed() {
		return 0, ErrClosedSource
	}

	offInStencil := f.off - f.table.cumsizes[idx]
	if _, err := stencil.Src.Seek(stencil.Off+offInStencil, io.SeekStart); err != nil {
		return 0, e.Wrapf(err, "stencil %d", idx)
	}

	// Read as much as requested, but stop at the end of this cut-out:
	readable := stencil.Size - offInStencil
	if int64(len(p)) > readable {
		p = p[:readable]
	}

	n, err := stencil.Src.Read(p)
	f.off += int64(n)

	// A source hitting its own end inside the mapped range is fine as far
	// as this call is concerned; the next Read() decides about io.EOF.
	if err == io.EOF && n > 0 {
		err = nil
	}

	return n, err
}

// Readable is always true; tables reject unreadable sources on construction.
func (f *RawFile) Readable() bool {
	return true
}

// Writable is always false. There is no write path through a stencil view.
func (f *RawFile) Writable() bool {
	return false
}

// Seekable is true if all distinct sources of the table can seek.
func (f *RawFile) Seekable() bool {
	return f.table.seekable()
}

// Closed is always false; a view has no own lifetime to end.
func (f *RawFile) Closed() bool {
	return false
}

// Close is a no-op. The view does not own the sources it reads from, so it
// must not close them either.
func (f *RawFile) Close() error {
	return nil
}
