package stencil

import (
	"io"
	"sort"

	e "github.com/pkg/errors"
)

// Source is the capability contract a stream has to fulfill in order to be
// usable as backing storage of a stencil. It is implemented by the types in
// the source sub package, by compress.Reader and by RawFile itself, so
// views can be stacked onto views.
//
// The lifetime of a Source always stays with its creator. This package only
// borrows it for reading.
type Source interface {
	io.Reader
	io.Seeker

	// Readable tells whether the source can be read from at all.
	Readable() bool

	// Seekable tells whether Seek works on this source.
	Seekable() bool

	// Closed reports whether the owner has already closed the source.
	// Reading from a closed source fails with ErrClosedSource instead of
	// running into undefined behaviour of the underlying stream.
	Closed() bool
}

// Cut describes one byte range of a single source in the sugar form of
// NewTable, i.e. without repeating the source for every entry.
type Cut struct {
	Off  int64
	Size int64
}

// Stencil is one contiguous cut-out of a source, placed in the virtual file
// at the position its table index dictates. The same source may appear in
// any number of stencils, including overlapping or duplicated ranges.
type Stencil struct {
	Src  Source
	Off  int64
	Size int64
}

// Table is an immutable, ordered collection of stencils together with the
// cumulative size borders needed for offset lookup. It does no io on its
// own; it is pure address arithmetic.
type Table struct {
	stencils []Stencil

	// cumsizes[i] is the virtual offset where stencil i starts;
	// cumsizes[len(stencils)] is the total size.
	cumsizes []int64
}

// NewTable builds a table over a single source.
//
// Examples:
//
//	cuts = [{5, 7}]        -> a 7 byte file starting at offset 5 of src.
//	cuts = [{0, 3}, {5, 3}] -> a 6 byte file with the bytes 0,1,2,5,6,7.
//	cuts = [{0, 3}, {0, 3}] -> the first 3 bytes of src twice in a row.
func NewTable(src Source, cuts []Cut) (*Table, error) {
	stencils := make([]Stencil, len(cuts))
	for idx, cut := range cuts {
		stencils[idx] = Stencil{Src: src, Off: cut.Off, Size: cut.Size}
	}

	return NewTableFrom(stencils)
}

// NewTableFrom builds a table from explicit (source, offset, size) entries.
// This is the canonical form; NewTable is sugar over it. Zero sized entries
// are dropped. They carry no bytes and would otherwise fake a premature end
// of file when a read lands exactly on their border.
func NewTableFrom(stencils []Stencil) (*Table, error) {
	for idx, stencil := range stencils {
		if stencil.Off < 0 || stencil.Size < 0 {
			return nil, e.Wrapf(ErrInvalidStencil, "stencil %d", idx)
		}
	}

	for idx, stencil := range stencils {
		if !stencil.Src.Readable() {
			return nil, e.Wrapf(ErrNotReadable, "stencil %d", idx)
		}
	}

	selected := make([]Stencil, 0, len(stencils))
	for _, stencil := range stencils {
		if stencil.Size > 0 {
			selected = append(selected, stencil)
		}
	}

	cumsizes := make([]int64, len(selected)+1)
	for idx, stencil := range selected {
		cumsizes[idx+1] = cumsizes[idx] + stencil.Size
	}

	return &Table{
		stencils: selected,
		cumsizes: cumsizes,
	}, nil
}

// Size returns the total size of the virtual file described by the table.
func (t *Table) Size() int64 {
	return t.cumsizes[len(t.cumsizes)-1]
}

// Len returns the number of stencils left after normalization.
func (t *Table) Len() int {
	return len(t.stencils)
}

// lookup finds the index i of the stencil that contains the virtual offset
// `off`, i.e. cumsizes[i] <= off < cumsizes[i+1]. For offsets at or beyond
// the end it returns len(t.stencils) as "no stencil" marker.
func (t *Table) lookup(off int64) int {
	if off >= t.Size() {
		return len(t.stencils)
	}

	// Find the first border strictly above `off`; the stencil starts one
	// border earlier. cumsizes[0] is always 0, so i >= 1 here.
	i := sort.Search(len(t.cumsizes), func(i int) bool {
		return t.cumsizes[i] > off
	})

	return i - 1
}

// seekable is true if every distinct source of the table supports seeking.
func (t *Table) seekable() bool {
	seen := make(map[Source]bool)
	for _, stencil := range t.stencils {
		if seen[stencil.Src] {
			continue
		}

		seen[stencil.Src] = true
		if !stencil.Src.Seekable() {
			return false
		}
	}

	return true
}
