package stencil

import (
	"errors"
)

var (
	// ErrInvalidStencil is returned when a cut-out has a negative offset
	// or a negative size.
	ErrInvalidStencil = errors.New("stencil offset and size must not be negative")

	// ErrNotReadable is returned when one of the sources of a table does
	// not offer read support.
	ErrNotReadable = errors.New("all joined sources must be readable")

	// ErrInvalidSeek is returned when a seek would move the cursor before
	// the start of the virtual file. The cursor is left untouched then.
	ErrInvalidSeek = errors.New("seek before start of file")

	// ErrClosedSource is returned when a read hits a source that was
	// closed by its owner in the meantime.
	ErrClosedSource = errors.New("cannot read from a closed source")

	// ErrSizeQuery is returned by Join when the size of a source could
	// not be determined by seeking to its end.
	ErrSizeQuery = errors.New("failed to query size of source")

	// ErrUnsupported is returned for operations that have no meaning on a
	// virtual file (writing, raw file descriptors and friends).
	ErrUnsupported = errors.New("operation not supported by virtual file")
)
