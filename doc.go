// Package stencil implements a random access view over scattered byte
// ranges of one or more underlying streams. A stencil is a (source, offset,
// size) cut-out; putting several of them in a row yields one seamless,
// seekable virtual file without copying any of the underlying data.
//
// The package is split in two tiers:
//
//   - RawFile - Minimal random access primitive. One Read() maps to at most
//     one read on one underlying source, so every call stays attributable
//     to a single stream position. Reads may be short at cut-out borders.
//   - File    - Read-ahead decorator over RawFile with "fill the buffer"
//     read semantics, meant for sequential consumers.
//
// Sources are never owned by this package. Closing a view does not close
// the streams it was built on; that remains the caller's job. When several
// views share one physical stream from different goroutines, pass a common
// sync.Locker so that each seek+read pair stays atomic.
package stencil
