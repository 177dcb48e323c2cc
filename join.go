package stencil

import (
	"io"
	"sync"

	e "github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/sahib/stencil/source"
)

// OpenFunc opens one source on demand. Join calls the functions in list
// order, so split volumes are only opened once their size is needed and
// never all at once in advance.
type OpenFunc func() (Source, error)

// Join opens every source in `opens` and glues them together to one
// buffered file, each source contributing its full content in list order.
// This is the usual way to present split or multi volume files as one
// stream. Sizes are determined by seeking to the end of each source; a
// source that cannot tell its size makes the whole join fail with
// ErrSizeQuery. Empty sources disappear from the result.
func Join(opens []OpenFunc, lock sync.Locker) (*File, error) {
	stencils := make([]Stencil, 0, len(opens))
	for idx, open := range opens {
		src, err := open()
		if err != nil {
			return nil, e.Wrapf(err, "join: open %d", idx)
		}

		if !src.Seekable() {
			return nil, e.Wrapf(ErrSizeQuery, "join: source %d", idx)
		}

		size, err := src.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, e.Wrapf(ErrSizeQuery, "join: source %d: %v", idx, err)
		}

		stencils = append(stencils, Stencil{Src: src, Off: 0, Size: size})
	}

	table, err := NewTableFrom(stencils)
	if err != nil {
		return nil, err
	}

	return NewFile(table, lock), nil
}

// JoinSources is Join for sources that are already open.
func JoinSources(lock sync.Locker, srcs ...Source) (*File, error) {
	opens := make([]OpenFunc, len(srcs))
	for idx, src := range srcs {
		src := src
		opens[idx] = func() (Source, error) {
			return src, nil
		}
	}

	return Join(opens, lock)
}

// JoinPaths joins the files at `paths` (in argument order) of an afero
// filesystem. Use afero.NewOsFs() for the plain disk case.
func JoinPaths(fs afero.Fs, lock sync.Locker, paths ...string) (*File, error) {
	opens := make([]OpenFunc, len(paths))
	for idx, path := range paths {
		path := path
		opens[idx] = func() (Source, error) {
			return source.OpenFs(fs, path)
		}
	}

	return Join(opens, lock)
}
