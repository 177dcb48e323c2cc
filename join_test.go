package stencil

import (
	"io"
	"strings"
	"testing"

	e "github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/sahib/stencil/source"
	"github.com/sahib/stencil/util/testutil"
)

func TestJoinSources(t *testing.T) {
	a := testutil.CreateDummyBuf(4)
	b := []byte{}
	c := testutil.CreateDummyBuf(6)

	joined, err := JoinSources(
		nil,
		source.NewBuffer(a),
		source.NewBuffer(b),
		source.NewBuffer(c),
	)
	require.Nil(t, err)
	require.Equal(t, int64(10), joined.Size())

	got, err := io.ReadAll(joined)
	require.Nil(t, err)
	require.Equal(t, append(append([]byte{}, a...), c...), got)
}

func TestJoinPaths(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.Nil(t, afero.WriteFile(fs, "/part.0", []byte("hello "), 0644))
	require.Nil(t, afero.WriteFile(fs, "/part.1", []byte("world"), 0644))

	joined, err := JoinPaths(fs, nil, "/part.0", "/part.1")
	require.Nil(t, err)
	require.Equal(t, int64(11), joined.Size())

	got, err := io.ReadAll(joined)
	require.Nil(t, err)
	require.Equal(t, "hello world", string(got))
}

func TestJoinPathsMissing(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.Nil(t, afero.WriteFile(fs, "/part.0", []byte("data"), 0644))

	_, err := JoinPaths(fs, nil, "/part.0", "/does-not-exist")
	require.NotNil(t, err)
}

func TestJoinOpenFuncs(t *testing.T) {
	opened := 0
	opens := []OpenFunc{
		func() (Source, error) {
			opened++
			return source.NewBuffer([]byte("abc")), nil
		},
		func() (Source, error) {
			opened++
			return source.NewBuffer([]byte("def")), nil
		},
	}

	joined, err := Join(opens, nil)
	require.Nil(t, err)
	require.Equal(t, 2, opened)

	got, err := io.ReadAll(joined)
	require.Nil(t, err)
	require.Equal(t, "abcdef", string(got))
}

func TestJoinNotSeekable(t *testing.T) {
	opens := []OpenFunc{
		func() (Source, error) {
			// Wrapping a plain reader hides the seek support:
			return source.NewReader(io.LimitReader(strings.NewReader("abc"), 3)), nil
		},
	}

	_, err := Join(opens, nil)
	require.Equal(t, ErrSizeQuery, e.Cause(err))
}

func TestJoinSeekAcrossParts(t *testing.T) {
	joined, err := JoinSources(
		nil,
		source.NewBuffer([]byte("0123")),
		source.NewBuffer([]byte("4567")),
	)
	require.Nil(t, err)

	_, err = joined.Seek(3, io.SeekStart)
	require.Nil(t, err)

	buf := make([]byte, 2)
	_, err = joined.Read(buf)
	require.Nil(t, err)
	require.Equal(t, "34", string(buf))
}
