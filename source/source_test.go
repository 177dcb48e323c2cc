package source

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestBufferReadSeek(t *testing.T) {
	buf := NewBuffer([]byte("0123456789"))

	p := make([]byte, 4)
	n, err := buf.Read(p)
	require.Nil(t, err)
	require.Equal(t, "0123", string(p[:n]))
	require.Equal(t, 6, buf.Len())

	pos, err := buf.Seek(-2, io.SeekEnd)
	require.Nil(t, err)
	require.Equal(t, int64(8), pos)

	n, err = buf.Read(p)
	require.Nil(t, err)
	require.Equal(t, "89", string(p[:n]))

	n, err = buf.Read(p)
	require.Equal(t, io.EOF, err)
	require.Equal(t, 0, n)

	// Out of range seeks are clamped to the buffer borders:
	pos, err = buf.Seek(-100, io.SeekStart)
	require.Nil(t, err)
	require.Equal(t, int64(0), pos)

	pos, err = buf.Seek(100, io.SeekStart)
	require.Nil(t, err)
	require.Equal(t, int64(10), pos)

	require.True(t, buf.Readable())
	require.True(t, buf.Seekable())
	require.False(t, buf.Closed())
}

func TestBufferWriteTo(t *testing.T) {
	buf := NewBuffer([]byte("0123456789"))
	_, err := buf.Seek(5, io.SeekStart)
	require.Nil(t, err)

	out := &bytes.Buffer{}
	n, err := buf.WriteTo(out)
	require.Nil(t, err)
	require.Equal(t, int64(5), n)
	require.Equal(t, "56789", out.String())
	require.Equal(t, 0, buf.Len())
}

func TestReaderSeekProbe(t *testing.T) {
	// strings.Reader supports seeking; a LimitReader does not:
	seekable := NewReader(strings.NewReader("abc"))
	require.True(t, seekable.Seekable())

	pos, err := seekable.Seek(1, io.SeekStart)
	require.Nil(t, err)
	require.Equal(t, int64(1), pos)

	plain := NewReader(io.LimitReader(strings.NewReader("abc"), 3))
	require.False(t, plain.Seekable())

	_, err = plain.Seek(0, io.SeekStart)
	require.Equal(t, ErrNotSeekable, err)

	p := make([]byte, 3)
	n, err := plain.Read(p)
	require.Nil(t, err)
	require.Equal(t, "abc", string(p[:n]))
}

func TestFileClosedTracking(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.Nil(t, afero.WriteFile(fs, "/data", []byte("content"), 0644))

	fd, err := OpenFs(fs, "/data")
	require.Nil(t, err)
	require.True(t, fd.Readable())
	require.True(t, fd.Seekable())
	require.False(t, fd.Closed())
	require.Equal(t, "/data", fd.Name())

	p := make([]byte, 7)
	_, err = io.ReadFull(fd, p)
	require.Nil(t, err)
	require.Equal(t, "content", string(p))

	require.Nil(t, fd.Close())
	require.True(t, fd.Closed())

	// Closing twice is allowed and does nothing:
	require.Nil(t, fd.Close())
}

func TestFileOpenMissing(t *testing.T) {
	_, err := OpenFs(afero.NewMemMapFs(), "/nope")
	require.NotNil(t, err)
}
