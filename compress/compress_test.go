package compress

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sahib/stencil/util/testutil"
)

var testAlgos = []AlgorithmType{AlgoNone, AlgoSnappy, AlgoLZ4}

func TestPackUnpack(t *testing.T) {
	sizes := []int64{0, 1, 255, maxChunkSize - 1, maxChunkSize, maxChunkSize + 1, 4 * maxChunkSize}

	for _, algo := range testAlgos {
		for _, size := range sizes {
			data := testutil.CreateDummyBuf(size)
			packed, err := Pack(data, algo)
			require.Nil(t, err)

			unpacked, err := Unpack(packed)
			require.Nil(t, err)
			require.Equal(t, data, unpacked, "algo %s, size %d", algo, size)
		}
	}
}

func TestReaderSize(t *testing.T) {
	data := testutil.CreateDummyBuf(3 * maxChunkSize)
	packed, err := Pack(data, AlgoSnappy)
	require.Nil(t, err)

	r := NewReader(bytes.NewReader(packed))
	size, err := r.Size()
	require.Nil(t, err)
	require.Equal(t, int64(3*maxChunkSize), size)
}

func TestReaderSeekIntoChunk(t *testing.T) {
	data := testutil.CreateDummyBuf(3 * maxChunkSize)
	packed, err := Pack(data, AlgoLZ4)
	require.Nil(t, err)

	r := NewReader(bytes.NewReader(packed))

	// Read a slice that starts inside the second chunk and crosses into
	// the third one:
	off := int64(maxChunkSize + maxChunkSize/2)
	pos, err := r.Seek(off, io.SeekStart)
	require.Nil(t, err)
	require.Equal(t, off, pos)

	buf := make([]byte, maxChunkSize)
	_, err = io.ReadFull(r, buf)
	require.Nil(t, err)
	require.Equal(t, data[off:off+maxChunkSize], buf)
}

func TestReaderSeekWhence(t *testing.T) {
	data := testutil.CreateDummyBuf(1024)
	packed, err := Pack(data, AlgoNone)
	require.Nil(t, err)

	r := NewReader(bytes.NewReader(packed))

	pos, err := r.Seek(-24, io.SeekEnd)
	require.Nil(t, err)
	require.Equal(t, int64(1000), pos)

	pos, err = r.Seek(-500, io.SeekCurrent)
	require.Nil(t, err)
	require.Equal(t, int64(500), pos)

	buf := make([]byte, 16)
	_, err = io.ReadFull(r, buf)
	require.Nil(t, err)
	require.Equal(t, data[500:516], buf)

	_, err = r.Seek(-5000, io.SeekCurrent)
	require.NotNil(t, err)
}

func TestReaderReadAfterEnd(t *testing.T) {
	data := testutil.CreateDummyBuf(128)
	packed, err := Pack(data, AlgoSnappy)
	require.Nil(t, err)

	r := NewReader(bytes.NewReader(packed))
	_, err = r.Seek(4096, io.SeekStart)
	require.Nil(t, err)

	n, err := r.Read(make([]byte, 16))
	require.Equal(t, io.EOF, err)
	require.Equal(t, 0, n)
}

func TestBadStreams(t *testing.T) {
	data := testutil.CreateDummyBuf(256)
	packed, err := Pack(data, AlgoSnappy)
	require.Nil(t, err)

	tcs := []struct {
		name    string
		mangle  func(buf []byte) []byte
		wantErr error
	}{
		{
			"too-short",
			func(buf []byte) []byte { return buf[:4] },
			nil,
		},
		{
			"bad-magic",
			func(buf []byte) []byte {
				buf[0] ^= 0xff
				return buf
			},
			ErrBadMagicNumber,
		},
		{
			"bad-version",
			func(buf []byte) []byte {
				buf[8] = 0xff
				return buf
			},
			ErrUnsupportedVersion,
		},
		{
			"bad-algo",
			func(buf []byte) []byte {
				buf[10] = 0xff
				return buf
			},
			ErrBadAlgo,
		},
		{
			"empty-index",
			func(buf []byte) []byte {
				// Zero out the index size in the trailer:
				for i := len(buf) - 8; i < len(buf); i++ {
					buf[i] = 0
				}
				return buf
			},
			ErrBadIndex,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			mangled := tc.mangle(append([]byte{}, packed...))
			_, err := Unpack(mangled)
			require.NotNil(t, err)

			if tc.wantErr != nil {
				require.Equal(t, tc.wantErr, errCause(err))
			}
		})
	}
}

// errCause unwraps pkg/errors style wrapping for comparisons.
func errCause(err error) error {
	type causer interface {
		Cause() error
	}

	for err != nil {
		cause, ok := err.(causer)
		if !ok {
			break
		}

		err = cause.Cause()
	}

	return err
}

func TestAlgoFromString(t *testing.T) {
	for _, name := range []string{"none", "snappy", "lz4"} {
		algo, err := AlgoFromString(name)
		require.Nil(t, err)
		require.Equal(t, name, algo.String())
	}

	_, err := AlgoFromString("zstd")
	require.NotNil(t, err)
}

func TestGuessAlgorithm(t *testing.T) {
	tiny := testutil.CreateDummyBuf(16)
	algo, err := GuessAlgorithm("small.txt", tiny)
	require.Nil(t, err)
	require.Equal(t, AlgoNone, algo)

	text := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog\n"), 100)
	algo, err = GuessAlgorithm("notes.txt", text)
	require.Nil(t, err)
	require.Equal(t, AlgoLZ4, algo)

	zipped := testutil.CreateDummyBuf(4096)
	algo, err = GuessAlgorithm("archive.zip", zipped)
	require.Nil(t, err)
	require.Equal(t, AlgoNone, algo)
}
