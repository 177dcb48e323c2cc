// Package compress implements a seekable compression format with
// exchangeable algorithms. The stream is cut into equal sized chunks that
// are compressed on their own; an index of (raw offset, zip offset) pairs
// is appended to the stream, followed by a small trailer. Knowing the index
// makes random access inside the compressed stream an O(log n) lookup plus
// one chunk decode.
//
// Reader implements the source capabilities of the stencil package, so
// stencil tables can address byte ranges inside compressed containers.
package compress

import (
	"bytes"
	"encoding/binary"
	"errors"
)

var (
	// ErrBadIndex is returned on an invalid or non-monotonic chunk index.
	ErrBadIndex = errors.New("broken compression index")

	// ErrHeaderTooSmall is returned if the header is less than 12 bytes.
	// It usually indicates a broken or a non-compressed file.
	ErrHeaderTooSmall = errors.New("header is less than 12 bytes")

	// ErrBadMagicNumber is returned if the stream does not start with the
	// expected magic bytes.
	ErrBadMagicNumber = errors.New("bad magic number in compressed stream")

	// ErrBadAlgo is returned on an unsupported or unknown algorithm.
	ErrBadAlgo = errors.New("invalid algorithm type")

	// ErrUnsupportedVersion is returned when we don't have a reader that
	// understands that format version.
	ErrUnsupportedVersion = errors.New("version of this format is not supported")

	// MagicNumber is the magic number in front of a compressed stream.
	MagicNumber = []byte("wasbrett")
)

const (
	maxChunkSize   = 64 * 1024
	indexRecSize   = 16
	trailerSize    = 12
	headerSize     = 12
	currentVersion = 1
)

// record maps an uncompressed offset to the compressed offset it starts at.
// A chunk is described by two adjacent records; the offset difference
// between them is the chunk size in the respective coordinate system.
type record struct {
	rawOff int64
	zipOff int64
}

func (rc *record) marshal(buf []byte) {
	binary.LittleEndian.PutUint64(buf[0:8], uint64(rc.rawOff))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(rc.zipOff))
}

func (rc *record) unmarshal(buf []byte) {
	rc.rawOff = int64(binary.LittleEndian.Uint64(buf[0:8]))
	rc.zipOff = int64(binary.LittleEndian.Uint64(buf[8:16]))
}

// trailer finishes a compressed stream and tells where the index starts.
type trailer struct {
	chunkSize uint32
	indexSize uint64
}

func (t *trailer) marshal(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], t.chunkSize)
	binary.LittleEndian.PutUint64(buf[4:12], t.indexSize)
}

func (t *trailer) unmarshal(buf []byte) {
	t.chunkSize = binary.LittleEndian.Uint32(buf[0:4])
	t.indexSize = binary.LittleEndian.Uint64(buf[4:12])
}

type header struct {
	version uint16
	algo    AlgorithmType
}

func makeHeader(algo AlgorithmType, version uint16) []byte {
	buf := make([]byte, headerSize)
	copy(buf, MagicNumber)
	binary.LittleEndian.PutUint16(buf[8:10], version)
	binary.LittleEndian.PutUint16(buf[10:12], uint16(algo))
	return buf
}

func parseHeader(buf []byte) (*header, error) {
	if len(buf) < headerSize {
		return nil, ErrHeaderTooSmall
	}

	if !bytes.Equal(buf[:len(MagicNumber)], MagicNumber) {
		return nil, ErrBadMagicNumber
	}

	version := binary.LittleEndian.Uint16(buf[8:10])
	if version != currentVersion {
		return nil, ErrUnsupportedVersion
	}

	algo := AlgorithmType(binary.LittleEndian.Uint16(buf[10:12]))
	if !algo.IsValid() {
		return nil, ErrBadAlgo
	}

	return &header{version: version, algo: algo}, nil
}

// Pack compresses `data` with `algo` in one go.
// It is a convenience for small payloads and tests.
func Pack(data []byte, algo AlgorithmType) ([]byte, error) {
	zipBuf := &bytes.Buffer{}
	zipW, err := NewWriter(zipBuf, algo)
	if err != nil {
		return nil, err
	}

	if _, err := zipW.Write(data); err != nil {
		return nil, err
	}

	if err := zipW.Close(); err != nil {
		return nil, err
	}

	return zipBuf.Bytes(), nil
}

// Unpack decompresses a stream previously created by Pack or Writer.
func Unpack(data []byte) ([]byte, error) {
	r := NewReader(bytes.NewReader(data))
	unpacked := &bytes.Buffer{}
	if _, err := r.WriteTo(unpacked); err != nil {
		return nil, err
	}

	return unpacked.Bytes(), nil
}
