package compress

import (
	"bytes"
	"io"
	"sort"

	e "github.com/pkg/errors"

	"github.com/sahib/stencil/source"
)

// Reader decompresses a stream written by Writer and offers random access
// over the uncompressed content via the embedded chunk index. It fulfills
// the stencil source capabilities, so ranges of the uncompressed stream can
// be put directly into a stencil table.
type Reader struct {
	// Underlying raw, compressed stream.
	rawR io.ReadSeeker

	// Chunk index parsed from the end of the stream; len(index)-1 chunks.
	index []record

	algo Algorithm

	// Currently decoded chunk (-1 if none) and its contents.
	chunkIdx int
	chunkBuf *source.Buffer

	decodeBuf *bytes.Buffer

	// Logical offset in the uncompressed stream.
	off int64

	parsed bool
}

// NewReader returns a reader over the compressed stream in `r`.
// No io happens before the first read or seek.
func NewReader(r io.ReadSeeker) *Reader {
	return &Reader{
		rawR:      r,
		chunkIdx:  -1,
		chunkBuf:  source.NewBuffer(nil),
		decodeBuf: &bytes.Buffer{},
	}
}

func (r *Reader) parseIfNeeded() error {
	if r.parsed {
		return nil
	}

	headerBuf := [headerSize]byte{}
	if _, err := io.ReadFull(r.rawR, headerBuf[:]); err != nil {
		return e.Wrap(err, "compress: header")
	}

	hdr, err := parseHeader(headerBuf[:])
	if err != nil {
		return err
	}

	algo, err := AlgorithmFromType(hdr.algo)
	if err != nil {
		return err
	}

	trailerBuf := [trailerSize]byte{}
	if _, err := r.rawR.Seek(-trailerSize, io.SeekEnd); err != nil {
		return e.Wrap(err, "compress: trailer seek")
	}

	if _, err := io.ReadFull(r.rawR, trailerBuf[:]); err != nil {
		return e.Wrap(err, "compress: trailer")
	}

	tr := trailer{}
	tr.unmarshal(trailerBuf[:])

	if tr.indexSize == 0 || tr.indexSize%indexRecSize != 0 {
		return ErrBadIndex
	}

	if _, err := r.rawR.Seek(-(int64(tr.indexSize) + trailerSize), io.SeekEnd); err != nil {
		return e.Wrap(err, "compress: index seek")
	}

	indexBuf := make([]byte, tr.indexSize)
	if _, err := io.ReadFull(r.rawR, indexBuf); err != nil {
		return e.Wrap(err, "compress: index")
	}

	prev := record{-1, -1}
	for len(indexBuf) > 0 {
		curr := record{}
		curr.unmarshal(indexBuf)

		// Offsets have to increase strictly, otherwise the index is
		// damaged and chunk borders are meaningless.
		if curr.rawOff <= prev.rawOff || curr.zipOff <= prev.zipOff {
			return ErrBadIndex
		}

		r.index = append(r.index, curr)
		prev = curr
		indexBuf = indexBuf[indexRecSize:]
	}

	r.algo = algo
	r.parsed = true
	return nil
}

// Size returns the size of the uncompressed content.
func (r *Reader) Size() (int64, error) {
	if err := r.parseIfNeeded(); err != nil {
		return 0, err
	}

	return r.index[len(r.index)-1].rawOff, nil
}

func (r *Reader) size() int64 {
	return r.index[len(r.index)-1].rawOff
}

// chunkFor returns the index of the chunk containing the uncompressed
// offset `off`. Defined for 0 <= off < size().
func (r *Reader) chunkFor(off int64) int {
	nChunks := len(r.index) - 1
	return sort.Search(nChunks, func(i int) bool {
		return r.index[i+1].rawOff > off
	})
}

// loadChunk makes sure the chunk under r.off is decoded and that the chunk
// buffer is positioned at r.off.
func (r *Reader) loadChunk() error {
	idx := r.chunkFor(r.off)
	if idx != r.chunkIdx {
		zipLen := r.index[idx+1].zipOff - r.index[idx].zipOff
		if _, err := r.rawR.Seek(r.index[idx].zipOff, io.SeekStart); err != nil {
			return e.Wrapf(err, "compress: chunk %d", idx)
		}

		r.decodeBuf.Reset()
		if _, err := io.CopyN(r.decodeBuf, r.rawR, zipLen); err != nil {
			return e.Wrapf(err, "compress: chunk %d", idx)
		}

		decData, err := r.algo.Decode(r.decodeBuf.Bytes())
		if err != nil {
			return e.Wrapf(err, "compress: decode chunk %d", idx)
		}

		r.chunkBuf = source.NewBuffer(decData)
		r.chunkIdx = idx
	}

	_, err := r.chunkBuf.Seek(r.off-r.index[idx].rawOff, io.SeekStart)
	return err
}

func (r *Reader) Read(p []byte) (int, error) {
	if err := r.parseIfNeeded(); err != nil {
		return 0, err
	}

	read := 0
	for len(p) > 0 {
		if r.off >= r.size() {
			if read > 0 {
				return read, nil
			}

			return 0, io.EOF
		}

		if err := r.loadChunk(); err != nil {
			return read, err
		}

		n, _ := r.chunkBuf.Read(p)
		if n == 0 {
			return read, io.ErrUnexpectedEOF
		}

		r.off += int64(n)
		read += n
		p = p[n:]
	}

	return read, nil
}

// Seek moves the uncompressed read position. Seeking is lazy; the target
// chunk is only decoded once data is actually read. Like a stencil view,
// seeking beyond the end is not clamped.
func (r *Reader) Seek(off int64, whence int) (int64, error) {
	if err := r.parseIfNeeded(); err != nil {
		return 0, err
	}

	newOff := r.off
	switch whence {
	case io.SeekStart:
		newOff = off
	case io.SeekCurrent:
		newOff += off
	case io.SeekEnd:
		newOff = r.size() + off
	}

	if newOff < 0 {
		return 0, e.New("compress: seek before start of stream")
	}

	r.off = newOff
	return r.off, nil
}

// WriteTo dumps the remaining uncompressed content to `w`.
func (r *Reader) WriteTo(w io.Writer) (int64, error) {
	if err := r.parseIfNeeded(); err != nil {
		return 0, err
	}

	written := int64(0)
	for r.off < r.size() {
		if err := r.loadChunk(); err != nil {
			return written, err
		}

		n, err := r.chunkBuf.WriteTo(w)
		r.off += n
		written += n

		if err != nil {
			return written, err
		}
	}

	return written, nil
}

// Readable is always true.
func (r *Reader) Readable() bool {
	return true
}

// Seekable is always true; random access is the point of this format.
func (r *Reader) Seekable() bool {
	return true
}

// Closed is always false; the compressed stream is owned by the caller.
func (r *Reader) Closed() bool {
	return false
}
