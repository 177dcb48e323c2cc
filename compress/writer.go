package compress

import (
	"bytes"
	"io"

	"github.com/sahib/stencil/util"
)

// Writer compresses everything written to it in maxChunkSize chunks and
// records a seek index on the way. Close() has to be called to get a valid
// stream, since it appends index and trailer.
type Writer struct {
	// Underlying stream the compressed data goes to.
	rawW io.Writer

	// Buffers incoming data into maxChunkSize chunks.
	chunkBuf *bytes.Buffer

	// Index with the chunk start offsets written so far.
	index []record

	// Accumulated uncompressed offset.
	rawOff int64

	// Accumulated compressed offset.
	zipOff int64

	algo     Algorithm
	algoType AlgorithmType

	// Becomes true after the first write.
	headerWritten bool
}

// NewWriter returns a writer compressing with `algoType` into `w`.
func NewWriter(w io.Writer, algoType AlgorithmType) (*Writer, error) {
	algo, err := AlgorithmFromType(algoType)
	if err != nil {
		return nil, err
	}

	return &Writer{
		rawW:     w,
		algo:     algo,
		algoType: algoType,
		chunkBuf: &bytes.Buffer{},
	}, nil
}

func (w *Writer) writeHeaderIfNeeded() error {
	if w.headerWritten {
		return nil
	}

	if _, err := w.rawW.Write(makeHeader(w.algoType, currentVersion)); err != nil {
		return err
	}

	w.headerWritten = true
	w.zipOff += headerSize
	return nil
}

// flushChunk compresses one chunk of data and notes its start in the index.
func (w *Writer) flushChunk(data []byte) error {
	if len(data) == 0 {
		return nil
	}

	w.index = append(w.index, record{w.rawOff, w.zipOff})

	encData, err := w.algo.Encode(data)
	if err != nil {
		return err
	}

	n, err := w.rawW.Write(encData)
	if err != nil {
		return err
	}

	w.rawOff += int64(len(data))
	w.zipOff += int64(n)
	return nil
}

func (w *Writer) Write(p []byte) (int, error) {
	if err := w.writeHeaderIfNeeded(); err != nil {
		return 0, err
	}

	written := len(p)
	for len(p) > 0 {
		n, _ := w.chunkBuf.Write(p[:util.Min(len(p), maxChunkSize)])
		p = p[n:]

		for w.chunkBuf.Len() >= maxChunkSize {
			if err := w.flushChunk(w.chunkBuf.Next(maxChunkSize)); err != nil {
				return 0, err
			}
		}
	}

	return written, nil
}

// ReadFrom implements io.ReaderFrom to keep io.Copy allocation friendly.
func (w *Writer) ReadFrom(r io.Reader) (int64, error) {
	if err := w.writeHeaderIfNeeded(); err != nil {
		return 0, err
	}

	read := int64(0)
	buf := make([]byte, maxChunkSize)

	for {
		// Only the last chunk may be smaller than maxChunkSize,
		// so fill the buffer as best as we can.
		n, rerr := io.ReadFull(r, buf)
		read += int64(n)
		if rerr != nil && rerr != io.ErrUnexpectedEOF && rerr != io.EOF {
			return read, rerr
		}

		if err := w.flushChunk(buf[:n]); err != nil {
			return read, err
		}

		if rerr == io.EOF || rerr == io.ErrUnexpectedEOF {
			return read, nil
		}
	}
}

// Close writes the remaining data, the chunk index and the trailer.
// It does not close the underlying stream.
func (w *Writer) Close() error {
	if err := w.writeHeaderIfNeeded(); err != nil {
		return err
	}

	if err := w.flushChunk(w.chunkBuf.Bytes()); err != nil {
		return err
	}

	// Terminating record; marks the end of the last chunk.
	w.index = append(w.index, record{w.rawOff, w.zipOff})

	tr := trailer{
		chunkSize: maxChunkSize,
		indexSize: uint64(indexRecSize * len(w.index)),
	}

	indexBuf := make([]byte, tr.indexSize)
	for i, rec := range w.index {
		rec.marshal(indexBuf[i*indexRecSize:])
	}

	if _, err := w.rawW.Write(indexBuf); err != nil {
		return err
	}

	trailerBuf := make([]byte, trailerSize)
	tr.marshal(trailerBuf)

	_, err := w.rawW.Write(trailerBuf)
	return err
}
