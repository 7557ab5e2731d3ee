package colfile

import "io"

// ByteRangeReader exposes random-access byte slices of a file or buffer.
// Implementations must be cheaply clonable: the page iterators of
// multiple column chunks in the same row group hold independent clones of
// one ByteRangeReader so they can be read concurrently without blocking
// each other, the way fileColumnChunk readers share one *os.File in the
// teacher's file.go.
type ByteRangeReader interface {
	// ReadRangeAt returns a reader positioned at the start of exactly
	// length bytes beginning at start. I/O errors are returned as-is;
	// requesting a range outside the backing storage is a fatal error.
	ReadRangeAt(start, length int64) (io.Reader, error)

	// Clone returns an independent handle sharing the same backing
	// storage. The returned value must be safe to use concurrently with
	// the receiver and with other clones.
	Clone() ByteRangeReader
}

// fileRangeReader implements ByteRangeReader over an io.ReaderAt, which
// parquet-go's own File type uses for the same purpose (see OpenFile in
// file.go: column chunk sections are sliced with io.NewSectionReader over
// a shared io.ReaderAt). io.ReaderAt implementations are required by their
// own contract to support concurrent calls from multiple goroutines, so no
// locking is needed here.
type fileRangeReader struct {
	r    io.ReaderAt
	size int64
}

// NewByteRangeReader returns a ByteRangeReader over r, which spans size
// bytes starting at offset 0.
func NewByteRangeReader(r io.ReaderAt, size int64) ByteRangeReader {
	return &fileRangeReader{r: r, size: size}
}

func (f *fileRangeReader) ReadRangeAt(start, length int64) (io.Reader, error) {
	if start < 0 || length < 0 || start+length > f.size {
		return nil, ErrInvariantViolation
	}
	return io.NewSectionReader(f.r, start, length), nil
}

func (f *fileRangeReader) Clone() ByteRangeReader {
	return &fileRangeReader{r: f.r, size: f.size}
}
