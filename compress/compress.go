// Package compress provides the generic APIs implemented by the
// decompression codecs the page decoder dispatches to.
package compress

import (
	"bytes"
	"io"

	"github.com/colmeta/colfile/format"
)

// Codec is implemented by the compress sub-packages. Codec instances must
// be safe to use concurrently from multiple goroutines: the page iterator
// acquires one codec instance per column chunk and reuses it across every
// page of that chunk, but two column chunks
// read concurrently share the same package-level Codec values.
type Codec interface {
	// String returns a human-readable name for the codec.
	String() string

	// CompressionCodec returns the code of the codec in the on-disk
	// format.
	CompressionCodec() format.CompressionCodec

	// NewReader returns a Reader that decompresses r.
	NewReader(r io.Reader) (Reader, error)

	// NewWriter returns a Writer that compresses into w. Present for
	// symmetry with the format's codec registry; the read path never
	// calls it.
	NewWriter(w io.Writer) (Writer, error)
}

// Reader decompresses a stream. Reset lets a page reader rebind the
// decompressor to a new page body without allocating a fresh one.
type Reader interface {
	io.ReadCloser
	Reset(io.Reader) error
}

// Writer compresses a stream.
type Writer interface {
	io.WriteCloser
	Reset(io.Writer)
}

// Decompress appends the uncompressed form of src to dst using codec and
// returns the extended slice. The page decoder always holds an entire
// compressed page body in memory, so it calls this single-shot form
// instead of driving codec.NewReader's Reader directly.
func Decompress(codec Codec, dst, src []byte) ([]byte, error) {
	r, err := codec.NewReader(bytes.NewReader(src))
	if err != nil {
		return dst, err
	}
	defer r.Close()

	buf := bytes.NewBuffer(dst)
	if _, err := io.Copy(buf, r); err != nil {
		return buf.Bytes(), err
	}
	return buf.Bytes(), nil
}
