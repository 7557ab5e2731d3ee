// Package uncompressed implements the UNCOMPRESSED codec, a no-op pass
// through used for columns that declare no compression.
package uncompressed

import (
	"io"

	"github.com/colmeta/colfile/compress"
	"github.com/colmeta/colfile/format"
)

type Codec struct{}

func (c *Codec) String() string { return "UNCOMPRESSED" }

func (c *Codec) CompressionCodec() format.CompressionCodec {
	return format.Uncompressed
}

func (c *Codec) NewReader(r io.Reader) (compress.Reader, error) {
	return &reader{r}, nil
}

func (c *Codec) NewWriter(w io.Writer) (compress.Writer, error) {
	return &writer{w}, nil
}

type reader struct{ io.Reader }

func (r *reader) Close() error             { return nil }
func (r *reader) Reset(rr io.Reader) error { r.Reader = rr; return nil }

type writer struct{ io.Writer }

func (w *writer) Close() error        { return nil }
func (w *writer) Reset(ww io.Writer)  { w.Writer = ww }
