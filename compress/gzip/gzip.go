// Package gzip implements the GZIP compression codec.
package gzip

import (
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/colmeta/colfile/compress"
	"github.com/colmeta/colfile/format"
)

const (
	NoCompression      = gzip.NoCompression
	BestSpeed          = gzip.BestSpeed
	BestCompression    = gzip.BestCompression
	DefaultCompression = gzip.DefaultCompression
)

type Codec struct {
	Level int
}

func (c *Codec) String() string { return "GZIP" }

func (c *Codec) CompressionCodec() format.CompressionCodec {
	return format.Gzip
}

func (c *Codec) NewReader(r io.Reader) (compress.Reader, error) {
	z, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	return reader{z}, nil
}

func (c *Codec) NewWriter(w io.Writer) (compress.Writer, error) {
	level := c.Level
	if level == 0 {
		level = DefaultCompression
	}
	z, err := gzip.NewWriterLevel(w, level)
	if err != nil {
		return nil, err
	}
	return writer{z}, nil
}

type reader struct{ *gzip.Reader }

func (r reader) Reset(rr io.Reader) error { return r.Reader.Reset(rr) }

type writer struct{ *gzip.Writer }

func (w writer) Reset(ww io.Writer) { w.Writer.Reset(ww) }
