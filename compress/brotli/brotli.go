// Package brotli implements the BROTLI compression codec.
package brotli

import (
	"io"

	"github.com/andybalholm/brotli"

	"github.com/colmeta/colfile/compress"
	"github.com/colmeta/colfile/format"
)

const (
	DefaultQuality = brotli.DefaultCompression
	DefaultLGWin   = 0
)

type Codec struct {
	Quality int
	LGWin   int
}

func (c *Codec) String() string { return "BROTLI" }

func (c *Codec) CompressionCodec() format.CompressionCodec {
	return format.Brotli
}

func (c *Codec) NewReader(r io.Reader) (compress.Reader, error) {
	return &reader{brotli.NewReader(r)}, nil
}

func (c *Codec) NewWriter(w io.Writer) (compress.Writer, error) {
	quality := c.Quality
	if quality == 0 {
		quality = DefaultQuality
	}
	return &writer{
		w: brotli.NewWriterOptions(w, brotli.WriterOptions{
			Quality: quality,
			LGWin:   c.LGWin,
		}),
	}, nil
}

type reader struct{ *brotli.Reader }

func (r *reader) Close() error { return nil }

func (r *reader) Reset(rr io.Reader) error {
	r.Reader.Reset(rr)
	return nil
}

type writer struct{ w *brotli.Writer }

func (w *writer) Write(p []byte) (int, error) { return w.w.Write(p) }
func (w *writer) Close() error                { return w.w.Close() }
func (w *writer) Reset(ww io.Writer)          { w.w.Reset(ww) }
