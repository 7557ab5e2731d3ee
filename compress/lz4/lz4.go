// Package lz4 implements the LZ4_RAW compression codec.
package lz4

import (
	"io"

	"github.com/pierrec/lz4/v4"

	"github.com/colmeta/colfile/compress"
	"github.com/colmeta/colfile/format"
)

const (
	DefaultBlockSize   = 4 << 20
	DefaultLevel       = int(lz4.Fast)
	DefaultConcurrency = 1
)

type Codec struct {
	BlockSize   int
	Level       int
	Concurrency int
}

func (c *Codec) String() string { return "LZ4_RAW" }

func (c *Codec) CompressionCodec() format.CompressionCodec {
	return format.Lz4Raw
}

func (c *Codec) NewReader(r io.Reader) (compress.Reader, error) {
	return &reader{lz4.NewReader(r)}, nil
}

func (c *Codec) NewWriter(w io.Writer) (compress.Writer, error) {
	zw := lz4.NewWriter(w)
	options := []lz4.Option{lz4.CompressionLevelOption(lz4.CompressionLevel(c.Level))}
	if c.BlockSize != 0 {
		options = append(options, lz4.BlockSizeOption(lz4.BlockSize(c.BlockSize)))
	}
	if c.Concurrency != 0 {
		options = append(options, lz4.ConcurrencyOption(c.Concurrency))
	}
	if err := zw.Apply(options...); err != nil {
		return nil, err
	}
	return &writer{zw}, nil
}

type reader struct{ *lz4.Reader }

func (r *reader) Close() error { return nil }

func (r *reader) Reset(rr io.Reader) error {
	r.Reader.Reset(rr)
	return nil
}

type writer struct{ *lz4.Writer }

func (w *writer) Reset(ww io.Writer) { w.Writer.Reset(ww) }
