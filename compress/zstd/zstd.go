// Package zstd implements the ZSTD compression codec.
package zstd

import (
	"io"

	"github.com/klauspost/compress/zstd"

	"github.com/colmeta/colfile/compress"
	"github.com/colmeta/colfile/format"
)

const DefaultLevel = int(zstd.SpeedDefault)

type Codec struct {
	Level int
}

func (c *Codec) String() string { return "ZSTD" }

func (c *Codec) CompressionCodec() format.CompressionCodec {
	return format.Zstd
}

func (c *Codec) NewReader(r io.Reader) (compress.Reader, error) {
	z, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	return reader{z}, nil
}

func (c *Codec) NewWriter(w io.Writer) (compress.Writer, error) {
	level := zstd.EncoderLevel(c.Level)
	if c.Level == 0 {
		level = zstd.SpeedDefault
	}
	z, err := zstd.NewWriter(w,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(level),
	)
	if err != nil {
		return nil, err
	}
	return writer{z}, nil
}

type reader struct{ *zstd.Decoder }

func (r reader) Close() error {
	r.Decoder.Close()
	return nil
}

func (r reader) Reset(rr io.Reader) error { return r.Decoder.Reset(rr) }

type writer struct{ *zstd.Encoder }

func (w writer) Reset(ww io.Writer) { w.Encoder.Reset(ww) }
