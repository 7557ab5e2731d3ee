package colfile

import (
	"fmt"

	"github.com/colmeta/colfile/compress"
	"github.com/colmeta/colfile/compress/brotli"
	"github.com/colmeta/colfile/compress/gzip"
	"github.com/colmeta/colfile/compress/lz4"
	"github.com/colmeta/colfile/compress/snappy"
	"github.com/colmeta/colfile/compress/uncompressed"
	"github.com/colmeta/colfile/compress/zstd"
	"github.com/colmeta/colfile/format"
)

var (
	// Uncompressed represents uncompressed pages; createCodec returns nil
	// for it: uncompressed columns need no decompression step.
	Uncompressed uncompressed.Codec

	Snappy = snappy.Codec{}

	Gzip = gzip.Codec{
		Level: gzip.DefaultCompression,
	}

	Brotli = brotli.Codec{
		Quality: brotli.DefaultQuality,
		LGWin:   brotli.DefaultLGWin,
	}

	Zstd = zstd.Codec{
		Level: zstd.DefaultLevel,
	}

	Lz4Raw = lz4.Codec{
		BlockSize:   lz4.DefaultBlockSize,
		Level:       lz4.DefaultLevel,
		Concurrency: lz4.DefaultConcurrency,
	}

	// codecsByID maps a wire compression code to the codec that
	// implements it. Indices follow format.CompressionCodec.
	codecsByID = [...]compress.Codec{
		format.Uncompressed: nil,
		format.Snappy:       &Snappy,
		format.Gzip:         &Gzip,
		format.Lzo:          nil,
		format.Brotli:       &Brotli,
		format.Lz4:          nil,
		format.Zstd:         &Zstd,
		format.Lz4Raw:       &Lz4Raw,
	}
)

// createCodec resolves a wire compression code to its Codec.
// It returns (nil, nil) for the uncompressed codec, and an error wrapping
// ErrUnsupported for any codec id this package does not implement (LZO,
// legacy LZ4 framing) or does not recognize.
func createCodec(codec format.CompressionCodec) (compress.Codec, error) {
	if codec < 0 || int(codec) >= len(codecsByID) {
		return nil, fmt.Errorf("%w: compression codec %d", ErrUnsupported, codec)
	}
	c := codecsByID[codec]
	if c == nil && codec != format.Uncompressed {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, codec)
	}
	return c, nil
}
