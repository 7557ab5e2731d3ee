package compress_test

import (
	"bytes"
	"io"
	"testing"
	"testing/iotest"

	"github.com/colmeta/colfile/compress"
	"github.com/colmeta/colfile/compress/brotli"
	"github.com/colmeta/colfile/compress/gzip"
	"github.com/colmeta/colfile/compress/lz4"
	"github.com/colmeta/colfile/compress/snappy"
	"github.com/colmeta/colfile/compress/uncompressed"
	"github.com/colmeta/colfile/compress/zstd"
)

// TestCompressionCodec round-trips a fixed payload through every codec's
// Writer/Reader pair, the way the teacher's compress_test.go does for its
// own six codecs.
func TestCompressionCodec(t *testing.T) {
	tests := []struct {
		scenario string
		codec    compress.Codec
	}{
		{scenario: "uncompressed", codec: new(uncompressed.Codec)},
		{scenario: "snappy", codec: new(snappy.Codec)},
		{scenario: "gzip", codec: new(gzip.Codec)},
		{scenario: "brotli", codec: new(brotli.Codec)},
		{scenario: "zstd", codec: new(zstd.Codec)},
		{scenario: "lz4", codec: new(lz4.Codec)},
	}

	random := bytes.Repeat([]byte("1234567890qwertyuiopasdfghjklzxcvbnm"), 1000)

	for _, test := range tests {
		t.Run(test.scenario, func(t *testing.T) {
			buffer := new(bytes.Buffer)
			output := new(bytes.Buffer)

			for i := 0; i < 10; i++ {
				buffer.Reset()
				output.Reset()

				w, err := test.codec.NewWriter(buffer)
				if err != nil {
					t.Fatal(err)
				}
				if _, err := io.Copy(w, iotest.OneByteReader(bytes.NewReader(random))); err != nil {
					t.Fatal(err)
				}
				if err := w.Close(); err != nil {
					t.Fatal(err)
				}

				r, err := test.codec.NewReader(bytes.NewReader(buffer.Bytes()))
				if err != nil {
					t.Fatal(err)
				}
				if _, err := io.Copy(output, iotest.OneByteReader(r)); err != nil {
					t.Fatal(err)
				}
				if err := r.Close(); err != nil {
					t.Fatal(err)
				}

				if !bytes.Equal(random, output.Bytes()) {
					t.Fatalf("content mismatch after compressing and decompressing (trial %d)", i)
				}
			}
		})
	}
}

// TestCompressDecompressHelper is P7's decompression-boundary counterpart
// within the compress package itself: compress.Decompress must append
// exactly the uncompressed payload to an existing prefix, never touching
// bytes already in dst.
func TestCompressDecompressHelper(t *testing.T) {
	codec := new(gzip.Codec)
	payload := bytes.Repeat([]byte("hello world "), 200)

	var compressed bytes.Buffer
	w, err := codec.NewWriter(&compressed)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write(payload); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	prefix := []byte("prefix:")
	got, err := compress.Decompress(codec, append([]byte(nil), prefix...), compressed.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(got, prefix) {
		t.Fatalf("Decompress result does not start with the preserved prefix: %q", got[:len(prefix)])
	}
	if !bytes.Equal(got[len(prefix):], payload) {
		t.Fatalf("Decompress result after prefix does not match original payload")
	}
}
