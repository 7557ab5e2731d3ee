package colfile

import (
	"fmt"
	"io"

	"github.com/segmentio/encoding/thrift"

	"github.com/colmeta/colfile/format"
)

// pageHeaderDecoder decodes self-describing format.PageHeader records
// from the current position of a stream, advancing it by exactly the
// header's encoded length and leaving the page body as the next bytes to
// read. One decoder is reused across every page of a column chunk, the
// way column_pages.go reuses its thrift.Decoder.
type pageHeaderDecoder struct {
	protocol thrift.CompactProtocol
	decoder  thrift.Decoder
}

// readPageHeader reads one page header from the current stream position.
// It fails with ErrCorrupt on malformed input, and returns io.EOF
// unmodified when the stream ends before a header begins (the normal way
// a column chunk's last page is detected).
func (d *pageHeaderDecoder) readPageHeader(r io.Reader) (*format.PageHeader, error) {
	d.decoder.Reset(d.protocol.NewReader(r))

	header := new(format.PageHeader)
	if err := d.decoder.Decode(header); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("%w: decoding page header: %s", ErrCorrupt, err)
	}
	return header, nil
}
