package colfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/colmeta/colfile/compress"
	"github.com/colmeta/colfile/format"
)

const defaultPageStreamBufferSize = 4096

// PageMetadata is the summary returned by PeekNextPage: the row count a
// page would contribute, and whether it is the dictionary page.
type PageMetadata struct {
	NumRows int64
	IsDict  bool
}

// ColumnPageIterator implements the page iterator state machine. It is
// single-threaded and sequential: GetNextPage blocks on the underlying
// ByteRangeReader's I/O but has no internal suspension points. Instances
// retain no reference to a page once it has been returned to the caller.
//
// Two construction paths exist: NewColumnPageIterator streams a column
// chunk's pages sequentially from one contiguous section (no page index
// available or engaged); NewColumnPageIteratorWithIndex binds one
// independent byte-range slice per page location, enabling PeekNextPage
// and SkipNextPage.
type ColumnPageIterator struct {
	codec   compress.Codec
	headers pageHeaderDecoder

	totalNumValues int64
	totalRowCount  int64

	seenNumValues    int64
	seenNumDataPages int
	hasDictPage      bool // mirrors has_dictionary_page_to_read; cleared once the dictionary page is consumed

	// unindexed streaming mode
	stream io.Reader

	// indexed mode
	locations   []format.PageLocation
	dataReaders []io.Reader
	dictReader  io.Reader

	consumed []consumedPage
	err      error
}

type consumedPage struct {
	kind      PageKind
	numValues int
}

// NewColumnPageIterator builds an iterator that streams every page of a
// column chunk sequentially from one contiguous byte range, the way
// ColumnPages.Next does in the teacher's column_pages.go (one bufio.Reader
// over io.NewSectionReader(file, chunkStart, TotalCompressedSize)). The
// chunk starts at DictionaryPageOffset when a dictionary page precedes the
// data pages, and at DataPageOffset otherwise.
func NewColumnPageIterator(byteRange ByteRangeReader, metadata *format.ColumnMetaData, codec compress.Codec) (*ColumnPageIterator, error) {
	start := metadata.DataPageOffset
	if metadata.DictionaryPageOffset != 0 && metadata.DictionaryPageOffset < start {
		start = metadata.DictionaryPageOffset
	}
	r, err := byteRange.ReadRangeAt(start, metadata.TotalCompressedSize)
	if err != nil {
		return nil, fmt.Errorf("%w: opening column chunk data range: %s", ErrIo, err)
	}
	return &ColumnPageIterator{
		codec:          codec,
		totalNumValues: metadata.NumValues,
		stream:         bufio.NewReaderSize(r, defaultPageStreamBufferSize),
	}, nil
}

// NewColumnPageIteratorWithIndex builds an iterator over a page index:
// one independent byte-range slice per retained page location (plus the
// dictionary page, when present), so PeekNextPage and SkipNextPage can
// operate without parsing headers sequentially.
//
// totalNumValues must equal the sum of NumValues across every page this
// iterator will decode (the whole column chunk's value count when
// locations covers every page, or the pruned subset's value count when
// locations was narrowed by a FilterOffsetIndex) — GetNextPage's
// termination condition is seenNumValues reaching it.
func NewColumnPageIteratorWithIndex(
	byteRange ByteRangeReader,
	metadata *format.ColumnMetaData,
	locations []format.PageLocation,
	hasDictionaryPage bool,
	totalNumValues int64,
	totalRowCount int64,
	codec compress.Codec,
) (*ColumnPageIterator, error) {
	c := &ColumnPageIterator{
		codec:          codec,
		totalNumValues: totalNumValues,
		totalRowCount:  totalRowCount,
		locations:      append([]format.PageLocation(nil), locations...),
		hasDictPage:    hasDictionaryPage,
	}

	if hasDictionaryPage {
		if len(locations) == 0 {
			return nil, fmt.Errorf("%w: dictionary page requested with no data page locations", ErrInvariantViolation)
		}
		length := locations[0].Offset - metadata.DictionaryPageOffset
		r, err := byteRange.ReadRangeAt(metadata.DictionaryPageOffset, length)
		if err != nil {
			return nil, fmt.Errorf("%w: opening dictionary page range: %s", ErrIo, err)
		}
		c.dictReader = r
	}

	c.dataReaders = make([]io.Reader, len(locations))
	for i, loc := range locations {
		r, err := byteRange.ReadRangeAt(loc.Offset, int64(loc.CompressedPageSize))
		if err != nil {
			return nil, fmt.Errorf("%w: opening page %d range: %s", ErrIo, i, err)
		}
		c.dataReaders[i] = r
	}

	return c, nil
}

// Err returns the error, if any, that halted the iterator.
func (c *ColumnPageIterator) Err() error { return c.err }

// GetNextPage implements get_next_page(): it returns the next page in the
// column chunk, or (nil, nil) once every value has been seen, or an error
// for a malformed stream.
func (c *ColumnPageIterator) GetNextPage() (Page, error) {
	if c.err != nil {
		return nil, c.err
	}

	for c.seenNumValues < c.totalNumValues {
		r, usingIndex := c.selectCursor()
		if r == nil {
			// Indexed mode ran out of page locations before
			// seenNumValues caught up with totalNumValues: either the
			// caller passed an inconsistent totalNumValues, or
			// SkipNextPage (which does not advance seenNumValues) has
			// already moved past the last page.
			c.err = fmt.Errorf("%w: page index exhausted before total_num_values was reached", ErrInvariantViolation)
			return nil, c.err
		}

		header, err := c.headers.readPageHeader(r)
		if err != nil {
			if err == io.EOF && !usingIndex {
				return nil, nil
			}
			c.err = err
			return nil, err
		}

		body := make([]byte, header.CompressedPageSize)
		if _, err := io.ReadFull(r, body); err != nil {
			c.err = fmt.Errorf("%w: reading page body: %s", ErrIo, err)
			return nil, c.err
		}

		page, err := decodePage(header, body, c.codec)
		if err != nil {
			if errors.Is(err, errUnknownPageType) {
				continue // discard and re-enter SELECT_CURSOR
			}
			c.err = err
			return nil, err
		}

		switch page.Kind() {
		case DataPageV1Kind, DataPageV2Kind:
			c.seenNumValues += int64(page.NumValues())
			c.seenNumDataPages++
		case DictionaryPageKind:
			c.hasDictPage = false
		}

		c.consumed = append(c.consumed, consumedPage{kind: page.Kind(), numValues: page.NumValues()})
		return page, nil
	}

	return nil, nil
}

// selectCursor implements SELECT_CURSOR (S1): it chooses the reader the
// next header should be parsed from, without consuming anything.
func (c *ColumnPageIterator) selectCursor() (io.Reader, bool) {
	if c.locations == nil {
		return c.stream, false
	}
	if c.seenNumDataPages == 0 && c.hasDictPage {
		return c.dictReader, true
	}
	if c.seenNumDataPages >= len(c.dataReaders) {
		return nil, true
	}
	return c.dataReaders[c.seenNumDataPages], true
}

// PeekNextPage implements peek_next_page(): it requires a page index and
// reports the metadata of the page that the next GetNextPage call would
// return, without consuming it. While the dictionary page is still
// pending, PeekNextPage reports it, but SkipNextPage skips the first data
// page rather than the dictionary page.
func (c *ColumnPageIterator) PeekNextPage() (*PageMetadata, error) {
	if c.locations == nil {
		return nil, fmt.Errorf("%w: peek_next_page requires a page index", ErrInvariantViolation)
	}
	if c.seenNumDataPages == 0 && c.hasDictPage {
		return &PageMetadata{NumRows: 0, IsDict: true}, nil
	}
	if c.seenNumDataPages >= len(c.locations) {
		return nil, nil
	}

	i := c.seenNumDataPages
	var numRows int64
	if i == len(c.locations)-1 {
		numRows = c.totalNumValues - c.locations[i].FirstRowIndex
	} else {
		numRows = c.locations[i+1].FirstRowIndex - c.locations[i].FirstRowIndex
	}
	return &PageMetadata{NumRows: numRows, IsDict: false}, nil
}

// SkipNextPage implements skip_next_page(): it requires a page index,
// advances past the next data page without reading it, and — as an
// acknowledged approximation inherited from the source this component was
// ported from — does not advance seenNumValues. Callers that mix
// SkipNextPage with GetNextPage must rely on PeekNextPage, not value
// counts, to know when the chunk is exhausted.
func (c *ColumnPageIterator) SkipNextPage() error {
	if c.locations == nil {
		return fmt.Errorf("%w: skip_next_page requires a page index", ErrInvariantViolation)
	}
	if c.seenNumDataPages >= len(c.locations) {
		return fmt.Errorf("%w: skip_next_page called past the end of the column chunk", ErrInvariantViolation)
	}
	c.seenNumDataPages++
	return nil
}
