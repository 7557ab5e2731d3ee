package colfile

import (
	"fmt"

	"github.com/colmeta/colfile/compress"
	"github.com/colmeta/colfile/format"
)

// ColumnChunkReader binds together everything a caller needs to iterate the
// pages of one column chunk: the byte-range reader open on the file, the
// chunk's metadata, and (optionally) its offset index. It mirrors the role
// ColumnChunks plays in the teacher's column_chunks.go, minus the schema and
// row-group traversal machinery that sits outside this package's scope.
type ColumnChunkReader struct {
	byteRange ByteRangeReader
	metadata  *format.ColumnMetaData
	locations []format.PageLocation
	rowCount  int64
}

// NewColumnChunkReader builds a reader for one column chunk. locations may
// be nil when no offset index is available for the chunk; rowCount is the
// row group's row count and is only consulted when locations is non-nil.
func NewColumnChunkReader(byteRange ByteRangeReader, metadata *format.ColumnMetaData, locations []format.PageLocation, rowCount int64) *ColumnChunkReader {
	return &ColumnChunkReader{
		byteRange: byteRange,
		metadata:  metadata,
		locations: locations,
		rowCount:  rowCount,
	}
}

// WithRowRanges narrows the reader to a FilterOffsetIndex built from the
// chunk's full offset index and the given row ranges. It is a no-op, and
// returns an error, if the reader has no offset index to narrow.
func (r *ColumnChunkReader) WithRowRanges(ranges RowRanges) (*FilterOffsetIndex, error) {
	if r.locations == nil {
		return nil, fmt.Errorf("%w: column chunk has no offset index to filter", ErrInvariantViolation)
	}
	return NewFilterOffsetIndex(r.locations, ranges, r.rowCount), nil
}

// Pages opens a ColumnPageIterator over the full column chunk. When the
// chunk has an offset index, the iterator is built in indexed mode so that
// PeekNextPage and SkipNextPage are available; otherwise it streams the
// chunk's data pages sequentially.
func (r *ColumnChunkReader) Pages() (*ColumnPageIterator, error) {
	codec, err := createCodec(r.metadata.Codec)
	if err != nil {
		return nil, err
	}

	if r.locations == nil {
		return NewColumnPageIterator(r.byteRange, r.metadata, codec)
	}

	hasDict := r.metadata.DictionaryPageOffset != 0 && r.metadata.DictionaryPageOffset < r.metadata.DataPageOffset
	return NewColumnPageIteratorWithIndex(r.byteRange, r.metadata, r.locations, hasDict, r.metadata.NumValues, r.rowCount, codec)
}

// PagesInRowRanges opens a ColumnPageIterator restricted to the pages a
// FilterOffsetIndex retained. The offset index records each page's first
// row index but not its value count, so the iterator's totalNumValues is
// approximated from retained row spans; this is exact for columns with no
// repeated fields and is the same approximation PeekNextPage's own row
// count math relies on. The dictionary page, when present, is always
// included ahead of the pruned data pages: dictionary-encoded values in
// any retained page need it to be materialized.
func (r *ColumnChunkReader) PagesInRowRanges(filter *FilterOffsetIndex) (*ColumnPageIterator, error) {
	codec, err := createCodec(r.metadata.Codec)
	if err != nil {
		return nil, err
	}

	locations := make([]format.PageLocation, filter.NumPages())
	var numValues int64
	for i := range locations {
		offset, size, firstRowIndex := filter.PageLocation(i)
		locations[i] = format.PageLocation{Offset: offset, CompressedPageSize: size, FirstRowIndex: firstRowIndex}
	}
	for i := 0; i < filter.NumPages(); i++ {
		src := filter.sourceIndex(i)
		var rows int64
		if src == filter.numLocations()-1 {
			rows = r.rowCount - filter.location(src).FirstRowIndex
		} else {
			rows = filter.location(src + 1).FirstRowIndex - filter.location(src).FirstRowIndex
		}
		numValues += rows
	}

	hasDict := r.metadata.DictionaryPageOffset != 0 && r.metadata.DictionaryPageOffset < r.metadata.DataPageOffset
	return NewColumnPageIteratorWithIndex(r.byteRange, r.metadata, locations, hasDict, numValues, r.rowCount, codec)
}
