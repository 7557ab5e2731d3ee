package colfile

import "github.com/colmeta/colfile/format"

// RowRange is a closed interval [Lo, Hi] over the row index domain of a
// row group.
type RowRange struct {
	Lo, Hi int64
}

// RowRanges is a sequence of row ranges used by the page-index pruner.
// Overlap with a page's row span is inclusive on both ends.
type RowRanges []RowRange

func (rs RowRanges) overlaps(lo, hi int64) bool {
	for _, r := range rs {
		if lo <= r.Hi && r.Lo <= hi {
			return true
		}
	}
	return false
}

// FilterOffsetIndex holds the full array of page locations for a column
// chunk plus the sorted subset of indices whose row range intersects a
// requested set of row ranges. It is ported from the page-location pruner of
// parquet/src/file/filer_offset_index.rs: each retained page's inclusive
// row range is [first_row_index[i], first_row_index[i+1]-1], or
// [first_row_index[i], total_row_count] for the last page.
//
// A FilterOffsetIndex is immutable once constructed.
type FilterOffsetIndex struct {
	locations []format.PageLocation
	indexMap  []int
}

// NewFilterOffsetIndex implements try_new(locations, ranges, total_rows).
func NewFilterOffsetIndex(locations []format.PageLocation, ranges RowRanges, totalRowCount int64) *FilterOffsetIndex {
	locs := append([]format.PageLocation(nil), locations...)
	indexMap := make([]int, 0, len(locs))

	for i := range locs {
		lo := locs[i].FirstRowIndex
		var hi int64
		if i == len(locs)-1 {
			hi = totalRowCount
		} else {
			hi = locs[i+1].FirstRowIndex - 1
		}
		if ranges.overlaps(lo, hi) {
			indexMap = append(indexMap, i)
		}
	}

	return &FilterOffsetIndex{locations: locs, indexMap: indexMap}
}

// NumPages returns the number of pages retained by the filter.
func (f *FilterOffsetIndex) NumPages() int {
	return len(f.indexMap)
}

// PageLocation returns the location of the i-th retained page. The offset
// and compressed page size are in bytes; the first row index is relative
// to the beginning of the row group the page's column chunk belongs to.
func (f *FilterOffsetIndex) PageLocation(i int) (offset int64, compressedPageSize int32, firstRowIndex int64) {
	loc := &f.locations[f.indexMap[i]]
	return loc.Offset, loc.CompressedPageSize, loc.FirstRowIndex
}

// sourceIndex returns the index into the full (unfiltered) location array
// for the i-th retained page, used by ColumnChunkReader.PagesInRowRanges to
// compute each retained page's row count from adjacent page locations.
func (f *FilterOffsetIndex) sourceIndex(i int) int {
	return f.indexMap[i]
}

func (f *FilterOffsetIndex) location(i int) format.PageLocation {
	return f.locations[i]
}

func (f *FilterOffsetIndex) numLocations() int {
	return len(f.locations)
}

// OffsetRange is one contiguous byte extent produced by
// CalculateOffsetRange.
type OffsetRange struct {
	Offset int64
	Length int64
}

// CalculateOffsetRange walks
// the retained pages in order, coalescing a page into the current extent
// only when it is strictly adjacent to it (current_offset+current_length
// == next offset); anything else starts a new extent. When the first
// retained page's offset exceeds rowGroupOffset, the gap between them is
// emitted first as the dictionary page's extent.
//
// The source material this was ported from contains
// `current_length + current_length == offset`, which cannot be the
// intended adjacency test (it never involves the byte offset at all
// except by coincidence); this implementation uses the strict-adjacency
// form `current_offset + current_length == offset` instead, per the
// REDESIGN note accompanying this component.
func (f *FilterOffsetIndex) CalculateOffsetRange(rowGroupOffset int64) []OffsetRange {
	n := f.NumPages()
	if n == 0 {
		return nil
	}

	var ranges []OffsetRange

	firstOffset, firstLength, _ := f.PageLocation(0)
	if rowGroupOffset < firstOffset {
		ranges = append(ranges, OffsetRange{Offset: rowGroupOffset, Length: firstOffset - rowGroupOffset})
	}

	currentOffset, currentLength := firstOffset, int64(firstLength)

	for i := 1; i < n; i++ {
		offset, length, _ := f.PageLocation(i)
		if currentOffset+currentLength == offset {
			currentLength += int64(length)
		} else {
			ranges = append(ranges, OffsetRange{Offset: currentOffset, Length: currentLength})
			currentOffset, currentLength = offset, int64(length)
		}
	}

	ranges = append(ranges, OffsetRange{Offset: currentOffset, Length: currentLength})
	return ranges
}
