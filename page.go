package colfile

import (
	"errors"
	"fmt"

	"github.com/colmeta/colfile/compress"
	"github.com/colmeta/colfile/format"
)

// PageKind identifies which of the three page shapes a Page value holds.
// This is a closed set: every consumer of Page already knows it, so Page
// is modeled as a small tagged variant rather than an open interface
// hierarchy.
type PageKind int

const (
	DictionaryPageKind PageKind = iota
	DataPageV1Kind
	DataPageV2Kind
)

func (k PageKind) String() string {
	switch k {
	case DictionaryPageKind:
		return "DICTIONARY_PAGE"
	case DataPageV1Kind:
		return "DATA_PAGE_V1"
	case DataPageV2Kind:
		return "DATA_PAGE_V2"
	default:
		return "UNKNOWN_PAGE_KIND"
	}
}

// Page is the lazily produced, typed unit a page iterator yields. Pages
// are owned by the caller once returned: the iterator keeps no reference
// to them past the call that produced them.
type Page interface {
	fmt.Stringer

	// Kind reports which of the three page shapes this value holds.
	Kind() PageKind

	// Data returns the page body: dictionary entries for a
	// DictionaryPage, or the (already decompressed, when applicable)
	// value stream for a data page. For DataPageV2 the leading
	// definition/repetition level bytes are included verbatim at the
	// front of the slice.
	Data() []byte

	// NumValues returns the number of values carried by the page,
	// including nulls.
	NumValues() int
}

// DictionaryPage carries the dictionary entries preceding the data pages
// of a column chunk that uses dictionary encoding.
type DictionaryPage struct {
	data      []byte
	numValues int
	encoding  format.Encoding
	isSorted  bool
}

func (p *DictionaryPage) Kind() PageKind      { return DictionaryPageKind }
func (p *DictionaryPage) Data() []byte        { return p.data }
func (p *DictionaryPage) NumValues() int      { return p.numValues }
func (p *DictionaryPage) Encoding() format.Encoding { return p.encoding }
func (p *DictionaryPage) IsSorted() bool      { return p.isSorted }

func (p *DictionaryPage) String() string {
	return fmt.Sprintf("DICTIONARY_PAGE{NumValues=%d,Encoding=%s,IsSorted=%t}", p.numValues, p.encoding, p.isSorted)
}

// DataPageV1 carries a version-1 data page: values, plus separately
// encoded definition and repetition level streams that a higher layer
// decodes using DefinitionLevelEncoding/RepetitionLevelEncoding.
type DataPageV1 struct {
	data                    []byte
	numValues               int
	encoding                format.Encoding
	definitionLevelEncoding format.Encoding
	repetitionLevelEncoding format.Encoding
	statistics              *format.Statistics
}

func (p *DataPageV1) Kind() PageKind { return DataPageV1Kind }
func (p *DataPageV1) Data() []byte   { return p.data }
func (p *DataPageV1) NumValues() int { return p.numValues }

func (p *DataPageV1) Encoding() format.Encoding                { return p.encoding }
func (p *DataPageV1) DefinitionLevelEncoding() format.Encoding { return p.definitionLevelEncoding }
func (p *DataPageV1) RepetitionLevelEncoding() format.Encoding { return p.repetitionLevelEncoding }

// Statistics returns the page's recorded statistics, or nil if the writer
// did not record any.
func (p *DataPageV1) Statistics() *format.Statistics { return p.statistics }

func (p *DataPageV1) String() string {
	return fmt.Sprintf("DATA_PAGE{NumValues=%d,Encoding=%s}", p.numValues, p.encoding)
}

// DataPageV2 carries a version-2 data page. Unlike V1, the level streams
// are never compressed: DefinitionLevelsByteLength+RepetitionLevelsByteLength
// bytes at the front of Data are always the raw level data, see decodePage.
type DataPageV2 struct {
	data                       []byte
	numValues                  int
	numNulls                   int
	numRows                    int
	encoding                   format.Encoding
	definitionLevelsByteLength int
	repetitionLevelsByteLength int
	isCompressed               bool
	statistics                 *format.Statistics
}

func (p *DataPageV2) Kind() PageKind { return DataPageV2Kind }
func (p *DataPageV2) Data() []byte   { return p.data }
func (p *DataPageV2) NumValues() int { return p.numValues }

func (p *DataPageV2) NumNulls() int                      { return p.numNulls }
func (p *DataPageV2) NumRows() int                        { return p.numRows }
func (p *DataPageV2) Encoding() format.Encoding            { return p.encoding }
func (p *DataPageV2) DefinitionLevelsByteLength() int      { return p.definitionLevelsByteLength }
func (p *DataPageV2) RepetitionLevelsByteLength() int      { return p.repetitionLevelsByteLength }
func (p *DataPageV2) IsCompressed() bool                   { return p.isCompressed }
func (p *DataPageV2) Statistics() *format.Statistics        { return p.statistics }

func (p *DataPageV2) String() string {
	return fmt.Sprintf("DATA_PAGE_V2{NumValues=%d,NumNulls=%d,NumRows=%d,Encoding=%s}",
		p.numValues, p.numNulls, p.numRows, p.encoding)
}

var (
	_ Page = (*DictionaryPage)(nil)
	_ Page = (*DataPageV1)(nil)
	_ Page = (*DataPageV2)(nil)
)

// errUnknownPageType signals a page type outside the three shapes above.
// decodePage never returns a Page for it; the iterator treats this
// as "skip and continue", it is never surfaced to the caller.
var errUnknownPageType = errors.New("unknown page type")

// decodePage determines the level-byte offset and
// decompressibility of the page body, decompresses when a codec applies,
// and dispatches on header.Type to build the typed Page value.
func decodePage(header *format.PageHeader, buffer []byte, codec compress.Codec) (Page, error) {
	offset := 0
	canDecompress := true

	if header.Type == format.DataPageV2 {
		v2 := header.DataPageHeaderV2
		if v2 == nil {
			return nil, fmt.Errorf("%w: DATA_PAGE_V2 missing data_page_header_v2", ErrCorrupt)
		}
		offset = int(v2.DefinitionLevelsByteLength) + int(v2.RepetitionLevelsByteLength)
		if v2.IsCompressed != nil {
			canDecompress = *v2.IsCompressed
		} else {
			canDecompress = format.DefaultIsCompressed
		}
	}

	body := buffer
	if codec != nil && canDecompress {
		if offset > len(buffer) {
			return nil, fmt.Errorf("%w: level byte length %d exceeds page body of %d bytes", ErrCorrupt, offset, len(buffer))
		}

		decompressed := make([]byte, offset, offset+int(header.UncompressedPageSize))
		copy(decompressed, buffer[:offset])

		decompressed, err := compress.Decompress(codec, decompressed, buffer[offset:])
		if err != nil {
			return nil, fmt.Errorf("%w: decompressing page body: %s", ErrCorrupt, err)
		}
		if len(decompressed) != int(header.UncompressedPageSize) {
			return nil, fmt.Errorf("%w: decompressed size %d does not match header uncompressed_page_size %d",
				ErrCorrupt, len(decompressed), header.UncompressedPageSize)
		}
		body = decompressed
	}

	switch header.Type {
	case format.DictionaryPage:
		h := header.DictionaryPageHeader
		if h == nil {
			return nil, fmt.Errorf("%w: DICTIONARY_PAGE missing dictionary_page_header", ErrCorrupt)
		}
		return &DictionaryPage{
			data:      body,
			numValues: int(h.NumValues),
			encoding:  h.Encoding,
			isSorted:  h.IsSorted,
		}, nil

	case format.DataPage:
		h := header.DataPageHeader
		if h == nil {
			return nil, fmt.Errorf("%w: DATA_PAGE missing data_page_header", ErrCorrupt)
		}
		return &DataPageV1{
			data:                    body,
			numValues:               int(h.NumValues),
			encoding:                h.Encoding,
			definitionLevelEncoding: h.DefinitionLevelEncoding,
			repetitionLevelEncoding: h.RepetitionLevelEncoding,
			statistics:              h.Statistics,
		}, nil

	case format.DataPageV2:
		h := header.DataPageHeaderV2 // validated not-nil above
		return &DataPageV2{
			data:                       body,
			numValues:                  int(h.NumValues),
			numNulls:                   int(h.NumNulls),
			numRows:                    int(h.NumRows),
			encoding:                   h.Encoding,
			definitionLevelsByteLength: int(h.DefinitionLevelsByteLength),
			repetitionLevelsByteLength: int(h.RepetitionLevelsByteLength),
			isCompressed:               canDecompress,
			statistics:                 h.Statistics,
		}, nil

	default:
		return nil, errUnknownPageType
	}
}
