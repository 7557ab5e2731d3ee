// Package format defines the wire-level struct layout of the columnar file
// format, decoded with the Thrift compact protocol. Only the subset of
// fields that the read path (page header codec, page-index pruner, and
// column chunk locator) actually consumes is represented here; full
// schema and footer parsing is out of scope.
package format

// PageType identifies the kind of a page record. Values match the
// PageType enum of the on-disk format.
type PageType int32

const (
	DataPage       PageType = 0
	IndexPage      PageType = 1
	DictionaryPage PageType = 2
	DataPageV2     PageType = 3
)

func (t PageType) String() string {
	switch t {
	case DataPage:
		return "DATA_PAGE"
	case IndexPage:
		return "INDEX_PAGE"
	case DictionaryPage:
		return "DICTIONARY_PAGE"
	case DataPageV2:
		return "DATA_PAGE_V2"
	default:
		return "UNKNOWN_PAGE_TYPE"
	}
}

// Encoding identifies how the values (or levels) of a page are encoded.
type Encoding int32

const (
	Plain                Encoding = 0
	PlainDictionary      Encoding = 2
	RLE                  Encoding = 3
	BitPacked            Encoding = 4 // deprecated by the format
	DeltaBinaryPacked    Encoding = 5
	DeltaLengthByteArray Encoding = 6
	DeltaByteArray       Encoding = 7
	RLEDictionary        Encoding = 8
	ByteStreamSplit      Encoding = 9
)

func (e Encoding) String() string {
	switch e {
	case Plain:
		return "PLAIN"
	case PlainDictionary:
		return "PLAIN_DICTIONARY"
	case RLE:
		return "RLE"
	case BitPacked:
		return "BIT_PACKED"
	case DeltaBinaryPacked:
		return "DELTA_BINARY_PACKED"
	case DeltaLengthByteArray:
		return "DELTA_LENGTH_BYTE_ARRAY"
	case DeltaByteArray:
		return "DELTA_BYTE_ARRAY"
	case RLEDictionary:
		return "RLE_DICTIONARY"
	case ByteStreamSplit:
		return "BYTE_STREAM_SPLIT"
	default:
		return "UNKNOWN_ENCODING"
	}
}

// CompressionCodec identifies the codec used to compress a page body.
// Values match the CompressionCodec enum of the on-disk format.
type CompressionCodec int32

const (
	Uncompressed CompressionCodec = 0
	Snappy       CompressionCodec = 1
	Gzip         CompressionCodec = 2
	Lzo          CompressionCodec = 3
	Brotli       CompressionCodec = 4
	Lz4          CompressionCodec = 5
	Zstd         CompressionCodec = 6
	Lz4Raw       CompressionCodec = 7
)

func (c CompressionCodec) String() string {
	switch c {
	case Uncompressed:
		return "UNCOMPRESSED"
	case Snappy:
		return "SNAPPY"
	case Gzip:
		return "GZIP"
	case Lzo:
		return "LZO"
	case Brotli:
		return "BROTLI"
	case Lz4:
		return "LZ4"
	case Zstd:
		return "ZSTD"
	case Lz4Raw:
		return "LZ4_RAW"
	default:
		return "UNKNOWN_COMPRESSION_CODEC"
	}
}

// Statistics carries the optional per-page statistics recorded by a
// writer. This module does not compute statistics, it only decodes and
// forwards the values found on the wire.
type Statistics struct {
	Max       []byte `thrift:"1,optional"`
	Min       []byte `thrift:"2,optional"`
	NullCount int64  `thrift:"3,optional"`
	MinValue  []byte `thrift:"5,optional"`
	MaxValue  []byte `thrift:"6,optional"`
}

// DictionaryPageHeader is the header record of a dictionary page.
type DictionaryPageHeader struct {
	NumValues int32    `thrift:"1,required"`
	Encoding  Encoding `thrift:"2,required"`
	IsSorted  bool     `thrift:"3,optional"`
}

// DataPageHeader is the header record of a version-1 data page.
type DataPageHeader struct {
	NumValues               int32       `thrift:"1,required"`
	Encoding                Encoding    `thrift:"2,required"`
	DefinitionLevelEncoding Encoding    `thrift:"3,required"`
	RepetitionLevelEncoding Encoding    `thrift:"4,required"`
	Statistics              *Statistics `thrift:"5,optional"`
}

// DataPageHeaderV2 is the header record of a version-2 data page.
//
// IsCompressed is a pointer because the Thrift compact protocol omits
// absent optional fields entirely: a decoded nil means the writer did not
// set it, in which case the format's documented default (true) applies,
// see DefaultIsCompressed.
type DataPageHeaderV2 struct {
	NumValues                  int32       `thrift:"1,required"`
	NumNulls                   int32       `thrift:"2,required"`
	NumRows                    int32       `thrift:"3,required"`
	Encoding                   Encoding    `thrift:"4,required"`
	DefinitionLevelsByteLength int32       `thrift:"5,required"`
	RepetitionLevelsByteLength int32       `thrift:"6,required"`
	IsCompressed               *bool       `thrift:"7,optional"`
	Statistics                 *Statistics `thrift:"8,optional"`
}

// DefaultIsCompressed is the value DataPageHeaderV2.IsCompressed takes
// when absent from the wire.
const DefaultIsCompressed = true

// PageHeader is the self-describing envelope preceding every page body.
type PageHeader struct {
	Type                 PageType              `thrift:"1,required"`
	UncompressedPageSize int32                 `thrift:"2,required"`
	CompressedPageSize   int32                 `thrift:"3,required"`
	CRC                  int32                 `thrift:"4,optional"`
	DataPageHeader       *DataPageHeader       `thrift:"5,optional"`
	IndexPageHeader      []byte                `thrift:"6,optional"`
	DictionaryPageHeader *DictionaryPageHeader `thrift:"7,optional"`
	DataPageHeaderV2     *DataPageHeaderV2     `thrift:"8,optional"`
}

// PageLocation records where one page lives within a column chunk.
type PageLocation struct {
	Offset             int64 `thrift:"1,required"`
	CompressedPageSize int32 `thrift:"2,required"`
	FirstRowIndex      int64 `thrift:"3,required"`
}

// OffsetIndex is the per-column-chunk page location side-table.
type OffsetIndex struct {
	PageLocations []PageLocation `thrift:"1,required"`
}

// ColumnMetaData carries the minimal column chunk location fields the
// read path needs to find a chunk's bytes and pick a codec.
type ColumnMetaData struct {
	Codec                CompressionCodec `thrift:"2,required"`
	NumValues            int64            `thrift:"5,required"`
	TotalCompressedSize  int64            `thrift:"7,required"`
	DataPageOffset       int64            `thrift:"9,required"`
	DictionaryPageOffset int64            `thrift:"11,optional"`
}
