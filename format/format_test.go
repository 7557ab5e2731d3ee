package format_test

import (
	"reflect"
	"testing"

	"github.com/segmentio/encoding/thrift"

	"github.com/colmeta/colfile/format"
)

func TestMarshalUnmarshalPageHeader(t *testing.T) {
	protocol := &thrift.CompactProtocol{}
	header := &format.PageHeader{
		Type:                 format.DataPage,
		UncompressedPageSize: 128,
		CompressedPageSize:   96,
		DataPageHeader: &format.DataPageHeader{
			NumValues: 10,
			Encoding:  format.Plain,
		},
	}

	b, err := thrift.Marshal(protocol, header)
	if err != nil {
		t.Fatal(err)
	}

	decoded := &format.PageHeader{}
	if err := thrift.Unmarshal(protocol, b, decoded); err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(header, decoded) {
		t.Errorf("values mismatch:\nexpected:\n%#v\nfound:\n%#v", header, decoded)
	}
}

func TestMarshalUnmarshalDataPageHeaderV2OptionalIsCompressed(t *testing.T) {
	protocol := &thrift.CompactProtocol{}
	header := &format.PageHeader{
		Type:                 format.DataPageV2,
		UncompressedPageSize: 64,
		CompressedPageSize:   64,
		DataPageHeaderV2: &format.DataPageHeaderV2{
			NumValues: 8,
			NumNulls:  0,
			NumRows:   8,
			Encoding:  format.Plain,
			// IsCompressed intentionally left nil: the wire format omits
			// this optional field when a writer accepts its default.
		},
	}

	b, err := thrift.Marshal(protocol, header)
	if err != nil {
		t.Fatal(err)
	}

	decoded := &format.PageHeader{}
	if err := thrift.Unmarshal(protocol, b, decoded); err != nil {
		t.Fatal(err)
	}

	if decoded.DataPageHeaderV2.IsCompressed != nil {
		t.Fatalf("IsCompressed = %v, want nil (absent from the wire)", *decoded.DataPageHeaderV2.IsCompressed)
	}
}

func TestPageTypeString(t *testing.T) {
	tests := []struct {
		pt   format.PageType
		want string
	}{
		{format.DataPage, "DATA_PAGE"},
		{format.IndexPage, "INDEX_PAGE"},
		{format.DictionaryPage, "DICTIONARY_PAGE"},
		{format.DataPageV2, "DATA_PAGE_V2"},
	}
	for _, tt := range tests {
		if got := tt.pt.String(); got != tt.want {
			t.Errorf("PageType(%d).String() = %q, want %q", tt.pt, got, tt.want)
		}
	}
}
