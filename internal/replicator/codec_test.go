package replicator

import (
	"encoding/json"
	"reflect"
	"testing"
)

func taggedDoc(t *testing.T, raw string) map[string]any {
	t.Helper()
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return doc
}

func TestDecodeDocumentUnwrapsNestedTags(t *testing.T) {
	doc := taggedDoc(t, `{
		"fields": {
			"a": {"stringValue": "x"},
			"b": {"mapValue": {"fields": {"c": {"integerValue": "5"}}}}
		}
	}`)

	got := DecodeDocument(doc)
	want := map[string]any{
		"a": "x",
		"b": map[string]any{"c": int64(5)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("decode: got=%#v want=%#v", got, want)
	}
}

func TestDecodeDocumentScalars(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want any
	}{
		{name: "string", doc: `{"fields":{"v":{"stringValue":"hello"}}}`, want: "hello"},
		{name: "integer_as_string", doc: `{"fields":{"v":{"integerValue":"42"}}}`, want: int64(42)},
		{name: "integer_as_number", doc: `{"fields":{"v":{"integerValue":7}}}`, want: int64(7)},
		{name: "double", doc: `{"fields":{"v":{"doubleValue":1.5}}}`, want: 1.5},
		{name: "boolean", doc: `{"fields":{"v":{"booleanValue":true}}}`, want: true},
		{name: "timestamp", doc: `{"fields":{"v":{"timestampValue":"2025-06-01T12:00:00Z"}}}`, want: "2025-06-01T12:00:00Z"},
		{name: "null", doc: `{"fields":{"v":{"nullValue":null}}}`, want: nil},
		{name: "unrecognized_tag", doc: `{"fields":{"v":{"geoPointValue":{"latitude":1}}}}`, want: nil},
		{name: "untagged", doc: `{"fields":{"v":"bare"}}`, want: nil},
		{name: "bad_integer", doc: `{"fields":{"v":{"integerValue":"not-a-number"}}}`, want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DecodeDocument(taggedDoc(t, tc.doc))
			if !reflect.DeepEqual(got["v"], tc.want) {
				t.Fatalf("decode: got=%#v want=%#v", got["v"], tc.want)
			}
		})
	}
}

func TestDecodeDocumentArrays(t *testing.T) {
	doc := taggedDoc(t, `{
		"fields": {
			"tags": {"arrayValue": {"values": [
				{"stringValue": "a"},
				{"integerValue": "2"},
				{"mapValue": {"fields": {"k": {"booleanValue": false}}}}
			]}}
		}
	}`)

	got := DecodeDocument(doc)
	want := []any{"a", int64(2), map[string]any{"k": false}}
	if !reflect.DeepEqual(got["tags"], want) {
		t.Fatalf("array decode: got=%#v want=%#v", got["tags"], want)
	}
}

func TestDecodeDocumentMissingFieldsSignalsSkip(t *testing.T) {
	if got := DecodeDocument(taggedDoc(t, `{"name":"projects/p/databases/d/documents/c/doc"}`)); got != nil {
		t.Fatalf("missing fields must decode to nil, got %#v", got)
	}
	if got := DecodeDocument(map[string]any{}); got != nil {
		t.Fatalf("empty payload must decode to nil, got %#v", got)
	}
}
