package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func pair(k, v string) KeyValuePair {
	return KeyValuePair{Key: &Content{Content: k}, Value: &Content{Content: v}}
}

func TestBuildIndex(t *testing.T) {
	res := &AnalyzeResult{
		KeyValuePairs: []KeyValuePair{
			pair("Order Date :-", "26.09.2024"),
			pair("Vendor Code", "V12345"),
			pair("", "orphan value"),
			pair("orphan key", ""),
			{Key: nil, Value: &Content{Content: "no key"}},
			pair("Vendor Code", "V99999"),
		},
	}
	idx := BuildIndex(res)

	assert.Equal(t, 2, idx.Len())
	// Keys are cleaned and lower-cased before indexing.
	assert.Equal(t, "26.09.2024", idx.Find("order date"))
	// Duplicate keys: last write wins.
	assert.Equal(t, "V99999", idx.Find("vendor code"))
}

func TestIndexFindInsertionOrder(t *testing.T) {
	res := &AnalyzeResult{
		KeyValuePairs: []KeyValuePair{
			pair("Payment terms of vendor", "first"),
			pair("Payment", "second"),
		},
	}
	idx := BuildIndex(res)
	// Both keys contain "payment"; the first inserted one wins.
	assert.Equal(t, "first", idx.Find("payment"))
}

func TestIndexFindMultipleKeywords(t *testing.T) {
	res := &AnalyzeResult{
		KeyValuePairs: []KeyValuePair{
			pair("Release Date", "27.09.2024"),
		},
	}
	idx := BuildIndex(res)
	assert.Equal(t, "27.09.2024", idx.Find("no such key", "release"))
	assert.Equal(t, "", idx.Find("missing"))
}

func TestBuildIndexNil(t *testing.T) {
	idx := BuildIndex(nil)
	assert.Equal(t, 0, idx.Len())
	assert.Equal(t, "", idx.Find("anything"))
}
