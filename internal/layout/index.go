package layout

import (
	"strings"

	"github.com/coalops/workorder-extractor/internal/cleaner"
)

// Index is a normalized key/value mapping built from the provider's detected
// pairs. Insertion order is preserved so keyword lookup is deterministic.
type Index struct {
	keys   []string
	values map[string]string
}

// BuildIndex converts detected key/value pairs into an index of lower-cased
// cleaned keys to cleaned values. Pairs with an empty side are skipped; on
// duplicate keys the last write wins.
func BuildIndex(result *AnalyzeResult) *Index {
	idx := &Index{values: map[string]string{}}
	if result == nil {
		return idx
	}
	for _, kvp := range result.KeyValuePairs {
		if kvp.Key == nil || kvp.Value == nil {
			continue
		}
		k := strings.ToLower(cleaner.Clean(kvp.Key.Content))
		v := cleaner.Clean(kvp.Value.Content)
		if k == "" || v == "" {
			continue
		}
		if _, seen := idx.values[k]; !seen {
			idx.keys = append(idx.keys, k)
		}
		idx.values[k] = v
	}
	return idx
}

// Find returns the value of the first inserted key containing any of the
// given keywords as a substring, or "" when none matches.
func (idx *Index) Find(keywords ...string) string {
	for _, k := range idx.keys {
		for _, kw := range keywords {
			if strings.Contains(k, kw) {
				return idx.values[k]
			}
		}
	}
	return ""
}

// Len reports the number of indexed pairs.
func (idx *Index) Len() int { return len(idx.keys) }
