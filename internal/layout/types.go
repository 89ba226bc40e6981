// Package layout wraps the layout-analysis provider (Azure Document
// Intelligence). The core consumes only page count, detected key/value pairs
// and table count; full text comes from pdftext instead.
package layout

// Content is a fragment of detected document content.
type Content struct {
	Content string `json:"content"`
}

// KeyValuePair is one detected label/value pairing.
type KeyValuePair struct {
	Key   *Content `json:"key"`
	Value *Content `json:"value"`
}

// Page describes one analyzed page.
type Page struct {
	PageNumber int `json:"pageNumber"`
}

// AnalyzeResult is the subset of the provider response the pipeline consumes.
type AnalyzeResult struct {
	ModelID       string           `json:"modelId"`
	Pages         []Page           `json:"pages"`
	Paragraphs    []Content        `json:"paragraphs"`
	KeyValuePairs []KeyValuePair   `json:"keyValuePairs"`
	Tables        []map[string]any `json:"tables"`
}

// PageCount returns the highest analyzed page number.
func (r *AnalyzeResult) PageCount() int {
	if r == nil || len(r.Pages) == 0 {
		return 0
	}
	return r.Pages[len(r.Pages)-1].PageNumber
}
