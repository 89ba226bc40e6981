// Package extract implements rule-based field extraction for Indian coal
// transportation work-order documents. The extractors operate on the
// pipe-delimited text stream built by pdftext, with the layout key/value
// index and the page-1 two-column mapping as higher-confidence sources.
package extract

import (
	"github.com/coalops/workorder-extractor/internal/layout"
)

// ServiceLine is one billable service line item.
type ServiceLine struct {
	SrNo             string `json:"Sr No"`
	ServiceLineNo    string `json:"SrvLnNo"`
	ServiceNo        string `json:"SrvNo"`
	BriefDescription string `json:"Brief Description"`
	LongText         string `json:"Long Text"`
	Rate             string `json:"Rate"`
	Unit             string `json:"Unit"`
}

// ChangeOrder is one contract amendment (C/O) record. AmendmentType is a
// keyword heuristic, not authoritative.
type ChangeOrder struct {
	Date          string `json:"C/O Date"`
	AmendmentType string `json:"Amendment Type"`
	Description   string `json:"Description"`
	NewValidity   string `json:"New Validity"`
	CeilingChange string `json:"Ceiling Change"`
}

// Amendment type labels assigned by the change-order classifier.
const (
	AmendmentValidityExtension = "Validity Extension"
	AmendmentCeilingChange     = "Ceiling Value Change"
	AmendmentGeneric           = "Amendment"
)

// Metadata carries informational extraction facts. It never participates in
// gap detection or merge.
type Metadata struct {
	SourceFile  string `json:"source_file"`
	Pages       int    `json:"pages"`
	Paragraphs  int    `json:"paragraphs"`
	KVPairs     int    `json:"kv_pairs"`
	Tables      int    `json:"tables"`
	Model       string `json:"model"`
	ExtractedAt string `json:"extracted_at"`
}

// Record is the structured output for one work-order document. Mapping
// sections hold only keys with non-empty values; an absent key means "not
// found". The one exception is the Exit Clause text block, which may carry
// the literal sentinel "Not found".
type Record struct {
	Header       map[string]string `json:"header"`
	Services     []ServiceLine     `json:"services"`
	Pricing      map[string]string `json:"pricing"`
	TextBlocks   map[string]string `json:"text_blocks"`
	ChangeOrders []ChangeOrder     `json:"change_orders"`
	Metadata     Metadata          `json:"metadata"`
}

// HeaderFieldOrder is the canonical rendering order for header fields.
var HeaderFieldOrder = []string{
	"Order Number",
	"Order Date",
	"Release Date",
	"Validity From",
	"Validity To",
	"Vendor Code",
	"Vendor Name",
	"Payment Terms",
	"GST Info",
	"Contact Person",
	"Contact Email",
	"Order Ceiling Value (INR)",
}

// PricingFieldOrder is the canonical rendering order for scalar pricing
// fields; dynamically numbered "Item N Rate"/"Item N Unit" keys follow.
var PricingFieldOrder = []string{
	"Diesel Component %",
	"Base HSD (INR/L)",
	"HSD Reference Date",
	"HSD Source",
	"Gross Price (INR)",
	"Order Ceiling Value (INR)",
	"Total Order Value (INR)",
}

// TextBlockOrder is the canonical rendering order for text blocks.
var TextBlockOrder = []string{
	"Scope of Work",
	"Safety Norms",
	"Exit Clause",
	"Payment Terms Detail",
}

// ExtractRecord runs all five section extractors over the shared inputs.
// Extractors are independent: each derives solely from the text stream, the
// key/value index and the two-column mapping, never from another section.
func ExtractRecord(fullText string, idx *layout.Index, twoCol map[string]string, meta Metadata) Record {
	return Record{
		Header:       ExtractHeader(fullText, idx, twoCol),
		Services:     ExtractServices(fullText),
		Pricing:      ExtractPricing(fullText),
		TextBlocks:   ExtractTextBlocks(fullText),
		ChangeOrders: ExtractChangeOrders(fullText),
		Metadata:     meta,
	}
}
