package extract

import (
	"regexp"
	"strings"
)

var (
	reCOAnchor = regexp.MustCompile(`(?i)NOTE\s*:\s*C/O\s+DATED`)
	reCODate   = regexp.MustCompile(`(?i)C/O\s+DATED\s+(\d{2}[.\-/]\d{2}[.\-/]\d{4})`)

	// Description runs from a row of equals signs to the next amendment
	// boundary or a known terminator phrase.
	reCODescription = regexp.MustCompile(`(?is)={3,}\s*(.*?)(?:NOTE\s*:\s*C/O|\|\s*(?:Delivery|Payment|Order\s+Ceiling|NOTE\s*:|TOTAL|Collection)|$)`)
	reCODescNoise   = regexp.MustCompile(`(?i)\s+Order\s+No\..*$`)

	reCONewValidity = regexp.MustCompile(`(?i)till\s+(\d{2}[-./]\d{2}[-./]\d{4})`)
)

// amendmentRules classify an amendment by keyword presence in its
// description, evaluated top to bottom, first match wins.
var amendmentRules = []struct {
	re     *regexp.Regexp
	result string
}{
	{regexp.MustCompile(`(?i)validity\s+extended|extended\s+till`), AmendmentValidityExtension},
	{regexp.MustCompile(`(?i)ceiling|increase|value`), AmendmentCeilingChange},
}

// ceilingChangeRules locate the revised ceiling amount, tried in order of
// specificity. Denominations (Cr, Lakh) stay literal suffixes.
var ceilingChangeRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)from\s+[\d.]+\s*CR\s+to\s+([\d.]+\s*CR)`),
	regexp.MustCompile(`(?i)by\s+Rs\.?\s*([\d.,]+\s*(?:Cr|CR|Lakh|Lakhs))`),
	regexp.MustCompile(`(?i)([\d.,]+\s*(?:Cr|CR|Lakh|Lakhs))`),
}

// ExtractChangeOrders segments the stream on the "NOTE: C/O DATED" anchor.
// A segment without a date match is not a change-order block and is skipped.
func ExtractChangeOrders(fullText string) []ChangeOrder {
	var orders []ChangeOrder
	for _, block := range splitOnAnchor(fullText) {
		date := find(reCODate, block)
		if date == "" {
			continue
		}

		desc := find(reCODescription, block)
		if desc != "" {
			desc = flattenBlock(desc)
			desc = strings.TrimSpace(reCODescNoise.ReplaceAllString(desc, ""))
		}

		orders = append(orders, ChangeOrder{
			Date:          date,
			AmendmentType: classifyAmendment(desc),
			Description:   desc,
			NewValidity:   find(reCONewValidity, desc),
			CeilingChange: findCeilingChange(desc),
		})
	}
	return orders
}

// splitOnAnchor splits the stream so each segment starts at an anchor match,
// keeping the anchor text in the segment.
func splitOnAnchor(fullText string) []string {
	locs := reCOAnchor.FindAllStringIndex(fullText, -1)
	if len(locs) == 0 {
		return []string{fullText}
	}
	var segs []string
	if locs[0][0] > 0 {
		segs = append(segs, fullText[:locs[0][0]])
	}
	for i, loc := range locs {
		end := len(fullText)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		segs = append(segs, fullText[loc[0]:end])
	}
	return segs
}

func classifyAmendment(desc string) string {
	for _, rule := range amendmentRules {
		if rule.re.MatchString(desc) {
			return rule.result
		}
	}
	return AmendmentGeneric
}

func findCeilingChange(desc string) string {
	for _, re := range ceilingChangeRules {
		if v := find(re, desc); v != "" {
			return v
		}
	}
	return ""
}
