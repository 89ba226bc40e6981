package extract

import (
	"regexp"
	"strings"
)

var (
	// A line-item header: sequence number, line number, service code, then a
	// description fragment starting with one of the contract's activity words.
	reItemHeader = regexp.MustCompile(`(?i)\b(\d{1,2})\s+(\d{2})\s+(MS\d+)\s+((?:TRANSPORTATION|LOADING|HANDLING|LIFTING)[^|]{5,80})`)

	reServiceRate = regexp.MustCompile(`(?i)Total\s+Price\s+([\d,]+\.?\d*)\s*/\s*([\w\s]+?)\s+INR`)

	reServiceLong = regexp.MustCompile(`(?is)Service\s+Long\s+Text\s*:?\s*\|?\s*(.*?)(?:Contract\s+Item\s+Service\s+Conditions|Total\s+Price)`)

	// Brief-description tail noise appended by the flattened stream.
	reBriefLongNoise = regexp.MustCompile(`(?i)\s*Service\s+Long\s+Text.*$`)
	reBriefPipeTail  = regexp.MustCompile(`\s*\|.*$`)

	// Two-column header boilerplate that bleeds into a long text when the
	// block crosses a page boundary.
	reLongTextNoise = regexp.MustCompile(`(?i)^(?:Vendor\s+Code|<VENDOR|<>$|Order\s+No\.|Order\s+Date|Release\s+Date|Contact\s+Person|E-Mail|Box\s+No|Phone\s+No|Fax\s+No|Quotation|Order\s+Valid\s+from|:-)`)

	reCollapseWS = regexp.MustCompile(`\s+`)
)

// ExtractServices segments the stream by the repeating line-item header
// pattern and fills each line's long text and rate from the first matching
// block inside its span [header end, next header start). Lines are
// deduplicated by service number, first occurrence wins.
func ExtractServices(fullText string) []ServiceLine {
	headers := reItemHeader.FindAllStringSubmatchIndex(fullText, -1)
	if len(headers) == 0 {
		return nil
	}
	rates := reServiceRate.FindAllStringSubmatchIndex(fullText, -1)
	longs := reServiceLong.FindAllStringSubmatchIndex(fullText, -1)
	rateStarts := matchStarts(rates)
	longStarts := matchStarts(longs)

	var services []ServiceLine
	for i, hm := range headers {
		group := func(n int) string {
			if hm[2*n] < 0 {
				return ""
			}
			return fullText[hm[2*n]:hm[2*n+1]]
		}

		brief := group(4)
		brief = strings.TrimSpace(reBriefLongNoise.ReplaceAllString(brief, ""))
		brief = strings.TrimSpace(reBriefPipeTail.ReplaceAllString(brief, ""))

		hdrEnd := hm[1]
		nextHdr := len(fullText)
		if i+1 < len(headers) {
			nextHdr = headers[i+1][0]
		}

		var longText string
		if li := firstWithin(longStarts, hdrEnd, nextHdr); li >= 0 {
			lm := longs[li]
			longText = cleanLongText(fullText[lm[2]:lm[3]])
		}

		var rate, unit string
		if ri := firstWithin(rateStarts, hdrEnd, nextHdr); ri >= 0 {
			rm := rates[ri]
			rate = fullText[rm[2]:rm[3]]
			unit = strings.TrimSpace(fullText[rm[4]:rm[5]])
		}

		services = append(services, ServiceLine{
			SrNo:             group(1),
			ServiceLineNo:    group(2),
			ServiceNo:        group(3),
			BriefDescription: brief,
			LongText:         longText,
			Rate:             rate,
			Unit:             unit,
		})
	}

	return dedupByServiceNo(services)
}

// cleanLongText drops page-boundary boilerplate segments and join noise from
// a raw long-text span, then flattens it to a single readable line.
func cleanLongText(raw string) string {
	var good []string
	for _, seg := range strings.Split(raw, "|") {
		seg = strings.TrimSpace(seg)
		if seg == "" || len(seg) <= 10 || reLongTextNoise.MatchString(seg) {
			continue
		}
		good = append(good, seg)
	}
	return strings.TrimSpace(reCollapseWS.ReplaceAllString(strings.Join(good, " "), " "))
}

func dedupByServiceNo(services []ServiceLine) []ServiceLine {
	seen := map[string]bool{}
	out := services[:0]
	for _, s := range services {
		if seen[s.ServiceNo] {
			continue
		}
		seen[s.ServiceNo] = true
		out = append(out, s)
	}
	return out
}
