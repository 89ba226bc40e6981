package extract

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	reDieselPct  = regexp.MustCompile(`(?i)Diesel\s+component\s+(?:in\s+PVC\s*)?:\s*(\d+)\s*%`)
	reBaseHSD    = regexp.MustCompile(`(?is)Base\s+HSD\s+reference\s*:\s*INR\s*([\d.]+)\s*/\s*L.*?(\d{2}\.\d{2}\.\d{4})`)
	reHSDSource  = regexp.MustCompile(`(?i)Ref\s*:\s*([^;|()]+?)\s*(?:as\s+on|;|\))`)
	reGrossPrice = regexp.MustCompile(`(?i)Gross\s+Price\s+([\d,]+\.?\d*)\s*INR`)
	reTotalOrder = regexp.MustCompile(`(?i)TOTAL\s+ORDER\s+VALUE\s+PAYABLE[^:]*:\s*([\d,]+(?:\.\d+)?)\s*INR`)
)

// ExtractPricing re-derives the pricing facts independently of the services
// section: the same underlying numbers read through separately tuned
// patterns, because the two sections serve different presentation
// granularities. Per-item rates are numbered sequentially as matched.
func ExtractPricing(fullText string) map[string]string {
	p := map[string]string{}

	p["Diesel Component %"] = find(reDieselPct, fullText)

	if m := reBaseHSD.FindStringSubmatch(fullText); m != nil {
		p["Base HSD (INR/L)"] = m[1]
		p["HSD Reference Date"] = m[2]
	}

	p["HSD Source"] = find(reHSDSource, fullText)
	p["Gross Price (INR)"] = find(reGrossPrice, fullText)

	for i, m := range reServiceRate.FindAllStringSubmatch(fullText, -1) {
		p[fmt.Sprintf("Item %d Rate", i+1)] = m[1]
		p[fmt.Sprintf("Item %d Unit", i+1)] = strings.TrimSpace(m[2])
	}

	p["Order Ceiling Value (INR)"] = firstNonEmpty(
		find(reCeilingInr, fullText),
		find(reCeilingLoose, fullText),
	)
	p["Total Order Value (INR)"] = find(reTotalOrder, fullText)

	return dropEmpty(p)
}
