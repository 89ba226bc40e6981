package extract

import (
	"regexp"

	"github.com/coalops/workorder-extractor/internal/layout"
)

var (
	reOrderNumber   = regexp.MustCompile(`(?i):[-\s]+Test\s+Order\s+No\.?`)
	reOrderDate     = regexp.MustCompile(`(?i)Order\s+Date\s*:-?\s*(\d{2}\.\d{2}\.\d{4})`)
	reReleaseDate   = regexp.MustCompile(`(?i)Release\s+Date\s*:-?\s*(\d{2}\.\d{2}\.\d{4})`)
	reValidity      = regexp.MustCompile(`(?i)Order\s+Valid\s+from\s+(\d{2}\.\d{2}\.\d{4})\s+to\s+(\d{2}\.\d{2}\.\d{4})`)
	reVendorCode    = regexp.MustCompile(`(?i)Vendor\s+Code\s*:-?\s*(<[^>]+>|[A-Z0-9\-]+)`)
	reVendorName    = regexp.MustCompile(`(<VENDOR\s*NAME>)`)
	rePaymentTerms  = regexp.MustCompile(`(?i)Payment\s+Terms?\s*:\s*(\d+\s*[Dd]ays?)`)
	reGSTInfo       = regexp.MustCompile(`(?i)((?:All\s+)?(?:CGST|SGST|IGST)[^\n|]*@\s*\d+%[^\n|]*?Creditable)`)
	reContactEmail  = regexp.MustCompile(`(?i)E-Mail\s*:-?\s*\|?\s*(@?<[^>]+>[^\s|]*)`)
	reCeilingInr    = regexp.MustCompile(`(?i)Order\s+Ceiling\s+Value\s*:\s*([\d,]+(?:\.\d+)?)\s*INR`)
	reCeilingLoose  = regexp.MustCompile(`(?i)Order\s+Ceiling\s+Value\s*:\s*([\d,]+(?:\.\d+)?)`)
)

// ExtractHeader resolves the scalar contract metadata. Resolution precedence
// per field: page-1 two-column mapping, then key/value index, then pattern.
// Dates stay as matched DD.MM.YYYY strings; this layer recovers text, it
// does not do calendar work.
func ExtractHeader(fullText string, idx *layout.Index, twoCol map[string]string) map[string]string {
	h := map[string]string{}

	h["Order Number"] = firstNonEmpty(
		twoCol["Order Number"],
		idx.Find("order no", "contract number", "order number"),
		findGroup(reOrderNumber, fullText, 0),
	)
	h["Order Date"] = firstNonEmpty(
		twoCol["Order Date"],
		idx.Find("order date"),
		find(reOrderDate, fullText),
	)
	h["Release Date"] = firstNonEmpty(
		twoCol["Release Date"],
		idx.Find("release date"),
		find(reReleaseDate, fullText),
	)

	if m := reValidity.FindStringSubmatch(fullText); m != nil {
		h["Validity From"] = m[1]
		h["Validity To"] = m[2]
	}

	h["Vendor Code"] = firstNonEmpty(
		idx.Find("vendor code"),
		find(reVendorCode, fullText),
	)
	h["Vendor Name"] = firstNonEmpty(
		idx.Find("vendor name"),
		find(reVendorName, fullText),
	)
	h["Payment Terms"] = firstNonEmpty(
		idx.Find("payment"),
		find(rePaymentTerms, fullText),
	)

	h["GST Info"] = find(reGSTInfo, fullText)

	h["Contact Person"] = twoCol["Contact Person"]
	h["Contact Email"] = firstNonEmpty(
		twoCol["Contact Email"],
		find(reContactEmail, fullText),
	)

	h["Order Ceiling Value (INR)"] = firstNonEmpty(
		find(reCeilingInr, fullText),
		find(reCeilingLoose, fullText),
	)

	return dropEmpty(h)
}
