package llm

import (
	"log/slog"

	"github.com/coalops/workorder-extractor/internal/extract"
)

// Mandatory fields: if any is absent after rule extraction, the record is
// materially incomplete and the model call is worth its cost.
var (
	MandatoryHeaderFields = []string{
		"Order Number", "Order Date", "Validity From", "Validity To",
		"Vendor Code", "Payment Terms",
	}
	MandatoryPricingFields = []string{
		"Diesel Component %", "Base HSD (INR/L)", "Gross Price (INR)",
	}
)

// NeedsFallback reports whether rule extraction left gaps that justify the
// language-model call: a missing mandatory header or pricing field, or an
// empty services section. Minor gaps elsewhere never trigger it.
func NeedsFallback(rec extract.Record, logger *slog.Logger) bool {
	if logger == nil {
		logger = slog.Default()
	}

	var missingHeader, missingPricing []string
	for _, f := range MandatoryHeaderFields {
		if rec.Header[f] == "" {
			missingHeader = append(missingHeader, f)
		}
	}
	for _, f := range MandatoryPricingFields {
		if rec.Pricing[f] == "" {
			missingPricing = append(missingPricing, f)
		}
	}

	if len(missingHeader) > 0 || len(missingPricing) > 0 {
		logger.Info("llm.fallback.triggered",
			"missing_header", missingHeader,
			"missing_pricing", missingPricing,
		)
		return true
	}
	if len(rec.Services) == 0 {
		logger.Info("llm.fallback.triggered", "reason", "no service items extracted")
		return true
	}
	return false
}
