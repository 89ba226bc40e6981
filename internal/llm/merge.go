package llm

import (
	"github.com/coalops/workorder-extractor/internal/extract"
)

// MergeRecords reconciles the rule-extracted record with a parsed model
// response under the non-destructive policy: a non-empty rule value is never
// overwritten by the model.
//
//   - header, pricing: field by field, rule wins when non-empty.
//   - text_blocks: inverted. The model's cleaned prose is the base,
//     overlaid by non-empty rule values.
//   - services: wholesale. The model's list is adopted only when rules
//     found none.
//   - change_orders: wholesale. The rule list wins when non-empty.
//   - metadata: untouched.
func MergeRecords(rule extract.Record, resp Response) extract.Record {
	merged := rule

	merged.Header = mergeSection(rule.Header, resp.Header)
	merged.Pricing = mergeSection(rule.Pricing, resp.Pricing)

	if len(resp.TextBlocks) > 0 {
		merged.TextBlocks = mergeSection(rule.TextBlocks, resp.TextBlocks)
	}

	if len(rule.Services) == 0 && len(resp.Services) > 0 {
		merged.Services = resp.Services
	}
	if len(rule.ChangeOrders) == 0 && len(resp.ChangeOrders) > 0 {
		merged.ChangeOrders = resp.ChangeOrders
	}

	return merged
}

// mergeSection starts from the model's values and overwrites with every
// non-empty rule value. Keys that end up empty are dropped: absence, not an
// empty marker, means "not found".
func mergeSection(rule, model map[string]string) map[string]string {
	merged := make(map[string]string, len(rule)+len(model))
	for k, v := range model {
		if v != "" {
			merged[k] = v
		}
	}
	for k, v := range rule {
		if v != "" {
			merged[k] = v
		}
	}
	return merged
}
