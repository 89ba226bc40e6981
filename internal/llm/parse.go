package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/coalops/workorder-extractor/internal/extract"
)

// Response is the typed shape of a successfully parsed model reply. Section
// keys mirror the extraction prompt's JSON structure.
type Response struct {
	Header       map[string]string     `json:"header"`
	Services     []extract.ServiceLine `json:"services"`
	Pricing      map[string]string     `json:"pricing"`
	TextBlocks   map[string]string     `json:"text_blocks"`
	ChangeOrders []extract.ChangeOrder `json:"change_orders"`
}

var (
	reFenceOpen  = regexp.MustCompile("(?m)^```(?:json)?\\s*")
	reFenceClose = regexp.MustCompile("(?m)```\\s*$")
)

// ParseResponse parses JSON out of a raw model reply defensively: markdown
// fences are stripped, a failed direct parse retries on the first-{ to
// last-} substring, scalar section values are coerced to strings, and the
// result is validated against the extraction schema. Any failure means the
// whole call is treated as a failure (the caller fails open).
func ParseResponse(raw string) (Response, error) {
	body := stripFences(raw)

	m, err := parseObject(body)
	if err != nil {
		return Response{}, err
	}
	sanitizeSections(m)

	b, err := json.Marshal(m)
	if err != nil {
		return Response{}, fmt.Errorf("re-marshal response: %w", err)
	}
	if err := ValidateJSONAgainstSchema(BuildWorkOrderJSONSchema(), b); err != nil {
		return Response{}, err
	}

	var resp Response
	if err := json.Unmarshal(b, &resp); err != nil {
		return Response{}, fmt.Errorf("unmarshal response: %w", err)
	}
	return resp, nil
}

func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = reFenceOpen.ReplaceAllString(raw, "")
	raw = reFenceClose.ReplaceAllString(raw, "")
	return strings.TrimSpace(raw)
}

func parseObject(body string) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal([]byte(body), &m); err == nil {
		return m, nil
	}
	start := strings.Index(body, "{")
	end := strings.LastIndex(body, "}")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("response contained no JSON object")
	}
	if err := json.Unmarshal([]byte(body[start:end+1]), &m); err != nil {
		return nil, fmt.Errorf("parse response json: %w", err)
	}
	return m, nil
}

// sanitizeSections coerces scalar section values to strings and drops what
// cannot be coerced, so a model that answers with numbers instead of strings
// does not sink an otherwise usable reply. Unknown top-level keys pass
// through; the schema ignores them.
func sanitizeSections(m map[string]any) {
	for _, key := range []string{"header", "pricing", "text_blocks"} {
		if section, ok := m[key].(map[string]any); ok {
			coerceStringMap(section)
		} else {
			delete(m, key)
		}
	}
	for _, key := range []string{"services", "change_orders"} {
		list, ok := m[key].([]any)
		if !ok {
			delete(m, key)
			continue
		}
		kept := list[:0]
		for _, item := range list {
			if obj, ok := item.(map[string]any); ok {
				coerceStringMap(obj)
				kept = append(kept, obj)
			}
		}
		m[key] = kept
	}
}

func coerceStringMap(section map[string]any) {
	for k, v := range section {
		switch t := v.(type) {
		case string:
			// already fine
		case float64:
			section[k] = strconv.FormatFloat(t, 'f', -1, 64)
		case bool:
			section[k] = strconv.FormatBool(t)
		default:
			delete(section, k)
		}
	}
}
