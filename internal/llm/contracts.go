// Package llm implements the language-model gap-fill stage: deciding when
// rule extraction left a materially incomplete record, calling the model
// with a fixed extraction schema, parsing its response defensively and
// merging the result without ever downgrading a confident rule value.
package llm

import "context"

// Completer is the language-model provider the gap filler depends on. The
// provider is treated as unreliable: it may fail, return malformed JSON, or
// return well-formed JSON that does not match the schema.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
