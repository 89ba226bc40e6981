package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coalops/workorder-extractor/internal/extract"
)

// stubCompleter returns a canned reply or error and records the prompts it
// was called with.
type stubCompleter struct {
	reply      string
	err        error
	userPrompt string
	calls      int
}

func (s *stubCompleter) Complete(_ context.Context, _, userPrompt string) (string, error) {
	s.calls++
	s.userPrompt = userPrompt
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func ruleRecord() extract.Record {
	return extract.Record{
		Header:   map[string]string{"Order Number": "ABC123"},
		Services: []extract.ServiceLine{{ServiceNo: "MS0001", Rate: "245.50"}},
		Metadata: extract.Metadata{SourceFile: "wo.pdf"},
	}
}

func TestFillGapsMergesModelReply(t *testing.T) {
	stub := &stubCompleter{reply: `{
		"header": {"Order Number": "WRONG", "Vendor Code": "V12345"},
		"pricing": {"Diesel Component %": "33"}
	}`}
	g := NewGapFiller(stub, nil)

	got := g.FillGaps(context.Background(), "Order body text here", ruleRecord())

	assert.Equal(t, 1, stub.calls)
	assert.Contains(t, stub.userPrompt, "Order body text here")
	assert.Equal(t, "ABC123", got.Header["Order Number"])
	assert.Equal(t, "V12345", got.Header["Vendor Code"])
	assert.Equal(t, "33", got.Pricing["Diesel Component %"])
}

func TestFillGapsFailsOpenOnCallError(t *testing.T) {
	stub := &stubCompleter{err: errors.New("deployment throttled")}
	g := NewGapFiller(stub, nil)

	rule := ruleRecord()
	got := g.FillGaps(context.Background(), "some text", rule)
	assert.Equal(t, rule, got)
}

func TestFillGapsFailsOpenOnGarbageReply(t *testing.T) {
	stub := &stubCompleter{reply: "I am sorry, I cannot help with that."}
	g := NewGapFiller(stub, nil)

	rule := ruleRecord()
	got := g.FillGaps(context.Background(), "some text", rule)
	assert.Equal(t, rule, got)
}

func TestSmartTruncate(t *testing.T) {
	short := strings.Repeat("a", 500)
	assert.Equal(t, short, SmartTruncate(short, truncateBudget))

	atBudget := strings.Repeat("b", truncateBudget)
	assert.Equal(t, atBudget, SmartTruncate(atBudget, truncateBudget))

	long := strings.Repeat("H", 9000) + strings.Repeat("T", 9000)
	got := SmartTruncate(long, truncateBudget)
	require.Contains(t, got, "[... middle section omitted for brevity ...]")
	assert.True(t, strings.HasPrefix(got, strings.Repeat("H", headKeep)))
	assert.True(t, strings.HasSuffix(got, strings.Repeat("T", tailKeep)))
	assert.Len(t, got, headKeep+len(elisionMarker)+tailKeep)
}

func TestSmartTruncateSmallBudget(t *testing.T) {
	// A budget below the default head+tail split must scale the slices down
	// instead of slicing past the end of the text.
	text := strings.Repeat("H", 3000) + strings.Repeat("T", 3000)
	got := SmartTruncate(text, 5000)

	require.Contains(t, got, elisionMarker)
	assert.True(t, strings.HasPrefix(got, strings.Repeat("H", 3000)))
	assert.True(t, strings.HasSuffix(got, strings.Repeat("T", 1000)))
	assert.Len(t, got, 5000+len(elisionMarker))

	assert.Equal(t, "tiny", SmartTruncate("tiny", 0))
}
