package extract

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestExtractTextBlocksScopeAndPayment(t *testing.T) {
	text := "Header text : Work order for coal movement | " +
		"RAW COAL transportation from pithead to railway siding | including mechanical loading | " +
		"Diesel component in PVC : 33% | " +
		"Payment Term : Payment shall be released within 30 days of certified bill submission | " +
		"Order Ceiling Value : 4,50,00,000 INR"

	blocks := ExtractTextBlocks(text)

	assert.Equal(t,
		"RAW COAL transportation from pithead to railway siding including mechanical loading",
		blocks["Scope of Work"])
	assert.Equal(t,
		"Payment Term : Payment shall be released within 30 days of certified bill submission",
		blocks["Payment Terms Detail"])
}

func TestExtractExitClausePrimary(t *testing.T) {
	text := "9.0 Temporary Suspension and Cancellation or Termination of Contract " +
		"The company reserves the right to suspend or cancel the work at any stage | " +
		"Force Majeure conditions apply"
	got := extractExitClause(text)
	assert.True(t, strings.HasPrefix(got, "9.0 Temporary Suspension and Cancellation or Termination of Contract"))
	assert.Contains(t, got, "suspend or cancel the work")
	assert.NotContains(t, got, "Force Majeure")
}

func TestExtractExitClauseLibertyFallback(t *testing.T) {
	text := "The company shall have liberty to terminate the contract by giving 30 days notice to the contractor."
	assert.Equal(t,
		"liberty to terminate the contract by giving 30 days notice to the contractor.",
		extractExitClause(text))
}

func TestExtractExitClauseSentinel(t *testing.T) {
	blocks := ExtractTextBlocks("no contractual clauses in this text")
	assert.Equal(t, ExitClauseNotFound, blocks["Exit Clause"])
}

func TestExtractSafetyNormsAnchored(t *testing.T) {
	text := "preamble | COMPLIANCE TO SAFETY, ENVIRONMENTAL & STATUTORY NORMS " +
		"All DGMS circulars shall be strictly followed at site | trailing section heading"
	got := extractSafetyNorms(text)
	assert.True(t, strings.HasPrefix(got, "COMPLIANCE TO SAFETY"))
	assert.Contains(t, got, "DGMS circulars")
	// The block snaps back to the last pipe boundary.
	assert.NotContains(t, got, "trailing section heading")
}

func TestExtractSafetyNormsSentenceFallback(t *testing.T) {
	text := "All transport shall follow DGMS guidelines. " +
		"Contractor ensures safety norms at site. Unrelated sentence here."
	got := extractSafetyNorms(text)
	assert.Contains(t, got, "DGMS guidelines.")
	assert.Contains(t, got, "safety norms at site.")
	assert.NotContains(t, got, "Unrelated")
}

func TestTextBlockCaps(t *testing.T) {
	long := strings.Repeat("x", 5000)
	assert.Len(t, capLen(long, scopeOfWorkCap), scopeOfWorkCap)
	assert.Equal(t, "short", capLen("short", scopeOfWorkCap))
}

func TestCapLenKeepsRunesWhole(t *testing.T) {
	// Rupee amounts put multibyte runes in text blocks; a cap landing inside
	// one must snap back to the rune boundary.
	s := strings.Repeat("₹", 10) // 3 bytes each
	got := capLen(s, 4)
	assert.Equal(t, "₹", got)
	assert.True(t, utf8.ValidString(got))

	exact := capLen(s, 6)
	assert.Equal(t, "₹₹", exact)
}

func TestFlattenBlock(t *testing.T) {
	assert.Equal(t, "a b c d", flattenBlock(" a | b |  c   d "))
}
