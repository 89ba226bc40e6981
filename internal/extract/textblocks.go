package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Character caps per block. Safety norms is sliced wide then snapped back to
// the last pipe boundary before the cap to avoid cutting mid-sentence.
const (
	scopeOfWorkCap   = 2000
	safetySliceCap   = 3200
	safetySnapCap    = 3000
	exitClauseCap    = 2000
	paymentDetailCap = 1500
)

// ExitClauseNotFound is the one explicit negative marker in the record: the
// exit clause key is always emitted, with this sentinel when every pattern
// fails.
const ExitClauseNotFound = "Not found"

var (
	reScopeOfWork = regexp.MustCompile(`(?is)Header\s+text\s*:.*?\|\s*(RAW\s+COAL.*?)(?:\|\s*(?:Diesel\s+component|Base\s+HSD))`)

	reSafetyAnchor   = regexp.MustCompile(`(?i)COMPLIANCE\s*TO\s+SAFETY[,\s&]+(?:ENVIRONMENTAL|STATUATORY|STATUTORY)`)
	reSafetySentence = regexp.MustCompile(`(?i)[^.|]*(?:DGMS|statutory\s+(?:norm|compliance)|safety\s+norms?)[^.|]*[.|]`)

	reExitPrimary  = regexp.MustCompile(`(?is)((?:9\.0\s+)?(?:Temporary\s+Suspension\s+and\s+)?Cancellation\s+or\s+Termination\s+of\s+Contract.*?)(?:\|\s*(?:10\.|Force\s+Majeure|Payment|NOTE\s*:))`)
	reExitFallback = regexp.MustCompile(`(?is)(Exit\s+clause.*?)(?:\|\s*(?:Payment|COMPLIANCE|NOTE\s*:))`)
	reExitLiberty  = regexp.MustCompile(`(?is)(liberty\s+to\s+terminate[^.]+\d+\s+days[^.]+\.)`)

	rePaymentDetail = regexp.MustCompile(`(?is)(Payment\s+Term\s*:.*?)(?:\|\s*(?:Order\s+Ceiling|TOTAL\s+ORDER|Collection|SPECIAL))`)

	rePipeSep = regexp.MustCompile(`\s*\|\s*`)
)

// ExtractTextBlocks locates the four free-text contractual clauses. Each is
// anchored by a start phrase and ended by the next section's start phrase or
// a hard character cap. Blocks are flattened for human reading: pipes become
// spaces and whitespace collapses.
func ExtractTextBlocks(fullText string) map[string]string {
	blocks := map[string]string{}

	if s := find(reScopeOfWork, fullText); s != "" {
		blocks["Scope of Work"] = capLen(flattenBlock(s), scopeOfWorkCap)
	}

	blocks["Safety Norms"] = extractSafetyNorms(fullText)
	blocks["Exit Clause"] = extractExitClause(fullText)

	if s := find(rePaymentDetail, fullText); s != "" {
		blocks["Payment Terms Detail"] = capLen(flattenBlock(s), paymentDetailCap)
	}

	return dropEmpty(blocks)
}

func extractSafetyNorms(fullText string) string {
	if loc := reSafetyAnchor.FindStringIndex(fullText); loc != nil {
		raw := fullText[loc[0]:min(loc[0]+safetySliceCap, len(fullText))]
		if cut := strings.LastIndex(raw[:min(safetySnapCap, len(raw))], "|"); cut > 0 {
			raw = raw[:cut]
		} else {
			raw = raw[:min(safetySnapCap, len(raw))]
		}
		return flattenBlock(raw)
	}
	// No dedicated section: harvest up to ten sentences that mention safety
	// or statutory compliance.
	sents := reSafetySentence.FindAllString(fullText, 10)
	if len(sents) == 0 {
		return ""
	}
	for i, s := range sents {
		sents[i] = strings.TrimSpace(s)
	}
	return strings.Join(sents, " ")
}

func extractExitClause(fullText string) string {
	s := find(reExitPrimary, fullText)
	if s == "" {
		s = find(reExitFallback, fullText)
	}
	if s != "" {
		return capLen(flattenBlock(s), exitClauseCap)
	}
	if s = find(reExitLiberty, fullText); s != "" {
		return s
	}
	return ExitClauseNotFound
}

// flattenBlock converts a pipe-delimited span into readable prose.
func flattenBlock(s string) string {
	s = rePipeSep.ReplaceAllString(s, " ")
	s = reCollapseWS.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// capLen truncates s to at most n bytes without splitting a multibyte rune
// at the boundary.
func capLen(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
