package pdftext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveTwoColumns(t *testing.T) {
	lines := []string{
		"WORK ORDER",
		"Order No.",
		"Order Date",
		":- ABC123",
		":- 26.09.2024",
		"some trailing text",
	}
	got := ResolveTwoColumns(lines, nil)
	assert.Equal(t, map[string]string{
		"Order Number": "ABC123",
		"Order Date":   "26.09.2024",
	}, got)
}

func TestResolveTwoColumnsLabelMapping(t *testing.T) {
	lines := []string{
		"E-Mail",
		"Contact Person",
		":- someone@example.com",
		":- A B SHARMA",
	}
	got := ResolveTwoColumns(lines, nil)
	assert.Equal(t, "someone@example.com", got["Contact Email"])
	assert.Equal(t, "A B SHARMA", got["Contact Person"])
}

func TestResolveTwoColumnsLengthMismatch(t *testing.T) {
	// Three labels but two values: only the overlapping prefix is paired.
	lines := []string{
		"Order No.",
		"Order Date",
		"Release Date",
		":- ABC123",
		":- 26.09.2024",
	}
	got := ResolveTwoColumns(lines, nil)
	assert.Equal(t, "ABC123", got["Order Number"])
	assert.Equal(t, "26.09.2024", got["Order Date"])
	assert.NotContains(t, got, "Release Date")
}

func TestResolveTwoColumnsSkipsEmptyValues(t *testing.T) {
	lines := []string{
		"Order No.",
		"Order Date",
		":-",
		":- 26.09.2024",
	}
	got := ResolveTwoColumns(lines, nil)
	assert.NotContains(t, got, "Order Number")
	assert.Equal(t, "26.09.2024", got["Order Date"])
}

func TestResolveTwoColumnsMultipleRuns(t *testing.T) {
	lines := []string{
		"Order No.",
		":- ABC123",
		"unrelated line",
		"E-Mail",
		":- ops@example.com",
	}
	got := ResolveTwoColumns(lines, nil)
	assert.Equal(t, "ABC123", got["Order Number"])
	assert.Equal(t, "ops@example.com", got["Contact Email"])
}

func TestResolveTwoColumnsMergedRows(t *testing.T) {
	// Row-grouped extraction fuses a label with the value sharing its visual
	// row; each fused line must still resolve.
	lines := []string{
		"WORK ORDER",
		"Order No.:- ABC123",
		"Order Date :- 26.09.2024",
		"E-Mail:- someone@example.com",
	}
	got := ResolveTwoColumns(lines, nil)
	assert.Equal(t, map[string]string{
		"Order Number":  "ABC123",
		"Order Date":    "26.09.2024",
		"Contact Email": "someone@example.com",
	}, got)
}

func TestResolveTwoColumnsMixedMergedAndColumnMajor(t *testing.T) {
	lines := []string{
		"Order No.:- ABC123",
		"Order Date",
		"Release Date",
		":- 26.09.2024",
		":- 27.09.2024",
	}
	got := ResolveTwoColumns(lines, nil)
	assert.Equal(t, "ABC123", got["Order Number"])
	assert.Equal(t, "26.09.2024", got["Order Date"])
	assert.Equal(t, "27.09.2024", got["Release Date"])
}

func TestResolveTwoColumnsNoLabels(t *testing.T) {
	got := ResolveTwoColumns([]string{"just", "text", ":- orphan value"}, nil)
	assert.Empty(t, got)
}
