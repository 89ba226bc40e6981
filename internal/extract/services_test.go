package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const servicesFixture = "Item Overview | " +
	"1 10 MS0001 TRANSPORTATION OF RAW COAL FROM PITHEAD TO RAILWAY SIDING | " +
	"Service Long Text : | Transportation of raw coal by tippers from pithead stock to railway siding including loading at both ends | :- | Vendor Code | " +
	"Contract Item Service Conditions | Total Price 245.50 / MT INR | " +
	"2 20 MS0002 LOADING OF CRUSHED COAL INTO RAILWAY WAGONS | " +
	"Total Price 58.00 / MT INR | " +
	"1 10 MS0001 TRANSPORTATION OF RAW COAL REPEATED ON CONTINUATION SHEET"

func TestExtractServices(t *testing.T) {
	services := ExtractServices(servicesFixture)
	require.Len(t, services, 2)

	first := services[0]
	assert.Equal(t, "1", first.SrNo)
	assert.Equal(t, "10", first.ServiceLineNo)
	assert.Equal(t, "MS0001", first.ServiceNo)
	assert.Equal(t, "TRANSPORTATION OF RAW COAL FROM PITHEAD TO RAILWAY SIDING", first.BriefDescription)
	assert.Equal(t, "Transportation of raw coal by tippers from pithead stock to railway siding including loading at both ends", first.LongText)
	assert.Equal(t, "245.50", first.Rate)
	assert.Equal(t, "MT", first.Unit)

	second := services[1]
	assert.Equal(t, "MS0002", second.ServiceNo)
	assert.Equal(t, "LOADING OF CRUSHED COAL INTO RAILWAY WAGONS", second.BriefDescription)
	assert.Equal(t, "", second.LongText)
	assert.Equal(t, "58.00", second.Rate)
}

func TestExtractServicesDedupFirstWins(t *testing.T) {
	services := ExtractServices(servicesFixture)
	seen := map[string]int{}
	for _, s := range services {
		seen[s.ServiceNo]++
	}
	for no, count := range seen {
		assert.Equal(t, 1, count, "service number %s must appear once", no)
	}
	// The continuation-sheet repeat of MS0001 must not replace the original.
	assert.Contains(t, services[0].BriefDescription, "FROM PITHEAD")
}

func TestExtractServicesWindowAssociation(t *testing.T) {
	// The only rate sits after the second header, so the first line must not
	// claim it.
	text := "1 10 MS0001 TRANSPORTATION OF COAL FROM MINE | " +
		"2 20 MS0002 HANDLING OF COAL AT SIDING | Total Price 99.00 / MT INR"
	services := ExtractServices(text)
	require.Len(t, services, 2)
	assert.Equal(t, "", services[0].Rate)
	assert.Equal(t, "99.00", services[1].Rate)
}

func TestExtractServicesNone(t *testing.T) {
	assert.Nil(t, ExtractServices("no line items in this text"))
}

func TestCleanLongText(t *testing.T) {
	raw := " Transportation of raw coal by tippers  | :- | Vendor Code | <VENDOR | short | including weighment at electronic weighbridge "
	got := cleanLongText(raw)
	assert.Equal(t, "Transportation of raw coal by tippers including weighment at electronic weighbridge", got)
}
