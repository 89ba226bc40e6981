package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const changeOrdersFixture = "original order body text | " +
	"NOTE : C/O DATED 15.01.2025 ==== Order ceiling increased from 1.2 CR to 1.5 CR due to additional lifting scope | Delivery terms unchanged | " +
	"NOTE : C/O DATED 20.03.2025 ==== Validity extended till 31-03-2026 for operational continuity | Payment terms unchanged | " +
	"NOTE : C/O DATED 05.05.2025 ==== Transportation route re-sequenced per annexure B | Payment terms unchanged"

func TestExtractChangeOrders(t *testing.T) {
	orders := ExtractChangeOrders(changeOrdersFixture)
	require.Len(t, orders, 3)

	ceiling := orders[0]
	assert.Equal(t, "15.01.2025", ceiling.Date)
	assert.Equal(t, AmendmentCeilingChange, ceiling.AmendmentType)
	assert.Equal(t, "1.5 CR", ceiling.CeilingChange)
	assert.Contains(t, ceiling.Description, "ceiling increased from 1.2 CR to 1.5 CR")
	assert.Equal(t, "", ceiling.NewValidity)

	validity := orders[1]
	assert.Equal(t, "20.03.2025", validity.Date)
	assert.Equal(t, AmendmentValidityExtension, validity.AmendmentType)
	assert.Equal(t, "31-03-2026", validity.NewValidity)
	assert.Equal(t, "", validity.CeilingChange)

	generic := orders[2]
	assert.Equal(t, "05.05.2025", generic.Date)
	assert.Equal(t, AmendmentGeneric, generic.AmendmentType)
}

func TestExtractChangeOrdersSkipsDatelessSegment(t *testing.T) {
	text := "body | NOTE : C/O DATED pending confirmation ==== some amendment text"
	assert.Empty(t, ExtractChangeOrders(text))
}

func TestExtractChangeOrdersNone(t *testing.T) {
	assert.Empty(t, ExtractChangeOrders("a plain order with no amendments"))
}

func TestClassifyAmendmentOrder(t *testing.T) {
	// "Validity extended" wins even when ceiling keywords are also present.
	desc := "Validity extended till 31-03-2026 and ceiling value revised"
	assert.Equal(t, AmendmentValidityExtension, classifyAmendment(desc))
	assert.Equal(t, AmendmentCeilingChange, classifyAmendment("ceiling revised upward"))
	assert.Equal(t, AmendmentGeneric, classifyAmendment("route changed per annexure"))
}

func TestFindCeilingChangeLadder(t *testing.T) {
	assert.Equal(t, "1.5 CR", findCeilingChange("increased from 1.2 CR to 1.5 CR"))
	assert.Equal(t, "50 Lakh", findCeilingChange("enhanced by Rs. 50 Lakh"))
	assert.Equal(t, "2.75 Cr", findCeilingChange("revised ceiling of 2.75 Cr approved"))
	assert.Equal(t, "", findCeilingChange("no amount stated"))
}
