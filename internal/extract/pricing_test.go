package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const pricingFixture = "Diesel component in PVC : 33% | " +
	"Base HSD reference : INR 89.50 / L as on 01.04.2024 (Ref : IOCL Raipur as on 01.04.2024) | " +
	"Gross Price 245.50 INR | Total Price 245.50 / MT INR | Total Price 58.00 / MT INR | " +
	"Order Ceiling Value : 4,50,00,000 INR | TOTAL ORDER VALUE PAYABLE IN INR : 4,50,00,000 INR"

func TestExtractPricing(t *testing.T) {
	p := ExtractPricing(pricingFixture)

	assert.Equal(t, "33", p["Diesel Component %"])
	assert.Equal(t, "89.50", p["Base HSD (INR/L)"])
	assert.Equal(t, "01.04.2024", p["HSD Reference Date"])
	assert.Equal(t, "IOCL Raipur", p["HSD Source"])
	assert.Equal(t, "245.50", p["Gross Price (INR)"])
	assert.Equal(t, "4,50,00,000", p["Order Ceiling Value (INR)"])
	assert.Equal(t, "4,50,00,000", p["Total Order Value (INR)"])
}

func TestExtractPricingItemNumbering(t *testing.T) {
	p := ExtractPricing(pricingFixture)

	assert.Equal(t, "245.50", p["Item 1 Rate"])
	assert.Equal(t, "MT", p["Item 1 Unit"])
	assert.Equal(t, "58.00", p["Item 2 Rate"])
	assert.Equal(t, "MT", p["Item 2 Unit"])
	assert.NotContains(t, p, "Item 3 Rate")
}

func TestExtractPricingDieselWithoutPVC(t *testing.T) {
	p := ExtractPricing("Diesel component : 40%")
	assert.Equal(t, "40", p["Diesel Component %"])
}

func TestExtractPricingDropsEmpty(t *testing.T) {
	p := ExtractPricing("no pricing facts here")
	assert.Empty(t, p)
}
