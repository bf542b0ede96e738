package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFactoryPrice(t *testing.T) {
	assert.Equal(t, 7750.0, GetFactoryPrice("24x32"))
	assert.Equal(t, 9800.0, GetFactoryPrice("24x48"))
	assert.Equal(t, 0.0, GetFactoryPrice("99x99"))
	assert.Equal(t, 0.0, GetFactoryPrice(""))
}

func TestGetSalesPrice(t *testing.T) {
	assert.Equal(t, 11000.0, GetSalesPrice("24x32"))
	assert.Equal(t, 0.0, GetSalesPrice("unknown"))
}

func TestIsLShape(t *testing.T) {
	assert.True(t, IsLShape("48x48L"))
	assert.True(t, IsLShape("60x60l"))
	assert.False(t, IsLShape("24x32"))
	assert.False(t, IsLShape(""))
}

func TestLegSizeCost(t *testing.T) {
	assert.Equal(t, 1500.0, LegSizeCost("2x2"))
	assert.Equal(t, 3000.0, LegSizeCost("3x1.5"))
	assert.Equal(t, 0.0, LegSizeCost("1.5x1.5"))
	assert.Equal(t, 0.0, LegSizeCost(""))
}

func TestFrontPanelCost(t *testing.T) {
	assert.Equal(t, 0.0, FrontPanelCost("", 0))
	assert.Equal(t, 0.0, FrontPanelCost("12", 0))
	assert.Equal(t, 0.0, FrontPanelCost("", 4))
	assert.Equal(t, 2000.0, FrontPanelCost("12", 4))
	assert.Equal(t, 750.0, FrontPanelCost("16", 1))
	// Unknown panel size has no per-foot price.
	assert.Equal(t, 0.0, FrontPanelCost("8", 4))
}

func TestTableAdditionalCosts(t *testing.T) {
	assert.Equal(t, 1500.0, TableAdditionalCosts("2x2", "", 0))
	assert.Equal(t, 5000.0, TableAdditionalCosts("3x1.5", "12", 4))
	assert.Equal(t, 0.0, TableAdditionalCosts("", "", 0))
}

func TestOrderProfit(t *testing.T) {
	// (11000 - 7750) * 2
	assert.Equal(t, 6500.0, OrderProfit(11000, "24x32", 2))
	// Selling below factory price yields negative profit.
	assert.Equal(t, -750.0, OrderProfit(7000, "24x32", 1))
	// Unknown size prices at factory cost 0, so the whole sale counts
	// as profit (documented fallback).
	assert.Equal(t, 5000.0, OrderProfit(5000, "nope", 1))
	assert.Equal(t, 0.0, OrderProfit(11000, "24x32", 0))
}

func TestPriceTableConsistency(t *testing.T) {
	for _, size := range Sizes() {
		assert.Greater(t, GetSalesPrice(size), 0.0, size)
		assert.Greater(t, GetFactoryPrice(size), 0.0, size)
		assert.Greater(t, GetSalesPrice(size), GetFactoryPrice(size), size)
	}
}
