package pricing

// Per-unit surcharges for the leg size customization.
var legSizeCost = map[string]float64{
	"2x2":   1500,
	"3x1.5": 3000,
}

// Front panel price per foot, keyed by panel size (inches).
var frontPanelPerFoot = map[string]float64{
	"6":  250,
	"12": 500,
	"16": 750,
	"24": 1000,
}

// LegSizeCost returns the flat per-unit surcharge for a leg size.
// Unlisted leg sizes cost nothing extra.
func LegSizeCost(legSize string) float64 {
	return legSizeCost[legSize]
}

// FrontPanelCost returns the per-unit front panel surcharge:
// pricePerFoot[size] * length. Zero when either attribute is absent.
func FrontPanelCost(panelSize string, panelLength float64) float64 {
	if panelSize == "" || panelLength <= 0 {
		return 0
	}
	return frontPanelPerFoot[panelSize] * panelLength
}

// TableAdditionalCosts sums the per-unit customization surcharges for
// one table. Callers multiply by quantity.
func TableAdditionalCosts(legSize, panelSize string, panelLength float64) float64 {
	return LegSizeCost(legSize) + FrontPanelCost(panelSize, panelLength)
}

// OrderProfit computes (sales price - factory price) * quantity for one
// line item. Negative profit is possible and intentionally not flagged.
func OrderProfit(salesPrice float64, size string, quantity int) float64 {
	return (salesPrice - GetFactoryPrice(size)) * float64(quantity)
}
