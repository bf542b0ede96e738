package pricing

import "strings"

// PriceEntry holds the customer-facing sales price and the internal
// factory (manufacturing) price for one table size.
type PriceEntry struct {
	SalesPrice   float64
	FactoryPrice float64
}

// priceTable maps a table size key to its prices. Sizes ending in "L"
// denote L-shaped tables and require an orientation on the line item.
// Maintained by hand; keep in sync with the production price list.
var priceTable = map[string]PriceEntry{
	"18x24":  {5500, 3850},
	"18x30":  {6000, 4200},
	"18x36":  {6500, 4550},
	"18x48":  {7500, 5250},
	"24x24":  {8500, 5950},
	"24x30":  {10000, 7000},
	"24x32":  {11000, 7750},
	"24x36":  {12000, 8400},
	"24x42":  {13000, 9100},
	"24x48":  {14000, 9800},
	"24x54":  {15000, 10500},
	"24x60":  {16000, 11200},
	"24x72":  {18000, 12600},
	"30x30":  {12500, 8750},
	"30x36":  {13500, 9450},
	"30x48":  {15500, 10850},
	"30x60":  {17500, 12250},
	"30x72":  {19500, 13650},
	"36x36":  {15000, 10500},
	"36x48":  {17000, 11900},
	"36x60":  {19000, 13300},
	"36x72":  {21000, 14700},
	"36x84":  {23500, 16450},
	"36x96":  {26000, 18200},
	"42x48":  {19000, 13300},
	"42x60":  {21500, 15050},
	"42x72":  {24000, 16800},
	"48x48":  {21000, 14700},
	"48x60":  {23500, 16450},
	"48x72":  {26000, 18200},
	"48x84":  {28500, 19950},
	"48x96":  {31000, 21700},
	"60x60":  {27000, 18900},
	"60x72":  {30000, 21000},
	"48x48L": {24000, 16800},
	"54x54L": {26500, 18550},
	"60x60L": {29000, 20300},
	"60x72L": {31500, 22050},
	"72x72L": {35000, 24500},
	"72x84L": {38000, 26600},
}

// GetFactoryPrice returns the factory price for a size, or 0 when the
// size is not in the table. The zero fallback is deliberate: a pricing
// miss must never block order handling, it only skews profit reporting.
func GetFactoryPrice(size string) float64 {
	return priceTable[size].FactoryPrice
}

// GetSalesPrice returns the sales price for a size, or 0 when unknown.
func GetSalesPrice(size string) float64 {
	return priceTable[size].SalesPrice
}

// IsKnownSize reports whether the size exists in the price table.
func IsKnownSize(size string) bool {
	_, ok := priceTable[size]
	return ok
}

// IsLShape reports whether the size denotes an L-shaped table.
func IsLShape(size string) bool {
	return strings.HasSuffix(strings.ToUpper(strings.TrimSpace(size)), "L")
}

// Sizes returns all size keys in the table. Order is not defined.
func Sizes() []string {
	keys := make([]string, 0, len(priceTable))
	for k := range priceTable {
		keys = append(keys, k)
	}
	return keys
}
