package billing

import (
	"fmt"

	"github.com/tablefactory/order-app/models"
	"github.com/tablefactory/order-app/pricing"
)

const (
	// PageSize is the maximum number of rows on one printed bill page.
	PageSize = 10
	// ExtraFeePerUnit is the flat charge billed per unit for wire-hole
	// and front-panel work.
	ExtraFeePerUnit = 1000
)

// BuildRows flattens a list of orders into printable bill rows. Table
// rows are priced at the FACTORY rate, not the sales price: bills are
// internal transport invoices. Each item carrying an extra-fee
// customization additionally produces a flat-rate extra-fee row.
func BuildRows(orders []models.Order) []models.BillRow {
	rows := make([]models.BillRow, 0, len(orders))
	for _, order := range orders {
		for _, item := range order.Items {
			rate := models.BillRow{
				Quantity: item.Quantity,
				Item:     fmt.Sprintf("Table %s", item.Size),
				OrderNo:  order.OrderNumber,
				City:     order.City,
				Rate:     pricing.GetFactoryPrice(item.Size),
			}
			rate.Amount = rate.Rate * float64(rate.Quantity)
			rows = append(rows, rate)

			if item.HasExtraFee() {
				extra := models.BillRow{
					Quantity:   item.Quantity,
					Item:       extraFeeLabel(item),
					OrderNo:    order.OrderNumber,
					City:       order.City,
					Rate:       ExtraFeePerUnit,
					IsExtraFee: true,
				}
				extra.Amount = extra.Rate * float64(extra.Quantity)
				rows = append(rows, extra)
			}
		}
	}
	return rows
}

func extraFeeLabel(item models.TableItem) string {
	if item.FrontPanelSize != "" {
		return fmt.Sprintf("Front panel %s\"", item.FrontPanelSize)
	}
	return fmt.Sprintf("Wire hole (%s)", item.WireHole)
}

// Paginate splits rows into pages of at most pageSize rows. An empty row
// set yields a single empty page, never zero pages.
func Paginate(rows []models.BillRow, pageSize int) [][]models.BillRow {
	if pageSize < 1 {
		pageSize = PageSize
	}
	if len(rows) == 0 {
		return [][]models.BillRow{{}}
	}
	var pages [][]models.BillRow
	for start := 0; start < len(rows); start += pageSize {
		end := start + pageSize
		if end > len(rows) {
			end = len(rows)
		}
		pages = append(pages, rows[start:end])
	}
	return pages
}

// Totals holds the sums computed over the full, unpaginated row set.
// Amount includes extra-fee rows; Quantity does not.
type Totals struct {
	Amount   float64 `json:"total_amount"`
	Quantity int     `json:"total_quantity"`
}

// Sum computes bill totals over all rows, independent of pagination.
func Sum(rows []models.BillRow) Totals {
	var t Totals
	for _, row := range rows {
		t.Amount += row.Amount
		if !row.IsExtraFee {
			t.Quantity += row.Quantity
		}
	}
	return t
}

// Reconcile applies edit semantics to a changed row: normally the amount
// is recomputed as rate * quantity; when only the amount was edited and
// the quantity is positive, the rate is back-solved instead.
func Reconcile(old, edited models.BillRow) models.BillRow {
	if edited.Quantity > 0 && edited.Amount != old.Amount &&
		edited.Rate == old.Rate && edited.Quantity == old.Quantity {
		edited.Rate = edited.Amount / float64(edited.Quantity)
		return edited
	}
	edited.Amount = edited.Rate * float64(edited.Quantity)
	return edited
}

// ReconcileRows pairs edited rows with their stored counterparts by
// position. Rows beyond the stored set are treated as new.
func ReconcileRows(stored, edited []models.BillRow) []models.BillRow {
	out := make([]models.BillRow, len(edited))
	for i, row := range edited {
		if i < len(stored) {
			out[i] = Reconcile(stored[i], row)
			continue
		}
		row.Amount = row.Rate * float64(row.Quantity)
		out[i] = row
	}
	return out
}
