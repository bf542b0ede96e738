package billing

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/tablefactory/order-app/models"
	"github.com/tablefactory/order-app/utils"
)

var columnWidths = []float64{15, 60, 30, 30, 25, 30}

var columnTitles = []string{"Qty", "Item", "Order No", "City", "Rate", "Amount"}

// RenderPDF renders a saved bill into an A4 PDF, one page per group of
// PageSize rows, with the grand totals on the last page.
func RenderPDF(bill models.Bill) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Bill %s", bill.BillNumber), false)

	pages := Paginate(bill.Rows, PageSize)
	totals := Sum(bill.Rows)

	for pageNo, page := range pages {
		pdf.AddPage()
		renderHeader(pdf, bill, pageNo+1, len(pages))
		renderRows(pdf, page)
		if pageNo == len(pages)-1 {
			renderTotals(pdf, totals)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderHeader(pdf *fpdf.Fpdf, bill models.Bill, page, pageCount int) {
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "DELIVERY BILL", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(95, 6, fmt.Sprintf("Bill No: %s", bill.BillNumber), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, fmt.Sprintf("Date: %s", bill.BillDate.Format("02 Jan 2006")), "", 1, "R", false, 0, "")
	pdf.CellFormat(95, 6, fmt.Sprintf("Bill To: %s", bill.BillTo), "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, fmt.Sprintf("Page %d of %d", page, pageCount), "", 1, "R", false, 0, "")
	if bill.DriverName != "" || bill.VehicleNo != "" {
		pdf.CellFormat(0, 6, fmt.Sprintf("Driver: %s   Vehicle: %s", bill.DriverName, bill.VehicleNo), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, title := range columnTitles {
		pdf.CellFormat(columnWidths[i], 8, title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
}

func renderRows(pdf *fpdf.Fpdf, rows []models.BillRow) {
	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		pdf.CellFormat(columnWidths[0], 7, fmt.Sprintf("%d", row.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(columnWidths[1], 7, row.Item, "1", 0, "L", false, 0, "")
		pdf.CellFormat(columnWidths[2], 7, row.OrderNo, "1", 0, "L", false, 0, "")
		pdf.CellFormat(columnWidths[3], 7, row.City, "1", 0, "L", false, 0, "")
		pdf.CellFormat(columnWidths[4], 7, utils.FormatCurrency(row.Rate), "1", 0, "R", false, 0, "")
		pdf.CellFormat(columnWidths[5], 7, utils.FormatCurrency(row.Amount), "1", 1, "R", false, 0, "")
	}
}

func renderTotals(pdf *fpdf.Fpdf, totals Totals) {
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(columnWidths[0], 8, fmt.Sprintf("%d", totals.Quantity), "1", 0, "C", false, 0, "")
	labelWidth := columnWidths[1] + columnWidths[2] + columnWidths[3] + columnWidths[4]
	pdf.CellFormat(labelWidth, 8, "TOTAL", "1", 0, "R", false, 0, "")
	pdf.CellFormat(columnWidths[5], 8, utils.FormatCurrency(totals.Amount), "1", 1, "R", false, 0, "")
}
