package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tablefactory/order-app/billing"
	"github.com/tablefactory/order-app/models"
	"github.com/tablefactory/order-app/realtime"
	"github.com/tablefactory/order-app/utils"
)

type BillController struct {
	DB *gorm.DB
}

func NewBillController(db *gorm.DB) *BillController {
	return &BillController{DB: db}
}

func newBillNumber() string {
	return fmt.Sprintf("BILL-%s-%s",
		time.Now().Format("20060102"),
		strings.ToUpper(uuid.NewString()[:6]))
}

// CreateBill -> build a factory-rate bill from a set of orders. Rows are
// snapshotted into the bill; later order edits never change a saved bill.
func (bc *BillController) CreateBill(c *gin.Context) {
	var req struct {
		OrderIDs   []uint `json:"order_ids" binding:"required,min=1"`
		BillTo     string `json:"bill_to" binding:"required"`
		DriverName string `json:"driver_name"`
		VehicleNo  string `json:"vehicle_no"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var orders []models.Order
	if err := bc.DB.Preload("Items").Where("id IN ?", req.OrderIDs).Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if len(orders) != len(req.OrderIDs) {
		utils.RespondError(c, http.StatusNotFound, errors.New("one or more orders not found"))
		return
	}

	rows := billing.BuildRows(orders)
	totals := billing.Sum(rows)

	orderNumbers := make([]string, 0, len(orders))
	for _, order := range orders {
		orderNumbers = append(orderNumbers, order.OrderNumber)
	}

	bill := models.Bill{
		BillNumber:    newBillNumber(),
		BillTo:        req.BillTo,
		DriverName:    req.DriverName,
		VehicleNo:     req.VehicleNo,
		OrderNumbers:  orderNumbers,
		Rows:          rows,
		TotalAmount:   totals.Amount,
		TotalQuantity: totals.Quantity,
		BillDate:      time.Now(),
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := bc.DB.Create(&bill).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastBillCreated(bill)
	utils.InfoLogger.Printf("Bill %s created from %d orders", bill.BillNumber, len(orders))

	utils.RespondJSON(c, http.StatusCreated, "Bill created", bill)
}

// GetAllBills -> newest first.
func (bc *BillController) GetAllBills(c *gin.Context) {
	var bills []models.Bill
	if err := bc.DB.Order("bill_date desc, id desc").Find(&bills).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of bills", bills)
}

// GetBillByID -> one bill with its rows paginated for display.
func (bc *BillController) GetBillByID(c *gin.Context) {
	var bill models.Bill
	if err := bc.DB.First(&bill, "id = ?", c.Param("bill_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Bill detail", gin.H{
		"bill":  bill,
		"pages": billing.Paginate(bill.Rows, billing.PageSize),
	})
}

// UpdateBill -> replace a bill's rows with edited ones. Each edited row
// is reconciled against the stored row: editing only the amount
// back-solves the rate, anything else recomputes the amount.
func (bc *BillController) UpdateBill(c *gin.Context) {
	var bill models.Bill
	if err := bc.DB.First(&bill, "id = ?", c.Param("bill_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		BillTo     string           `json:"bill_to"`
		DriverName string           `json:"driver_name"`
		VehicleNo  string           `json:"vehicle_no"`
		Rows       []models.BillRow `json:"rows" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	bill.Rows = billing.ReconcileRows(bill.Rows, req.Rows)
	totals := billing.Sum(bill.Rows)
	bill.TotalAmount = totals.Amount
	bill.TotalQuantity = totals.Quantity
	if req.BillTo != "" {
		bill.BillTo = req.BillTo
	}
	bill.DriverName = req.DriverName
	bill.VehicleNo = req.VehicleNo
	bill.UpdatedAt = time.Now()

	if err := bc.DB.Save(&bill).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Bill updated", bill)
}

// DeleteBill -> remove a saved bill. Source orders are untouched.
func (bc *BillController) DeleteBill(c *gin.Context) {
	var bill models.Bill
	if err := bc.DB.First(&bill, "id = ?", c.Param("bill_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := bc.DB.Delete(&bill).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Bill deleted", gin.H{"bill_id": bill.ID})
}

// ExportBillPDF -> render the bill as a downloadable PDF.
func (bc *BillController) ExportBillPDF(c *gin.Context) {
	var bill models.Bill
	if err := bc.DB.First(&bill, "id = ?", c.Param("bill_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	pdfBytes, err := billing.RenderPDF(bill)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.pdf"`, bill.BillNumber))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
