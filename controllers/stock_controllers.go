package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tablefactory/order-app/models"
	"github.com/tablefactory/order-app/pricing"
	"github.com/tablefactory/order-app/utils"
)

type StockController struct {
	DB *gorm.DB
}

func NewStockController(db *gorm.DB) *StockController {
	return &StockController{DB: db}
}

// GetStock -> finished-unit counts per table size.
func (sc *StockController) GetStock(c *gin.Context) {
	var items []models.StockItem
	if err := sc.DB.Order("size asc").Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Stock levels", items)
}

// CreateStockItem -> register a table size in the store.
func (sc *StockController) CreateStockItem(c *gin.Context) {
	var req struct {
		Size     string `json:"size" binding:"required"`
		Quantity int    `json:"quantity" binding:"min=0"`
		Location string `json:"location"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !pricing.IsKnownSize(req.Size) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown table size"))
		return
	}

	item := models.StockItem{
		Size:      req.Size,
		Quantity:  req.Quantity,
		Location:  req.Location,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := sc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Stock item created", item)
}

// AdjustStock -> apply a signed delta to one size's count. Stock never
// goes negative; an over-draw is rejected.
func (sc *StockController) AdjustStock(c *gin.Context) {
	var req struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var item models.StockItem
	if err := sc.DB.First(&item, "id = ?", c.Param("stock_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if item.Quantity+req.Delta < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("insufficient stock"))
		return
	}

	item.Quantity += req.Delta
	item.UpdatedAt = time.Now()
	if err := sc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Stock %s adjusted by %+d (now %d)", item.Size, req.Delta, item.Quantity)

	utils.RespondJSON(c, http.StatusOK, "Stock adjusted", item)
}

// DeleteStockItem -> remove a size from the store listing.
func (sc *StockController) DeleteStockItem(c *gin.Context) {
	var item models.StockItem
	if err := sc.DB.First(&item, "id = ?", c.Param("stock_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := sc.DB.Delete(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Stock item deleted", gin.H{"stock_id": item.ID})
}
