package controllers

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wcharczuk/go-chart/v2"
	"gorm.io/gorm"

	"github.com/tablefactory/order-app/models"
	"github.com/tablefactory/order-app/pricing"
	"github.com/tablefactory/order-app/realtime"
	"github.com/tablefactory/order-app/services"
	"github.com/tablefactory/order-app/utils"
)

type AdminController struct {
	DB        *gorm.DB
	Estimator *services.DeliveryEstimator
}

func NewAdminController(db *gorm.DB, estimator *services.DeliveryEstimator) *AdminController {
	return &AdminController{DB: db, Estimator: estimator}
}

// GetDashboardStats -> order counts by status, revenue and profit over
// completed orders, and the current production queue summary.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	roleInterface, _ := c.Get("role")
	if roleInterface != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	statusCounts := make(map[string]int64)
	for _, status := range []string{
		models.OrderStatusPending,
		models.OrderStatusAssigned,
		models.OrderStatusCompleted,
	} {
		var count int64
		if err := ac.DB.Model(&models.Order{}).
			Where("status = ?", status).
			Count(&count).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		statusCounts[status] = count
	}

	var revenue float64
	if err := ac.DB.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusCompleted).
		Select("COALESCE(SUM(total_price), 0)").
		Row().Scan(&revenue); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	profit, err := ac.completedProfit()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	monitor := services.NewQueueMonitor(ac.DB, ac.Estimator)
	queue, err := monitor.Snapshot()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	stats := gin.H{
		"orders_by_status": statusCounts,
		"revenue":          revenue,
		"profit":           profit,
		"queue":            queue,
	}

	realtime.BroadcastDashboardUpdate(stats)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}

// completedProfit sums (sales - factory) * quantity over the line items
// of completed orders. Customization surcharges are pass-through and do
// not contribute margin.
func (ac *AdminController) completedProfit() (float64, error) {
	var items []models.TableItem
	err := ac.DB.Model(&models.TableItem{}).
		Joins("JOIN orders ON orders.id = table_items.order_id").
		Where("orders.status = ?", models.OrderStatusCompleted).
		Find(&items).Error
	if err != nil {
		return 0, err
	}

	var profit float64
	for _, item := range items {
		profit += pricing.OrderProfit(item.Price, item.Size, item.Quantity)
	}
	return profit, nil
}

// GetAnalytics -> popular sizes and average completion time.
func (ac *AdminController) GetAnalytics(c *gin.Context) {
	roleInterface, _ := c.Get("role")
	if roleInterface != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	type sizeCount struct {
		Size  string `json:"size"`
		Units int    `json:"units"`
	}
	var popular []sizeCount
	if err := ac.DB.Model(&models.TableItem{}).
		Select("table_items.size AS size, SUM(table_items.quantity) AS units").
		Joins("JOIN orders ON orders.id = table_items.order_id").
		Group("table_items.size").
		Order("units desc").
		Limit(10).
		Scan(&popular).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var completed []models.Order
	if err := ac.DB.
		Where("status = ? AND completed_at IS NOT NULL", models.OrderStatusCompleted).
		Find(&completed).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var avgCompletionHours float64
	if len(completed) > 0 {
		var total time.Duration
		for _, order := range completed {
			total += order.CompletedAt.Sub(order.CreatedAt)
		}
		avgCompletionHours = (total / time.Duration(len(completed))).Hours()
	}

	utils.RespondJSON(c, http.StatusOK, "Analytics", gin.H{
		"popular_sizes":        popular,
		"completed_orders":     len(completed),
		"avg_completion_hours": avgCompletionHours,
	})
}

// GetOrdersChart -> PNG bar chart of orders placed per day over the
// last 14 days.
func (ac *AdminController) GetOrdersChart(c *gin.Context) {
	roleInterface, _ := c.Get("role")
	if roleInterface != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	const windowDays = 14
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -(windowDays - 1))

	var orders []models.Order
	if err := ac.DB.
		Where("created_at >= ?", start).
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	perDay := make(map[string]int, windowDays)
	for _, order := range orders {
		perDay[order.CreatedAt.Format("01-02")]++
	}

	bars := make([]chart.Value, 0, windowDays)
	var maxCount int
	for i := 0; i < windowDays; i++ {
		day := start.AddDate(0, 0, i)
		count := perDay[day.Format("01-02")]
		if count > maxCount {
			maxCount = count
		}
		bars = append(bars, chart.Value{
			Label: day.Format("01-02"),
			Value: float64(count),
		})
	}

	if maxCount == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("no orders in the last 14 days"))
		return
	}

	barChart := chart.BarChart{
		Title:    "Orders per day",
		Width:    1024,
		Height:   400,
		BarWidth: 40,
		Bars:     bars,
	}

	var buf bytes.Buffer
	if err := barChart.Render(chart.PNG, &buf); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
