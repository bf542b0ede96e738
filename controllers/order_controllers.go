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

	"github.com/tablefactory/order-app/middlewares"
	"github.com/tablefactory/order-app/models"
	"github.com/tablefactory/order-app/realtime"
	"github.com/tablefactory/order-app/services"
	"github.com/tablefactory/order-app/utils"
)

type OrderController struct {
	DB        *gorm.DB
	Estimator *services.DeliveryEstimator
	Notifier  *services.Notifier
}

func NewOrderController(db *gorm.DB, estimator *services.DeliveryEstimator, notifier *services.Notifier) *OrderController {
	return &OrderController{DB: db, Estimator: estimator, Notifier: notifier}
}

type tableItemReq struct {
	Size             string  `json:"size" binding:"required"`
	TopColour        string  `json:"top_colour"`
	FrameColour      string  `json:"frame_colour"`
	Quantity         int     `json:"quantity" binding:"required,min=1"`
	Price            float64 `json:"price"`
	LegSize          string  `json:"leg_size"`
	LegShape         string  `json:"leg_shape"`
	LegHeight        string  `json:"leg_height"`
	WireHole         string  `json:"wire_hole"`
	WireHoleComment  string  `json:"wire_hole_comment"`
	FrontPanelSize   string  `json:"front_panel_size"`
	FrontPanelLength float64 `json:"front_panel_length"`
	Orientation      string  `json:"orientation"`
}

type orderReq struct {
	CustomerName      string         `json:"customer_name" binding:"required"`
	Phone             string         `json:"phone"`
	Address           string         `json:"address"`
	City              string         `json:"city"`
	DeliveryFee       float64        `json:"delivery_fee"`
	AdditionalCharges float64        `json:"additional_charges"`
	Notes             string         `json:"notes"`
	Items             []tableItemReq `json:"items" binding:"required,min=1,dive"`
}

func (r *orderReq) buildItems() ([]models.TableItem, error) {
	items := make([]models.TableItem, 0, len(r.Items))
	for _, it := range r.Items {
		item := models.TableItem{
			Size:             it.Size,
			TopColour:        it.TopColour,
			FrameColour:      it.FrameColour,
			Quantity:         it.Quantity,
			Price:            it.Price,
			LegSize:          it.LegSize,
			LegShape:         it.LegShape,
			LegHeight:        it.LegHeight,
			WireHole:         it.WireHole,
			WireHoleComment:  it.WireHoleComment,
			FrontPanelSize:   it.FrontPanelSize,
			FrontPanelLength: it.FrontPanelLength,
			Orientation:      it.Orientation,
			CreatedAt:        time.Now(),
			UpdatedAt:        time.Now(),
		}
		if err := item.Validate(); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func newOrderNumber() string {
	return fmt.Sprintf("ORD-%s-%s",
		time.Now().Format("20060102"),
		strings.ToUpper(uuid.NewString()[:8]))
}

// CreateOrder -> place an order with its line items in one transaction.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req orderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	items, err := req.buildItems()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	// Estimate before inserting so the new order's own units are not
	// counted as ahead of it. Falls back to +1 day on query failure.
	estimate := oc.Estimator.EstimateForNew()

	order := models.Order{
		OrderNumber:       newOrderNumber(),
		CustomerName:      req.CustomerName,
		Phone:             req.Phone,
		Address:           req.Address,
		City:              req.City,
		Status:            models.OrderStatusPending,
		DeliveryStatus:    models.DeliveryStatusPending,
		DeliveryFee:       req.DeliveryFee,
		AdditionalCharges: req.AdditionalCharges,
		Notes:             req.Notes,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	if userID, exists := c.Get("user_id"); exists {
		if id, ok := userID.(uint); ok {
			order.CreatedByID = &id
		}
	}

	order.Items = items
	order.TotalPrice = order.ComputeTotal()
	order.Items = nil

	tx := oc.DB.Begin()
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		middlewares.RecordOrderOperation("create", false)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if err := tx.Create(&items).Error; err != nil {
		tx.Rollback()
		middlewares.RecordOrderOperation("create", false)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	tx.Create(&models.OrderEvent{OrderID: order.ID, Event: "created", ActorID: order.CreatedByID, CreatedAt: time.Now()})
	if err := tx.Commit().Error; err != nil {
		middlewares.RecordOrderOperation("create", false)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	order.Items = items
	if oc.Notifier != nil {
		oc.Notifier.OrderCreated(order)
	}
	middlewares.RecordOrderOperation("create", true)

	utils.RespondJSON(c, http.StatusCreated, "Order created", gin.H{
		"order":    order,
		"estimate": estimate,
	})
}

// GetAllOrders -> list orders visible to the caller's role.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	var orders []models.Order
	query := oc.scopeForRole(c).
		Preload("Items").
		Preload("AssignedTo").
		Order("created_at desc")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// scopeForRole narrows order queries: customers see their own orders,
// delivery users see orders assigned to them, awaiting delivery, or
// pending-and-ready. Sales, production and admin see everything.
func (oc *OrderController) scopeForRole(c *gin.Context) *gorm.DB {
	role := c.GetString("role")
	userID := c.GetUint("user_id")

	switch role {
	case models.RoleCustomer:
		return oc.DB.Where("created_by_id = ?", userID)
	case models.RoleDelivery:
		return oc.DB.Where(
			"assigned_to_id = ? OR status = ? OR (status = ? AND delivery_status = ?)",
			userID, models.OrderStatusAssigned, models.OrderStatusPending, models.DeliveryStatusReady)
	default:
		return oc.DB
	}
}

// GetOrderByID -> one order with items; pending orders carry an estimate.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	var order models.Order
	if err := oc.scopeForRole(c).
		Preload("Items").
		Preload("AssignedTo").
		First(&order, "orders.id = ?", c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	payload := gin.H{"order": order}
	if order.Status == models.OrderStatusPending {
		payload["estimate"] = oc.Estimator.EstimateForOrder(order)
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", payload)
}

// UpdateOrder -> full replace of an order's fields and line items.
// Running the same update twice leaves the same total and item count.
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	var order models.Order
	if err := oc.DB.First(&order, "id = ?", c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if order.Status == models.OrderStatusCompleted {
		utils.RespondError(c, http.StatusBadRequest, errors.New("completed orders cannot be edited"))
		return
	}

	var req orderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	items, err := req.buildItems()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order.CustomerName = req.CustomerName
	order.Phone = req.Phone
	order.Address = req.Address
	order.City = req.City
	order.DeliveryFee = req.DeliveryFee
	order.AdditionalCharges = req.AdditionalCharges
	order.Notes = req.Notes
	order.UpdatedAt = time.Now()

	order.Items = items
	order.TotalPrice = order.ComputeTotal()
	order.Items = nil

	tx := oc.DB.Begin()
	if err := tx.Where("order_id = ?", order.ID).Delete(&models.TableItem{}).Error; err != nil {
		tx.Rollback()
		middlewares.RecordOrderOperation("edit", false)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if err := tx.Create(&items).Error; err != nil {
		tx.Rollback()
		middlewares.RecordOrderOperation("edit", false)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := tx.Save(&order).Error; err != nil {
		tx.Rollback()
		middlewares.RecordOrderOperation("edit", false)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	tx.Create(&models.OrderEvent{OrderID: order.ID, Event: "edited", ActorID: actorID(c), CreatedAt: time.Now()})
	if err := tx.Commit().Error; err != nil {
		middlewares.RecordOrderOperation("edit", false)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	order.Items = items
	realtime.BroadcastOrderUpdate(order)
	middlewares.RecordOrderOperation("edit", true)

	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}

// AssignOrder -> pending order gets a delivery person, status=assigned.
func (oc *OrderController) AssignOrder(c *gin.Context) {
	var order models.Order
	if err := oc.DB.Preload("Items").First(&order, "id = ?", c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if order.Status != models.OrderStatusPending {
		utils.RespondError(c, http.StatusBadRequest, errors.New("order not in pending status"))
		return
	}

	var req struct {
		DeliveryPersonID uint `json:"delivery_person_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var person models.User
	if err := oc.DB.First(&person, req.DeliveryPersonID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("delivery person not found"))
		return
	}
	if person.Role != models.RoleDelivery {
		utils.RespondError(c, http.StatusBadRequest, errors.New("assignee is not a delivery person"))
		return
	}

	order.Status = models.OrderStatusAssigned
	order.AssignedToID = &person.ID
	order.UpdatedAt = time.Now()

	if err := oc.DB.Save(&order).Error; err != nil {
		middlewares.RecordOrderOperation("assign", false)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	oc.DB.Create(&models.OrderEvent{OrderID: order.ID, Event: "assigned", ActorID: actorID(c), CreatedAt: time.Now()})

	if oc.Notifier != nil {
		oc.Notifier.OrderAssigned(order)
	}
	middlewares.RecordOrderOperation("assign", true)

	utils.RespondJSON(c, http.StatusOK, "Order assigned", order)
}

// MarkReady -> production signals a pending order's units are built.
func (oc *OrderController) MarkReady(c *gin.Context) {
	var order models.Order
	if err := oc.DB.Preload("Items").First(&order, "id = ?", c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if order.Status != models.OrderStatusPending {
		utils.RespondError(c, http.StatusBadRequest, errors.New("only pending orders can be marked ready"))
		return
	}
	if order.DeliveryStatus == models.DeliveryStatusReady {
		utils.RespondError(c, http.StatusBadRequest, errors.New("order already marked ready"))
		return
	}

	order.DeliveryStatus = models.DeliveryStatusReady
	order.UpdatedAt = time.Now()

	if err := oc.DB.Save(&order).Error; err != nil {
		middlewares.RecordOrderOperation("ready", false)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	oc.DB.Create(&models.OrderEvent{OrderID: order.ID, Event: "ready", ActorID: actorID(c), CreatedAt: time.Now()})

	if oc.Notifier != nil {
		oc.Notifier.OrderReady(order)
	}
	middlewares.RecordOrderOperation("ready", true)

	utils.RespondJSON(c, http.StatusOK, "Order marked ready", order)
}

// CompleteOrder -> delivery finishes an assigned order.
func (oc *OrderController) CompleteOrder(c *gin.Context) {
	var order models.Order
	if err := oc.DB.Preload("Items").First(&order, "id = ?", c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if order.Status != models.OrderStatusAssigned {
		utils.RespondError(c, http.StatusBadRequest, errors.New("order not in assigned status"))
		return
	}

	now := time.Now()
	order.Status = models.OrderStatusCompleted
	order.CompletedAt = &now
	order.UpdatedAt = now

	if err := oc.DB.Save(&order).Error; err != nil {
		middlewares.RecordOrderOperation("complete", false)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	oc.DB.Create(&models.OrderEvent{OrderID: order.ID, Event: "completed", ActorID: actorID(c), CreatedAt: now})

	if oc.Notifier != nil {
		oc.Notifier.OrderCompleted(order)
	}
	middlewares.RecordOrderOperation("complete", true)

	utils.RespondJSON(c, http.StatusOK, "Order completed", order)
}

// DeleteOrder -> remove the order and its line items in one transaction.
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	var order models.Order
	if err := oc.DB.First(&order, "id = ?", c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	tx := oc.DB.Begin()
	if err := tx.Where("order_id = ?", order.ID).Delete(&models.TableItem{}).Error; err != nil {
		tx.Rollback()
		middlewares.RecordOrderOperation("delete", false)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := tx.Delete(&order).Error; err != nil {
		tx.Rollback()
		middlewares.RecordOrderOperation("delete", false)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if err := tx.Commit().Error; err != nil {
		middlewares.RecordOrderOperation("delete", false)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	middlewares.RecordOrderOperation("delete", true)
	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_id": order.ID})
}

// GetDeliveryEstimate -> queue position and delivery date for a pending order.
func (oc *OrderController) GetDeliveryEstimate(c *gin.Context) {
	var order models.Order
	if err := oc.DB.First(&order, "id = ?", c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if order.Status != models.OrderStatusPending {
		utils.RespondError(c, http.StatusBadRequest, errors.New("only pending orders have a delivery estimate"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Delivery estimate", oc.Estimator.EstimateForOrder(order))
}

// GetProductionQueue -> pending orders in FIFO order with estimates.
func (oc *OrderController) GetProductionQueue(c *gin.Context) {
	var orders []models.Order
	if err := oc.DB.Preload("Items").
		Where("status = ?", models.OrderStatusPending).
		Order("created_at asc, id asc").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	type queuedOrder struct {
		Order    models.Order      `json:"order"`
		Estimate services.Estimate `json:"estimate"`
	}
	queue := make([]queuedOrder, 0, len(orders))
	for _, order := range orders {
		queue = append(queue, queuedOrder{
			Order:    order,
			Estimate: oc.Estimator.EstimateForOrder(order),
		})
	}

	utils.RespondJSON(c, http.StatusOK, "Production queue", queue)
}

func actorID(c *gin.Context) *uint {
	if userID, exists := c.Get("user_id"); exists {
		if id, ok := userID.(uint); ok {
			return &id
		}
	}
	return nil
}
