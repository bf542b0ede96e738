package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tablefactory/order-app/controllers"
	"github.com/tablefactory/order-app/models"
	"github.com/tablefactory/order-app/services"
	"github.com/tablefactory/order-app/utils"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	utils.InitLogger()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Order{},
		&models.TableItem{},
		&models.Bill{},
		&models.Notification{},
		&models.OrderEvent{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// asUser stubs authentication the way the real middleware would fill the
// context after verifying a token.
func asUser(userID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

func setupOrderRouter(db *gorm.DB, userID uint, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(asUser(userID, role))

	estimator := services.NewDeliveryEstimator(db)
	orderCtrl := controllers.NewOrderController(db, estimator, nil)

	r.POST("/orders", orderCtrl.CreateOrder)
	r.GET("/orders", orderCtrl.GetAllOrders)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	r.PATCH("/orders/:order_id", orderCtrl.UpdateOrder)
	r.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)
	r.POST("/orders/:order_id/assign", orderCtrl.AssignOrder)
	r.POST("/orders/:order_id/ready", orderCtrl.MarkReady)
	r.POST("/orders/:order_id/complete", orderCtrl.CompleteOrder)
	r.GET("/orders/:order_id/estimate", orderCtrl.GetDeliveryEstimate)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, url, body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, _ := resp["data"].(map[string]interface{})
	return data
}

func standardOrderPayload() map[string]interface{} {
	return map[string]interface{}{
		"customer_name": "Acme Offices",
		"city":          "Colombo",
		"items": []map[string]interface{}{
			{
				"size":     "24x32",
				"quantity": 2,
				"price":    11000,
				"leg_size": "2x2",
			},
		},
	}
}

func TestCreateOrderComputesTotalWithSurcharges(t *testing.T) {
	db := setupTestDB(t, "orders_create")
	r := setupOrderRouter(db, 1, models.RoleSales)

	w := doJSON(t, r, "POST", "/orders", standardOrderPayload())
	assert.Equal(t, http.StatusCreated, w.Code)

	data := decodeData(t, w)
	order := data["order"].(map[string]interface{})

	// (11000 + 1500 leg surcharge) * 2 units
	assert.Equal(t, float64(25000), order["total_price"])
	assert.Equal(t, models.OrderStatusPending, order["status"])
	assert.Equal(t, models.DeliveryStatusPending, order["delivery_status"])
	assert.NotEmpty(t, order["order_number"])

	estimate := data["estimate"].(map[string]interface{})
	assert.Equal(t, float64(1), estimate["queue_position"])
	assert.Equal(t, float64(0), estimate["units_ahead"])
}

func TestCreateOrderRejectsLShapeWithoutOrientation(t *testing.T) {
	db := setupTestDB(t, "orders_lshape")
	r := setupOrderRouter(db, 1, models.RoleSales)

	payload := standardOrderPayload()
	payload["items"] = []map[string]interface{}{
		{"size": "48x48L", "quantity": 1, "price": 30000},
	}

	w := doJSON(t, r, "POST", "/orders", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	payload["items"] = []map[string]interface{}{
		{"size": "48x48L", "quantity": 1, "price": 30000, "orientation": "left"},
	}
	w = doJSON(t, r, "POST", "/orders", payload)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestOrderLifecycleTransitions(t *testing.T) {
	db := setupTestDB(t, "orders_lifecycle")
	r := setupOrderRouter(db, 1, models.RoleSales)

	driver := models.User{Name: "Driver", Email: "driver@test.local", Password: "x", Role: models.RoleDelivery}
	assert.NoError(t, db.Create(&driver).Error)
	clerk := models.User{Name: "Clerk", Email: "clerk@test.local", Password: "x", Role: models.RoleSales}
	assert.NoError(t, db.Create(&clerk).Error)

	w := doJSON(t, r, "POST", "/orders", standardOrderPayload())
	assert.Equal(t, http.StatusCreated, w.Code)
	order := decodeData(t, w)["order"].(map[string]interface{})
	orderID := int(order["id"].(float64))

	// Completing a pending order is refused.
	w = doJSON(t, r, "POST", fmt.Sprintf("/orders/%d/complete", orderID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Assigning to a non-delivery user is refused.
	w = doJSON(t, r, "POST", fmt.Sprintf("/orders/%d/assign", orderID),
		map[string]interface{}{"delivery_person_id": clerk.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Mark ready, then again: the second call is refused.
	w = doJSON(t, r, "POST", fmt.Sprintf("/orders/%d/ready", orderID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, "POST", fmt.Sprintf("/orders/%d/ready", orderID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Assign to the driver.
	w = doJSON(t, r, "POST", fmt.Sprintf("/orders/%d/assign", orderID),
		map[string]interface{}{"delivery_person_id": driver.ID})
	assert.Equal(t, http.StatusOK, w.Code)

	// Assigning twice is refused.
	w = doJSON(t, r, "POST", fmt.Sprintf("/orders/%d/assign", orderID),
		map[string]interface{}{"delivery_person_id": driver.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// An assigned order can no longer be marked ready.
	w = doJSON(t, r, "POST", fmt.Sprintf("/orders/%d/ready", orderID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Complete.
	w = doJSON(t, r, "POST", fmt.Sprintf("/orders/%d/complete", orderID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	completed := decodeData(t, w)
	assert.Equal(t, models.OrderStatusCompleted, completed["status"])
	assert.NotNil(t, completed["completed_at"])

	// Completed orders cannot be edited.
	w = doJSON(t, r, "PATCH", fmt.Sprintf("/orders/%d", orderID), standardOrderPayload())
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The audit trail recorded each transition.
	var events []models.OrderEvent
	assert.NoError(t, db.Where("order_id = ?", orderID).Order("id asc").Find(&events).Error)
	assert.Len(t, events, 4)
	assert.Equal(t, "created", events[0].Event)
	assert.Equal(t, "completed", events[3].Event)
}

func TestUpdateOrderIsIdempotent(t *testing.T) {
	db := setupTestDB(t, "orders_update")
	r := setupOrderRouter(db, 1, models.RoleSales)

	w := doJSON(t, r, "POST", "/orders", standardOrderPayload())
	assert.Equal(t, http.StatusCreated, w.Code)
	order := decodeData(t, w)["order"].(map[string]interface{})
	orderID := int(order["id"].(float64))

	edit := standardOrderPayload()
	edit["items"] = []map[string]interface{}{
		{"size": "24x48", "quantity": 3, "price": 15500},
		{"size": "24x32", "quantity": 1, "price": 11000, "wire_hole": "standard"},
	}

	w = doJSON(t, r, "PATCH", fmt.Sprintf("/orders/%d", orderID), edit)
	assert.Equal(t, http.StatusOK, w.Code)
	first := decodeData(t, w)
	firstTotal := first["total_price"].(float64)

	w = doJSON(t, r, "PATCH", fmt.Sprintf("/orders/%d", orderID), edit)
	assert.Equal(t, http.StatusOK, w.Code)
	second := decodeData(t, w)
	assert.Equal(t, firstTotal, second["total_price"].(float64))

	var count int64
	assert.NoError(t, db.Model(&models.TableItem{}).Where("order_id = ?", orderID).Count(&count).Error)
	assert.Equal(t, int64(2), count, "re-applying the same edit must not duplicate items")
}

func TestGetAllOrdersScopesByRole(t *testing.T) {
	db := setupTestDB(t, "orders_scope")

	customerRouter := setupOrderRouter(db, 7, models.RoleCustomer)
	otherCustomerRouter := setupOrderRouter(db, 8, models.RoleCustomer)
	salesRouter := setupOrderRouter(db, 1, models.RoleSales)

	w := doJSON(t, customerRouter, "POST", "/orders", standardOrderPayload())
	assert.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, salesRouter, "POST", "/orders", standardOrderPayload())
	assert.Equal(t, http.StatusCreated, w.Code)

	listOrders := func(r *gin.Engine) []interface{} {
		w := doJSON(t, r, "GET", "/orders", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		var resp map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		list, _ := resp["data"].([]interface{})
		return list
	}

	assert.Len(t, listOrders(customerRouter), 1, "customers see only their own orders")
	assert.Len(t, listOrders(otherCustomerRouter), 0)
	assert.Len(t, listOrders(salesRouter), 2, "sales see every order")
}

func TestDeliveryRoleSeesReadyAndAssignedOrders(t *testing.T) {
	db := setupTestDB(t, "orders_delivery_scope")
	salesRouter := setupOrderRouter(db, 1, models.RoleSales)
	deliveryRouter := setupOrderRouter(db, 9, models.RoleDelivery)

	// Plain pending order: invisible to delivery.
	w := doJSON(t, salesRouter, "POST", "/orders", standardOrderPayload())
	assert.Equal(t, http.StatusCreated, w.Code)

	// Pending and marked ready: visible.
	w = doJSON(t, salesRouter, "POST", "/orders", standardOrderPayload())
	assert.Equal(t, http.StatusCreated, w.Code)
	readyID := int(decodeData(t, w)["order"].(map[string]interface{})["id"].(float64))
	w = doJSON(t, salesRouter, "POST", fmt.Sprintf("/orders/%d/ready", readyID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, deliveryRouter, "GET", "/orders", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	list, _ := resp["data"].([]interface{})
	assert.Len(t, list, 1)
}

func TestGetDeliveryEstimateOnlyForPending(t *testing.T) {
	db := setupTestDB(t, "orders_estimate")
	r := setupOrderRouter(db, 1, models.RoleSales)

	driver := models.User{Name: "Driver", Email: "driver2@test.local", Password: "x", Role: models.RoleDelivery}
	assert.NoError(t, db.Create(&driver).Error)

	w := doJSON(t, r, "POST", "/orders", standardOrderPayload())
	assert.Equal(t, http.StatusCreated, w.Code)
	orderID := int(decodeData(t, w)["order"].(map[string]interface{})["id"].(float64))

	w = doJSON(t, r, "GET", fmt.Sprintf("/orders/%d/estimate", orderID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	estimate := decodeData(t, w)
	assert.Equal(t, float64(1), estimate["queue_position"])
	assert.Equal(t, float64(1), estimate["estimated_days"])

	w = doJSON(t, r, "POST", fmt.Sprintf("/orders/%d/assign", orderID),
		map[string]interface{}{"delivery_person_id": driver.ID})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, "GET", fmt.Sprintf("/orders/%d/estimate", orderID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteOrderRemovesItems(t *testing.T) {
	db := setupTestDB(t, "orders_delete")
	r := setupOrderRouter(db, 1, models.RoleSales)

	w := doJSON(t, r, "POST", "/orders", standardOrderPayload())
	assert.Equal(t, http.StatusCreated, w.Code)
	orderID := int(decodeData(t, w)["order"].(map[string]interface{})["id"].(float64))

	w = doJSON(t, r, "DELETE", fmt.Sprintf("/orders/%d", orderID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var orderCount, itemCount int64
	db.Model(&models.Order{}).Where("id = ?", orderID).Count(&orderCount)
	db.Model(&models.TableItem{}).Where("order_id = ?", orderID).Count(&itemCount)
	assert.Equal(t, int64(0), orderCount)
	assert.Equal(t, int64(0), itemCount)

	w = doJSON(t, r, "DELETE", fmt.Sprintf("/orders/%d", orderID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductionQueueOrdering(t *testing.T) {
	db := setupTestDB(t, "orders_queue")
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(asUser(1, models.RoleProduction))
	estimator := services.NewDeliveryEstimator(db)
	orderCtrl := controllers.NewOrderController(db, estimator, nil)
	r.GET("/production/queue", orderCtrl.GetProductionQueue)

	now := time.Now()
	for i, number := range []string{"ORD-OLD", "ORD-MID", "ORD-NEW"} {
		order := models.Order{
			OrderNumber:    number,
			CustomerName:   "Queue Customer",
			Status:         models.OrderStatusPending,
			DeliveryStatus: models.DeliveryStatusPending,
			CreatedAt:      now.Add(time.Duration(i-3) * time.Hour),
			UpdatedAt:      now,
		}
		assert.NoError(t, db.Create(&order).Error)
	}

	w := doJSON(t, r, "GET", "/production/queue", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	queue := resp["data"].([]interface{})
	assert.Len(t, queue, 3)

	firstEntry := queue[0].(map[string]interface{})
	firstOrder := firstEntry["order"].(map[string]interface{})
	assert.Equal(t, "ORD-OLD", firstOrder["order_number"])
	firstEstimate := firstEntry["estimate"].(map[string]interface{})
	assert.Equal(t, float64(1), firstEstimate["queue_position"])
}
