package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/tablefactory/order-app/controllers"
	"github.com/tablefactory/order-app/models"
)

func setupUserRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	userCtrl := controllers.NewUserController(db)
	r.POST("/register", userCtrl.Register)
	r.POST("/login", userCtrl.Login)
	return r
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t, "users_register")
	r := setupUserRouter(db)

	w := doJSON(t, r, "POST", "/register", map[string]interface{}{
		"name":     "Sales Clerk",
		"email":    "clerk@factory.local",
		"password": "supersecret",
		"role":     models.RoleSales,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Passwords are stored hashed.
	var user models.User
	assert.NoError(t, db.Where("email = ?", "clerk@factory.local").First(&user).Error)
	assert.NotEqual(t, "supersecret", user.Password)

	w = doJSON(t, r, "POST", "/login", map[string]interface{}{
		"email":    "clerk@factory.local",
		"password": "supersecret",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.NotEmpty(t, data["token"])
	assert.Equal(t, models.RoleSales, data["user_role"])

	w = doJSON(t, r, "POST", "/login", map[string]interface{}{
		"email":    "clerk@factory.local",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	db := setupTestDB(t, "users_role")
	r := setupUserRouter(db)

	w := doJSON(t, r, "POST", "/register", map[string]interface{}{
		"name":     "Someone",
		"email":    "someone@factory.local",
		"password": "supersecret",
		"role":     "janitor",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	db := setupTestDB(t, "users_password")
	r := setupUserRouter(db)

	w := doJSON(t, r, "POST", "/register", map[string]interface{}{
		"name":     "Someone",
		"email":    "short@factory.local",
		"password": "short",
		"role":     models.RoleSales,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetDeliveryPeopleFiltersByRole(t *testing.T) {
	db := setupTestDB(t, "users_delivery")
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(asUser(1, models.RoleSales))
	userCtrl := controllers.NewUserController(db)
	r.GET("/delivery-people", userCtrl.GetDeliveryPeople)

	assert.NoError(t, db.Create(&models.User{Name: "Driver A", Email: "a@f.local", Password: "x", Role: models.RoleDelivery}).Error)
	assert.NoError(t, db.Create(&models.User{Name: "Driver B", Email: "b@f.local", Password: "x", Role: models.RoleDelivery}).Error)
	assert.NoError(t, db.Create(&models.User{Name: "Clerk", Email: "c@f.local", Password: "x", Role: models.RoleSales}).Error)

	w := doJSON(t, r, "GET", "/delivery-people", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	list := resp["data"].([]interface{})
	assert.Len(t, list, 2)
}
