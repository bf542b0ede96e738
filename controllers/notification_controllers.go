package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/tablefactory/order-app/models"
	"github.com/tablefactory/order-app/realtime"
	"github.com/tablefactory/order-app/utils"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GetNotifications -> the caller's notifications plus broadcast ones
// (rows with no target user), newest first.
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	userID := c.GetUint("user_id")

	var notifications []models.Notification
	if err := nc.DB.
		Where("user_id = ? OR user_id IS NULL", userID).
		Order("created_at desc").
		Limit(100).
		Find(&notifications).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notifications", notifications)
}

// CreateNotification -> admin broadcast to staff (optionally one user).
func (nc *NotificationController) CreateNotification(c *gin.Context) {
	roleInterface, _ := c.Get("role")
	if roleInterface != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var req struct {
		UserID  *uint  `json:"user_id"`
		Title   string `json:"title" binding:"required"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	notif := models.Notification{
		UserID:    req.UserID,
		Title:     req.Title,
		Message:   req.Message,
		CreatedAt: time.Now(),
	}
	if err := nc.DB.Create(&notif).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	realtime.BroadcastStaffNotification(notif.Message)

	utils.RespondJSON(c, http.StatusCreated, "Notification created", notif)
}

// MarkNotificationRead -> stamp a notification as read by its owner.
func (nc *NotificationController) MarkNotificationRead(c *gin.Context) {
	userID := c.GetUint("user_id")

	var notif models.Notification
	if err := nc.DB.First(&notif, "id = ?", c.Param("notification_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if notif.UserID != nil && *notif.UserID != userID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	if notif.ReadAt != nil {
		utils.RespondJSON(c, http.StatusOK, "Notification already read", notif)
		return
	}

	now := time.Now()
	notif.ReadAt = &now
	if err := nc.DB.Save(&notif).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notification marked read", notif)
}

// DeleteNotification -> owners delete their own, admin deletes any.
func (nc *NotificationController) DeleteNotification(c *gin.Context) {
	userID := c.GetUint("user_id")
	roleInterface, _ := c.Get("role")

	var notif models.Notification
	if err := nc.DB.First(&notif, "id = ?", c.Param("notification_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if roleInterface != models.RoleAdmin {
		if notif.UserID == nil || *notif.UserID != userID {
			utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
			return
		}
	}

	if err := nc.DB.Delete(&notif).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notification deleted", gin.H{"notification_id": notif.ID})
}
