package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sarvcast/sarvcast-backend/models"
	"github.com/sarvcast/sarvcast-backend/ws"
)

// GET /notifications
func GetNotifications(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	db := c.MustGet("db").(*gorm.DB)

	var notifications []models.Notification
	if err := db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(50).
		Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot list notifications"})
		return
	}

	var unread int64
	db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = false", userID).
		Count(&unread)

	c.JSON(http.StatusOK, gin.H{"data": notifications, "unread": unread})
}

// PATCH /notifications/:id/read
func MarkNotificationRead(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}

	db := c.MustGet("db").(*gorm.DB)

	res := db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update notification"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}

	var unread int64
	db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = false", userID).
		Count(&unread)
	ws.SendBadgeUpdate(userID.String(), unread)

	c.JSON(http.StatusOK, gin.H{"message": "notification marked as read", "unread": unread})
}
