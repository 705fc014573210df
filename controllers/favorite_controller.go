package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"github.com/sarvcast/sarvcast-backend/models"
	"github.com/sarvcast/sarvcast-backend/ws"
)

func userIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	userIDValue, _ := c.Get("user_id")
	switch v := userIDValue.(type) {
	case string:
		id, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "invalid user_id"})
			return uuid.Nil, false
		}
		return id, true
	case uuid.UUID:
		return v, true
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "invalid user_id type"})
		return uuid.Nil, false
	}
}

// POST /episodes/:episode_id/favorite
func AddFavorite(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	episodeID, err := uuid.Parse(c.Param("episode_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid episode_id"})
		return
	}

	db := c.MustGet("db").(*gorm.DB)

	var fav models.Favorite
	if err := db.Where("user_id = ? AND episode_id = ?", userID, episodeID).First(&fav).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "already favorited"})
		return
	}

	newFav := models.Favorite{
		UserID:    userID,
		EpisodeID: episodeID,
	}

	tx := db.Begin()
	if err := tx.Create(&newFav).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot add favorite"})
		return
	}

	if err := tx.Model(&models.Episode{}).
		Where("id = ?", episodeID).
		UpdateColumn("like_count", gorm.Expr("like_count + ?", 1)).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update like count"})
		return
	}

	tx.Commit()

	// Notify the episode's creator, unless they favorited their own episode.
	var user models.User
	var episode models.Episode
	if err := db.First(&user, "id = ?", userID).Error; err == nil {
		if err := db.First(&episode, "id = ?", episodeID).Error; err == nil {
			if episode.CreatedBy != user.ID {
				message := user.FullName + " favorited the episode \"" + episode.Title + "\""

				noti := models.Notification{
					UserID:  episode.CreatedBy,
					Title:   "Your episode was favorited",
					Message: message,
					Type:    "favorite",
				}
				db.Create(&noti)

				var unread int64
				db.Model(&models.Notification{}).
					Where("user_id = ? AND is_read = false", episode.CreatedBy).
					Count(&unread)

				payload := map[string]interface{}{
					"type":       "favorite_notification",
					"title":      noti.Title,
					"message":    noti.Message,
					"episode_id": episode.ID,
				}
				if data, err := json.Marshal(payload); err == nil {
					ws.H.BroadcastToUser(episode.CreatedBy.String(), websocket.TextMessage, data)
				}

				ws.SendBadgeUpdate(episode.CreatedBy.String(), unread)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "added to favorites"})
}

// DELETE /episodes/:episode_id/favorite
func RemoveFavorite(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	episodeID, err := uuid.Parse(c.Param("episode_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid episode_id"})
		return
	}

	db := c.MustGet("db").(*gorm.DB)

	res := db.Where("user_id = ? AND episode_id = ?", userID, episodeID).Delete(&models.Favorite{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot remove favorite"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "favorite not found"})
		return
	}

	db.Model(&models.Episode{}).
		Where("id = ? AND like_count > 0", episodeID).
		UpdateColumn("like_count", gorm.Expr("like_count - ?", 1))

	c.JSON(http.StatusOK, gin.H{"message": "removed from favorites"})
}

// GET /favorites
func GetFavorites(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	db := c.MustGet("db").(*gorm.DB)

	var favorites []models.Favorite
	if err := db.
		Preload("Episode").
		Preload("Episode.Story").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot list favorites"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": favorites, "total": len(favorites)})
}
