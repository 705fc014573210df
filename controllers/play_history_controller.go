package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sarvcast/sarvcast-backend/models"
)

type UpdateProgressInput struct {
	PositionSec int  `json:"position_sec" binding:"min=0"`
	Completed   bool `json:"completed"`
}

// PUT /episodes/:episode_id/progress
func UpdatePlayProgress(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	episodeID, err := uuid.Parse(c.Param("episode_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid episode_id"})
		return
	}

	var input UpdateProgressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := c.MustGet("db").(*gorm.DB)

	var episode models.Episode
	if err := db.First(&episode, "id = ?", episodeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "episode not found"})
		return
	}

	history := models.PlayHistory{
		UserID:      userID,
		EpisodeID:   episodeID,
		PositionSec: input.PositionSec,
		Completed:   input.Completed,
	}

	// First progress report of a listen counts as a play.
	var existing models.PlayHistory
	isNew := db.Where("user_id = ? AND episode_id = ?", userID, episodeID).First(&existing).Error != nil

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "episode_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"position_sec", "completed", "updated_at"}),
	}).Create(&history).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot save progress"})
		return
	}

	if isNew {
		db.Model(&models.Episode{}).
			Where("id = ?", episodeID).
			UpdateColumn("play_count", gorm.Expr("play_count + ?", 1))
		db.Model(&models.Story{}).
			Where("id = ?", episode.StoryID).
			UpdateColumn("play_count", gorm.Expr("play_count + ?", 1))
	}

	c.JSON(http.StatusOK, gin.H{"message": "progress saved"})
}

// GET /history
func GetPlayHistory(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	db := c.MustGet("db").(*gorm.DB)

	var history []models.PlayHistory
	if err := db.
		Preload("Episode").
		Preload("Episode.Story").
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&history).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot list play history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": history, "total": len(history)})
}
