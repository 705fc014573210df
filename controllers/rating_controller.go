package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sarvcast/sarvcast-backend/models"
)

type RateStoryInput struct {
	Score  int    `json:"score" binding:"required,min=1,max=5"`
	Review string `json:"review"`
}

// POST /stories/:id/rating
// One rating per user per story; submitting again updates the existing one.
func RateStory(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	storyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid story id"})
		return
	}

	var input RateStoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	db := c.MustGet("db").(*gorm.DB)

	var story models.Story
	if err := db.First(&story, "id = ?", storyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "story not found"})
		return
	}

	var rating models.Rating
	err = db.Where("user_id = ? AND story_id = ?", userID, storyID).First(&rating).Error
	if err == nil {
		rating.Score = input.Score
		rating.Review = input.Review
		err = db.Save(&rating).Error
	} else {
		rating = models.Rating{
			UserID:  userID,
			StoryID: storyID,
			Score:   input.Score,
			Review:  input.Review,
		}
		err = db.Create(&rating).Error
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot save rating"})
		return
	}

	// Recompute the story's aggregate from the ratings table.
	var agg struct {
		Avg   float64
		Count int64
	}
	db.Model(&models.Rating{}).
		Select("COALESCE(AVG(score), 0) AS avg, COUNT(*) AS count").
		Where("story_id = ?", storyID).
		Scan(&agg)

	db.Model(&models.Story{}).
		Where("id = ?", storyID).
		Updates(map[string]interface{}{
			"rating_avg":   agg.Avg,
			"rating_count": agg.Count,
		})

	c.JSON(http.StatusOK, gin.H{
		"message":      "rating saved",
		"rating":       rating,
		"rating_avg":   agg.Avg,
		"rating_count": agg.Count,
	})
}

// GET /stories/:id/ratings
func GetStoryRatings(c *gin.Context) {
	storyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid story id"})
		return
	}

	db := c.MustGet("db").(*gorm.DB)

	var ratings []models.Rating
	if err := db.
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, full_name, avatar_url")
		}).
		Where("story_id = ?", storyID).
		Order("created_at DESC").
		Find(&ratings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot list ratings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": ratings, "total": len(ratings)})
}
