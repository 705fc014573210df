package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/sarvcast/sarvcast-backend/config"
	"github.com/sarvcast/sarvcast-backend/models"
)

type CreateStoryInput struct {
	Title       string      `json:"title" binding:"required"`
	Subtitle    string      `json:"subtitle"`
	Description string      `json:"description"`
	AgeGroup    string      `json:"age_group"`
	CoverImage  string      `json:"cover_image"`
	CategoryIDs []uuid.UUID `json:"category_ids"`
	TagIDs      []uuid.UUID `json:"tag_ids"`
}

type UpdateStoryInput struct {
	Title       *string     `json:"title"`
	Subtitle    *string     `json:"subtitle"`
	Description *string     `json:"description"`
	AgeGroup    *string     `json:"age_group"`
	CoverImage  *string     `json:"cover_image"`
	CategoryIDs []uuid.UUID `json:"category_ids"`
	TagIDs      []uuid.UUID `json:"tag_ids"`
}

// POST /admin/stories
func CreateStory(c *gin.Context) {
	var input CreateStoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}

	var count int64
	config.DB.Model(&models.Story{}).Where("LOWER(title) = LOWER(?)", input.Title).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a story with this title already exists"})
		return
	}

	story := models.Story{
		Title:       input.Title,
		Subtitle:    input.Subtitle,
		Slug:        slug.Make(input.Title),
		Description: input.Description,
		AgeGroup:    input.AgeGroup,
		CoverImage:  input.CoverImage,
		Status:      "draft",
		CreatedBy:   userID,
	}

	if err := config.DB.Create(&story).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot create story"})
		return
	}

	if len(input.CategoryIDs) > 0 {
		var categories []models.Category
		config.DB.Find(&categories, input.CategoryIDs)
		config.DB.Model(&story).Association("Categories").Replace(categories)
	}
	if len(input.TagIDs) > 0 {
		var tags []models.Tag
		config.DB.Find(&tags, input.TagIDs)
		config.DB.Model(&story).Association("Tags").Replace(tags)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "story created",
		"story":   story,
	})
}

// GET /stories
func GetStories(c *gin.Context) {
	db := config.DB

	query := db.Model(&models.Story{}).
		Preload("Categories").
		Preload("Tags")

	// Listeners only see published stories; editors and admins see all.
	role := c.GetString("role")
	if role != string(models.RoleAdmin) && role != string(models.RoleEditor) {
		query = query.Where("stories.status = ?", "published")
	}

	if status := c.Query("status"); status != "" && (role == string(models.RoleAdmin) || role == string(models.RoleEditor)) {
		query = query.Where("stories.status = ?", status)
	}

	if search := c.Query("search"); search != "" {
		query = query.Where("(stories.title ILIKE ? OR stories.description ILIKE ?)", "%"+search+"%", "%"+search+"%")
	}

	if ageGroup := c.Query("age_group"); ageGroup != "" {
		query = query.Where("stories.age_group = ?", ageGroup)
	}

	if category := c.Query("category"); category != "" {
		query = query.
			Joins("JOIN story_categories ON story_categories.story_id = stories.id").
			Joins("JOIN categories ON categories.id = story_categories.category_id").
			Where("categories.slug = ?", category)
	}

	fromDateStr := c.Query("from_date")
	toDateStr := c.Query("to_date")
	if fromDateStr != "" || toDateStr != "" {
		const layout = "2006-01-02"
		if fromDateStr != "" {
			if fromDate, err := time.Parse(layout, fromDateStr); err == nil {
				query = query.Where("stories.created_at >= ?", fromDate)
			}
		}
		if toDateStr != "" {
			if toDate, err := time.Parse(layout, toDateStr); err == nil {
				toDate = toDate.Add(24 * time.Hour)
				query = query.Where("stories.created_at < ?", toDate)
			}
		}
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot count stories"})
		return
	}

	var stories []models.Story
	if err := query.
		Order("stories.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&stories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot list stories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  stories,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GET /stories/:id
func GetStoryDetail(c *gin.Context) {
	storyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid story id"})
		return
	}

	var story models.Story
	if err := config.DB.
		Preload("Categories").
		Preload("Tags").
		Preload("Characters").
		Preload("Episodes", func(db *gorm.DB) *gorm.DB {
			return db.Order("episode_number ASC")
		}).
		First(&story, "id = ?", storyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "story not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": story})
}

// PUT /admin/stories/:id
func UpdateStory(c *gin.Context) {
	storyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid story id"})
		return
	}

	var story models.Story
	if err := config.DB.First(&story, "id = ?", storyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "story not found"})
		return
	}

	var input UpdateStoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Title != nil {
		story.Title = *input.Title
		story.Slug = slug.Make(*input.Title)
	}
	if input.Subtitle != nil {
		story.Subtitle = *input.Subtitle
	}
	if input.Description != nil {
		story.Description = *input.Description
	}
	if input.AgeGroup != nil {
		story.AgeGroup = *input.AgeGroup
	}
	if input.CoverImage != nil {
		story.CoverImage = *input.CoverImage
	}

	if err := config.DB.Save(&story).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update story"})
		return
	}

	if input.CategoryIDs != nil {
		var categories []models.Category
		config.DB.Find(&categories, input.CategoryIDs)
		config.DB.Model(&story).Association("Categories").Replace(categories)
	}
	if input.TagIDs != nil {
		var tags []models.Tag
		config.DB.Find(&tags, input.TagIDs)
		config.DB.Model(&story).Association("Tags").Replace(tags)
	}

	c.JSON(http.StatusOK, gin.H{"message": "story updated", "story": story})
}

// PATCH /admin/stories/:id/publish
func PublishStory(c *gin.Context) {
	storyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid story id"})
		return
	}

	var story models.Story
	if err := config.DB.First(&story, "id = ?", storyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "story not found"})
		return
	}

	now := time.Now()
	story.Status = "published"
	story.PublishedAt = &now
	if err := config.DB.Save(&story).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot publish story"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "story published", "story": story})
}

// DELETE /admin/stories/:id
func DeleteStory(c *gin.Context) {
	storyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid story id"})
		return
	}

	var story models.Story
	if err := config.DB.First(&story, "id = ?", storyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "story not found"})
		return
	}

	// Episodes, characters and their segments cascade with the story.
	if err := config.DB.Select("Episodes", "Characters").Delete(&story).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot delete story"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "story deleted"})
}
