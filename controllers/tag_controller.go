package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"

	"github.com/sarvcast/sarvcast-backend/config"
	"github.com/sarvcast/sarvcast-backend/models"
)

type CreateTagInput struct {
	Name string `json:"name" binding:"required"`
}

// POST /admin/tags
func CreateTag(c *gin.Context) {
	var input CreateTagInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tag := models.Tag{
		Name: input.Name,
		Slug: slug.Make(input.Name),
	}

	if err := config.DB.Create(&tag).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tag already exists"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "tag created", "tag": tag})
}

// GET /tags
func GetTags(c *gin.Context) {
	query := config.DB.Model(&models.Tag{})

	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	var tags []models.Tag
	if err := query.Order("name ASC").Find(&tags).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot list tags"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tags, "total": len(tags)})
}
