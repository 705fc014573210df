package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/sarvcast/sarvcast-backend/config"
	"github.com/sarvcast/sarvcast-backend/models"
)

type CreateCategoryInput struct {
	Name    string `json:"name" binding:"required"`
	IconURL string `json:"icon_url"`
}

// POST /admin/categories
func CreateCategory(c *gin.Context) {
	var input CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var count int64
	config.DB.Model(&models.Category{}).Where("LOWER(name) = LOWER(?)", input.Name).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category already exists"})
		return
	}

	category := models.Category{
		Name:    input.Name,
		Slug:    slug.Make(input.Name),
		IconURL: input.IconURL,
		Status:  true,
	}

	if err := config.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot create category"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "category created", "category": category})
}

// GET /categories
func GetCategories(c *gin.Context) {
	query := config.DB.Model(&models.Category{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status == "true")
	}

	var categories []models.Category
	if err := query.Order("name ASC").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot list categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": categories, "total": len(categories)})
}

type UpdateCategoryInput struct {
	Name    *string `json:"name"`
	IconURL *string `json:"icon_url"`
}

// PUT /admin/categories/:id
func UpdateCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	var category models.Category
	if err := config.DB.First(&category, "id = ?", categoryID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}

	var input UpdateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		category.Name = *input.Name
		category.Slug = slug.Make(*input.Name)
	}
	if input.IconURL != nil {
		category.IconURL = *input.IconURL
	}

	if err := config.DB.Save(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "category updated", "category": category})
}

// PATCH /admin/categories/:id/toggle-status
func ToggleCategoryStatus(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	var category models.Category
	if err := config.DB.First(&category, "id = ?", categoryID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}

	category.Status = !category.Status
	if err := config.DB.Save(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "category status updated", "category": category})
}

// DELETE /admin/categories/:id
func DeleteCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category id"})
		return
	}

	res := config.DB.Delete(&models.Category{}, "id = ?", categoryID)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot delete category"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}
