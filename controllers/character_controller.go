package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sarvcast/sarvcast-backend/config"
	"github.com/sarvcast/sarvcast-backend/models"
)

type CreateCharacterInput struct {
	StoryID     uuid.UUID `json:"story_id" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
}

// POST /admin/characters
func CreateCharacter(c *gin.Context) {
	var input CreateCharacterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var story models.Story
	if err := config.DB.First(&story, "id = ?", input.StoryID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "story not found"})
		return
	}

	character := models.Character{
		StoryID:     input.StoryID,
		Name:        input.Name,
		Description: input.Description,
		ImageURL:    input.ImageURL,
	}

	if err := config.DB.Create(&character).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot create character"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "character created", "character": character})
}

// GET /stories/:id/characters
func GetStoryCharacters(c *gin.Context) {
	storyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid story id"})
		return
	}

	var characters []models.Character
	if err := config.DB.
		Where("story_id = ?", storyID).
		Order("name ASC").
		Find(&characters).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot list characters"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": characters, "total": len(characters)})
}

type UpdateCharacterInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
}

// PUT /admin/characters/:id
func UpdateCharacter(c *gin.Context) {
	characterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid character id"})
		return
	}

	var character models.Character
	if err := config.DB.First(&character, "id = ?", characterID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "character not found"})
		return
	}

	var input UpdateCharacterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Name != nil {
		character.Name = *input.Name
	}
	if input.Description != nil {
		character.Description = *input.Description
	}
	if input.ImageURL != nil {
		character.ImageURL = *input.ImageURL
	}

	if err := config.DB.Save(&character).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update character"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "character updated", "character": character})
}

// DELETE /admin/characters/:id
func DeleteCharacter(c *gin.Context) {
	characterID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid character id"})
		return
	}

	res := config.DB.Delete(&models.Character{}, "id = ?", characterID)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot delete character"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "character not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "character deleted"})
}
