package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/sarvcast/sarvcast-backend/config"
	"github.com/sarvcast/sarvcast-backend/models"
)

type CreatePersonInput struct {
	FullName string `json:"full_name" binding:"required"`
	Bio      string `json:"bio"`
	ImageURL string `json:"image_url"`
}

// POST /admin/people
func CreatePerson(c *gin.Context) {
	var input CreatePersonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	person := models.Person{
		FullName: input.FullName,
		Slug:     slug.Make(input.FullName),
		Bio:      input.Bio,
		ImageURL: input.ImageURL,
		Status:   true,
	}

	if err := config.DB.Create(&person).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot create person"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "person created", "person": person})
}

// GET /people
func GetPeople(c *gin.Context) {
	query := config.DB.Model(&models.Person{})

	if search := c.Query("search"); search != "" {
		query = query.Where("full_name ILIKE ?", "%"+search+"%")
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status == "true")
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot count people"})
		return
	}

	var people []models.Person
	if err := query.
		Order("full_name ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&people).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot list people"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": people, "total": total, "page": page, "limit": limit})
}

// GET /people/:id
func GetPersonDetail(c *gin.Context) {
	personID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid person id"})
		return
	}

	var person models.Person
	if err := config.DB.
		Preload("Segments").
		First(&person, "id = ?", personID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "person not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": person})
}

type UpdatePersonInput struct {
	FullName *string `json:"full_name"`
	Bio      *string `json:"bio"`
	ImageURL *string `json:"image_url"`
	Status   *bool   `json:"status"`
}

// PUT /admin/people/:id
func UpdatePerson(c *gin.Context) {
	personID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid person id"})
		return
	}

	var person models.Person
	if err := config.DB.First(&person, "id = ?", personID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "person not found"})
		return
	}

	var input UpdatePersonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.FullName != nil {
		person.FullName = *input.FullName
		person.Slug = slug.Make(*input.FullName)
	}
	if input.Bio != nil {
		person.Bio = *input.Bio
	}
	if input.ImageURL != nil {
		person.ImageURL = *input.ImageURL
	}
	if input.Status != nil {
		person.Status = *input.Status
	}

	if err := config.DB.Save(&person).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update person"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "person updated", "person": person})
}

// DELETE /admin/people/:id
func DeletePerson(c *gin.Context) {
	personID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid person id"})
		return
	}

	// People referenced by voice actor segments must not disappear under a
	// timeline; the FK is RESTRICT, so surface a friendly error instead.
	var segments int64
	config.DB.Model(&models.EpisodeVoiceActor{}).Where("person_id = ?", personID).Count(&segments)
	if segments > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "person is assigned to voice actor segments and cannot be deleted"})
		return
	}

	res := config.DB.Delete(&models.Person{}, "id = ?", personID)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot delete person"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "person not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "person deleted"})
}
