package controllers

import (
	"math"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sarvcast/sarvcast-backend/config"
	"github.com/sarvcast/sarvcast-backend/models"
	"github.com/sarvcast/sarvcast-backend/services"
	"github.com/sarvcast/sarvcast-backend/utils"
)

// POST /admin/episodes (multipart/form-data)
// Fields: story_id, title, description, episode_number, use_image_timeline,
// is_premium, audio (file). The MP3 is uploaded to storage and its measured
// duration becomes the bound every timeline segment is validated against.
func CreateEpisodeWithUpload(c *gin.Context) {
	storyID, err := uuid.Parse(c.PostForm("story_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid story_id"})
		return
	}

	var story models.Story
	if err := config.DB.First(&story, "id = ?", storyID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "story not found"})
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	episodeNumber, _ := strconv.Atoi(c.DefaultPostForm("episode_number", "1"))
	if episodeNumber < 1 {
		episodeNumber = 1
	}

	userID, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
		return
	}

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "audio file is required"})
		return
	}
	if ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext != ".mp3" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only .mp3 audio is supported"})
		return
	}

	episodeID := uuid.New()
	audioURL, err := utils.UploadAudioToSupabase(fileHeader, episodeID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot upload audio file"})
		return
	}

	durationSec := 0
	if dur, err := services.GetMP3DurationFromUpload(fileHeader); err == nil {
		durationSec = int(math.Round(dur))
	}

	episode := models.Episode{
		ID:               episodeID,
		StoryID:          storyID,
		EpisodeNumber:    episodeNumber,
		Title:            title,
		Description:      c.PostForm("description"),
		AudioURL:         audioURL,
		DurationSec:      durationSec,
		CoverImage:       c.PostForm("cover_image"),
		UseImageTimeline: c.PostForm("use_image_timeline") == "true",
		IsPremium:        c.PostForm("is_premium") == "true",
		CreatedBy:        userID,
	}

	if err := config.DB.Create(&episode).Error; err != nil {
		// Do not leave the uploaded file orphaned.
		_ = utils.DeleteFileFromSupabase(audioURL)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot create episode"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "episode created",
		"episode": episode,
	})
}

// GET /admin/episodes?story_id=...
func GetEpisodes(c *gin.Context) {
	query := config.DB.Model(&models.Episode{})

	if storyIDStr := c.Query("story_id"); storyIDStr != "" {
		storyID, err := uuid.Parse(storyIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid story_id"})
			return
		}
		query = query.Where("story_id = ?", storyID)
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
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
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot count episodes"})
		return
	}

	var episodes []models.Episode
	if err := query.
		Order("episode_number ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&episodes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot list episodes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  episodes,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GET /episodes/:id
func GetEpisodeDetail(c *gin.Context) {
	episodeID, ok := episodeIDParam(c)
	if !ok {
		return
	}

	var episode models.Episode
	if err := config.DB.
		Preload("Story").
		First(&episode, "id = ?", episodeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "episode not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": episode})
}

type UpdateEpisodeInput struct {
	Title            *string `json:"title"`
	Description      *string `json:"description"`
	EpisodeNumber    *int    `json:"episode_number"`
	CoverImage       *string `json:"cover_image"`
	Status           *string `json:"status"`
	IsPremium        *bool   `json:"is_premium"`
	UseImageTimeline *bool   `json:"use_image_timeline"`
}

// PUT /admin/episodes/:id
func UpdateEpisode(c *gin.Context) {
	episodeID, ok := episodeIDParam(c)
	if !ok {
		return
	}

	var episode models.Episode
	if err := config.DB.First(&episode, "id = ?", episodeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "episode not found"})
		return
	}

	var input UpdateEpisodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Title != nil {
		episode.Title = *input.Title
	}
	if input.Description != nil {
		episode.Description = *input.Description
	}
	if input.EpisodeNumber != nil && *input.EpisodeNumber >= 1 {
		episode.EpisodeNumber = *input.EpisodeNumber
	}
	if input.CoverImage != nil {
		episode.CoverImage = *input.CoverImage
	}
	if input.Status != nil {
		episode.Status = *input.Status
		if *input.Status == "published" && episode.PublishedAt == nil {
			now := time.Now()
			episode.PublishedAt = &now
		}
	}
	if input.IsPremium != nil {
		episode.IsPremium = *input.IsPremium
	}
	if input.UseImageTimeline != nil {
		episode.UseImageTimeline = *input.UseImageTimeline
	}

	if err := config.DB.Save(&episode).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update episode"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "episode updated", "episode": episode})
}

// DELETE /admin/episodes/:id
func DeleteEpisode(c *gin.Context) {
	episodeID, ok := episodeIDParam(c)
	if !ok {
		return
	}

	var episode models.Episode
	if err := config.DB.First(&episode, "id = ?", episodeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "episode not found"})
		return
	}

	// Segments cascade with the episode.
	if err := config.DB.Delete(&episode).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot delete episode"})
		return
	}

	if episode.AudioURL != "" {
		_ = utils.DeleteFileFromSupabase(episode.AudioURL)
	}

	c.JSON(http.StatusOK, gin.H{"message": "episode deleted"})
}

// POST /admin/episodes/:id/script (multipart/form-data, field: script)
// Accepts the narration script as a PDF and stores its extracted text on the
// episode, so editors can line up voice actor segments against the script.
func UploadEpisodeScript(c *gin.Context) {
	episodeID, ok := episodeIDParam(c)
	if !ok {
		return
	}

	var episode models.Episode
	if err := config.DB.First(&episode, "id = ?", episodeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "episode not found"})
		return
	}

	fileHeader, err := c.FormFile("script")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "script file is required"})
		return
	}
	if ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext != ".pdf" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only .pdf scripts are supported"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot open uploaded file"})
		return
	}
	defer file.Close()

	text, err := services.ExtractTextFromPDF(file)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "cannot extract text from PDF"})
		return
	}

	episode.Script = text
	if err := config.DB.Save(&episode).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot save script"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "script extracted",
		"length":  len(text),
	})
}
