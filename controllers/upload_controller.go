package controllers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sarvcast/sarvcast-backend/utils"
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// POST /admin/uploads/image (multipart/form-data, field: image)
// Uploads a timeline frame, cover or avatar and returns the public URL the
// client then references in segments and records.
func UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExts[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image type"})
		return
	}

	publicURL, err := utils.UploadImageToSupabase(fileHeader, uuid.New().String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot upload image"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": publicURL})
}
