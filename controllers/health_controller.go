package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sarvcast/sarvcast-backend/config"
)

// GET /health
func HealthCheck(c *gin.Context) {
	sqlDB, err := config.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
}
