package handlers

import (
	"net/http"
	"time"

	"newsroom-backend/pkg/cache"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetStatus reports storage and cache availability as explicit states so
// clients can tell "no data" apart from "storage down".
func GetStatus(db *gorm.DB, cacheService *cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := gin.H{
			"backend":  "running",
			"database": "unavailable",
			"cache":    "disabled",
			"time":     time.Now().UTC().Format(time.RFC3339),
		}

		if db != nil {
			if sqlDB, err := db.DB(); err == nil && sqlDB.PingContext(c.Request.Context()) == nil {
				status["database"] = "connected"
			}
		}

		if cacheService.Enabled() {
			if ok, _ := cacheService.Ping(); ok {
				status["cache"] = "connected"
			} else {
				status["cache"] = "unavailable"
			}
		}

		code := http.StatusOK
		if status["database"] != "connected" {
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, status)
	}
}
