package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	db *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{db: db}
}

// GET /health
func (ctl *HealthController) Check(c *gin.Context) {
	status := "ok"
	code := http.StatusOK

	if sqlDB, err := ctl.db.DB(); err != nil || sqlDB.Ping() != nil {
		status = "database unreachable"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{"status": status, "time": time.Now().UTC()})
}
