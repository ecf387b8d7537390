package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	db *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{db: db}
}

// Check answers the liveness probe and reports database reachability.
func (h *HealthController) Check(c *gin.Context) {
	var one int
	err := h.db.Raw("SELECT 1").Scan(&one).Error
	c.JSON(http.StatusOK, gin.H{
		"ok": true,
		"db": err == nil && one == 1,
	})
}
