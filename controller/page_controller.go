package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ristorante/model"
)

type PageController struct {
	db *gorm.DB
}

func NewPageController(db *gorm.DB) *PageController {
	return &PageController{db: db}
}

// Read looks up page content by slug. An unknown slug is a valid empty
// page, not an error.
func (p *PageController) Read(c *gin.Context) {
	slug := c.Param("slug")

	var page model.SitePage
	if err := p.db.First(&page, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{
				"slug":       slug,
				"data":       gin.H{},
				"updated_at": nil,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// Upsert inserts or replaces the page content under a slug. The body
// must be a JSON object; an unreadable body counts as an empty one.
func (p *PageController) Upsert(c *gin.Context) {
	slug := c.Param("slug")

	raw, _ := c.GetRawData()
	data := model.JSONMap{}
	var parsed interface{}
	if err := json.Unmarshal(raw, &parsed); err == nil {
		obj, ok := parsed.(map[string]interface{})
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "body must be a JSON object"})
			return
		}
		data = model.JSONMap(obj)
	}

	page := model.SitePage{
		Slug:      slug,
		Data:      data,
		UpdatedAt: time.Now(),
	}
	if err := p.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&page).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, page)
}
