package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"ristorante/model"
)

type MenuController struct {
	db *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{db: db}
}

// menuItemInput distinguishes omitted fields (nil) from supplied ones so
// partial updates leave untouched columns alone. Allergens stay raw
// because key presence matters even for an empty set.
type menuItemInput struct {
	Name          *string         `json:"name"`
	NameEN        *string         `json:"name_en"`
	Description   *string         `json:"description"`
	DescriptionEN *string         `json:"description_en"`
	Category      *string         `json:"category"`
	CategoryEN    *string         `json:"category_en"`
	PriceCents    *int64          `json:"price_cents"`
	Position      *int            `json:"position"`
	IsAvailable   *bool           `json:"is_available"`
	ImageURL      *string         `json:"image_url"`
	Allergens     json.RawMessage `json:"allergens"`
}

// allergens returns the normalized set and whether the key was present
// in the request body at all.
func (in *menuItemInput) allergens() (model.AllergenList, bool) {
	if in.Allergens == nil {
		return nil, false
	}
	var tags []string
	_ = json.Unmarshal(in.Allergens, &tags)
	return model.NormalizeAllergens(tags), true
}

// List returns the available items in menu order.
func (m *MenuController) List(c *gin.Context) {
	var items []model.MenuItem
	if err := m.db.Where("is_available = ?", true).
		Order("category, position").
		Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (m *MenuController) Create(c *gin.Context) {
	var in menuItemInput
	_ = c.ShouldBindJSON(&in)

	if in.Name == nil || strings.TrimSpace(*in.Name) == "" || in.PriceCents == nil || *in.PriceCents < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and price_cents required"})
		return
	}

	item := model.MenuItem{
		Name:        strings.TrimSpace(*in.Name),
		PriceCents:  *in.PriceCents,
		IsAvailable: true,
		Allergens:   model.AllergenList{},
	}
	if in.NameEN != nil {
		item.NameEN = *in.NameEN
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.DescriptionEN != nil {
		item.DescriptionEN = *in.DescriptionEN
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.CategoryEN != nil {
		item.CategoryEN = *in.CategoryEN
	}
	if in.Position != nil {
		item.Position = *in.Position
	}
	if in.IsAvailable != nil {
		item.IsAvailable = *in.IsAvailable
	}
	if in.ImageURL != nil && *in.ImageURL != "" {
		item.ImageURL = in.ImageURL
	}
	if tags, ok := in.allergens(); ok {
		item.Allergens = tags
	}

	if err := m.db.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Update applies a partial update: absent fields keep their stored
// value, the allergen set is replaced whenever the key is present.
func (m *MenuController) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	var in menuItemInput
	_ = c.ShouldBindJSON(&in)

	var item model.MenuItem
	if err := m.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		item.Name = strings.TrimSpace(*in.Name)
	}
	if in.NameEN != nil {
		item.NameEN = *in.NameEN
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.DescriptionEN != nil {
		item.DescriptionEN = *in.DescriptionEN
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.CategoryEN != nil {
		item.CategoryEN = *in.CategoryEN
	}
	if in.PriceCents != nil {
		if *in.PriceCents < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price_cents must be non-negative"})
			return
		}
		item.PriceCents = *in.PriceCents
	}
	if in.Position != nil {
		item.Position = *in.Position
	}
	if in.IsAvailable != nil {
		item.IsAvailable = *in.IsAvailable
	}
	if in.ImageURL != nil {
		item.ImageURL = in.ImageURL
	}
	if tags, ok := in.allergens(); ok {
		item.Allergens = tags
	}

	if err := m.db.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (m *MenuController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	res := m.db.Delete(&model.MenuItem{}, id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Import bulk-creates menu items from an uploaded .xlsx workbook. Rows
// missing a name or a parseable price are skipped, not rejected.
func (m *MenuController) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	defer file.Close()

	xl, err := excelize.OpenReader(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid xlsx file"})
		return
	}
	defer xl.Close()

	rows, err := xl.GetRows("Sheet1")
	if err != nil || len(rows) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Sheet1 must have a header and at least one data row"})
		return
	}

	cell := func(row []string, i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	var items []model.MenuItem
	for _, row := range rows[1:] {
		name := cell(row, 0)
		price, perr := strconv.ParseInt(cell(row, 6), 10, 64)
		if name == "" || perr != nil || price < 0 {
			continue
		}
		position, _ := strconv.Atoi(cell(row, 7))

		items = append(items, model.MenuItem{
			Name:          name,
			NameEN:        cell(row, 1),
			Description:   cell(row, 2),
			DescriptionEN: cell(row, 3),
			Category:      cell(row, 4),
			CategoryEN:    cell(row, 5),
			PriceCents:    price,
			Position:      position,
			IsAvailable:   true,
			Allergens:     model.NormalizeAllergens(strings.Split(cell(row, 8), ",")),
		})
	}

	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no valid rows"})
		return
	}
	if err := m.db.Create(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"count": len(items)})
}
