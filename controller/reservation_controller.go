package controller

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ristorante/model"
)

const (
	reservationMinPeople = 1
	reservationMaxPeople = 30

	reservationListDefault = 50
	reservationListMax     = 200
)

type ReservationController struct {
	db *gorm.DB
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{db: db}
}

type reservationInput struct {
	Name   string      `json:"name"`
	Phone  string      `json:"phone"`
	Date   string      `json:"date"`
	Time   string      `json:"time"`
	People interface{} `json:"people"`
	Notes  string      `json:"notes"`
}

// parsePeople accepts a JSON number or numeric string; a missing value
// defaults to 2.
func parsePeople(v interface{}) (int, bool) {
	var n float64
	switch p := v.(type) {
	case nil:
		return 2, true
	case float64:
		n = p
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, false
		}
		n = f
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	if n < reservationMinPeople || n > reservationMaxPeople {
		return 0, false
	}
	return int(n), true
}

// parseReservedAt combines the caller's date and time strings into one
// local instant. Seconds are optional.
func parseReservedAt(date, clock string) (time.Time, error) {
	s := date + " " + clock
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("invalid date or time")
}

// Create takes a public reservation request. A malformed JSON body is
// treated as an empty one and fails field validation.
func (r *ReservationController) Create(c *gin.Context) {
	var in reservationInput
	_ = c.ShouldBindJSON(&in)

	name := strings.TrimSpace(in.Name)
	phone := strings.TrimSpace(in.Phone)
	date := strings.TrimSpace(in.Date)
	clock := strings.TrimSpace(in.Time)
	if name == "" || phone == "" || date == "" || clock == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, phone, date and time required"})
		return
	}

	people, ok := parsePeople(in.People)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "people must be a number between 1 and 30"})
		return
	}

	reservedAt, err := parseReservedAt(date, clock)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date or time"})
		return
	}

	res := model.Reservation{
		FullName:   name,
		Phone:      phone,
		People:     people,
		ReservedAt: reservedAt,
		Status:     model.ReservationNew,
	}
	if notes := strings.TrimSpace(in.Notes); notes != "" {
		res.Notes = &notes
	}

	if err := r.db.Create(&res).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":         res.ID,
		"created_at": res.CreatedAt,
		"status":     res.Status,
	})
}

// List returns the most recent reservations, newest first.
func (r *ReservationController) List(c *gin.Context) {
	limit := reservationListDefault
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > reservationListMax {
		limit = reservationListMax
	}

	var reservations []model.Reservation
	if err := r.db.Order("created_at DESC").Limit(limit).Find(&reservations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": reservations})
}

// UpdateStatus moves a reservation between new, confirmed and cancelled.
func (r *ReservationController) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	var in struct {
		Status model.ReservationStatus `json:"status"`
	}
	_ = c.ShouldBindJSON(&in)
	if !in.Status.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	res := r.db.Model(&model.Reservation{}).Where("id = ?", id).Update("status", in.Status)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": in.Status})
}
