package model

import "time"

type ReservationStatus string

const (
	ReservationNew       ReservationStatus = "new"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// IsValid reports whether s is one of the three known statuses.
// Comparison is case-sensitive.
func (s ReservationStatus) IsValid() bool {
	switch s {
	case ReservationNew, ReservationConfirmed, ReservationCancelled:
		return true
	}
	return false
}

type Reservation struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	FullName   string            `gorm:"not null" json:"full_name"`
	Phone      string            `gorm:"not null" json:"phone"`
	People     int               `gorm:"not null" json:"people"`
	ReservedAt time.Time         `gorm:"not null" json:"reserved_at"`
	Notes      *string           `json:"notes"`
	Status     ReservationStatus `gorm:"not null" json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
}
