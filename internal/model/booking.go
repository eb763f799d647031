package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// bookings: родительская бронь, к которой относятся booking_items.
type Booking struct {
	ID           int64      `gorm:"primaryKey;autoIncrement"`
	InstructorID uuid.UUID  `gorm:"type:uuid;not null;index"`
	CustomerID   *uuid.UUID `gorm:"type:uuid;index"`

	// Чистые даты без времени: datatypes.Date
	StartDate *datatypes.Date `gorm:"type:date"`
	EndDate   *datatypes.Date `gorm:"type:date"`

	CreatedAt time.Time `gorm:"not null;default:now()"`

	Instructor *Instructor   `gorm:"foreignKey:InstructorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Items      []BookingItem `gorm:"foreignKey:BookingID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
