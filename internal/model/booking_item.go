package model

import (
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/Leganyst/booking-calendar/internal/calendar"
)

// booking_items: одна забронированная ячейка дня.
type BookingItem struct {
	ID            int64 `gorm:"primaryKey;autoIncrement"`
	BookingID     int64 `gorm:"not null;index"`
	BookingSlotID int64 `gorm:"not null"`
	// 1: весь день, 2..5: утро, обед, день, вечер.
	DaySlotID int `gorm:"not null"`

	Date      datatypes.Date `gorm:"type:date;not null;index"`
	StartTime datatypes.Time `gorm:"type:time;not null"`
	EndTime   datatypes.Time `gorm:"type:time;not null"`

	TotalMinutes int     `gorm:"not null"`
	HourlyRate   float64 `gorm:"type:numeric(10,2);not null;default:0"`
	OfferID      int64   `gorm:"index"`

	CreatedAt time.Time `gorm:"not null;default:now()"`

	Booking *Booking `gorm:"foreignKey:BookingID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// ToCalendar переводит строку таблицы в значение ядра.
func (it BookingItem) ToCalendar() calendar.BookingItem {
	return calendar.BookingItem{
		ID:            it.ID,
		BookingID:     it.BookingID,
		BookingSlotID: it.BookingSlotID,
		DaySlotID:     calendar.DaySlot(it.DaySlotID),
		Date:          calendar.DateOf(time.Time(it.Date)),
		StartTime:     clockString(it.StartTime),
		EndTime:       clockString(it.EndTime),
		TotalMinutes:  it.TotalMinutes,
		HourlyRate:    it.HourlyRate,
		OfferID:       it.OfferID,
		CreatedAt:     it.CreatedAt.UTC(),
	}
}

// NewBookingItem: обратное преобразование, используется при записи.
func NewBookingItem(it calendar.BookingItem) (*BookingItem, error) {
	start, err := calendar.ParseClock(it.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := calendar.ParseClock(it.EndTime)
	if err != nil {
		return nil, err
	}
	return &BookingItem{
		ID:            it.ID,
		BookingID:     it.BookingID,
		BookingSlotID: it.BookingSlotID,
		DaySlotID:     int(it.DaySlotID),
		Date:          datatypes.Date(it.Date.Time()),
		StartTime:     datatypes.Time(start),
		EndTime:       datatypes.Time(end),
		TotalMinutes:  it.TotalMinutes,
		HourlyRate:    it.HourlyRate,
		OfferID:       it.OfferID,
		CreatedAt:     it.CreatedAt,
	}, nil
}

// clockString: HH:MM, секунды добавляются только если они есть.
func clockString(t datatypes.Time) string {
	d := time.Duration(t)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	if s == 0 {
		return fmt.Sprintf("%02d:%02d", h, m)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
