package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Leganyst/booking-calendar/internal/calendar"
)

// Document: корневой объект JSON-выгрузки.
type Document struct {
	ExportedAt   time.Time              `json:"exportedAt"`
	DateRange    *calendar.DateRange    `json:"dateRange"`
	TotalItems   int                    `json:"totalItems"`
	BookingItems []calendar.BookingItem `json:"bookingItems"`
}

// ToJSON рендерит брони с отступом в два пробела. dateRange == null, если r == nil.
func ToJSON(items []calendar.BookingItem, r *calendar.DateRange, exportedAt time.Time) (string, error) {
	filtered := filterRange(items, r)
	if filtered == nil {
		filtered = []calendar.BookingItem{}
	}

	doc := Document{
		ExportedAt:   exportedAt.UTC(),
		DateRange:    r,
		TotalItems:   len(filtered),
		BookingItems: filtered,
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal export document: %w", err)
	}
	return string(raw), nil
}
