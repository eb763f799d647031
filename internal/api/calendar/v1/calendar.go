package calendarv1

import "github.com/Leganyst/booking-calendar/internal/calendar"

// Даты во всех запросах: строки YYYY-MM-DD.

type GetAvailabilityRequest struct {
	InstructorID string `json:"instructor_id,omitempty" validate:"omitempty,uuid"`
	StartDate    string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate      string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

// SlotAvailability: сводка окна с готовыми процентами для отображения.
type SlotAvailability struct {
	calendar.AvailabilitySlot
	AvailablePercent int  `json:"percent"`
	IsFullyBooked    bool `json:"fullyBooked"`
}

type GetAvailabilityResponse struct {
	Summary calendar.AvailabilitySummary `json:"summary"`
	Slots   []SlotAvailability           `json:"slots"`
	// Число пересечений броней за интервал, только для информации.
	Conflicts int `json:"conflicts"`
}

type GetMonthGridRequest struct {
	Year  int `json:"year" validate:"min=1,max=9999"`
	Month int `json:"month" validate:"min=1,max=12"`
	// Пустое значение: текущая дата сервера (UTC).
	Today        string `json:"today,omitempty" validate:"omitempty,datetime=2006-01-02"`
	InstructorID string `json:"instructor_id,omitempty" validate:"omitempty,uuid"`
}

type GridDay struct {
	calendar.CalendarDay
	// Заполняется, только если в запросе указан инструктор.
	Slots *calendar.SlotState `json:"slots,omitempty"`
}

type GetMonthGridResponse struct {
	Year  int       `json:"year"`
	Month int       `json:"month"`
	Days  []GridDay `json:"days"`
}

type ExportCalendarRequest struct {
	InstructorID string `json:"instructor_id,omitempty" validate:"omitempty,uuid"`
	Format       string `json:"format" validate:"required"`
	StartDate    string `json:"start_date,omitempty" validate:"required_with=EndDate,omitempty,datetime=2006-01-02"`
	EndDate      string `json:"end_date,omitempty" validate:"required_with=StartDate,omitempty,datetime=2006-01-02"`
}

type ExportCalendarResponse struct {
	Filename string `json:"filename"`
	MimeType string `json:"mime_type"`
	Content  string `json:"content"`
}

type ListBookingItemsRequest struct {
	InstructorID string `json:"instructor_id,omitempty" validate:"omitempty,uuid"`
	StartDate    string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate      string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Page         int    `json:"page,omitempty" validate:"min=0,max=1000000"`
	PageSize     int    `json:"page_size,omitempty" validate:"min=0,max=500"`
}

type ListBookingItemsResponse struct {
	Items    []calendar.BookingItem `json:"items"`
	Page     int                    `json:"page"`
	PageSize int                    `json:"page_size"`
	Total    int                    `json:"total"`
	HasNext  bool                   `json:"has_next"`
	HasPrev  bool                   `json:"has_prev"`
}

type ListInstructorsRequest struct {
	Limit int `json:"limit,omitempty" validate:"min=0,max=500"`
}

type InstructorInfo struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name"`
	Disciplines []string `json:"disciplines"`
}

type ListInstructorsResponse struct {
	Instructors []InstructorInfo `json:"instructors"`
}
