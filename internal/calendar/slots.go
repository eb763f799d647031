package calendar

import "time"

// DaySlot: тип слота из справочника day_slots.
type DaySlot int

const (
	DaySlotFullDay   DaySlot = 1
	DaySlotMorning   DaySlot = 2
	DaySlotLunch     DaySlot = 3
	DaySlotAfternoon DaySlot = 4
	DaySlotEvening   DaySlot = 5
)

// Label: человекочитаемое имя типа слота; для неизвестных значений "Unknown".
func (s DaySlot) Label() string {
	switch s {
	case DaySlotFullDay:
		return "Full Day"
	case DaySlotMorning:
		return "Morning"
	case DaySlotLunch:
		return "Lunch"
	case DaySlotAfternoon:
		return "Afternoon"
	case DaySlotEvening:
		return "Evening"
	default:
		return "Unknown"
	}
}

func (s DaySlot) Valid() bool {
	return s >= DaySlotFullDay && s <= DaySlotEvening
}

// BookingItem: строка booking_items в том виде, в каком её отдаёт слой доступа к данным.
type BookingItem struct {
	ID            int64     `json:"id"`
	BookingID     int64     `json:"booking_id"`
	BookingSlotID int64     `json:"booking_slot_id"`
	DaySlotID     DaySlot   `json:"day_slot_id"`
	Date          Date      `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	TotalMinutes  int       `json:"total_minutes"`
	HourlyRate    float64   `json:"hourly_rate"`
	OfferID       int64     `json:"offer_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// SlotState: занятость четырёх дневных окон.
type SlotState struct {
	Morning   bool `json:"morning"`
	Lunch     bool `json:"lunch"`
	Afternoon bool `json:"afternoon"`
	Evening   bool `json:"evening"`
}

// Booked сообщает, занято ли окно kind. Для FullDay: заняты ли все четыре.
func (s SlotState) Booked(kind DaySlot) bool {
	switch kind {
	case DaySlotFullDay:
		return s.Morning && s.Lunch && s.Afternoon && s.Evening
	case DaySlotMorning:
		return s.Morning
	case DaySlotLunch:
		return s.Lunch
	case DaySlotAfternoon:
		return s.Afternoon
	case DaySlotEvening:
		return s.Evening
	default:
		return false
	}
}

// ResolveSlotState сворачивает брони одного дня в вектор занятости.
// Флаги только включаются, поэтому порядок items и дубли не важны.
// Неизвестные day_slot_id пропускаются.
func ResolveSlotState(items []BookingItem) SlotState {
	var st SlotState
	for _, it := range items {
		switch it.DaySlotID {
		case DaySlotFullDay:
			st.Morning = true
			st.Lunch = true
			st.Afternoon = true
			st.Evening = true
		case DaySlotMorning:
			st.Morning = true
		case DaySlotLunch:
			st.Lunch = true
		case DaySlotAfternoon:
			st.Afternoon = true
		case DaySlotEvening:
			st.Evening = true
		}
	}
	return st
}

// SlotWindow: каноническое окно дня с фиксированной длительностью.
type SlotWindow struct {
	Kind  DaySlot
	Name  string
	Start string
	End   string
	Hours float64
}

// StandardWindows: четыре окна в порядке следования в течение дня.
// Часы заданы константами и не зависят от фактического времени броней.
var StandardWindows = []SlotWindow{
	{Kind: DaySlotMorning, Name: "Morning", Start: "09:00", End: "12:00", Hours: 3},
	{Kind: DaySlotLunch, Name: "Lunch", Start: "12:00", End: "13:30", Hours: 1.5},
	{Kind: DaySlotAfternoon, Name: "Afternoon", Start: "14:00", End: "17:00", Hours: 3},
	{Kind: DaySlotEvening, Name: "Evening", Start: "17:00", End: "19:00", Hours: 2},
}
