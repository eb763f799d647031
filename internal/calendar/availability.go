package calendar

import "math"

// AvailabilitySlot: сводка по одному типу окна за интервал.
type AvailabilitySlot struct {
	Name          string `json:"name"`
	IsAvailable   bool   `json:"isAvailable"`
	TotalDays     int    `json:"totalDays"`
	AvailableDays int    `json:"availableDays"`
}

// Percent: доля свободных дней, округлённая до целого процента.
func (s AvailabilitySlot) Percent() int {
	if s.TotalDays == 0 {
		return 0
	}
	return int(math.Round(float64(s.AvailableDays) / float64(s.TotalDays) * 100))
}

func (s AvailabilitySlot) FullyBooked() bool {
	return s.AvailableDays == 0
}

// AvailabilitySummary: свободность окон по интервалу дат.
type AvailabilitySummary struct {
	DateRange           DateRange          `json:"dateRange"`
	TotalDays           int                `json:"totalDays"`
	Slots               []AvailabilitySlot `json:"slots"`
	TotalAvailableHours float64            `json:"totalAvailableHours"`
}

// Summarize считает для каждого из StandardWindows число дней интервала,
// в которые окно не занято, и суммарные свободные часы.
func Summarize(items []BookingItem, start, end Date) (AvailabilitySummary, error) {
	dates, err := EnumerateDates(start, end)
	if err != nil {
		return AvailabilitySummary{}, err
	}

	idx := NewDayIndex(items)
	states := make([]SlotState, len(dates))
	for i, d := range dates {
		states[i] = idx.SlotState(d)
	}

	summary := AvailabilitySummary{
		DateRange: DateRange{Start: start, End: end},
		TotalDays: len(dates),
		Slots:     make([]AvailabilitySlot, 0, len(StandardWindows)),
	}

	for _, w := range StandardWindows {
		available := 0
		for _, st := range states {
			if !st.Booked(w.Kind) {
				available++
			}
		}
		summary.Slots = append(summary.Slots, AvailabilitySlot{
			Name:          w.Name,
			IsAvailable:   available > 0,
			TotalDays:     len(dates),
			AvailableDays: available,
		})
		summary.TotalAvailableHours += float64(available) * w.Hours
	}

	return summary, nil
}
