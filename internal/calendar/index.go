package calendar

import "fmt"

// ItemsForDate: точный фильтр по дате.
func ItemsForDate(items []BookingItem, date Date) []BookingItem {
	var out []BookingItem
	for _, it := range items {
		if it.Date == date {
			out = append(out, it)
		}
	}
	return out
}

// EnumerateDates возвращает все даты от start до end включительно.
// end < start: ошибка вызывающей стороны, возвращается ErrInvalidDateRange.
func EnumerateDates(start, end Date) ([]Date, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: %s is before %s", ErrInvalidDateRange, end, start)
	}

	dates := make([]Date, 0, DateRange{Start: start, End: end}.Days())
	for d := start; !d.After(end); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return dates, nil
}

// DayIndex: брони, разложенные по датам. Строится один раз на агрегацию,
// чтобы не фильтровать весь список для каждого дня и слота.
type DayIndex struct {
	byDate map[Date][]BookingItem
}

func NewDayIndex(items []BookingItem) DayIndex {
	idx := DayIndex{byDate: make(map[Date][]BookingItem, len(items))}
	for _, it := range items {
		idx.byDate[it.Date] = append(idx.byDate[it.Date], it)
	}
	return idx
}

// Items возвращает брони дня в исходном порядке.
func (idx DayIndex) Items(date Date) []BookingItem {
	return idx.byDate[date]
}

func (idx DayIndex) SlotState(date Date) SlotState {
	return ResolveSlotState(idx.byDate[date])
}

// Len: количество различных дат в индексе.
func (idx DayIndex) Len() int {
	return len(idx.byDate)
}
