package calendar

import (
	"fmt"
	"time"
)

// GridCells: 6 недель по 7 дней.
const GridCells = 42

// CalendarDay: ячейка месячной сетки.
type CalendarDay struct {
	Date           Date `json:"date"`
	DayNumber      int  `json:"dayNumber"`
	IsCurrentMonth bool `json:"isCurrentMonth"`
	IsToday        bool `json:"isToday"`
}

// MonthGrid фиксированного размера: длина сетки гарантируется типом.
type MonthGrid [GridCells]CalendarDay

// DaysInMonth: число дней в месяце с учётом високосных лет.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday: день недели первого числа (Sunday = 0).
func FirstWeekday(year int, month time.Month) time.Weekday {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday()
}

// BuildMonthGrid строит сетку месяца: хвост предыдущего месяца до первого
// воскресенья, все дни месяца, затем начало следующего до 42 ячеек.
// today передаётся явно; ячейка с этой датой получает IsToday.
func BuildMonthGrid(year int, month time.Month, today Date) (MonthGrid, error) {
	var grid MonthGrid
	if month < time.January || month > time.December {
		return grid, fmt.Errorf("%w: %d", ErrInvalidMonth, int(month))
	}

	lead := int(FirstWeekday(year, month))
	days := DaysInMonth(year, month)

	cur := NewDate(year, month, 1).AddDays(-lead)
	for i := range grid {
		grid[i] = CalendarDay{
			Date:           cur,
			DayNumber:      cur.Day,
			IsCurrentMonth: i >= lead && i < lead+days,
			IsToday:        cur == today,
		}
		cur = cur.AddDays(1)
	}

	return grid, nil
}
