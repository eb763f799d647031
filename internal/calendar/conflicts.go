package calendar

import "sort"

// ConflictReason: почему две брони одного дня считаются пересекающимися.
type ConflictReason string

const (
	ConflictSameSlot    ConflictReason = "same_slot"
	ConflictTimeOverlap ConflictReason = "time_overlap"
)

// SlotConflict: пара броней одного дня, претендующих на одно и то же время.
// Только отчёт, занятость всё равно считается через OR.
type SlotConflict struct {
	Date   Date
	First  BookingItem
	Second BookingItem
	Reason ConflictReason
}

// FindConflicts ищет пересечения внутри каждого дня. Сначала проверяется
// тип слота (FullDay перекрывает любой), затем настенное время.
// Брони с неразборчивым временем проверяются только по типу слота.
func FindConflicts(items []BookingItem) []SlotConflict {
	idx := NewDayIndex(items)

	dates := make([]Date, 0, idx.Len())
	for d := range idx.byDate {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	var out []SlotConflict
	for _, d := range dates {
		day := idx.Items(d)
		for i := 0; i < len(day); i++ {
			for j := i + 1; j < len(day); j++ {
				if reason, ok := conflictBetween(day[i], day[j]); ok {
					out = append(out, SlotConflict{Date: d, First: day[i], Second: day[j], Reason: reason})
				}
			}
		}
	}
	return out
}

func conflictBetween(a, b BookingItem) (ConflictReason, bool) {
	if !a.DaySlotID.Valid() || !b.DaySlotID.Valid() {
		return "", false
	}
	if a.DaySlotID == b.DaySlotID || a.DaySlotID == DaySlotFullDay || b.DaySlotID == DaySlotFullDay {
		return ConflictSameSlot, true
	}

	ra, errA := a.TimeRange()
	rb, errB := b.TimeRange()
	if errA != nil || errB != nil {
		return "", false
	}
	if has, _ := HasOverlap(ra, []TimeRange{rb}, false); has {
		return ConflictTimeOverlap, true
	}
	return "", false
}
