package calendar

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidClock = errors.New("invalid wall-clock time")

// TimeRange представляет временной интервал [Start, End).
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange создаёт интервал и делает простую валидацию.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return TimeRange{}, ErrInvalidDateRange
	}
	return TimeRange{Start: start, End: end}, nil
}

// ParseClock разбирает HH:MM или HH:MM:SS и возвращает смещение от полуночи.
func ParseClock(s string) (time.Duration, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
}

// At склеивает дату и настенное время. Часовой пояс не учитывается:
// результат всегда в UTC.
func (d Date) At(clock string) (time.Time, error) {
	off, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return d.Time().Add(off), nil
}

// TimeRange брони по её start_time/end_time.
func (it BookingItem) TimeRange() (TimeRange, error) {
	start, err := it.Date.At(it.StartTime)
	if err != nil {
		return TimeRange{}, fmt.Errorf("booking item %d start: %w", it.ID, err)
	}
	end, err := it.Date.At(it.EndTime)
	if err != nil {
		return TimeRange{}, fmt.Errorf("booking item %d end: %w", it.ID, err)
	}
	return NewTimeRange(start, end)
}

// HasOverlap проверяет, пересекается ли newRange с existing.
// inclusive = true: касание концами считается пересечением.
func HasOverlap(
	newRange TimeRange,
	existing []TimeRange,
	inclusive bool,
) (bool, []TimeRange) {
	var conflicts []TimeRange

	for _, tr := range existing {
		if rangesOverlap(newRange, tr, inclusive) {
			conflicts = append(conflicts, tr)
		}
	}

	return len(conflicts) > 0, conflicts
}

func rangesOverlap(a, b TimeRange, inclusive bool) bool {
	if inclusive {
		return !a.Start.After(b.End) && !b.Start.After(a.End)
	}
	// Полуоткрытые интервалы.
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// FormatRange: "Mon, 2025-09-08, 09:00–12:00".
func FormatRange(tr TimeRange) string {
	return fmt.Sprintf("%s, %s, %s–%s",
		tr.Start.Format("Mon"),
		tr.Start.Format(DateLayout),
		tr.Start.Format("15:04"),
		tr.End.Format("15:04"),
	)
}
