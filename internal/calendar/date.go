package calendar

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrInvalidMonth     = errors.New("invalid month")
)

// DateLayout: канонический формат календарной даты.
const DateLayout = "2006-01-02"

// Date: календарный день без времени и часового пояса.
// Вся арифметика ведётся в UTC, поэтому результат не зависит от локали хоста.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate нормализует компоненты так же, как time.Date (32 января -> 1 февраля).
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf возвращает календарный день t в его собственной локации.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate принимает только строгий YYYY-MM-DD.
func ParseDate(s string) (Date, error) {
	if len(s) != len(DateLayout) {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateOf(t), nil
}

// MustParseDate: для констант и тестов.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Time возвращает полночь дня в UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// Compare возвращает -1, 0 или 1.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return cmpInt(d.Year, other.Year)
	case d.Month != other.Month:
		return cmpInt(int(d.Month), int(other.Month))
	default:
		return cmpInt(d.Day, other.Day)
	}
}

func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }
func (d Date) After(other Date) bool  { return d.Compare(other) > 0 }

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

const secondsPerDay = 24 * 60 * 60

// DateRange: включающий интервал дат [Start, End].
type DateRange struct {
	Start Date `json:"startDate"`
	End   Date `json:"endDate"`
}

// NewDateRange проверяет порядок границ.
func NewDateRange(start, end Date) (DateRange, error) {
	if end.Before(start) {
		return DateRange{}, fmt.Errorf("%w: %s is before %s", ErrInvalidDateRange, end, start)
	}
	return DateRange{Start: start, End: end}, nil
}

// Contains: включающая проверка обеих границ.
func (r DateRange) Contains(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days: количество дней в интервале, включая обе границы.
func (r DateRange) Days() int {
	if r.End.Before(r.Start) {
		return 0
	}
	return int((r.End.Time().Unix()-r.Start.Time().Unix())/secondsPerDay) + 1
}
