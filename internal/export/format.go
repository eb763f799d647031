// Package export рендерит брони в CSV, JSON и iCalendar и отдаёт результат
// в приёмник файлов.
package export

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Leganyst/booking-calendar/internal/calendar"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// NoDataSentinel возвращается CSV-рендером, когда после фильтра ничего не осталось.
const NoDataSentinel = "No data to export"

// Format: формат выгрузки.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatICS  Format = "ics"
)

// ParseFormat нормализует регистр и пробелы.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := formats[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
	return f, nil
}

type formatInfo struct {
	ext      string
	mimeType string
}

var formats = map[Format]formatInfo{
	FormatCSV:  {ext: "csv", mimeType: "text/csv"},
	FormatJSON: {ext: "json", mimeType: "application/json"},
	FormatICS:  {ext: "ics", mimeType: "text/calendar"},
}

// filterRange оставляет брони внутри r. nil: без фильтра.
func filterRange(items []calendar.BookingItem, r *calendar.DateRange) []calendar.BookingItem {
	if r == nil {
		return items
	}
	out := make([]calendar.BookingItem, 0, len(items))
	for _, it := range items {
		if r.Contains(it.Date) {
			out = append(out, it)
		}
	}
	return out
}

// formatNumber печатает число без лишних нулей: 45 -> "45", 42.5 -> "42.5".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
