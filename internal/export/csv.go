package export

import (
	"strconv"
	"strings"

	"github.com/Leganyst/booking-calendar/internal/calendar"
)

var csvHeader = []string{
	"Date",
	"Start Time",
	"End Time",
	"Duration (minutes)",
	"Hourly Rate",
	"Slot Type",
	"Booking ID",
	"Created At",
}

// createdAtLayout: короткая US-дата, как её показывает клиентская часть.
const createdAtLayout = "1/2/2006"

// ToCSV рендерит брони в CSV. Каждое поле в кавычках, строки через "\n".
// r == nil: без фильтра по датам. Пустой результат даёт NoDataSentinel.
func ToCSV(items []calendar.BookingItem, r *calendar.DateRange) string {
	filtered := filterRange(items, r)
	if len(filtered) == 0 {
		return NoDataSentinel
	}

	var b strings.Builder
	writeCSVRow(&b, csvHeader)
	for _, it := range filtered {
		b.WriteByte('\n')
		writeCSVRow(&b, []string{
			it.Date.String(),
			it.StartTime,
			it.EndTime,
			strconv.Itoa(it.TotalMinutes),
			formatNumber(it.HourlyRate),
			it.DaySlotID.Label(),
			strconv.FormatInt(it.BookingID, 10),
			it.CreatedAt.UTC().Format(createdAtLayout),
		})
	}
	return b.String()
}

func writeCSVRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
}
