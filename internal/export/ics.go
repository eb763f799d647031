package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/Leganyst/booking-calendar/internal/calendar"
)

// DefaultUIDDomain: домен в UID событий, если не задан в конфиге.
const DefaultUIDDomain = "calendar.example.com"

const icsTimeLayout = "20060102T150405Z"

var icsEscaper = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\n", `\n`)

// ToICS рендерит VCALENDAR с событием на каждую бронь.
// Настенное время брони записывается как UTC без пересчёта часового пояса.
// Порядок start/end не проверяется: бронь через полночь выгружается как есть.
// Пропускаются только брони с неразборчивым временем.
func ToICS(items []calendar.BookingItem, instructorName string, stamp time.Time, domain string) string {
	if instructorName == "" {
		instructorName = "Instructor"
	}
	if domain == "" {
		domain = DefaultUIDDomain
	}
	dtstamp := stamp.UTC().Format(icsTimeLayout)

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Calendar App//EN",
		"CALSCALE:GREGORIAN",
	}

	for _, it := range items {
		start, err := it.Date.At(it.StartTime)
		if err != nil {
			continue
		}
		end, err := it.Date.At(it.EndTime)
		if err != nil {
			continue
		}
		lines = append(lines,
			"BEGIN:VEVENT",
			"DTSTART:"+start.Format(icsTimeLayout),
			"DTEND:"+end.Format(icsTimeLayout),
			fmt.Sprintf("SUMMARY:%s - %s", sessionName(it.DaySlotID), icsEscaper.Replace(instructorName)),
			fmt.Sprintf(`DESCRIPTION:Booking ID: %d\nRate: $%s/hour\nDuration: %d minutes`,
				it.BookingID, formatNumber(it.HourlyRate), it.TotalMinutes),
			fmt.Sprintf("UID:booking-%d-%d@%s", it.BookingID, it.ID, domain),
			"DTSTAMP:"+dtstamp,
			"END:VEVENT",
		)
	}

	lines = append(lines, "END:VCALENDAR")
	return strings.Join(lines, "\r\n")
}

func sessionName(s calendar.DaySlot) string {
	if !s.Valid() {
		return "Session"
	}
	return s.Label() + " Session"
}
