package export

import (
	"context"
	"fmt"
	"time"

	"github.com/Leganyst/booking-calendar/internal/calendar"
)

// FilenameBase: префикс имени файла выгрузки.
const FilenameBase = "calendar_export"

// Options: необязательные параметры выгрузки.
type Options struct {
	Range          *calendar.DateRange
	InstructorName string
}

// Exporter выбирает рендер по формату, строит имя файла и отдаёт его в Sink.
type Exporter struct {
	sink      Sink
	now       func() time.Time
	uidDomain string
}

func NewExporter(sink Sink, now func() time.Time, uidDomain string) *Exporter {
	if now == nil {
		now = time.Now
	}
	return &Exporter{sink: sink, now: now, uidDomain: uidDomain}
}

// Filename: {base}_{YYYY-MM-DD}.{ext} по текущей дате UTC
// или {base}_{start}_to_{end}.{ext}, если задан интервал.
func Filename(format Format, r *calendar.DateRange, now time.Time) string {
	ext := formats[format].ext
	if r != nil {
		return fmt.Sprintf("%s_%s_to_%s.%s", FilenameBase, r.Start, r.End, ext)
	}
	return fmt.Sprintf("%s_%s.%s", FilenameBase, now.UTC().Format(calendar.DateLayout), ext)
}

// Render строит содержимое файла без передачи в Sink.
func (e *Exporter) Render(items []calendar.BookingItem, format Format, opts Options) (File, error) {
	info, ok := formats[format]
	if !ok {
		return File{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(format))
	}

	now := e.now()
	var (
		content string
		err     error
	)
	switch format {
	case FormatCSV:
		content = ToCSV(items, opts.Range)
	case FormatJSON:
		content, err = ToJSON(items, opts.Range, now)
	case FormatICS:
		// Как и в клиентском экспорте, ICS не фильтруется по интервалу:
		// интервал влияет только на имя файла.
		content = ToICS(items, opts.InstructorName, now, e.uidDomain)
	}
	if err != nil {
		return File{}, err
	}

	return File{
		Name:     Filename(format, opts.Range, now),
		MimeType: info.mimeType,
		Content:  []byte(content),
	}, nil
}

// Export рендерит и отдаёт файл в Sink. Неизвестный формат: ErrUnsupportedFormat.
func (e *Exporter) Export(ctx context.Context, items []calendar.BookingItem, format Format, opts Options) (File, error) {
	f, err := e.Render(items, format, opts)
	if err != nil {
		return File{}, err
	}
	if err := TriggerDownload(ctx, e.sink, string(f.Content), f.Name, f.MimeType); err != nil {
		return File{}, fmt.Errorf("deliver %s: %w", f.Name, err)
	}
	return f, nil
}
