package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	calendarpb "github.com/Leganyst/booking-calendar/internal/api/calendar/v1"
	"github.com/Leganyst/booking-calendar/internal/calendar"
	"github.com/Leganyst/booking-calendar/internal/export"
	"github.com/Leganyst/booking-calendar/internal/repository"
)

var tracer = otel.Tracer("github.com/Leganyst/booking-calendar/internal/service")

type CalendarService struct {
	items       repository.BookingItemRepository
	instructors repository.InstructorRepository

	// archive получает копию каждой выгрузки; nil: без копии.
	archive   export.Sink
	uidDomain string
	now       func() time.Time

	log      *zap.Logger
	validate *validator.Validate
}

var _ calendarpb.CalendarServiceServer = (*CalendarService)(nil)

type Option func(*CalendarService)

// WithClock подменяет часы (в тестах).
func WithClock(now func() time.Time) Option {
	return func(s *CalendarService) { s.now = now }
}

// WithArchive сохраняет выгрузки в sink, например export.DirSink.
func WithArchive(sink export.Sink) Option {
	return func(s *CalendarService) { s.archive = sink }
}

func WithUIDDomain(domain string) Option {
	return func(s *CalendarService) { s.uidDomain = domain }
}

func NewCalendarService(
	items repository.BookingItemRepository,
	instructors repository.InstructorRepository,
	log *zap.Logger,
	opts ...Option,
) *CalendarService {
	if log == nil {
		log = zap.NewNop()
	}
	s := &CalendarService{
		items:       items,
		instructors: instructors,
		uidDomain:   export.DefaultUIDDomain,
		now:         func() time.Time { return time.Now().UTC() },
		log:         log,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetAvailability: свободность окон инструктора за интервал.
func (s *CalendarService) GetAvailability(
	ctx context.Context,
	req *calendarpb.GetAvailabilityRequest,
) (*calendarpb.GetAvailabilityResponse, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	r, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, toStatus(err)
	}
	if _, err := ResolveInstructor(ctx, s.instructors, req.InstructorID); err != nil {
		return nil, toStatus(err)
	}

	items, err := s.items.ListByInstructorAndRange(ctx, req.InstructorID, &r.Start, &r.End)
	if err != nil {
		s.log.Error("list booking items", zap.String("instructor_id", req.InstructorID), zap.Error(err))
		return nil, status.Errorf(codes.Internal, "list booking items: %v", err)
	}

	summary, err := calendar.Summarize(items, r.Start, r.End)
	if err != nil {
		return nil, toStatus(err)
	}

	slots := make([]calendarpb.SlotAvailability, 0, len(summary.Slots))
	for _, sl := range summary.Slots {
		slots = append(slots, calendarpb.SlotAvailability{
			AvailabilitySlot: sl,
			AvailablePercent: sl.Percent(),
			IsFullyBooked:    sl.FullyBooked(),
		})
	}

	return &calendarpb.GetAvailabilityResponse{
		Summary:   summary,
		Slots:     slots,
		Conflicts: s.reportConflicts(req.InstructorID, items),
	}, nil
}

// GetMonthGrid: сетка 6x7 для месяца, по запросу со слотами инструктора.
func (s *CalendarService) GetMonthGrid(
	ctx context.Context,
	req *calendarpb.GetMonthGridRequest,
) (*calendarpb.GetMonthGridResponse, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	today := calendar.DateOf(s.now().UTC())
	if req.Today != "" {
		d, err := calendar.ParseDate(req.Today)
		if err != nil {
			return nil, toStatus(err)
		}
		today = d
	}

	grid, err := calendar.BuildMonthGrid(req.Year, time.Month(req.Month), today)
	if err != nil {
		return nil, toStatus(err)
	}

	var idx *calendar.DayIndex
	if req.InstructorID != "" {
		if _, err := ResolveInstructor(ctx, s.instructors, req.InstructorID); err != nil {
			return nil, toStatus(err)
		}
		first, last := grid[0].Date, grid[calendar.GridCells-1].Date
		items, err := s.items.ListByInstructorAndRange(ctx, req.InstructorID, &first, &last)
		if err != nil {
			s.log.Error("list booking items", zap.String("instructor_id", req.InstructorID), zap.Error(err))
			return nil, status.Errorf(codes.Internal, "list booking items: %v", err)
		}
		i := calendar.NewDayIndex(items)
		idx = &i
	}

	resp := &calendarpb.GetMonthGridResponse{
		Year:  req.Year,
		Month: req.Month,
		Days:  make([]calendarpb.GridDay, 0, calendar.GridCells),
	}
	for _, day := range grid {
		gd := calendarpb.GridDay{CalendarDay: day}
		if idx != nil {
			st := idx.SlotState(day.Date)
			gd.Slots = &st
		}
		resp.Days = append(resp.Days, gd)
	}
	return resp, nil
}

// ExportCalendar: выгрузка броней в CSV, JSON или ICS.
func (s *CalendarService) ExportCalendar(
	ctx context.Context,
	req *calendarpb.ExportCalendarRequest,
) (*calendarpb.ExportCalendarResponse, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	format, err := export.ParseFormat(req.Format)
	if err != nil {
		return nil, toStatus(err)
	}

	var r *calendar.DateRange
	if req.StartDate != "" {
		rng, err := parseRange(req.StartDate, req.EndDate)
		if err != nil {
			return nil, toStatus(err)
		}
		r = &rng
	}

	instructor, err := ResolveInstructor(ctx, s.instructors, req.InstructorID)
	if err != nil {
		return nil, toStatus(err)
	}

	// ICS выгружается целиком, интервал режет только CSV и JSON,
	// поэтому в БД идём без границ.
	items, err := s.items.ListByInstructorAndRange(ctx, req.InstructorID, nil, nil)
	if err != nil {
		s.log.Error("list booking items", zap.String("instructor_id", req.InstructorID), zap.Error(err))
		return nil, status.Errorf(codes.Internal, "list booking items: %v", err)
	}

	opts := export.Options{Range: r}
	if instructor != nil {
		opts.InstructorName = instructor.DisplayName()
	}

	ctx, span := tracer.Start(ctx, "calendar.export")
	defer span.End()
	span.SetAttributes(
		attribute.String("export.format", string(format)),
		attribute.Int("export.items", len(items)),
	)

	f, err := export.NewExporter(s.sink(), s.now, s.uidDomain).Export(ctx, items, format, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "export failed")
		s.log.Error("export calendar", zap.String("format", string(format)), zap.Error(err))
		return nil, toStatus(err)
	}
	span.SetAttributes(attribute.String("export.file", f.Name))

	s.log.Info("calendar exported",
		zap.String("file", f.Name),
		zap.String("format", string(format)),
		zap.Int("items", len(items)),
	)

	return &calendarpb.ExportCalendarResponse{
		Filename: f.Name,
		MimeType: f.MimeType,
		Content:  string(f.Content),
	}, nil
}

// ListBookingItems: постраничный список позиций броней.
func (s *CalendarService) ListBookingItems(
	ctx context.Context,
	req *calendarpb.ListBookingItemsRequest,
) (*calendarpb.ListBookingItemsResponse, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	from, err := parseOptionalDate(req.StartDate)
	if err != nil {
		return nil, toStatus(err)
	}
	to, err := parseOptionalDate(req.EndDate)
	if err != nil {
		return nil, toStatus(err)
	}
	if from != nil && to != nil {
		if _, err := calendar.NewDateRange(*from, *to); err != nil {
			return nil, toStatus(err)
		}
	}

	if _, err := ResolveInstructor(ctx, s.instructors, req.InstructorID); err != nil {
		return nil, toStatus(err)
	}

	items, err := s.items.ListByInstructorAndRange(ctx, req.InstructorID, from, to)
	if err != nil {
		s.log.Error("list booking items", zap.String("instructor_id", req.InstructorID), zap.Error(err))
		return nil, status.Errorf(codes.Internal, "list booking items: %v", err)
	}
	if items == nil {
		items = []calendar.BookingItem{}
	}

	page := calendar.Paginate(items, req.Page, req.PageSize)
	return &calendarpb.ListBookingItemsResponse{
		Items:    page.Items,
		Page:     page.Page,
		PageSize: page.PageSize,
		Total:    page.Total,
		HasNext:  page.HasNext,
		HasPrev:  page.HasPrev,
	}, nil
}

// ListInstructors: инструкторы по фамилии с разобранным списком дисциплин.
func (s *CalendarService) ListInstructors(
	ctx context.Context,
	req *calendarpb.ListInstructorsRequest,
) (*calendarpb.ListInstructorsResponse, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	rows, err := s.instructors.List(ctx, req.Limit)
	if err != nil {
		s.log.Error("list instructors", zap.Error(err))
		return nil, status.Errorf(codes.Internal, "list instructors: %v", err)
	}

	out := make([]calendarpb.InstructorInfo, 0, len(rows))
	for i := range rows {
		disciplines := rows[i].DisciplineList()
		if disciplines == nil {
			disciplines = []string{}
		}
		out = append(out, calendarpb.InstructorInfo{
			ID:          rows[i].ID.String(),
			DisplayName: rows[i].DisplayName(),
			Disciplines: disciplines,
		})
	}
	return &calendarpb.ListInstructorsResponse{Instructors: out}, nil
}

// reportConflicts пишет пересечения в лог и возвращает их число.
// Занятость от пересечений не меняется.
func (s *CalendarService) reportConflicts(instructorID string, items []calendar.BookingItem) int {
	conflicts := calendar.FindConflicts(items)
	for _, c := range conflicts {
		fields := []zap.Field{
			zap.String("instructor_id", instructorID),
			zap.Stringer("date", c.Date),
			zap.Int64("first_item_id", c.First.ID),
			zap.Int64("second_item_id", c.Second.ID),
			zap.String("reason", string(c.Reason)),
		}
		if tr, err := c.Second.TimeRange(); err == nil {
			fields = append(fields, zap.String("second_window", calendar.FormatRange(tr)))
		}
		s.log.Warn("overlapping bookings", fields...)
	}
	return len(conflicts)
}

func (s *CalendarService) sink() export.Sink {
	if s.archive != nil {
		return s.archive
	}
	return export.SinkFunc(func(context.Context, export.File) error { return nil })
}

func parseRange(start, end string) (calendar.DateRange, error) {
	from, err := calendar.ParseDate(start)
	if err != nil {
		return calendar.DateRange{}, err
	}
	to, err := calendar.ParseDate(end)
	if err != nil {
		return calendar.DateRange{}, err
	}
	return calendar.NewDateRange(from, to)
}

func parseOptionalDate(s string) (*calendar.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := calendar.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
