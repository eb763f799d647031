package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	calendarpb "github.com/Leganyst/booking-calendar/internal/api/calendar/v1"
	"github.com/Leganyst/booking-calendar/internal/calendar"
	"github.com/Leganyst/booking-calendar/internal/export"
	"github.com/Leganyst/booking-calendar/internal/model"
	"github.com/Leganyst/booking-calendar/internal/repository"
)

var fixedNow = time.Date(2025, 9, 15, 10, 0, 0, 0, time.UTC)

type fixture struct {
	db         *gorm.DB
	client     *calendarpb.CalendarServiceClient
	instructor *model.Instructor
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := model.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seed(t *testing.T, db *gorm.DB, bookingID int64, date string, slot calendar.DaySlot, start, end string) {
	t.Helper()
	row, err := model.NewBookingItem(calendar.BookingItem{
		BookingID:     bookingID,
		BookingSlotID: 1,
		DaySlotID:     slot,
		Date:          calendar.MustParseDate(date),
		StartTime:     start,
		EndTime:       end,
		TotalMinutes:  180,
		HourlyRate:    45,
		OfferID:       1,
		CreatedAt:     time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("build item: %v", err)
	}
	if err := db.Create(row).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	db := openTestDB(t)

	instructor := &model.Instructor{FirstName: "Anna", LastName: "Berg"}
	if err := db.Create(instructor).Error; err != nil {
		t.Fatalf("seed instructor: %v", err)
	}
	booking := &model.Booking{InstructorID: instructor.ID}
	if err := db.Create(booking).Error; err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	seed(t, db, booking.ID, "2025-09-08", calendar.DaySlotMorning, "09:00", "12:00")
	seed(t, db, booking.ID, "2025-09-08", calendar.DaySlotAfternoon, "14:00", "17:00")
	seed(t, db, booking.ID, "2025-09-20", calendar.DaySlotEvening, "17:00", "19:00")

	svc := NewCalendarService(
		repository.NewGormBookingItemRepository(db),
		repository.NewGormInstructorRepository(db),
		zap.NewNop(),
		append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)...,
	)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.UnaryInterceptor(UnaryLoggingInterceptor(zap.NewNop())))
	calendarpb.RegisterCalendarServiceServer(srv, svc)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial bufnet: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	return &fixture{db: db, client: calendarpb.NewCalendarServiceClient(conn), instructor: instructor}
}

func expectCode(t *testing.T, err error, want codes.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got nil error", want)
	}
	if got := status.Code(err); got != want {
		t.Fatalf("expected %s, got %s (%v)", want, got, err)
	}
}

func TestGetAvailability(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.client.GetAvailability(ctx, &calendarpb.GetAvailabilityRequest{
		InstructorID: f.instructor.ID.String(),
		StartDate:    "2025-09-08",
		EndDate:      "2025-09-09",
	})
	if err != nil {
		t.Fatalf("GetAvailability: %v", err)
	}

	s := resp.Summary
	if s.TotalDays != 2 || len(s.Slots) != 4 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	wantAvailable := map[string]int{"Morning": 1, "Lunch": 2, "Afternoon": 1, "Evening": 2}
	for _, slot := range s.Slots {
		if slot.AvailableDays != wantAvailable[slot.Name] || !slot.IsAvailable {
			t.Fatalf("unexpected slot %+v", slot)
		}
	}
	if s.TotalAvailableHours != 13 {
		t.Fatalf("expected 13 available hours, got %v", s.TotalAvailableHours)
	}
	if s.DateRange.Start.String() != "2025-09-08" || s.DateRange.End.String() != "2025-09-09" {
		t.Fatalf("unexpected range %+v", s.DateRange)
	}
	if resp.Conflicts != 0 {
		t.Fatalf("expected no conflicts, got %d", resp.Conflicts)
	}

	wantPercent := map[string]int{"Morning": 50, "Lunch": 100, "Afternoon": 50, "Evening": 100}
	if len(resp.Slots) != 4 {
		t.Fatalf("expected 4 slot views, got %d", len(resp.Slots))
	}
	for _, v := range resp.Slots {
		if v.AvailablePercent != wantPercent[v.Name] || v.IsFullyBooked {
			t.Fatalf("unexpected slot view %+v", v)
		}
	}
}

func TestGetAvailability_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  *calendarpb.GetAvailabilityRequest
		want codes.Code
	}{
		{"missing dates", &calendarpb.GetAvailabilityRequest{}, codes.InvalidArgument},
		{"malformed date", &calendarpb.GetAvailabilityRequest{StartDate: "2025-9-8", EndDate: "2025-09-09"}, codes.InvalidArgument},
		{"reversed range", &calendarpb.GetAvailabilityRequest{StartDate: "2025-09-10", EndDate: "2025-09-01"}, codes.InvalidArgument},
		{"bad instructor id", &calendarpb.GetAvailabilityRequest{InstructorID: "anna", StartDate: "2025-09-01", EndDate: "2025-09-02"}, codes.InvalidArgument},
		{"unknown instructor", &calendarpb.GetAvailabilityRequest{InstructorID: uuid.NewString(), StartDate: "2025-09-01", EndDate: "2025-09-02"}, codes.NotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.client.GetAvailability(ctx, tc.req)
			expectCode(t, err, tc.want)
		})
	}
}

func TestGetAvailability_ReportsConflicts(t *testing.T) {
	f := newFixture(t)
	var booking model.Booking
	if err := f.db.First(&booking).Error; err != nil {
		t.Fatalf("load booking: %v", err)
	}
	seed(t, f.db, booking.ID, "2025-09-08", calendar.DaySlotFullDay, "09:00", "19:00")

	resp, err := f.client.GetAvailability(context.Background(), &calendarpb.GetAvailabilityRequest{
		InstructorID: f.instructor.ID.String(),
		StartDate:    "2025-09-08",
		EndDate:      "2025-09-08",
	})
	if err != nil {
		t.Fatalf("GetAvailability: %v", err)
	}
	if resp.Conflicts != 2 {
		t.Fatalf("expected 2 conflicts with full day booking, got %d", resp.Conflicts)
	}
	for _, slot := range resp.Slots {
		if slot.IsAvailable || !slot.IsFullyBooked || slot.AvailablePercent != 0 {
			t.Fatalf("full day booking must block %s: %+v", slot.Name, slot)
		}
	}
}

func TestGetMonthGrid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.client.GetMonthGrid(ctx, &calendarpb.GetMonthGridRequest{
		Year:         2025,
		Month:        9,
		Today:        "2025-09-10",
		InstructorID: f.instructor.ID.String(),
	})
	if err != nil {
		t.Fatalf("GetMonthGrid: %v", err)
	}
	if len(resp.Days) != calendar.GridCells {
		t.Fatalf("expected %d days, got %d", calendar.GridCells, len(resp.Days))
	}
	// 1 сентября 2025: понедельник, сетка начинается с 31 августа.
	if first := resp.Days[0]; first.Date.String() != "2025-08-31" || first.IsCurrentMonth {
		t.Fatalf("unexpected first cell %+v", first)
	}
	if !resp.Days[10].IsToday || resp.Days[10].Date.String() != "2025-09-10" {
		t.Fatalf("expected today at cell 10, got %+v", resp.Days[10])
	}
	sep8 := resp.Days[8]
	if sep8.Slots == nil || !sep8.Slots.Morning || !sep8.Slots.Afternoon || sep8.Slots.Lunch {
		t.Fatalf("unexpected slots on 2025-09-08: %+v", sep8.Slots)
	}

	plain, err := f.client.GetMonthGrid(ctx, &calendarpb.GetMonthGridRequest{Year: 2025, Month: 9})
	if err != nil {
		t.Fatalf("GetMonthGrid without instructor: %v", err)
	}
	if plain.Days[8].Slots != nil {
		t.Fatalf("slots must be omitted without instructor")
	}
	// Без today берётся дата из часов сервиса.
	if !plain.Days[15].IsToday {
		t.Fatalf("expected 2025-09-15 to be today, got %+v", plain.Days[15])
	}

	_, err = f.client.GetMonthGrid(ctx, &calendarpb.GetMonthGridRequest{Year: 2025, Month: 13})
	expectCode(t, err, codes.InvalidArgument)
}

func TestExportCalendar(t *testing.T) {
	dir := t.TempDir()
	f := newFixture(t, WithArchive(export.DirSink{Dir: dir}))
	ctx := context.Background()

	resp, err := f.client.ExportCalendar(ctx, &calendarpb.ExportCalendarRequest{
		InstructorID: f.instructor.ID.String(),
		Format:       "JSON",
	})
	if err != nil {
		t.Fatalf("ExportCalendar: %v", err)
	}
	if resp.Filename != "calendar_export_2025-09-15.json" || resp.MimeType != "application/json" {
		t.Fatalf("unexpected file %s (%s)", resp.Filename, resp.MimeType)
	}

	var doc export.Document
	if err := json.Unmarshal([]byte(resp.Content), &doc); err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if doc.TotalItems != 3 || doc.DateRange != nil || !doc.ExportedAt.Equal(fixedNow) {
		t.Fatalf("unexpected document %+v", doc)
	}

	saved, err := os.ReadFile(filepath.Join(dir, resp.Filename))
	if err != nil {
		t.Fatalf("archived file: %v", err)
	}
	if string(saved) != resp.Content {
		t.Fatalf("archived content differs from response")
	}
}

func TestExportCalendar_RangeAndICS(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	csvResp, err := f.client.ExportCalendar(ctx, &calendarpb.ExportCalendarRequest{
		Format:    "csv",
		StartDate: "2025-09-01",
		EndDate:   "2025-09-10",
	})
	if err != nil {
		t.Fatalf("export csv: %v", err)
	}
	if csvResp.Filename != "calendar_export_2025-09-01_to_2025-09-10.csv" {
		t.Fatalf("unexpected csv filename %s", csvResp.Filename)
	}
	if lines := strings.Split(csvResp.Content, "\n"); len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d lines", len(lines))
	}

	icsResp, err := f.client.ExportCalendar(ctx, &calendarpb.ExportCalendarRequest{
		InstructorID: f.instructor.ID.String(),
		Format:       "ics",
		StartDate:    "2025-09-01",
		EndDate:      "2025-09-10",
	})
	if err != nil {
		t.Fatalf("export ics: %v", err)
	}
	// ICS не режется интервалом.
	if n := strings.Count(icsResp.Content, "BEGIN:VEVENT"); n != 3 {
		t.Fatalf("expected 3 events, got %d", n)
	}
	if !strings.Contains(icsResp.Content, "SUMMARY:Morning Session - Anna Berg") {
		t.Fatalf("instructor name missing in ics:\n%s", icsResp.Content)
	}
}

func TestExportCalendar_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.client.ExportCalendar(ctx, &calendarpb.ExportCalendarRequest{Format: "pdf"})
	expectCode(t, err, codes.InvalidArgument)

	_, err = f.client.ExportCalendar(ctx, &calendarpb.ExportCalendarRequest{Format: "csv", StartDate: "2025-09-01"})
	expectCode(t, err, codes.InvalidArgument)

	_, err = f.client.ExportCalendar(ctx, &calendarpb.ExportCalendarRequest{Format: "csv", InstructorID: uuid.NewString()})
	expectCode(t, err, codes.NotFound)
}

func TestListBookingItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.client.ListBookingItems(ctx, &calendarpb.ListBookingItemsRequest{
		InstructorID: f.instructor.ID.String(),
		PageSize:     2,
	})
	if err != nil {
		t.Fatalf("ListBookingItems: %v", err)
	}
	if resp.Total != 3 || len(resp.Items) != 2 || !resp.HasNext || resp.Page != 1 {
		t.Fatalf("unexpected first page %+v", resp)
	}

	next, err := f.client.ListBookingItems(ctx, &calendarpb.ListBookingItemsRequest{
		InstructorID: f.instructor.ID.String(),
		Page:         2,
		PageSize:     2,
	})
	if err != nil {
		t.Fatalf("ListBookingItems page 2: %v", err)
	}
	if len(next.Items) != 1 || next.HasNext || !next.HasPrev || next.Items[0].Date.String() != "2025-09-20" {
		t.Fatalf("unexpected second page %+v", next)
	}

	ranged, err := f.client.ListBookingItems(ctx, &calendarpb.ListBookingItemsRequest{StartDate: "2025-09-10"})
	if err != nil {
		t.Fatalf("ListBookingItems from date: %v", err)
	}
	if ranged.Total != 1 || ranged.PageSize != calendar.DefaultPageSize {
		t.Fatalf("unexpected ranged page %+v", ranged)
	}

	empty, err := f.client.ListBookingItems(ctx, &calendarpb.ListBookingItemsRequest{StartDate: "2026-01-01"})
	if err != nil {
		t.Fatalf("ListBookingItems empty: %v", err)
	}
	if empty.Items == nil || len(empty.Items) != 0 {
		t.Fatalf("expected empty non-nil items, got %+v", empty.Items)
	}

	_, err = f.client.ListBookingItems(ctx, &calendarpb.ListBookingItemsRequest{StartDate: "2025-09-10", EndDate: "2025-09-01"})
	expectCode(t, err, codes.InvalidArgument)
}

func TestListBookingItems_HugePage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.client.ListBookingItems(ctx, &calendarpb.ListBookingItemsRequest{Page: math.MaxInt, PageSize: 500})
	expectCode(t, err, codes.InvalidArgument)

	// Страница за концом списка пустая, сервер продолжает отвечать.
	far, err := f.client.ListBookingItems(ctx, &calendarpb.ListBookingItemsRequest{Page: 1000000, PageSize: 500})
	if err != nil {
		t.Fatalf("ListBookingItems far page: %v", err)
	}
	if len(far.Items) != 0 || far.HasNext || far.Total != 3 {
		t.Fatalf("unexpected far page %+v", far)
	}
	if _, err := f.client.ListBookingItems(ctx, &calendarpb.ListBookingItemsRequest{}); err != nil {
		t.Fatalf("server must survive huge page requests: %v", err)
	}
}

func TestListInstructors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	adler := &model.Instructor{FirstName: "Clara", LastName: "Adler", Disciplines: datatypes.JSON(`["ski","snowboard"]`)}
	if err := f.db.Create(adler).Error; err != nil {
		t.Fatalf("seed instructor: %v", err)
	}

	resp, err := f.client.ListInstructors(ctx, &calendarpb.ListInstructorsRequest{})
	if err != nil {
		t.Fatalf("ListInstructors: %v", err)
	}
	if len(resp.Instructors) != 2 {
		t.Fatalf("expected 2 instructors, got %+v", resp.Instructors)
	}
	first, second := resp.Instructors[0], resp.Instructors[1]
	if first.ID != adler.ID.String() || first.DisplayName != "Clara Adler" {
		t.Fatalf("expected Adler first, got %+v", first)
	}
	if len(first.Disciplines) != 2 || first.Disciplines[1] != "snowboard" {
		t.Fatalf("unexpected disciplines %v", first.Disciplines)
	}
	if second.DisplayName != "Anna Berg" || second.Disciplines == nil || len(second.Disciplines) != 0 {
		t.Fatalf("expected Berg with empty disciplines, got %+v", second)
	}

	limited, err := f.client.ListInstructors(ctx, &calendarpb.ListInstructorsRequest{Limit: 1})
	if err != nil {
		t.Fatalf("ListInstructors limit: %v", err)
	}
	if len(limited.Instructors) != 1 || limited.Instructors[0].DisplayName != "Clara Adler" {
		t.Fatalf("unexpected limited list %+v", limited.Instructors)
	}

	_, err = f.client.ListInstructors(ctx, &calendarpb.ListInstructorsRequest{Limit: -1})
	expectCode(t, err, codes.InvalidArgument)
}

type missingStore struct{}

func (missingStore) GetByID(context.Context, string) (*model.Instructor, error) {
	return nil, gorm.ErrRecordNotFound
}

func TestResolveInstructor(t *testing.T) {
	ctx := context.Background()

	i, err := ResolveInstructor(ctx, missingStore{}, "")
	if err != nil || i != nil {
		t.Fatalf("empty id must resolve to nil, got %v, %v", i, err)
	}
	if _, err := ResolveInstructor(ctx, missingStore{}, "42"); !errors.Is(err, ErrInvalidInstructorID) {
		t.Fatalf("expected ErrInvalidInstructorID, got %v", err)
	}
	if _, err := ResolveInstructor(ctx, missingStore{}, uuid.NewString()); !errors.Is(err, ErrInstructorNotFound) {
		t.Fatalf("expected ErrInstructorNotFound, got %v", err)
	}
}
