package repository

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Leganyst/booking-calendar/internal/calendar"
	"github.com/Leganyst/booking-calendar/internal/model"
)

type BookingItemRepository interface {
	// Позиции броней инструктора за период. Пустой instructorID означает все
	// инструкторы, nil-граница снимает ограничение с этой стороны.
	ListByInstructorAndRange(
		ctx context.Context,
		instructorID string,
		from, to *calendar.Date,
	) ([]calendar.BookingItem, error)
	// Создать позицию брони.
	Create(ctx context.Context, item *model.BookingItem) error
}

// Реализация на GORM.
type GormBookingItemRepository struct {
	db *gorm.DB
}

func NewGormBookingItemRepository(db *gorm.DB) *GormBookingItemRepository {
	return &GormBookingItemRepository{db: db}
}

func (r *GormBookingItemRepository) ListByInstructorAndRange(
	ctx context.Context,
	instructorID string,
	from, to *calendar.Date,
) ([]calendar.BookingItem, error) {
	q := r.db.WithContext(ctx).
		Model(&model.BookingItem{}).
		Joins("JOIN bookings ON bookings.id = booking_items.booking_id")

	if instructorID != "" {
		q = q.Where("bookings.instructor_id = ?", instructorID)
	}
	if from != nil {
		q = q.Where("booking_items.date >= ?", datatypes.Date(from.Time()))
	}
	if to != nil {
		q = q.Where("booking_items.date <= ?", datatypes.Date(to.Time()))
	}

	var rows []model.BookingItem
	if err := q.Order("booking_items.date ASC, booking_items.start_time ASC, booking_items.id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	items := make([]calendar.BookingItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.ToCalendar())
	}
	return items, nil
}

func (r *GormBookingItemRepository) Create(ctx context.Context, item *model.BookingItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}
