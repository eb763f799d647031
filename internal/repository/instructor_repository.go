package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Leganyst/booking-calendar/internal/model"
)

type InstructorRepository interface {
	GetByID(ctx context.Context, id string) (*model.Instructor, error)
	// Список инструкторов по фамилии; limit <= 0: без ограничения.
	List(ctx context.Context, limit int) ([]model.Instructor, error)
	Create(ctx context.Context, instructor *model.Instructor) error
}

type GormInstructorRepository struct {
	db *gorm.DB
}

func NewGormInstructorRepository(db *gorm.DB) *GormInstructorRepository {
	return &GormInstructorRepository{db: db}
}

func (r *GormInstructorRepository) GetByID(ctx context.Context, id string) (*model.Instructor, error) {
	var i model.Instructor
	if err := r.db.WithContext(ctx).First(&i, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *GormInstructorRepository) List(ctx context.Context, limit int) ([]model.Instructor, error) {
	var out []model.Instructor
	q := r.db.WithContext(ctx).Model(&model.Instructor{}).Order("last_name ASC, first_name ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormInstructorRepository) Create(ctx context.Context, instructor *model.Instructor) error {
	return r.db.WithContext(ctx).Create(instructor).Error
}
