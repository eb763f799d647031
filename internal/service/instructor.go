package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Leganyst/booking-calendar/internal/model"
)

// Ошибки поиска инструктора.
var (
	ErrInvalidInstructorID = errors.New("invalid instructor id")
	ErrInstructorNotFound  = errors.New("instructor not found")
)

// InstructorStore: источник данных об инструкторах.
// В реале это репозиторий поверх БД, в тестах может быть мок.
type InstructorStore interface {
	GetByID(ctx context.Context, id string) (*model.Instructor, error)
}

// ResolveInstructor:
//   - пустой id означает «все инструкторы» и возвращает nil без ошибки;
//   - проверяет, что id это UUID;
//   - вытаскивает инструктора из хранилища.
func ResolveInstructor(ctx context.Context, store InstructorStore, id string) (*model.Instructor, error) {
	if id == "" {
		return nil, nil
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidInstructorID, id)
	}

	i, err := store.GetByID(ctx, parsed.String())
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && i == nil) {
		return nil, fmt.Errorf("%w: %s", ErrInstructorNotFound, parsed)
	}
	if err != nil {
		return nil, fmt.Errorf("get instructor %s: %w", parsed, err)
	}
	return i, nil
}
