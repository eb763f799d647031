package model

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// instructors
type Instructor struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	FirstName string `gorm:"type:varchar(255);not null"`
	LastName  string `gorm:"type:varchar(255)"`

	// Список дисциплин в виде JSON-массива строк (jsonb в Postgres).
	Disciplines datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`

	Bookings []Booking `gorm:"foreignKey:InstructorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// BeforeCreate выдаёт UUID на клиенте, если его не задали (SQLite без gen_random_uuid).
func (i *Instructor) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// DisplayName: "Имя Фамилия" без лишних пробелов.
func (i *Instructor) DisplayName() string {
	return strings.TrimSpace(i.FirstName + " " + i.LastName)
}

// DisciplineList разбирает Disciplines; пустое или битое значение даёт nil.
func (i *Instructor) DisciplineList() []string {
	if len(i.Disciplines) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(i.Disciplines, &out); err != nil {
		return nil
	}
	return out
}
