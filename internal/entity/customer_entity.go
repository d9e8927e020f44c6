package entity

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	Email     string
	Embedding []float32
	CreatedAt time.Time
	UpdatedAt *time.Time
}
