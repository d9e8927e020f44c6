package entity

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string
	Description string
	Category    string
	Price       *float64
	Rating      *float64
	Embedding   []float32
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
