package entity

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductId  uuid.UUID `gorm:"type:uuid;index"`
	CustomerId uuid.UUID `gorm:"type:uuid;index"`
	// SessionId is set when the review came out of a finalized survey.
	SessionId *uuid.UUID `gorm:"type:uuid;index"`
	Title     string
	Body      string
	Stars     int
	Tone      string
	Band      string
	Embedding []float32
	CreatedAt time.Time
	UpdatedAt *time.Time
}
