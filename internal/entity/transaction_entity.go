package entity

import (
	"time"

	"github.com/google/uuid"
)

type Transaction struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerId  uuid.UUID `gorm:"type:uuid;index"`
	ProductId   uuid.UUID `gorm:"type:uuid;index"`
	Quantity    int
	UnitPrice   float64
	PurchasedAt time.Time
	CreatedAt   time.Time
}
