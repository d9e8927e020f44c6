package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Transaction struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerId  uuid.UUID      `gorm:"type:uuid;not null;index"`
	ProductId   uuid.UUID      `gorm:"type:uuid;not null;index"`
	Quantity    int            `gorm:"not null;default:1"`
	UnitPrice   float64        `gorm:"type:numeric(12,2)"`
	PurchasedAt time.Time      `gorm:"not null;index"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Transaction) TableName() string {
	return "transactions"
}
