package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type Product struct {
	Id          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Description string          `gorm:"type:text"`
	Category    string          `gorm:"type:varchar(128);index"`
	Price       *float64        `gorm:"type:numeric(12,2)"`
	Rating      *float64        `gorm:"type:numeric(3,2)"`
	Embedding   pgvector.Vector `gorm:"type:vector(768)"` // text-embedding-004 uses 768 dimensions
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt  `gorm:"index"`
}

func (Product) TableName() string {
	return "products"
}
