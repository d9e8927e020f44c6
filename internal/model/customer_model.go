package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type Customer struct {
	Id        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string          `gorm:"type:varchar(255);not null"`
	Email     string          `gorm:"type:varchar(255);uniqueIndex"`
	Embedding pgvector.Vector `gorm:"type:vector(768)"` // profile embedding for analogous-customer search
	CreatedAt time.Time       `gorm:"autoCreateTime"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt  `gorm:"index"`
}

func (Customer) TableName() string {
	return "customers"
}
