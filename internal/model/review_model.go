package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type Review struct {
	Id         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductId  uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerId uuid.UUID       `gorm:"type:uuid;not null;index"`
	SessionId  *uuid.UUID      `gorm:"type:uuid;index"`
	Title      string          `gorm:"type:varchar(255)"`
	Body       string          `gorm:"type:text"`
	Stars      int             `gorm:"not null"`
	Tone       string          `gorm:"type:varchar(32)"`
	Band       string          `gorm:"type:varchar(16)"`
	Embedding  pgvector.Vector `gorm:"type:vector(768)"` // filled asynchronously after finalize
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt  `gorm:"index"`
}

func (Review) TableName() string {
	return "reviews"
}
