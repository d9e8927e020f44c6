package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SurveySession struct {
	Id              uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerId      uuid.UUID      `gorm:"type:uuid;not null;index"`
	ProductId       uuid.UUID      `gorm:"type:uuid;not null;index"`
	TransactionId   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Status          string         `gorm:"type:varchar(32);not null;index"`
	ProductContext  datatypes.JSON `gorm:"type:jsonb"`
	CustomerContext datatypes.JSON `gorm:"type:jsonb"`
	Transcript      datatypes.JSON `gorm:"type:jsonb"`
	Pending         datatypes.JSON `gorm:"type:jsonb"`
	SkipsUsed       int            `gorm:"not null;default:0"`
	Candidates      datatypes.JSON `gorm:"type:jsonb"`
	SentimentBand   string         `gorm:"type:varchar(16)"`
	SelectedIndex   *int
	Version         int            `gorm:"not null;default:1"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime"`
	DeletedAt       gorm.DeletedAt `gorm:"index"`
}

func (SurveySession) TableName() string {
	return "survey_sessions"
}
