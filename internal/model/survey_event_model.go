package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SurveyEvent rows are append-only; there is no soft delete and no update
// path. (session_id, seq) is unique so replays cannot double-write.
type SurveyEvent struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_survey_events_session_seq"`
	Seq       int            `gorm:"not null;uniqueIndex:idx_survey_events_session_seq"`
	Type      string         `gorm:"type:varchar(64);not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

func (SurveyEvent) TableName() string {
	return "survey_events"
}
