package entity

import (
	"time"

	"github.com/google/uuid"
)

// SurveyEvent is one row of the append-only session audit trail. Seq is
// assigned per session, starting at 1.
type SurveyEvent struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	SessionId uuid.UUID `gorm:"type:uuid;index"`
	Seq       int
	Type      string
	Payload   map[string]interface{}
	CreatedAt time.Time
}
