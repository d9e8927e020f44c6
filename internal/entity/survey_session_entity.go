package entity

import (
	"time"

	"github.com/google/uuid"

	"survey-sensei-be/pkg/evidence"
	"survey-sensei-be/pkg/interview"
	"survey-sensei-be/pkg/interview/synthesis"
)

// SurveySession is the aggregate root of one interview. Version backs the
// optimistic write-after-success rule: every successful command bumps it, and
// a stale update loses.
type SurveySession struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerId      uuid.UUID `gorm:"type:uuid;index"`
	ProductId       uuid.UUID `gorm:"type:uuid;index"`
	TransactionId   uuid.UUID `gorm:"type:uuid;index"`
	Status          interview.Status
	ProductContext  evidence.ProductContext
	CustomerContext evidence.CustomerContext
	Transcript      []interview.Entry
	Pending         *interview.Question
	SkipsUsed       int
	Candidates      []synthesis.Candidate
	SentimentBand   synthesis.Band
	SelectedIndex   *int
	Version         int
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}

// State projects the machine-visible slice of the session.
func (s *SurveySession) State() interview.State {
	return interview.State{
		Status:     s.Status,
		Transcript: s.Transcript,
		Pending:    s.Pending,
		SkipsUsed:  s.SkipsUsed,
	}
}

// ApplyState writes a machine result back onto the session.
func (s *SurveySession) ApplyState(st interview.State) {
	s.Status = st.Status
	s.Transcript = st.Transcript
	s.Pending = st.Pending
	s.SkipsUsed = st.SkipsUsed
}
