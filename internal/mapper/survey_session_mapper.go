package mapper

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"survey-sensei-be/internal/entity"
	"survey-sensei-be/internal/model"
	"survey-sensei-be/pkg/interview"
	"survey-sensei-be/pkg/interview/synthesis"
)

// SurveySessionMapper moves the session aggregate between its domain shape
// and the JSONB-backed row. Unmarshal failures surface as errors because a
// corrupt transcript must never be silently replaced with an empty one.
type SurveySessionMapper struct{}

func NewSurveySessionMapper() *SurveySessionMapper {
	return &SurveySessionMapper{}
}

func (m *SurveySessionMapper) ToEntity(s *model.SurveySession) (*entity.SurveySession, error) {
	if s == nil {
		return nil, nil
	}

	e := &entity.SurveySession{
		Id:            s.Id,
		CustomerId:    s.CustomerId,
		ProductId:     s.ProductId,
		TransactionId: s.TransactionId,
		Status:        interview.Status(s.Status),
		SkipsUsed:     s.SkipsUsed,
		SentimentBand: synthesis.Band(s.SentimentBand),
		SelectedIndex: s.SelectedIndex,
		Version:       s.Version,
		CreatedAt:     s.CreatedAt,
	}
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		e.UpdatedAt = &t
	}

	if err := unmarshalColumn(s.ProductContext, &e.ProductContext); err != nil {
		return nil, err
	}
	if err := unmarshalColumn(s.CustomerContext, &e.CustomerContext); err != nil {
		return nil, err
	}
	if err := unmarshalColumn(s.Transcript, &e.Transcript); err != nil {
		return nil, err
	}
	if err := unmarshalColumn(s.Pending, &e.Pending); err != nil {
		return nil, err
	}
	if err := unmarshalColumn(s.Candidates, &e.Candidates); err != nil {
		return nil, err
	}
	return e, nil
}

func (m *SurveySessionMapper) ToModel(e *entity.SurveySession) (*model.SurveySession, error) {
	if e == nil {
		return nil, nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	productCtx, err := json.Marshal(e.ProductContext)
	if err != nil {
		return nil, err
	}
	customerCtx, err := json.Marshal(e.CustomerContext)
	if err != nil {
		return nil, err
	}
	transcript, err := json.Marshal(e.Transcript)
	if err != nil {
		return nil, err
	}
	candidates, err := json.Marshal(e.Candidates)
	if err != nil {
		return nil, err
	}

	var pending datatypes.JSON
	if e.Pending != nil {
		raw, err := json.Marshal(e.Pending)
		if err != nil {
			return nil, err
		}
		pending = datatypes.JSON(raw)
	}

	return &model.SurveySession{
		Id:              e.Id,
		CustomerId:      e.CustomerId,
		ProductId:       e.ProductId,
		TransactionId:   e.TransactionId,
		Status:          string(e.Status),
		ProductContext:  datatypes.JSON(productCtx),
		CustomerContext: datatypes.JSON(customerCtx),
		Transcript:      datatypes.JSON(transcript),
		Pending:         pending,
		SkipsUsed:       e.SkipsUsed,
		Candidates:      datatypes.JSON(candidates),
		SentimentBand:   string(e.SentimentBand),
		SelectedIndex:   e.SelectedIndex,
		Version:         e.Version,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       updatedAt,
	}, nil
}

func unmarshalColumn(raw datatypes.JSON, dst interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
