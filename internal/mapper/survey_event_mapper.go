package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"survey-sensei-be/internal/entity"
	"survey-sensei-be/internal/model"
)

type SurveyEventMapper struct{}

func NewSurveyEventMapper() *SurveyEventMapper {
	return &SurveyEventMapper{}
}

func (m *SurveyEventMapper) ToEntity(e *model.SurveyEvent) (*entity.SurveyEvent, error) {
	if e == nil {
		return nil, nil
	}

	var payload map[string]interface{}
	if len(e.Payload) > 0 {
		if err := json.Unmarshal(e.Payload, &payload); err != nil {
			return nil, err
		}
	}

	return &entity.SurveyEvent{
		Id:        e.Id,
		SessionId: e.SessionId,
		Seq:       e.Seq,
		Type:      e.Type,
		Payload:   payload,
		CreatedAt: e.CreatedAt,
	}, nil
}

func (m *SurveyEventMapper) ToModel(e *entity.SurveyEvent) (*model.SurveyEvent, error) {
	if e == nil {
		return nil, nil
	}

	var payload datatypes.JSON
	if e.Payload != nil {
		raw, err := json.Marshal(e.Payload)
		if err != nil {
			return nil, err
		}
		payload = datatypes.JSON(raw)
	}

	return &model.SurveyEvent{
		Id:        e.Id,
		SessionId: e.SessionId,
		Seq:       e.Seq,
		Type:      e.Type,
		Payload:   payload,
		CreatedAt: e.CreatedAt,
	}, nil
}

func (m *SurveyEventMapper) ToEntities(events []*model.SurveyEvent) ([]*entity.SurveyEvent, error) {
	entities := make([]*entity.SurveyEvent, len(events))
	for i, ev := range events {
		e, err := m.ToEntity(ev)
		if err != nil {
			return nil, err
		}
		entities[i] = e
	}
	return entities, nil
}
