package mapper

import (
	"time"

	"github.com/pgvector/pgvector-go"

	"survey-sensei-be/internal/entity"
	"survey-sensei-be/internal/model"
)

type ReviewMapper struct{}

func NewReviewMapper() *ReviewMapper {
	return &ReviewMapper{}
}

func (m *ReviewMapper) ToEntity(r *model.Review) *entity.Review {
	if r == nil {
		return nil
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	return &entity.Review{
		Id:         r.Id,
		ProductId:  r.ProductId,
		CustomerId: r.CustomerId,
		SessionId:  r.SessionId,
		Title:      r.Title,
		Body:       r.Body,
		Stars:      r.Stars,
		Tone:       r.Tone,
		Band:       r.Band,
		Embedding:  r.Embedding.Slice(),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *ReviewMapper) ToModel(r *entity.Review) *model.Review {
	if r == nil {
		return nil
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	return &model.Review{
		Id:         r.Id,
		ProductId:  r.ProductId,
		CustomerId: r.CustomerId,
		SessionId:  r.SessionId,
		Title:      r.Title,
		Body:       r.Body,
		Stars:      r.Stars,
		Tone:       r.Tone,
		Band:       r.Band,
		Embedding:  pgvector.NewVector(r.Embedding),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *ReviewMapper) ToEntities(reviews []*model.Review) []*entity.Review {
	entities := make([]*entity.Review, len(reviews))
	for i, r := range reviews {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
