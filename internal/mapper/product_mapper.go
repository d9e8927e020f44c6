package mapper

import (
	"time"

	"github.com/pgvector/pgvector-go"

	"survey-sensei-be/internal/entity"
	"survey-sensei-be/internal/model"
)

type ProductMapper struct{}

func NewProductMapper() *ProductMapper {
	return &ProductMapper{}
}

func (m *ProductMapper) ToEntity(p *model.Product) *entity.Product {
	if p == nil {
		return nil
	}

	var updatedAt *time.Time
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		updatedAt = &t
	}

	return &entity.Product{
		Id:          p.Id,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Rating:      p.Rating,
		Embedding:   p.Embedding.Slice(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *ProductMapper) ToModel(p *entity.Product) *model.Product {
	if p == nil {
		return nil
	}

	var updatedAt time.Time
	if p.UpdatedAt != nil {
		updatedAt = *p.UpdatedAt
	}

	return &model.Product{
		Id:          p.Id,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Rating:      p.Rating,
		Embedding:   pgvector.NewVector(p.Embedding),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   updatedAt,
	}
}

func (m *ProductMapper) ToEntities(products []*model.Product) []*entity.Product {
	entities := make([]*entity.Product, len(products))
	for i, p := range products {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
