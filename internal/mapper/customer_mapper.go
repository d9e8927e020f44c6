package mapper

import (
	"time"

	"github.com/pgvector/pgvector-go"

	"survey-sensei-be/internal/entity"
	"survey-sensei-be/internal/model"
)

type CustomerMapper struct{}

func NewCustomerMapper() *CustomerMapper {
	return &CustomerMapper{}
}

func (m *CustomerMapper) ToEntity(c *model.Customer) *entity.Customer {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Customer{
		Id:        c.Id,
		Name:      c.Name,
		Email:     c.Email,
		Embedding: c.Embedding.Slice(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *CustomerMapper) ToModel(c *entity.Customer) *model.Customer {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Customer{
		Id:        c.Id,
		Name:      c.Name,
		Email:     c.Email,
		Embedding: pgvector.NewVector(c.Embedding),
		CreatedAt: c.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *CustomerMapper) ToEntities(customers []*model.Customer) []*entity.Customer {
	entities := make([]*entity.Customer, len(customers))
	for i, c := range customers {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
