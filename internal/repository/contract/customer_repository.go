package contract

import (
	"context"

	"github.com/google/uuid"

	"survey-sensei-be/internal/entity"
	"survey-sensei-be/internal/repository/specification"
)

// ScoredCustomer wraps a Customer with its profile similarity score
type ScoredCustomer struct {
	Customer   *entity.Customer
	Similarity float64
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Customer, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Customer, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, exclude uuid.UUID, threshold float64) ([]*ScoredCustomer, error)
}
