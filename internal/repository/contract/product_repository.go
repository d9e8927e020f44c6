package contract

import (
	"context"

	"github.com/google/uuid"

	"survey-sensei-be/internal/entity"
	"survey-sensei-be/internal/repository/specification"
)

// ScoredProduct wraps a Product with its cosine similarity to a query vector
type ScoredProduct struct {
	Product    *entity.Product
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilarWithScore returns products ordered by cosine similarity to
	// the query embedding, filtered by threshold. The excluded id keeps the
	// anchor product out of its own neighbor set.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, exclude uuid.UUID, threshold float64) ([]*ScoredProduct, error)
}
