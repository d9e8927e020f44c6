package contract

import (
	"context"

	"github.com/google/uuid"

	"survey-sensei-be/internal/entity"
	"survey-sensei-be/internal/repository/specification"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Review, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Review, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// UpdateEmbedding writes just the vector column, used by the async
	// embedding consumer so it cannot clobber concurrent field edits.
	UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error
}
