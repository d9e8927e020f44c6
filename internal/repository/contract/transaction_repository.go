package contract

import (
	"context"

	"github.com/google/uuid"

	"survey-sensei-be/internal/entity"
	"survey-sensei-be/internal/repository/specification"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Transaction, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Transaction, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
