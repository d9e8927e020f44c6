package contract

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"survey-sensei-be/internal/entity"
	"survey-sensei-be/internal/repository/specification"
)

// ErrVersionConflict is returned when a versioned update lost the race: the
// row moved on while this command was in flight.
var ErrVersionConflict = errors.New("survey session was modified concurrently")

type SurveySessionRepository interface {
	Create(ctx context.Context, session *entity.SurveySession) error
	// UpdateVersioned persists the session only if the stored version still
	// matches session.Version, then bumps it. Returns ErrVersionConflict
	// otherwise.
	UpdateVersioned(ctx context.Context, session *entity.SurveySession) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SurveySession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SurveySession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
