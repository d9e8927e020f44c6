package contract

import (
	"context"

	"github.com/google/uuid"

	"survey-sensei-be/internal/entity"
	"survey-sensei-be/internal/repository/specification"
)

type SurveyEventRepository interface {
	// Append assigns the next per-session seq and inserts the event.
	Append(ctx context.Context, event *entity.SurveyEvent) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SurveyEvent, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	NextSeq(ctx context.Context, sessionId uuid.UUID) (int, error)
}
