package implementation

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"survey-sensei-be/internal/entity"
	"survey-sensei-be/internal/mapper"
	"survey-sensei-be/internal/model"
	"survey-sensei-be/internal/repository/contract"
	"survey-sensei-be/internal/repository/specification"
)

type SurveyEventRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SurveyEventMapper
}

func NewSurveyEventRepository(db *gorm.DB) contract.SurveyEventRepository {
	return &SurveyEventRepositoryImpl{
		db:     db,
		mapper: mapper.NewSurveyEventMapper(),
	}
}

func (r *SurveyEventRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SurveyEventRepositoryImpl) NextSeq(ctx context.Context, sessionId uuid.UUID) (int, error) {
	var max int
	err := r.db.WithContext(ctx).
		Model(&model.SurveyEvent{}).
		Where("session_id = ?", sessionId).
		Select("COALESCE(MAX(seq), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

func (r *SurveyEventRepositoryImpl) Append(ctx context.Context, event *entity.SurveyEvent) error {
	if event.Seq == 0 {
		seq, err := r.NextSeq(ctx, event.SessionId)
		if err != nil {
			return err
		}
		event.Seq = seq
	}

	m, err := r.mapper.ToModel(event)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	e, err := r.mapper.ToEntity(m)
	if err != nil {
		return err
	}
	*event = *e
	return nil
}

func (r *SurveyEventRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SurveyEvent, error) {
	var models []*model.SurveyEvent
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models)
}

func (r *SurveyEventRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.SurveyEvent{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
