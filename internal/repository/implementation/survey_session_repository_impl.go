package implementation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"survey-sensei-be/internal/entity"
	"survey-sensei-be/internal/mapper"
	"survey-sensei-be/internal/model"
	"survey-sensei-be/internal/repository/contract"
	"survey-sensei-be/internal/repository/specification"
)

type SurveySessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SurveySessionMapper
}

func NewSurveySessionRepository(db *gorm.DB) contract.SurveySessionRepository {
	return &SurveySessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSurveySessionMapper(),
	}
}

func (r *SurveySessionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SurveySessionRepositoryImpl) Create(ctx context.Context, session *entity.SurveySession) error {
	m, err := r.mapper.ToModel(session)
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
	*session = *e
	return nil
}

// UpdateVersioned writes the full row guarded by the version column. A zero
// RowsAffected means someone else won the race; the caller decides whether
// to reload and retry or surface a conflict.
func (r *SurveySessionRepositoryImpl) UpdateVersioned(ctx context.Context, session *entity.SurveySession) error {
	m, err := r.mapper.ToModel(session)
	if err != nil {
		return err
	}

	currentVersion := m.Version
	m.Version = currentVersion + 1

	res := r.db.WithContext(ctx).
		Model(&model.SurveySession{}).
		Where("id = ? AND version = ?", m.Id, currentVersion).
		Updates(map[string]interface{}{
			"status":           m.Status,
			"product_context":  m.ProductContext,
			"customer_context": m.CustomerContext,
			"transcript":       m.Transcript,
			"pending":          m.Pending,
			"skips_used":       m.SkipsUsed,
			"candidates":       m.Candidates,
			"sentiment_band":   m.SentimentBand,
			"selected_index":   m.SelectedIndex,
			"version":          m.Version,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return contract.ErrVersionConflict
	}

	session.Version = m.Version
	return nil
}

func (r *SurveySessionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.SurveySession{}, id).Error
}

func (r *SurveySessionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SurveySession, error) {
	var m model.SurveySession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *SurveySessionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SurveySession, error) {
	var models []*model.SurveySession
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.SurveySession, len(models))
	for i, m := range models {
		e, err := r.mapper.ToEntity(m)
		if err != nil {
			return nil, err
		}
		entities[i] = e
	}
	return entities, nil
}

func (r *SurveySessionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.SurveySession{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
