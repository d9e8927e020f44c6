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

type TransactionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TransactionMapper
}

func NewTransactionRepository(db *gorm.DB) contract.TransactionRepository {
	return &TransactionRepositoryImpl{
		db:     db,
		mapper: mapper.NewTransactionMapper(),
	}
}

func (r *TransactionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TransactionRepositoryImpl) Create(ctx context.Context, tx *entity.Transaction) error {
	m := r.mapper.ToModel(tx)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*tx = *r.mapper.ToEntity(m)
	return nil
}

func (r *TransactionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Transaction{}, id).Error
}

func (r *TransactionRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Transaction, error) {
	var m model.Transaction
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *TransactionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Transaction, error) {
	var models []*model.Transaction
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *TransactionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Transaction{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
