package implementation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"survey-sensei-be/internal/entity"
	"survey-sensei-be/internal/mapper"
	"survey-sensei-be/internal/model"
	"survey-sensei-be/internal/repository/contract"
	"survey-sensei-be/internal/repository/specification"
)

type CustomerRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CustomerMapper
}

func NewCustomerRepository(db *gorm.DB) contract.CustomerRepository {
	return &CustomerRepositoryImpl{
		db:     db,
		mapper: mapper.NewCustomerMapper(),
	}
}

func (r *CustomerRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CustomerRepositoryImpl) Create(ctx context.Context, customer *entity.Customer) error {
	m := r.mapper.ToModel(customer)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*customer = *r.mapper.ToEntity(m)
	return nil
}

func (r *CustomerRepositoryImpl) Update(ctx context.Context, customer *entity.Customer) error {
	m := r.mapper.ToModel(customer)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*customer = *r.mapper.ToEntity(m)
	return nil
}

func (r *CustomerRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Customer{}, id).Error
}

func (r *CustomerRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Customer, error) {
	var m model.Customer
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CustomerRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Customer, error) {
	var models []*model.Customer
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *CustomerRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Customer{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *CustomerRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, exclude uuid.UUID, threshold float64) ([]*contract.ScoredCustomer, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.Customer
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("customers").
		Select("customers.*, 1 - (embedding <=> ?) as similarity", queryVector).
		Where("customers.id <> ?", exclude).
		Where("customers.deleted_at IS NULL").
		Where("1 - (embedding <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredCustomer, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredCustomer{
			Customer:   r.mapper.ToEntity(&res.Customer),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
