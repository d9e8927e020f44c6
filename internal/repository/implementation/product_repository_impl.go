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

type ProductRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProductMapper
}

func NewProductRepository(db *gorm.DB) contract.ProductRepository {
	return &ProductRepositoryImpl{
		db:     db,
		mapper: mapper.NewProductMapper(),
	}
}

func (r *ProductRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ProductRepositoryImpl) Create(ctx context.Context, product *entity.Product) error {
	m := r.mapper.ToModel(product)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*product = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProductRepositoryImpl) Update(ctx context.Context, product *entity.Product) error {
	m := r.mapper.ToModel(product)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*product = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProductRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, id).Error
}

func (r *ProductRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error) {
	var m model.Product
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ProductRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error) {
	var models []*model.Product
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ProductRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Product{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SearchSimilarWithScore runs nearest-neighbor search over product embeddings.
// Cosine distance in pgvector is 1 - cosine_similarity, so the select inverts
// it back into a similarity.
func (r *ProductRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, exclude uuid.UUID, threshold float64) ([]*contract.ScoredProduct, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.Product
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("products").
		Select("products.*, 1 - (embedding <=> ?) as similarity", queryVector).
		Where("products.id <> ?", exclude).
		Where("products.deleted_at IS NULL").
		Where("1 - (embedding <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredProduct, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredProduct{
			Product:    r.mapper.ToEntity(&res.Product),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
