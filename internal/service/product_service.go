package service

import (
	"context"

	"github.com/google/uuid"

	"survey-sensei-be/internal/dto"
	"survey-sensei-be/internal/entity"
	"survey-sensei-be/internal/pkg/logger"
	"survey-sensei-be/internal/repository/specification"
	"survey-sensei-be/internal/repository/unitofwork"
)

type IProductService interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	GetProductReviews(ctx context.Context, id uuid.UUID) (*dto.ProductReviewsResponse, error)
}

type ProductService struct {
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewProductService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IProductService {
	return &ProductService{uowFactory: uowFactory, log: log}
}

func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return productResponse(product), nil
}

func (s *ProductService) GetProductReviews(ctx context.Context, id uuid.UUID) (*dto.ProductReviewsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	reviews, err := uow.ReviewRepository().FindAll(ctx,
		specification.ByProductId{ProductId: id},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ReviewSummaryResponse, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, dto.ReviewSummaryResponse{
			Id:        r.Id,
			Title:     r.Title,
			Body:      r.Body,
			Stars:     r.Stars,
			Tone:      r.Tone,
			CreatedAt: r.CreatedAt,
		})
	}
	return &dto.ProductReviewsResponse{ProductId: id, Reviews: out}, nil
}

func productResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		Id:          p.Id,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Price:       p.Price,
		Rating:      p.Rating,
		CreatedAt:   p.CreatedAt,
	}
}
