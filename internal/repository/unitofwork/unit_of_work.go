package unitofwork

import (
	"context"

	"survey-sensei-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ProductRepository() contract.ProductRepository
	CustomerRepository() contract.CustomerRepository
	TransactionRepository() contract.TransactionRepository
	ReviewRepository() contract.ReviewRepository
	SurveySessionRepository() contract.SurveySessionRepository
	SurveyEventRepository() contract.SurveyEventRepository
}
