package unitofwork

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"survey-sensei-be/internal/repository/contract"
	"survey-sensei-be/internal/repository/implementation"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // active transaction, nil outside Begin/Commit
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) ProductRepository() contract.ProductRepository {
	return implementation.NewProductRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CustomerRepository() contract.CustomerRepository {
	return implementation.NewCustomerRepository(u.getDB())
}

func (u *UnitOfWorkImpl) TransactionRepository() contract.TransactionRepository {
	return implementation.NewTransactionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ReviewRepository() contract.ReviewRepository {
	return implementation.NewReviewRepository(u.getDB())
}

func (u *UnitOfWorkImpl) SurveySessionRepository() contract.SurveySessionRepository {
	return implementation.NewSurveySessionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) SurveyEventRepository() contract.SurveyEventRepository {
	return implementation.NewSurveyEventRepository(u.getDB())
}
