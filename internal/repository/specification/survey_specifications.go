package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByProductId filters rows by product
type ByProductId struct {
	ProductId uuid.UUID
}

func (s ByProductId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("product_id = ?", s.ProductId)
}

// ByProductIds filters rows by a set of products
type ByProductIds struct {
	ProductIds []uuid.UUID
}

func (s ByProductIds) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("product_id IN ?", s.ProductIds)
}

// ByCustomerIds filters rows by a set of customers
type ByCustomerIds struct {
	CustomerIds []uuid.UUID
}

func (s ByCustomerIds) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("customer_id IN ?", s.CustomerIds)
}

// ByCustomerId filters rows by customer
type ByCustomerId struct {
	CustomerId uuid.UUID
}

func (s ByCustomerId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("customer_id = ?", s.CustomerId)
}

// BySessionId filters rows by survey session
type BySessionId struct {
	SessionId uuid.UUID
}

func (s BySessionId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionId)
}

// ByTransactionId filters survey sessions by the purchase they cover
type ByTransactionId struct {
	TransactionId uuid.UUID
}

func (s ByTransactionId) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("transaction_id = ?", s.TransactionId)
}

// ByStatus filters survey sessions by lifecycle status
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}
