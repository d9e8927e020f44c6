package mapper

import (
	"survey-sensei-be/internal/entity"
	"survey-sensei-be/internal/model"
)

type TransactionMapper struct{}

func NewTransactionMapper() *TransactionMapper {
	return &TransactionMapper{}
}

func (m *TransactionMapper) ToEntity(t *model.Transaction) *entity.Transaction {
	if t == nil {
		return nil
	}
	return &entity.Transaction{
		Id:          t.Id,
		CustomerId:  t.CustomerId,
		ProductId:   t.ProductId,
		Quantity:    t.Quantity,
		UnitPrice:   t.UnitPrice,
		PurchasedAt: t.PurchasedAt,
		CreatedAt:   t.CreatedAt,
	}
}

func (m *TransactionMapper) ToModel(t *entity.Transaction) *model.Transaction {
	if t == nil {
		return nil
	}
	return &model.Transaction{
		Id:          t.Id,
		CustomerId:  t.CustomerId,
		ProductId:   t.ProductId,
		Quantity:    t.Quantity,
		UnitPrice:   t.UnitPrice,
		PurchasedAt: t.PurchasedAt,
		CreatedAt:   t.CreatedAt,
	}
}

func (m *TransactionMapper) ToEntities(txs []*model.Transaction) []*entity.Transaction {
	entities := make([]*entity.Transaction, len(txs))
	for i, t := range txs {
		entities[i] = m.ToEntity(t)
	}
	return entities
}
