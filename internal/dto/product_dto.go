package dto

import (
	"time"

	"github.com/google/uuid"
)

type ProductResponse struct {
	Id          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Price       *float64  `json:"price,omitempty"`
	Rating      *float64  `json:"rating,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type ReviewSummaryResponse struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Stars     int       `json:"stars"`
	Tone      string    `json:"tone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ProductReviewsResponse struct {
	ProductId uuid.UUID               `json:"product_id"`
	Reviews   []ReviewSummaryResponse `json:"reviews"`
}
