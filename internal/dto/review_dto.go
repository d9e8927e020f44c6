package dto

import "github.com/google/uuid"

type GenerateReviewsRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
}

type CandidateResponse struct {
	Index      int      `json:"index"`
	Tone       string   `json:"tone"`
	Title      string   `json:"title"`
	Body       string   `json:"body"`
	Highlights []string `json:"highlights,omitempty"`
	Stars      int      `json:"stars"`
	Band       string   `json:"band"`
}

type GenerateReviewsResponse struct {
	SessionId     uuid.UUID           `json:"session_id"`
	Status        string              `json:"status"`
	SentimentBand string              `json:"sentiment_band"`
	Candidates    []CandidateResponse `json:"candidates"`
}

type SelectReviewRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
	Index     *int      `json:"index" validate:"required,min=0"`
}

type SelectReviewResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	ReviewId  uuid.UUID `json:"review_id"`
	Status    string    `json:"status"`
	Tone      string    `json:"tone"`
	Stars     int       `json:"stars"`
}

// PublishEmbedReviewMessage is the payload carried on the embed topic after a
// review is finalized.
type PublishEmbedReviewMessage struct {
	ReviewId uuid.UUID `json:"review_id"`
}
