package dto

import (
	"time"

	"github.com/google/uuid"
)

type StartSurveyRequest struct {
	CustomerId    uuid.UUID `json:"customer_id" validate:"required"`
	ProductId     uuid.UUID `json:"product_id" validate:"required"`
	TransactionId uuid.UUID `json:"transaction_id" validate:"required"`
}

type QuestionResponse struct {
	Number        int      `json:"number"`
	Text          string   `json:"text"`
	Options       []string `json:"options,omitempty"`
	AllowMultiple bool     `json:"allow_multiple"`
}

type ContextSummary struct {
	Path       string  `json:"path"`
	Confidence float64 `json:"confidence"`
}

type StartSurveyResponse struct {
	SessionId       uuid.UUID        `json:"session_id"`
	Status          string           `json:"status"`
	Question        QuestionResponse `json:"question"`
	ProductContext  ContextSummary   `json:"product_context"`
	CustomerContext ContextSummary   `json:"customer_context"`
}

type AnswerRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
	Answer    []string  `json:"answer" validate:"required,min=1,dive,required"`
}

type SkipRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
}

// TurnResponse is shared by answer and skip: either the next question or the
// completion signal.
type TurnResponse struct {
	SessionId      uuid.UUID         `json:"session_id"`
	Status         string            `json:"status"`
	Completed      bool              `json:"completed"`
	Question       *QuestionResponse `json:"question,omitempty"`
	SkipsRemaining int               `json:"skips_remaining"`
}

type EditAnswerRequest struct {
	SessionId      uuid.UUID `json:"session_id" validate:"required"`
	QuestionNumber int       `json:"question_number" validate:"required,min=1"`
	Answer         []string  `json:"answer" validate:"required,min=1,dive,required"`
}

// EditAnswerResponse reports the branch outcome plus the next question the
// resumed interview asks.
type EditAnswerResponse struct {
	SessionId      uuid.UUID         `json:"session_id"`
	Status         string            `json:"status"`
	DiscardedCount int               `json:"discarded_count"`
	Completed      bool              `json:"completed"`
	Question       *QuestionResponse `json:"question,omitempty"`
	SkipsRemaining int               `json:"skips_remaining"`
}

type TranscriptEntryResponse struct {
	Number   int      `json:"number"`
	Question string   `json:"question"`
	Options  []string `json:"options,omitempty"`
	Answer   []string `json:"answer,omitempty"`
	Skipped  bool     `json:"skipped"`
}

// EditableTranscriptResponse backs the edit picker in the client.
type EditableTranscriptResponse struct {
	SessionId uuid.UUID                 `json:"session_id"`
	Status    string                    `json:"status"`
	Editable  bool                      `json:"editable"`
	Entries   []TranscriptEntryResponse `json:"entries"`
}

type SessionResponse struct {
	SessionId       uuid.UUID         `json:"session_id"`
	CustomerId      uuid.UUID         `json:"customer_id"`
	ProductId       uuid.UUID         `json:"product_id"`
	TransactionId   uuid.UUID         `json:"transaction_id"`
	Status          string            `json:"status"`
	AskedCount      int               `json:"asked_count"`
	SkipsUsed       int               `json:"skips_used"`
	Pending         *QuestionResponse `json:"pending,omitempty"`
	ProductContext  ContextSummary    `json:"product_context"`
	CustomerContext ContextSummary    `json:"customer_context"`
	CreatedAt       time.Time         `json:"created_at"`
}

type TranscriptResponse struct {
	SessionId uuid.UUID                 `json:"session_id"`
	Status    string                    `json:"status"`
	Entries   []TranscriptEntryResponse `json:"entries"`
}
