package question

import (
	"context"

	"survey-sensei-be/pkg/evidence"
	"survey-sensei-be/pkg/interview"
	"survey-sensei-be/pkg/interview/prompt"
	"survey-sensei-be/pkg/llm"
)

// Request carries everything the generator may look at when deciding the
// next question.
type Request struct {
	ProductName string
	Product     evidence.ProductContext
	Customer    evidence.CustomerContext
	Transcript  []interview.Entry
	ForceAsk    bool
}

// Result is the generator's verdict: either a next question or done.
type Result struct {
	Done     bool                `json:"done"`
	Question *interview.Question `json:"question,omitempty"`
}

// Generator produces the next interview question.
type Generator interface {
	Next(ctx context.Context, req Request) (Result, error)
}

// LLMGenerator drives a chat model with the question prompt and parses its
// JSON reply.
type LLMGenerator struct {
	provider    llm.LLMProvider
	temperature float64
}

var _ Generator = &LLMGenerator{}

func NewLLMGenerator(provider llm.LLMProvider, temperature float64) *LLMGenerator {
	if temperature <= 0 {
		temperature = 0.7
	}
	return &LLMGenerator{provider: provider, temperature: temperature}
}

func (g *LLMGenerator) Next(ctx context.Context, req Request) (Result, error) {
	p := prompt.NewQuestionBuilder(req.ProductName, req.Product, req.Customer, req.Transcript, req.ForceAsk)

	raw, err := g.provider.Generate(ctx, p.Build(), llm.WithTemperature(g.temperature))
	if err != nil {
		return Result{}, err
	}

	result, err := ParseResult(raw)
	if err != nil {
		return Result{}, err
	}
	// A forced round must yield a question even if the model tried to stop.
	if req.ForceAsk && result.Done {
		if result.Question == nil {
			return Result{}, &ParseError{Raw: raw, Reason: "model ended the interview on a forced round"}
		}
		result.Done = false
	}
	return result, nil
}
