package synthesis

import (
	"context"
	"encoding/json"
	"strings"

	"survey-sensei-be/pkg/interview"
	"survey-sensei-be/pkg/interview/prompt"
	"survey-sensei-be/pkg/interview/question"
	"survey-sensei-be/pkg/llm"
)

// Request carries the finished interview into synthesis. PriorReviews are
// the customer's earlier review bodies, used for style matching.
type Request struct {
	ProductName  string
	Transcript   []interview.Entry
	PriorReviews []string
	Count        int
}

// Result is the synthesized candidate set plus the session-level sentiment.
// SentimentBand is the model's own read of the interview's overall tenor,
// repaired from the mean candidate rating when the model returns garbage.
type Result struct {
	SentimentBand Band
	Candidates    []Candidate
}

// Synthesizer turns a completed transcript into review candidates.
type Synthesizer interface {
	Generate(ctx context.Context, req Request) (Result, error)
}

// LLMSynthesizer prompts a chat model for the three drafts and normalizes
// whatever comes back.
type LLMSynthesizer struct {
	provider    llm.LLMProvider
	temperature float64
}

var _ Synthesizer = &LLMSynthesizer{}

func NewLLMSynthesizer(provider llm.LLMProvider, temperature float64) *LLMSynthesizer {
	if temperature <= 0 {
		temperature = 0.8
	}
	return &LLMSynthesizer{provider: provider, temperature: temperature}
}

func (s *LLMSynthesizer) Generate(ctx context.Context, req Request) (Result, error) {
	count := req.Count
	if count <= 0 {
		count = len(ToneOrder)
	}
	p := prompt.NewReviewBuilder(req.ProductName, req.Transcript, req.PriorReviews, count)

	raw, err := s.provider.Generate(ctx, p.Build(), llm.WithTemperature(s.temperature))
	if err != nil {
		return Result{}, err
	}

	parsed, rawBand, err := parseCandidates(raw)
	if err != nil {
		return Result{}, err
	}
	candidates, err := Normalize(parsed)
	if err != nil {
		return Result{}, err
	}

	band, ok := ParseBand(rawBand)
	if !ok {
		band = OverallBand(candidates)
	}
	return Result{SentimentBand: band, Candidates: candidates}, nil
}

// reviewEnvelope is the object form of the model's response. Older prompt
// revisions returned the bare array, so parsing still accepts that.
type reviewEnvelope struct {
	SentimentBand string      `json:"sentiment_band"`
	Reviews       []Candidate `json:"reviews"`
}

func parseCandidates(raw string) ([]Candidate, string, error) {
	cleaned := question.StripCodeFence(raw)

	if start := strings.Index(cleaned, "{"); start >= 0 {
		if end := strings.LastIndex(cleaned, "}"); end > start {
			var env reviewEnvelope
			if err := json.Unmarshal([]byte(cleaned[start:end+1]), &env); err == nil && len(env.Reviews) > 0 {
				return env.Reviews, env.SentimentBand, nil
			}
		}
	}

	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start < 0 || end <= start {
		return nil, "", &NormalizeError{Reason: "no JSON payload found"}
	}

	var out []Candidate
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &out); err != nil {
		return nil, "", &NormalizeError{Reason: err.Error()}
	}
	return out, "", nil
}
