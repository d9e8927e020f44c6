package question

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseError reports model output that could not be turned into a Result.
type ParseError struct {
	Raw    string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unusable generator output: %s", e.Reason)
}

// StripCodeFence removes a surrounding markdown code fence if the model
// wrapped its JSON in one, with or without a language tag.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		// drop the language tag line ("json", "JSON", or empty)
		first := strings.TrimSpace(s[:idx])
		if first == "" || len(first) <= 10 && !strings.ContainsAny(first, "{}[]") {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ParseResult extracts the JSON object from raw model output and validates
// it. Leading and trailing prose around the object is tolerated.
func ParseResult(raw string) (Result, error) {
	cleaned := StripCodeFence(raw)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return Result{}, &ParseError{Raw: raw, Reason: "no JSON object found"}
	}

	var result Result
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &result); err != nil {
		return Result{}, &ParseError{Raw: raw, Reason: err.Error()}
	}

	if !result.Done {
		if result.Question == nil || strings.TrimSpace(result.Question.Text) == "" {
			return Result{}, &ParseError{Raw: raw, Reason: "not done but no question text"}
		}
		result.Question.Text = strings.TrimSpace(result.Question.Text)
	}
	return result, nil
}
