package question

import (
	"errors"
	"testing"
)

func TestParseResultPlainJSON(t *testing.T) {
	raw := `{"done": false, "question": {"text": "How often do you use it?", "options": ["Daily", "Weekly"], "allow_multiple": false}}`
	got, err := ParseResult(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Done {
		t.Error("want done=false")
	}
	if got.Question.Text != "How often do you use it?" {
		t.Errorf("unexpected text %q", got.Question.Text)
	}
	if len(got.Question.Options) != 2 {
		t.Errorf("want 2 options, got %d", len(got.Question.Options))
	}
}

func TestParseResultCodeFenced(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"json tag", "```json\n{\"done\": true}\n```"},
		{"no tag", "```\n{\"done\": true}\n```"},
		{"surrounding prose", "Sure! Here is the JSON:\n{\"done\": true}\nHope that helps."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseResult(tt.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Done {
				t.Error("want done=true")
			}
		})
	}
}

func TestParseResultRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"prose only", "I cannot produce a question right now."},
		{"broken json", `{"done": false, "question": {`},
		{"not done without question", `{"done": false}`},
		{"blank question text", `{"done": false, "question": {"text": "   "}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseResult(tt.raw)
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("want ParseError, got %v", err)
			}
		})
	}
}

func TestParseResultTrimsQuestionText(t *testing.T) {
	got, err := ParseResult(`{"done": false, "question": {"text": "  Why this one?  "}}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Question.Text != "Why this one?" {
		t.Errorf("text not trimmed: %q", got.Question.Text)
	}
}
