package interview

import "strings"

// Status is the lifecycle state of a survey session. Transitions only move
// forward: in_progress, awaiting_synthesis, synthesized, finalized.
type Status string

const (
	StatusInProgress        Status = "in_progress"
	StatusAwaitingSynthesis Status = "awaiting_synthesis"
	StatusSynthesized       Status = "synthesized"
	StatusFinalized         Status = "finalized"
)

// Question is one generated interview question. Options may be empty for
// free-text questions; AllowMultiple only applies when Options is set.
type Question struct {
	Text          string   `json:"text"`
	Options       []string `json:"options,omitempty"`
	AllowMultiple bool     `json:"allow_multiple"`
	Reasoning     string   `json:"reasoning,omitempty"`
}

// Entry is one transcript row. Numbers are 1-based and contiguous.
type Entry struct {
	Number   int      `json:"number"`
	Question Question `json:"question"`
	Answer   []string `json:"answer,omitempty"`
	Skipped  bool     `json:"skipped"`
}

// AnswerText renders the answer the way it appears in prompts and duplicate
// checks. Multi-select answers join with a comma.
func (e Entry) AnswerText() string {
	if e.Skipped {
		return "[skipped]"
	}
	return strings.Join(e.Answer, ", ")
}

// State is the machine-visible portion of a session: its status, committed
// transcript, the question currently awaiting an answer, and the skip budget
// spent so far.
type State struct {
	Status     Status    `json:"status"`
	Transcript []Entry   `json:"transcript"`
	Pending    *Question `json:"pending,omitempty"`
	SkipsUsed  int       `json:"skips_used"`
}

// AskedCount counts every question put in front of the customer, including
// the one still pending an answer.
func (s State) AskedCount() int {
	n := len(s.Transcript)
	if s.Pending != nil {
		n++
	}
	return n
}

// NextNumber is the number the next transcript entry will take.
func (s State) NextNumber() int {
	return len(s.Transcript) + 1
}
