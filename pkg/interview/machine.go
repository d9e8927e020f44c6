package interview

// Bounds holds the question-count envelope and skip budget for a session.
type Bounds struct {
	MinQuestions int
	MaxQuestions int
	SkipLimit    int
}

// DefaultBounds matches the product defaults; real deployments take these
// from configuration.
var DefaultBounds = Bounds{MinQuestions: 3, MaxQuestions: 7, SkipLimit: 2}

// Machine enforces the session lifecycle over a State. It is stateless itself
// and safe to share.
type Machine struct {
	Bounds Bounds
}

func NewMachine(b Bounds) *Machine {
	return &Machine{Bounds: b}
}

// Resolution is the machine's verdict after a committed answer: keep asking,
// move to synthesis, or force one more question to reach the floor even
// though the generator wanted to stop.
type Resolution int

const (
	ResolutionContinue Resolution = iota
	ResolutionComplete
	ResolutionForceAsk
)

// ValidateAnswer checks that an answer can be committed right now.
func (m *Machine) ValidateAnswer(s State) error {
	if s.Status != StatusInProgress {
		return &InvalidTransitionError{Op: "answer", Status: s.Status, Reason: "session is no longer collecting answers"}
	}
	if s.Pending == nil {
		return &InvalidTransitionError{Op: "answer", Status: s.Status, Reason: "no question is pending"}
	}
	return nil
}

// ValidateSkip checks status, pending question, and the skip budget.
func (m *Machine) ValidateSkip(s State) error {
	if err := m.ValidateAnswer(s); err != nil {
		ite := err.(*InvalidTransitionError)
		ite.Op = "skip"
		return ite
	}
	if s.SkipsUsed >= m.Bounds.SkipLimit {
		return &SkipLimitError{Limit: m.Bounds.SkipLimit, Used: s.SkipsUsed}
	}
	return nil
}

// ValidateEdit checks that a branch from questionNumber with newAnswer is
// legal. Edits are allowed while answering and after completion but before
// a review has been synthesized. Re-submitting the identical answer is
// rejected so a branch always changes the transcript; skipped entries are
// never duplicates because the edit supplies an answer where none existed.
func (m *Machine) ValidateEdit(s State, questionNumber int, newAnswer []string) error {
	if s.Status != StatusInProgress && s.Status != StatusAwaitingSynthesis {
		return &InvalidTransitionError{Op: "edit", Status: s.Status, Reason: "transcript is locked once synthesis has produced candidates"}
	}
	if questionNumber < 1 || questionNumber > len(s.Transcript) {
		return &UnknownQuestionError{Number: questionNumber, Max: len(s.Transcript)}
	}
	existing := s.Transcript[questionNumber-1]
	if !existing.Skipped {
		candidate := Entry{Answer: newAnswer}
		if existing.AnswerText() == candidate.AnswerText() {
			return &DuplicateAnswerError{Number: questionNumber}
		}
	}
	return nil
}

// RecordAnswer commits the pending question with the given answer and clears
// the pending slot. Callers must have run ValidateAnswer first.
func (m *Machine) RecordAnswer(s State, answer []string) State {
	entry := Entry{
		Number:   s.NextNumber(),
		Question: *s.Pending,
		Answer:   answer,
	}
	s.Transcript = append(s.Transcript, entry)
	s.Pending = nil
	return s
}

// RecordSkip commits the pending question as skipped. A skipped question
// still occupies a transcript slot and counts toward the floor.
func (m *Machine) RecordSkip(s State) State {
	entry := Entry{
		Number:   s.NextNumber(),
		Question: *s.Pending,
		Skipped:  true,
	}
	s.Transcript = append(s.Transcript, entry)
	s.Pending = nil
	s.SkipsUsed++
	return s
}

// Branch rewrites the answer at questionNumber and discards every later
// entry, returning the new state and the count of discarded entries. The
// original question text is kept; only the answer changes. Skip budget is
// recounted from the surviving transcript, and a completed-but-unsynthesized
// session drops back to in_progress so the interview can continue from the
// branch point.
func (m *Machine) Branch(s State, questionNumber int, newAnswer []string) (State, int) {
	discarded := len(s.Transcript) - questionNumber

	edited := s.Transcript[questionNumber-1]
	edited.Answer = newAnswer
	edited.Skipped = false

	s.Transcript = append(s.Transcript[:questionNumber-1], edited)
	s.Pending = nil
	s.Status = StatusInProgress

	skips := 0
	for _, e := range s.Transcript {
		if e.Skipped {
			skips++
		}
	}
	s.SkipsUsed = skips
	return s, discarded
}

// Resolve decides what happens after a commit. done is the generator's
// signal that it has nothing more to ask; the ceiling overrides everything
// and the floor overrides done.
func (m *Machine) Resolve(s State, done bool) Resolution {
	asked := len(s.Transcript)
	if asked >= m.Bounds.MaxQuestions {
		return ResolutionComplete
	}
	if done && asked < m.Bounds.MinQuestions {
		return ResolutionForceAsk
	}
	if done {
		return ResolutionComplete
	}
	return ResolutionContinue
}

// Present puts a new question in the pending slot.
func (m *Machine) Present(s State, q Question) State {
	s.Pending = &q
	return s
}

// Complete moves the session to awaiting_synthesis.
func (m *Machine) Complete(s State) State {
	s.Status = StatusAwaitingSynthesis
	s.Pending = nil
	return s
}

// MarkSynthesized records that review candidates exist. Regeneration calls
// this again from synthesized, which is a no-op.
func (m *Machine) MarkSynthesized(s State) (State, error) {
	switch s.Status {
	case StatusAwaitingSynthesis, StatusSynthesized:
		s.Status = StatusSynthesized
		return s, nil
	default:
		return s, &InvalidTransitionError{Op: "synthesize", Status: s.Status, Reason: "interview has not completed"}
	}
}

// Finalize validates the chosen candidate index and locks the session.
func (m *Machine) Finalize(s State, index, candidateCount int) (State, error) {
	if s.Status != StatusSynthesized {
		return s, &InvalidTransitionError{Op: "finalize", Status: s.Status, Reason: "no candidates to choose from"}
	}
	if index < 0 || index >= candidateCount {
		return s, &InvalidSelectionError{Index: index, Count: candidateCount}
	}
	s.Status = StatusFinalized
	return s, nil
}
