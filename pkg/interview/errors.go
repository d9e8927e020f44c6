package interview

import "fmt"

// InvalidTransitionError reports an operation attempted in a status that does
// not allow it.
type InvalidTransitionError struct {
	Op     string
	Status Status
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s while session is %s: %s", e.Op, e.Status, e.Reason)
}

// SkipLimitError reports a skip attempted after the budget ran out.
type SkipLimitError struct {
	Limit int
	Used  int
}

func (e *SkipLimitError) Error() string {
	return fmt.Sprintf("skip limit reached: %d of %d used", e.Used, e.Limit)
}

// Remaining returns how many skips are left, never negative.
func (e *SkipLimitError) Remaining() int {
	r := e.Limit - e.Used
	if r < 0 {
		r = 0
	}
	return r
}

// DuplicateAnswerError reports an edit that submitted the same answer the
// transcript already holds for that question.
type DuplicateAnswerError struct {
	Number int
}

func (e *DuplicateAnswerError) Error() string {
	return fmt.Sprintf("answer for question %d is unchanged", e.Number)
}

// UnknownQuestionError reports an edit targeting a question number outside
// the transcript.
type UnknownQuestionError struct {
	Number int
	Max    int
}

func (e *UnknownQuestionError) Error() string {
	return fmt.Sprintf("question %d does not exist: transcript has %d entries", e.Number, e.Max)
}

// InvalidSelectionError reports a finalize call with a candidate index out of
// range.
type InvalidSelectionError struct {
	Index int
	Count int
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("candidate index %d out of range: %d candidates available", e.Index, e.Count)
}
