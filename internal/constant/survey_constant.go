package constant

// Event type codes published to the audit stream.
const (
	EventSessionStarted    = "SESSION_STARTED"
	EventQuestionAsked     = "QUESTION_ASKED"
	EventAnswerRecorded    = "ANSWER_RECORDED"
	EventQuestionSkipped   = "QUESTION_SKIPPED"
	EventAnswerEdited      = "ANSWER_EDITED"
	EventInterviewComplete = "INTERVIEW_COMPLETE"
	EventReviewsGenerated  = "REVIEWS_GENERATED"
	EventReviewFinalized   = "REVIEW_FINALIZED"
)

// Embedding task types, matching the Gemini embedding API vocabulary.
const (
	TaskTypeDocument = "RETRIEVAL_DOCUMENT"
	TaskTypeQuery    = "RETRIEVAL_QUERY"
)

// Logger module names.
const (
	ModuleSurvey   = "survey"
	ModuleReview   = "review"
	ModuleContext  = "context"
	ModuleConsumer = "consumer"
)
