package service

import (
	"errors"
	"fmt"

	"survey-sensei-be/internal/pkg/serverutils"
	"survey-sensei-be/pkg/interview/question"
	"survey-sensei-be/pkg/interview/synthesis"
)

var (
	ErrProductNotFound     = serverutils.NotFound("product not found")
	ErrCustomerNotFound    = serverutils.NotFound("customer not found")
	ErrTransactionNotFound = serverutils.NotFound("transaction not found")
	ErrSessionNotFound     = serverutils.NotFound("survey session not found")
	ErrReviewNotFound      = serverutils.NotFound("review not found")

	// ErrSessionBusy means another command holds the session guard right now.
	ErrSessionBusy = serverutils.Conflict("another request is already working on this session")

	// ErrSessionConflict means the optimistic version check lost the race.
	ErrSessionConflict = serverutils.Conflict("session changed while processing, please retry")

	// ErrTransactionMismatch means the transaction does not belong to the
	// customer and product named in the request.
	ErrTransactionMismatch = serverutils.BadRequest("transaction does not match customer and product")

	ErrSurveyAlreadyStarted = serverutils.Conflict("a survey session already exists for this transaction")

	ErrGeneratorUnavailable = serverutils.UpstreamFailure("question generator is unavailable")
)

// generatorFailure classifies a model-call error. Unusable output keeps its
// own typed error so the handler can report it as such; everything else,
// transport failures mostly, becomes ErrGeneratorUnavailable so the client
// gets a retry cue instead of an opaque 500.
func generatorFailure(err error) error {
	var parseErr *question.ParseError
	var normErr *synthesis.NormalizeError
	if errors.As(err, &parseErr) || errors.As(err, &normErr) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrGeneratorUnavailable, err)
}
