package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survey-sensei-be/internal/constant"
	"survey-sensei-be/internal/dto"
	"survey-sensei-be/internal/repository/specification"
	"survey-sensei-be/pkg/interview"
)

func newSurveyFixture(doneAfter int) (*fakeStore, *fakeGenerator, *fakeGuard, ISurveyService) {
	store := newFakeStore()
	gen := &fakeGenerator{doneAfter: doneAfter}
	guard := &fakeGuard{}
	svc := NewSurveyService(
		&fakeFactory{store: store},
		&fakeContextService{},
		gen,
		interview.NewMachine(interview.DefaultBounds),
		guard,
		nil,
		noopLogger{},
	)
	return store, gen, guard, svc
}

func startSession(t *testing.T, store *fakeStore, svc ISurveyService) (*dto.StartSurveyResponse, uuid.UUID) {
	t.Helper()
	customerId, productId, transactionId := seedPurchase(store)
	resp, err := svc.Start(context.Background(), dto.StartSurveyRequest{
		CustomerId:    customerId,
		ProductId:     productId,
		TransactionId: transactionId,
	})
	require.NoError(t, err)
	return resp, resp.SessionId
}

func TestStartSurvey(t *testing.T) {
	store, _, _, svc := newSurveyFixture(0)
	resp, sessionId := startSession(t, store, svc)

	assert.Equal(t, string(interview.StatusInProgress), resp.Status)
	assert.Equal(t, 1, resp.Question.Number)
	assert.NotEmpty(t, resp.Question.Text)
	assert.Equal(t, "direct_reviews", resp.ProductContext.Path)
	assert.Equal(t, "generic", resp.CustomerContext.Path)

	session := store.sessions[sessionId]
	require.NotNil(t, session)
	assert.NotNil(t, session.Pending)
	assert.Equal(t, 1, session.Version)

	events, _ := (&fakeEventRepo{store: store}).FindAll(context.Background(), specification.BySessionId{SessionId: sessionId})
	require.Len(t, events, 2)
	assert.Equal(t, constant.EventSessionStarted, events[0].Type)
	assert.Equal(t, 1, events[0].Seq)
	assert.Equal(t, constant.EventQuestionAsked, events[1].Type)
	assert.Equal(t, 2, events[1].Seq)
}

func TestStartSurveyUnknownTransaction(t *testing.T) {
	store, _, _, svc := newSurveyFixture(0)
	customerId, productId, _ := seedPurchase(store)

	_, err := svc.Start(context.Background(), dto.StartSurveyRequest{
		CustomerId:    customerId,
		ProductId:     productId,
		TransactionId: uuid.New(),
	})
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}

func TestStartSurveyTransactionMismatch(t *testing.T) {
	store, _, _, svc := newSurveyFixture(0)
	_, productId, transactionId := seedPurchase(store)

	_, err := svc.Start(context.Background(), dto.StartSurveyRequest{
		CustomerId:    uuid.New(),
		ProductId:     productId,
		TransactionId: transactionId,
	})
	assert.ErrorIs(t, err, ErrTransactionMismatch)
}

func TestStartSurveyAlreadyStarted(t *testing.T) {
	store, _, _, svc := newSurveyFixture(0)
	customerId, productId, transactionId := seedPurchase(store)

	req := dto.StartSurveyRequest{CustomerId: customerId, ProductId: productId, TransactionId: transactionId}
	_, err := svc.Start(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Start(context.Background(), req)
	assert.ErrorIs(t, err, ErrSurveyAlreadyStarted)
}

func TestAnswerProgressesInterview(t *testing.T) {
	store, _, _, svc := newSurveyFixture(0)
	_, sessionId := startSession(t, store, svc)

	resp, err := svc.Answer(context.Background(), dto.AnswerRequest{
		SessionId: sessionId,
		Answer:    []string{"Works great"},
	})
	require.NoError(t, err)

	assert.False(t, resp.Completed)
	require.NotNil(t, resp.Question)
	assert.Equal(t, 2, resp.Question.Number)
	assert.Equal(t, 2, resp.SkipsRemaining)

	session := store.sessions[sessionId]
	require.Len(t, session.Transcript, 1)
	assert.Equal(t, []string{"Works great"}, session.Transcript[0].Answer)
	assert.Equal(t, 2, session.Version)
}

func TestInterviewCompletesWhenGeneratorIsDone(t *testing.T) {
	store, _, _, svc := newSurveyFixture(3)
	_, sessionId := startSession(t, store, svc)

	var resp *dto.TurnResponse
	var err error
	for i := 0; i < 3; i++ {
		resp, err = svc.Answer(context.Background(), dto.AnswerRequest{
			SessionId: sessionId,
			Answer:    []string{"answer"},
		})
		require.NoError(t, err)
	}

	assert.True(t, resp.Completed)
	assert.Nil(t, resp.Question)
	assert.Equal(t, string(interview.StatusAwaitingSynthesis), resp.Status)
	assert.Len(t, store.sessions[sessionId].Transcript, 3)
}

func TestFloorForcesAnotherQuestion(t *testing.T) {
	store, gen, _, svc := newSurveyFixture(1)
	_, sessionId := startSession(t, store, svc)

	// The generator wants to stop after one answer, but three questions is
	// the floor.
	resp, err := svc.Answer(context.Background(), dto.AnswerRequest{
		SessionId: sessionId,
		Answer:    []string{"first"},
	})
	require.NoError(t, err)

	assert.False(t, resp.Completed)
	require.NotNil(t, resp.Question)
	assert.GreaterOrEqual(t, gen.forced, 1)
}

func TestCeilingCompletesWithoutGeneratorCall(t *testing.T) {
	store, gen, _, svc := newSurveyFixture(0)
	_, sessionId := startSession(t, store, svc)

	var resp *dto.TurnResponse
	var err error
	for i := 0; i < 7; i++ {
		resp, err = svc.Answer(context.Background(), dto.AnswerRequest{
			SessionId: sessionId,
			Answer:    []string{"answer"},
		})
		require.NoError(t, err)
	}

	assert.True(t, resp.Completed)
	assert.Len(t, store.sessions[sessionId].Transcript, 7)
	// Start plus one per turn except the final one, where the ceiling short
	// circuits the generator.
	assert.Equal(t, 7, gen.calls)
}

func TestSkipCountsTowardFloorAndBudget(t *testing.T) {
	store, _, _, svc := newSurveyFixture(0)
	_, sessionId := startSession(t, store, svc)

	resp, err := svc.Skip(context.Background(), dto.SkipRequest{SessionId: sessionId})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.SkipsRemaining)

	session := store.sessions[sessionId]
	require.Len(t, session.Transcript, 1)
	assert.True(t, session.Transcript[0].Skipped)
}

func TestSkipLimitEnforced(t *testing.T) {
	store, _, _, svc := newSurveyFixture(0)
	_, sessionId := startSession(t, store, svc)

	for i := 0; i < 2; i++ {
		_, err := svc.Skip(context.Background(), dto.SkipRequest{SessionId: sessionId})
		require.NoError(t, err)
	}

	_, err := svc.Skip(context.Background(), dto.SkipRequest{SessionId: sessionId})
	var skipErr *interview.SkipLimitError
	require.ErrorAs(t, err, &skipErr)
	assert.Equal(t, 0, skipErr.Remaining())
}

func TestAnswerReportsGeneratorOutage(t *testing.T) {
	store, gen, _, svc := newSurveyFixture(0)
	_, sessionId := startSession(t, store, svc)

	gen.err = errors.New("dial tcp 127.0.0.1:11434: connection refused")
	_, err := svc.Answer(context.Background(), dto.AnswerRequest{
		SessionId: sessionId,
		Answer:    []string{"answer"},
	})
	assert.ErrorIs(t, err, ErrGeneratorUnavailable)

	// The failed turn must not have been committed.
	assert.Empty(t, store.sessions[sessionId].Transcript)
}

func TestGuardBusyRejectsCommand(t *testing.T) {
	store, _, guard, svc := newSurveyFixture(0)
	_, sessionId := startSession(t, store, svc)

	guard.busy = true
	_, err := svc.Answer(context.Background(), dto.AnswerRequest{
		SessionId: sessionId,
		Answer:    []string{"answer"},
	})
	assert.ErrorIs(t, err, ErrSessionBusy)
}

func TestGuardReleasedAfterCommand(t *testing.T) {
	store, _, guard, svc := newSurveyFixture(0)
	_, sessionId := startSession(t, store, svc)

	_, err := svc.Answer(context.Background(), dto.AnswerRequest{
		SessionId: sessionId,
		Answer:    []string{"answer"},
	})
	require.NoError(t, err)
	assert.Equal(t, guard.acquired, guard.released)
}

func TestEditBranchesTranscript(t *testing.T) {
	store, _, _, svc := newSurveyFixture(3)
	_, sessionId := startSession(t, store, svc)

	for i := 0; i < 3; i++ {
		_, err := svc.Answer(context.Background(), dto.AnswerRequest{
			SessionId: sessionId,
			Answer:    []string{"answer"},
		})
		require.NoError(t, err)
	}
	require.Equal(t, interview.StatusAwaitingSynthesis, store.sessions[sessionId].Status)

	resp, err := svc.Edit(context.Background(), dto.EditAnswerRequest{
		SessionId:      sessionId,
		QuestionNumber: 1,
		Answer:         []string{"revised answer"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.DiscardedCount)
	assert.False(t, resp.Completed)
	require.NotNil(t, resp.Question)
	assert.Equal(t, 2, resp.Question.Number)

	session := store.sessions[sessionId]
	assert.Equal(t, interview.StatusInProgress, session.Status)
	require.Len(t, session.Transcript, 1)
	assert.Equal(t, []string{"revised answer"}, session.Transcript[0].Answer)
}

func TestEditRejectsIdenticalAnswer(t *testing.T) {
	store, _, _, svc := newSurveyFixture(0)
	_, sessionId := startSession(t, store, svc)

	_, err := svc.Answer(context.Background(), dto.AnswerRequest{
		SessionId: sessionId,
		Answer:    []string{"same answer"},
	})
	require.NoError(t, err)

	_, err = svc.Edit(context.Background(), dto.EditAnswerRequest{
		SessionId:      sessionId,
		QuestionNumber: 1,
		Answer:         []string{"same answer"},
	})
	var dupErr *interview.DuplicateAnswerError
	assert.ErrorAs(t, err, &dupErr)
}

func TestEditUnknownQuestion(t *testing.T) {
	store, _, _, svc := newSurveyFixture(0)
	_, sessionId := startSession(t, store, svc)

	_, err := svc.Edit(context.Background(), dto.EditAnswerRequest{
		SessionId:      sessionId,
		QuestionNumber: 5,
		Answer:         []string{"answer"},
	})
	var unknownErr *interview.UnknownQuestionError
	assert.ErrorAs(t, err, &unknownErr)
}

func TestGetTranscript(t *testing.T) {
	store, _, _, svc := newSurveyFixture(0)
	_, sessionId := startSession(t, store, svc)

	_, err := svc.Answer(context.Background(), dto.AnswerRequest{
		SessionId: sessionId,
		Answer:    []string{"answer one"},
	})
	require.NoError(t, err)

	resp, err := svc.GetTranscript(context.Background(), sessionId)
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, []string{"answer one"}, resp.Entries[0].Answer)
}

func TestGetSessionNotFound(t *testing.T) {
	_, _, _, svc := newSurveyFixture(0)

	_, err := svc.GetSession(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
