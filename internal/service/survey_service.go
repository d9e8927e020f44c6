package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"survey-sensei-be/internal/constant"
	"survey-sensei-be/internal/dto"
	"survey-sensei-be/internal/entity"
	"survey-sensei-be/internal/pkg/logger"
	"survey-sensei-be/internal/repository/contract"
	"survey-sensei-be/internal/repository/specification"
	"survey-sensei-be/internal/repository/unitofwork"
	"survey-sensei-be/pkg/events"
	"survey-sensei-be/pkg/interview"
	"survey-sensei-be/pkg/interview/question"
)

// EventPublisher fans lifecycle events out to the audit stream. Publishing is
// best effort; a broker outage never fails a customer request.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type ISurveyService interface {
	Start(ctx context.Context, req dto.StartSurveyRequest) (*dto.StartSurveyResponse, error)
	Answer(ctx context.Context, req dto.AnswerRequest) (*dto.TurnResponse, error)
	Skip(ctx context.Context, req dto.SkipRequest) (*dto.TurnResponse, error)
	Edit(ctx context.Context, req dto.EditAnswerRequest) (*dto.EditAnswerResponse, error)
	GetForEdit(ctx context.Context, sessionId uuid.UUID) (*dto.EditableTranscriptResponse, error)
	GetSession(ctx context.Context, sessionId uuid.UUID) (*dto.SessionResponse, error)
	GetTranscript(ctx context.Context, sessionId uuid.UUID) (*dto.TranscriptResponse, error)
}

type SurveyService struct {
	uowFactory unitofwork.RepositoryFactory
	contextSvc IContextService
	generator  question.Generator
	machine    *interview.Machine
	guard      contract.SessionGuard
	events     EventPublisher
	log        logger.ILogger
}

func NewSurveyService(
	uowFactory unitofwork.RepositoryFactory,
	contextSvc IContextService,
	generator question.Generator,
	machine *interview.Machine,
	guard contract.SessionGuard,
	eventPublisher EventPublisher,
	log logger.ILogger,
) ISurveyService {
	return &SurveyService{
		uowFactory: uowFactory,
		contextSvc: contextSvc,
		generator:  generator,
		machine:    machine,
		guard:      guard,
		events:     eventPublisher,
		log:        log,
	}
}

func (s *SurveyService) Start(ctx context.Context, req dto.StartSurveyRequest) (*dto.StartSurveyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	txn, err := uow.TransactionRepository().FindOne(ctx, specification.ByID{ID: req.TransactionId})
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, ErrTransactionNotFound
	}
	if txn.CustomerId != req.CustomerId || txn.ProductId != req.ProductId {
		return nil, ErrTransactionMismatch
	}

	existing, err := uow.SurveySessionRepository().FindOne(ctx, specification.ByTransactionId{TransactionId: req.TransactionId})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSurveyAlreadyStarted
	}

	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: req.ProductId})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	customer, err := uow.CustomerRepository().FindOne(ctx, specification.ByID{ID: req.CustomerId})
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	productCtx, err := s.contextSvc.BuildProductContext(ctx, product)
	if err != nil {
		return nil, err
	}
	customerCtx, err := s.contextSvc.BuildCustomerContext(ctx, customer)
	if err != nil {
		return nil, err
	}

	// The floor guarantees at least one question, so the first round is
	// always forced.
	first, err := s.generator.Next(ctx, question.Request{
		ProductName: product.Name,
		Product:     productCtx,
		Customer:    customerCtx,
		ForceAsk:    true,
	})
	if err != nil {
		return nil, generatorFailure(err)
	}

	session := &entity.SurveySession{
		Id:              uuid.New(),
		CustomerId:      req.CustomerId,
		ProductId:       req.ProductId,
		TransactionId:   req.TransactionId,
		Status:          interview.StatusInProgress,
		ProductContext:  productCtx,
		CustomerContext: customerCtx,
		Pending:         first.Question,
		Version:         1,
		CreatedAt:       time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.SurveySessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}
	if err := s.appendEvent(ctx, uow, session.Id, constant.EventSessionStarted, map[string]interface{}{
		"transaction_id":  session.TransactionId.String(),
		"product_path":    string(productCtx.Path),
		"customer_path":   string(customerCtx.Path),
		"product_conf":    productCtx.Confidence,
		"customer_conf":   customerCtx.Confidence,
	}); err != nil {
		return nil, err
	}
	if err := s.appendEvent(ctx, uow, session.Id, constant.EventQuestionAsked, map[string]interface{}{
		"number": 1,
		"text":   first.Question.Text,
	}); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.announce(ctx, constant.EventSessionStarted, map[string]interface{}{
		"session_id": session.Id.String(),
		"product_id": session.ProductId.String(),
	})

	s.log.Info(constant.ModuleSurvey, "survey session started", map[string]interface{}{
		"session_id":    session.Id,
		"product_path":  string(productCtx.Path),
		"customer_path": string(customerCtx.Path),
	})

	return &dto.StartSurveyResponse{
		SessionId:       session.Id,
		Status:          string(session.Status),
		Question:        questionResponse(1, *first.Question),
		ProductContext:  dto.ContextSummary{Path: string(productCtx.Path), Confidence: productCtx.Confidence},
		CustomerContext: dto.ContextSummary{Path: string(customerCtx.Path), Confidence: customerCtx.Confidence},
	}, nil
}

func (s *SurveyService) Answer(ctx context.Context, req dto.AnswerRequest) (*dto.TurnResponse, error) {
	release, err := s.acquire(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}
	defer release()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, product, err := s.loadSessionWithProduct(ctx, uow, req.SessionId)
	if err != nil {
		return nil, err
	}

	st := session.State()
	if err := s.machine.ValidateAnswer(st); err != nil {
		return nil, err
	}

	answered := st.NextNumber()
	st = s.machine.RecordAnswer(st, req.Answer)

	st, next, completed, err := s.advance(ctx, product.Name, session, st)
	if err != nil {
		return nil, err
	}
	session.ApplyState(st)

	auditEvents := []auditEvent{{constant.EventAnswerRecorded, map[string]interface{}{
		"number": answered,
		"answer": req.Answer,
	}}}
	auditEvents = s.appendTurnEvents(auditEvents, st, next, completed)

	if err := s.persistTurn(ctx, uow, session, auditEvents); err != nil {
		return nil, err
	}

	s.announce(ctx, constant.EventAnswerRecorded, map[string]interface{}{
		"session_id": session.Id.String(),
		"number":     answered,
	})
	if completed {
		s.announce(ctx, constant.EventInterviewComplete, map[string]interface{}{
			"session_id": session.Id.String(),
			"asked":      len(st.Transcript),
		})
	}

	return s.turnResponse(session, st, next, completed), nil
}

func (s *SurveyService) Skip(ctx context.Context, req dto.SkipRequest) (*dto.TurnResponse, error) {
	release, err := s.acquire(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}
	defer release()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, product, err := s.loadSessionWithProduct(ctx, uow, req.SessionId)
	if err != nil {
		return nil, err
	}

	st := session.State()
	if err := s.machine.ValidateSkip(st); err != nil {
		return nil, err
	}

	skipped := st.NextNumber()
	st = s.machine.RecordSkip(st)

	st, next, completed, err := s.advance(ctx, product.Name, session, st)
	if err != nil {
		return nil, err
	}
	session.ApplyState(st)

	auditEvents := []auditEvent{{constant.EventQuestionSkipped, map[string]interface{}{
		"number":     skipped,
		"skips_used": st.SkipsUsed,
	}}}
	auditEvents = s.appendTurnEvents(auditEvents, st, next, completed)

	if err := s.persistTurn(ctx, uow, session, auditEvents); err != nil {
		return nil, err
	}

	s.announce(ctx, constant.EventQuestionSkipped, map[string]interface{}{
		"session_id": session.Id.String(),
		"number":     skipped,
	})
	if completed {
		s.announce(ctx, constant.EventInterviewComplete, map[string]interface{}{
			"session_id": session.Id.String(),
			"asked":      len(st.Transcript),
		})
	}

	return s.turnResponse(session, st, next, completed), nil
}

func (s *SurveyService) Edit(ctx context.Context, req dto.EditAnswerRequest) (*dto.EditAnswerResponse, error) {
	release, err := s.acquire(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}
	defer release()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, product, err := s.loadSessionWithProduct(ctx, uow, req.SessionId)
	if err != nil {
		return nil, err
	}

	st := session.State()
	if err := s.machine.ValidateEdit(st, req.QuestionNumber, req.Answer); err != nil {
		return nil, err
	}

	st, discarded := s.machine.Branch(st, req.QuestionNumber, req.Answer)

	st, next, completed, err := s.advance(ctx, product.Name, session, st)
	if err != nil {
		return nil, err
	}
	session.ApplyState(st)
	// A branch invalidates any candidates synthesized from the old transcript.
	session.Candidates = nil
	session.SentimentBand = ""
	session.SelectedIndex = nil

	auditEvents := []auditEvent{{constant.EventAnswerEdited, map[string]interface{}{
		"question_number": req.QuestionNumber,
		"discarded_count": discarded,
	}}}
	auditEvents = s.appendTurnEvents(auditEvents, st, next, completed)

	if err := s.persistTurn(ctx, uow, session, auditEvents); err != nil {
		return nil, err
	}

	s.announce(ctx, constant.EventAnswerEdited, map[string]interface{}{
		"session_id":      session.Id.String(),
		"question_number": req.QuestionNumber,
		"discarded_count": discarded,
	})

	resp := &dto.EditAnswerResponse{
		SessionId:      session.Id,
		Status:         string(st.Status),
		DiscardedCount: discarded,
		Completed:      completed,
		SkipsRemaining: s.skipsRemaining(st),
	}
	if next != nil {
		qr := questionResponse(st.NextNumber(), *next)
		resp.Question = &qr
	}
	return resp, nil
}

func (s *SurveyService) GetForEdit(ctx context.Context, sessionId uuid.UUID) (*dto.EditableTranscriptResponse, error) {
	session, err := s.loadSession(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	editable := session.Status == interview.StatusInProgress || session.Status == interview.StatusAwaitingSynthesis
	return &dto.EditableTranscriptResponse{
		SessionId: session.Id,
		Status:    string(session.Status),
		Editable:  editable,
		Entries:   entryResponses(session.Transcript),
	}, nil
}

func (s *SurveyService) GetSession(ctx context.Context, sessionId uuid.UUID) (*dto.SessionResponse, error) {
	session, err := s.loadSession(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	resp := &dto.SessionResponse{
		SessionId:       session.Id,
		CustomerId:      session.CustomerId,
		ProductId:       session.ProductId,
		TransactionId:   session.TransactionId,
		Status:          string(session.Status),
		AskedCount:      session.State().AskedCount(),
		SkipsUsed:       session.SkipsUsed,
		ProductContext:  dto.ContextSummary{Path: string(session.ProductContext.Path), Confidence: session.ProductContext.Confidence},
		CustomerContext: dto.ContextSummary{Path: string(session.CustomerContext.Path), Confidence: session.CustomerContext.Confidence},
		CreatedAt:       session.CreatedAt,
	}
	if session.Pending != nil {
		qr := questionResponse(session.State().NextNumber(), *session.Pending)
		resp.Pending = &qr
	}
	return resp, nil
}

func (s *SurveyService) GetTranscript(ctx context.Context, sessionId uuid.UUID) (*dto.TranscriptResponse, error) {
	session, err := s.loadSession(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	return &dto.TranscriptResponse{
		SessionId: session.Id,
		Status:    string(session.Status),
		Entries:   entryResponses(session.Transcript),
	}, nil
}

// advance decides what follows a committed transcript entry. The ceiling is
// checked before spending a generator call; a done verdict under the floor
// forces one more round.
func (s *SurveyService) advance(ctx context.Context, productName string, session *entity.SurveySession, st interview.State) (interview.State, *interview.Question, bool, error) {
	if s.machine.Resolve(st, false) == interview.ResolutionComplete {
		return s.machine.Complete(st), nil, true, nil
	}

	res, err := s.generator.Next(ctx, question.Request{
		ProductName: productName,
		Product:     session.ProductContext,
		Customer:    session.CustomerContext,
		Transcript:  st.Transcript,
	})
	if err != nil {
		return st, nil, false, generatorFailure(err)
	}

	switch s.machine.Resolve(st, res.Done) {
	case interview.ResolutionComplete:
		return s.machine.Complete(st), nil, true, nil
	case interview.ResolutionForceAsk:
		res, err = s.generator.Next(ctx, question.Request{
			ProductName: productName,
			Product:     session.ProductContext,
			Customer:    session.CustomerContext,
			Transcript:  st.Transcript,
			ForceAsk:    true,
		})
		if err != nil {
			return st, nil, false, generatorFailure(err)
		}
	}

	st = s.machine.Present(st, *res.Question)
	return st, res.Question, false, nil
}

type auditEvent struct {
	Type    string
	Payload map[string]interface{}
}

func (s *SurveyService) appendTurnEvents(list []auditEvent, st interview.State, next *interview.Question, completed bool) []auditEvent {
	if completed {
		return append(list, auditEvent{constant.EventInterviewComplete, map[string]interface{}{
			"asked": len(st.Transcript),
		}})
	}
	if next != nil {
		return append(list, auditEvent{constant.EventQuestionAsked, map[string]interface{}{
			"number": st.NextNumber(),
			"text":   next.Text,
		}})
	}
	return list
}

// persistTurn writes the session and its audit events in one transaction,
// translating a lost version race into the retryable conflict error.
func (s *SurveyService) persistTurn(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.SurveySession, auditEvents []auditEvent) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.SurveySessionRepository().UpdateVersioned(ctx, session); err != nil {
		if err == contract.ErrVersionConflict {
			return ErrSessionConflict
		}
		return err
	}
	for _, ev := range auditEvents {
		if err := s.appendEvent(ctx, uow, session.Id, ev.Type, ev.Payload); err != nil {
			return err
		}
	}
	return uow.Commit()
}

func (s *SurveyService) appendEvent(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID, eventType string, payload map[string]interface{}) error {
	return uow.SurveyEventRepository().Append(ctx, &entity.SurveyEvent{
		Id:        uuid.New(),
		SessionId: sessionId,
		Type:      eventType,
		Payload:   payload,
		CreatedAt: time.Now(),
	})
}

func (s *SurveyService) announce(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, events.New(eventType, data)); err != nil {
		s.log.Warn(constant.ModuleSurvey, "event publish failed", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}

func (s *SurveyService) acquire(ctx context.Context, sessionId uuid.UUID) (func(), error) {
	ok, err := s.guard.Acquire(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSessionBusy
	}
	return func() {
		if err := s.guard.Release(ctx, sessionId); err != nil {
			s.log.Warn(constant.ModuleSurvey, "guard release failed", map[string]interface{}{
				"session_id": sessionId,
				"error":      err.Error(),
			})
		}
	}, nil
}

func (s *SurveyService) loadSession(ctx context.Context, sessionId uuid.UUID) (*entity.SurveySession, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.SurveySessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *SurveyService) loadSessionWithProduct(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) (*entity.SurveySession, *entity.Product, error) {
	session, err := uow.SurveySessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, nil, err
	}
	if session == nil {
		return nil, nil, ErrSessionNotFound
	}
	product, err := uow.ProductRepository().FindOne(ctx, specification.ByID{ID: session.ProductId})
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, ErrProductNotFound
	}
	return session, product, nil
}

func (s *SurveyService) skipsRemaining(st interview.State) int {
	remaining := s.machine.Bounds.SkipLimit - st.SkipsUsed
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

func (s *SurveyService) turnResponse(session *entity.SurveySession, st interview.State, next *interview.Question, completed bool) *dto.TurnResponse {
	resp := &dto.TurnResponse{
		SessionId:      session.Id,
		Status:         string(st.Status),
		Completed:      completed,
		SkipsRemaining: s.skipsRemaining(st),
	}
	if next != nil {
		qr := questionResponse(st.NextNumber(), *next)
		resp.Question = &qr
	}
	return resp
}

func questionResponse(number int, q interview.Question) dto.QuestionResponse {
	return dto.QuestionResponse{
		Number:        number,
		Text:          q.Text,
		Options:       q.Options,
		AllowMultiple: q.AllowMultiple,
	}
}

func entryResponses(transcript []interview.Entry) []dto.TranscriptEntryResponse {
	entries := make([]dto.TranscriptEntryResponse, 0, len(transcript))
	for _, e := range transcript {
		entries = append(entries, dto.TranscriptEntryResponse{
			Number:   e.Number,
			Question: e.Question.Text,
			Options:  e.Question.Options,
			Answer:   e.Answer,
			Skipped:  e.Skipped,
		})
	}
	return entries
}
