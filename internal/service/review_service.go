package service

import (
	"context"
	"encoding/json"
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
	"survey-sensei-be/pkg/interview/synthesis"
)

type IReviewService interface {
	Generate(ctx context.Context, req dto.GenerateReviewsRequest) (*dto.GenerateReviewsResponse, error)
	Regenerate(ctx context.Context, req dto.GenerateReviewsRequest) (*dto.GenerateReviewsResponse, error)
	Select(ctx context.Context, req dto.SelectReviewRequest) (*dto.SelectReviewResponse, error)
	GetCandidates(ctx context.Context, sessionId uuid.UUID) (*dto.GenerateReviewsResponse, error)
}

type ReviewService struct {
	uowFactory     unitofwork.RepositoryFactory
	synthesizer    synthesis.Synthesizer
	machine        *interview.Machine
	guard          contract.SessionGuard
	embedPublisher IPublisherService
	events         EventPublisher
	candidateCount int
	log            logger.ILogger
}

func NewReviewService(
	uowFactory unitofwork.RepositoryFactory,
	synthesizer synthesis.Synthesizer,
	machine *interview.Machine,
	guard contract.SessionGuard,
	embedPublisher IPublisherService,
	eventPublisher EventPublisher,
	candidateCount int,
	log logger.ILogger,
) IReviewService {
	return &ReviewService{
		uowFactory:     uowFactory,
		synthesizer:    synthesizer,
		machine:        machine,
		guard:          guard,
		embedPublisher: embedPublisher,
		events:         eventPublisher,
		candidateCount: candidateCount,
		log:            log,
	}
}

// Generate synthesizes review candidates for a completed interview. Calling
// it again on an already synthesized session returns the stored candidates
// instead of burning another model call.
func (s *ReviewService) Generate(ctx context.Context, req dto.GenerateReviewsRequest) (*dto.GenerateReviewsResponse, error) {
	ok, err := s.guard.Acquire(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSessionBusy
	}
	defer s.release(ctx, req.SessionId)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, product, err := s.loadSessionWithProduct(ctx, uow, req.SessionId)
	if err != nil {
		return nil, err
	}

	if session.Status == interview.StatusSynthesized && len(session.Candidates) > 0 {
		return candidatesResponse(session), nil
	}
	return s.synthesize(ctx, uow, session, product)
}

// Regenerate discards the stored candidates and synthesizes a fresh set. The
// session must already have candidates; the state machine treats it as a
// repeat of the synthesize transition.
func (s *ReviewService) Regenerate(ctx context.Context, req dto.GenerateReviewsRequest) (*dto.GenerateReviewsResponse, error) {
	ok, err := s.guard.Acquire(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSessionBusy
	}
	defer s.release(ctx, req.SessionId)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, product, err := s.loadSessionWithProduct(ctx, uow, req.SessionId)
	if err != nil {
		return nil, err
	}
	return s.synthesize(ctx, uow, session, product)
}

// priorReviewLimit caps how many of the customer's earlier reviews feed the
// style-matching section of the synthesis prompt.
const priorReviewLimit = 10

func (s *ReviewService) synthesize(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.SurveySession, product *entity.Product) (*dto.GenerateReviewsResponse, error) {
	st, err := s.machine.MarkSynthesized(session.State())
	if err != nil {
		return nil, err
	}

	prior, err := uow.ReviewRepository().FindAll(ctx,
		specification.ByCustomerId{CustomerId: session.CustomerId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: priorReviewLimit},
	)
	if err != nil {
		return nil, err
	}
	priorBodies := make([]string, 0, len(prior))
	for _, r := range prior {
		priorBodies = append(priorBodies, r.Body)
	}

	result, err := s.synthesizer.Generate(ctx, synthesis.Request{
		ProductName:  product.Name,
		Transcript:   session.Transcript,
		PriorReviews: priorBodies,
		Count:        s.candidateCount,
	})
	if err != nil {
		return nil, generatorFailure(err)
	}

	session.ApplyState(st)
	session.Candidates = result.Candidates
	session.SentimentBand = result.SentimentBand
	session.SelectedIndex = nil

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.SurveySessionRepository().UpdateVersioned(ctx, session); err != nil {
		if err == contract.ErrVersionConflict {
			return nil, ErrSessionConflict
		}
		return nil, err
	}
	if err := uow.SurveyEventRepository().Append(ctx, &entity.SurveyEvent{
		Id:        uuid.New(),
		SessionId: session.Id,
		Type:      constant.EventReviewsGenerated,
		Payload: map[string]interface{}{
			"count":          len(result.Candidates),
			"sentiment_band": string(result.SentimentBand),
		},
		CreatedAt: time.Now(),
	}); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.announce(ctx, constant.EventReviewsGenerated, map[string]interface{}{
		"session_id":     session.Id.String(),
		"count":          len(result.Candidates),
		"sentiment_band": string(result.SentimentBand),
	})

	s.log.Info(constant.ModuleReview, "review candidates generated", map[string]interface{}{
		"session_id":     session.Id,
		"count":          len(result.Candidates),
		"sentiment_band": result.SentimentBand,
	})
	return candidatesResponse(session), nil
}

func (s *ReviewService) Select(ctx context.Context, req dto.SelectReviewRequest) (*dto.SelectReviewResponse, error) {
	ok, err := s.guard.Acquire(ctx, req.SessionId)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSessionBusy
	}
	defer s.release(ctx, req.SessionId)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.SurveySessionRepository().FindOne(ctx, specification.ByID{ID: req.SessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	index := *req.Index
	st, err := s.machine.Finalize(session.State(), index, len(session.Candidates))
	if err != nil {
		return nil, err
	}
	chosen := session.Candidates[index]

	review := &entity.Review{
		Id:         uuid.New(),
		ProductId:  session.ProductId,
		CustomerId: session.CustomerId,
		SessionId:  &session.Id,
		Title:      chosen.Title,
		Body:       chosen.Body,
		Stars:      chosen.Stars,
		Tone:       string(chosen.Tone),
		Band:       string(chosen.Band),
		CreatedAt:  time.Now(),
	}

	session.ApplyState(st)
	session.SelectedIndex = &index

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.ReviewRepository().Create(ctx, review); err != nil {
		return nil, err
	}
	if err := uow.SurveySessionRepository().UpdateVersioned(ctx, session); err != nil {
		if err == contract.ErrVersionConflict {
			return nil, ErrSessionConflict
		}
		return nil, err
	}
	if err := uow.SurveyEventRepository().Append(ctx, &entity.SurveyEvent{
		Id:        uuid.New(),
		SessionId: session.Id,
		Type:      constant.EventReviewFinalized,
		Payload: map[string]interface{}{
			"review_id": review.Id.String(),
			"index":     index,
			"tone":      review.Tone,
			"stars":     review.Stars,
		},
		CreatedAt: time.Now(),
	}); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// Embedding happens off the request path. A publish failure leaves the
	// review without a vector until a backfill, not a failed finalize.
	payload, _ := json.Marshal(dto.PublishEmbedReviewMessage{ReviewId: review.Id})
	if err := s.embedPublisher.Publish(ctx, payload); err != nil {
		s.log.Error(constant.ModuleReview, "embed publish failed after finalize", map[string]interface{}{
			"review_id": review.Id,
			"error":     err.Error(),
		})
	}

	s.announce(ctx, constant.EventReviewFinalized, map[string]interface{}{
		"session_id": session.Id.String(),
		"review_id":  review.Id.String(),
		"tone":       review.Tone,
	})

	s.log.Info(constant.ModuleReview, "review finalized", map[string]interface{}{
		"session_id": session.Id,
		"review_id":  review.Id,
		"stars":      review.Stars,
	})

	return &dto.SelectReviewResponse{
		SessionId: session.Id,
		ReviewId:  review.Id,
		Status:    string(session.Status),
		Tone:      review.Tone,
		Stars:     review.Stars,
	}, nil
}

func (s *ReviewService) GetCandidates(ctx context.Context, sessionId uuid.UUID) (*dto.GenerateReviewsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.SurveySessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return candidatesResponse(session), nil
}

func (s *ReviewService) loadSessionWithProduct(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) (*entity.SurveySession, *entity.Product, error) {
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

func (s *ReviewService) release(ctx context.Context, sessionId uuid.UUID) {
	if err := s.guard.Release(ctx, sessionId); err != nil {
		s.log.Warn(constant.ModuleReview, "guard release failed", map[string]interface{}{
			"session_id": sessionId,
			"error":      err.Error(),
		})
	}
}

func (s *ReviewService) announce(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, events.New(eventType, data)); err != nil {
		s.log.Warn(constant.ModuleReview, "event publish failed", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}

func candidatesResponse(session *entity.SurveySession) *dto.GenerateReviewsResponse {
	out := make([]dto.CandidateResponse, 0, len(session.Candidates))
	for i, c := range session.Candidates {
		out = append(out, dto.CandidateResponse{
			Index:      i,
			Tone:       string(c.Tone),
			Title:      c.Title,
			Body:       c.Body,
			Highlights: c.Highlights,
			Stars:      c.Stars,
			Band:       string(c.Band),
		})
	}
	return &dto.GenerateReviewsResponse{
		SessionId:     session.Id,
		Status:        string(session.Status),
		SentimentBand: string(session.SentimentBand),
		Candidates:    out,
	}
}
