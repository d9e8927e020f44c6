package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"

	"survey-sensei-be/internal/constant"
	"survey-sensei-be/internal/dto"
	"survey-sensei-be/internal/pkg/logger"
	"survey-sensei-be/internal/repository/specification"
	"survey-sensei-be/internal/repository/unitofwork"
	"survey-sensei-be/pkg/embedding"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// ConsumerService drains the embed topic: each message names a finalized
// review whose body still needs a vector. Failures are nacked so the broker
// can redeliver.
type ConsumerService struct {
	subscriber message.Subscriber
	topic      string
	uowFactory unitofwork.RepositoryFactory
	embedder   embedding.EmbeddingProvider
	log        logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topic string,
	uowFactory unitofwork.RepositoryFactory,
	embedder embedding.EmbeddingProvider,
	log logger.ILogger,
) IConsumerService {
	return &ConsumerService{
		subscriber: subscriber,
		topic:      topic,
		uowFactory: uowFactory,
		embedder:   embedder,
		log:        log,
	}
}

func (s *ConsumerService) Consume(ctx context.Context) error {
	messages, err := s.subscriber.Subscribe(ctx, s.topic)
	if err != nil {
		return err
	}

	s.log.Info(constant.ModuleConsumer, "embed consumer started", map[string]interface{}{
		"topic": s.topic,
	})

	for msg := range messages {
		if err := s.embedReview(ctx, msg.Payload); err != nil {
			s.log.Error(constant.ModuleConsumer, "failed to embed review", map[string]interface{}{
				"message_id": msg.UUID,
				"error":      err.Error(),
			})
			msg.Nack()
			continue
		}
		msg.Ack()
	}
	return nil
}

func (s *ConsumerService) embedReview(ctx context.Context, payload []byte) error {
	var msg dto.PublishEmbedReviewMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	review, err := uow.ReviewRepository().FindOne(ctx, specification.ByID{ID: msg.ReviewId})
	if err != nil {
		return err
	}
	if review == nil {
		return ErrReviewNotFound
	}

	resp, err := s.embedder.Generate(review.Title+". "+review.Body, constant.TaskTypeDocument)
	if err != nil {
		return err
	}

	if err := uow.ReviewRepository().UpdateEmbedding(ctx, review.Id, resp.Embedding.Values); err != nil {
		return err
	}

	s.log.Info(constant.ModuleConsumer, "review embedded", map[string]interface{}{
		"review_id": review.Id,
		"dims":      len(resp.Embedding.Values),
	})
	return nil
}
