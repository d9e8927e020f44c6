package service

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"survey-sensei-be/internal/constant"
	"survey-sensei-be/internal/pkg/logger"
)

type IPublisherService interface {
	Publish(ctx context.Context, payload []byte) error
}

// PublisherService pushes messages onto the embed topic. The consumer side
// picks them up asynchronously, so a finalize request never waits on an
// embedding call.
type PublisherService struct {
	publisher message.Publisher
	topic     string
	log       logger.ILogger
}

func NewPublisherService(publisher message.Publisher, topic string, log logger.ILogger) IPublisherService {
	return &PublisherService{publisher: publisher, topic: topic, log: log}
}

func (s *PublisherService) Publish(ctx context.Context, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)

	if err := s.publisher.Publish(s.topic, msg); err != nil {
		s.log.Error(constant.ModuleReview, "failed to publish embed message", map[string]interface{}{
			"topic": s.topic,
			"error": err.Error(),
		})
		return err
	}
	return nil
}
