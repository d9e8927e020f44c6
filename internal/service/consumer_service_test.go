package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survey-sensei-be/internal/dto"
	"survey-sensei-be/internal/entity"
	"survey-sensei-be/pkg/embedding"
)

type fakeEmbedder struct {
	lastText string
	lastTask string
}

func (f *fakeEmbedder) Generate(text, taskType string) (*embedding.EmbeddingResponse, error) {
	f.lastText = text
	f.lastTask = taskType
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.1, 0.2, 0.3}},
	}, nil
}

func TestConsumerEmbedsFinalizedReview(t *testing.T) {
	store := newFakeStore()
	reviewId := uuid.New()
	store.reviews[reviewId] = &entity.Review{
		Id:        reviewId,
		Title:     "Solid",
		Body:      "Does the job with a few rough edges.",
		Stars:     4,
		CreatedAt: time.Now(),
	}

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	embedder := &fakeEmbedder{}
	svc := NewConsumerService(pubSub, "EMBED_REVIEW", &fakeFactory{store: store}, embedder, noopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = svc.Consume(ctx)
	}()
	// Let the subscription attach before publishing.
	time.Sleep(50 * time.Millisecond)

	payload, err := json.Marshal(dto.PublishEmbedReviewMessage{ReviewId: reviewId})
	require.NoError(t, err)
	require.NoError(t, pubSub.Publish("EMBED_REVIEW", message.NewMessage(watermill.NewUUID(), payload)))

	require.Eventually(t, func() bool {
		return len(store.reviews[reviewId].Embedding) > 0
	}, 2*time.Second, 20*time.Millisecond)

	assert.Equal(t, []float32{0.1, 0.2, 0.3}, store.reviews[reviewId].Embedding)
	assert.Equal(t, "RETRIEVAL_DOCUMENT", embedder.lastTask)
	assert.Contains(t, embedder.lastText, "Solid")
}
