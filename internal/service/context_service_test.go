package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survey-sensei-be/internal/entity"
	"survey-sensei-be/pkg/evidence"
	"survey-sensei-be/pkg/llm"
)

// flakyProvider returns a fixed completion or a fixed error.
type flakyProvider struct {
	out string
	err error
}

func (p *flakyProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return p.out, p.err
}

func (p *flakyProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.out, p.err
}

func newContextFixture(provider llm.LLMProvider) (*fakeStore, IContextService) {
	store := newFakeStore()
	svc := NewContextService(&fakeFactory{store: store}, provider, &fakeEmbedder{}, 8, 0.7, noopLogger{})
	return store, svc
}

func seedDirectReviews(store *fakeStore, productId, customerId uuid.UUID) {
	for _, r := range []struct {
		title string
		stars int
	}{
		{"Boils fast", 5},
		{"Handle gets hot", 2},
	} {
		id := uuid.New()
		store.reviews[id] = &entity.Review{
			Id:         id,
			ProductId:  productId,
			CustomerId: customerId,
			Title:      r.title,
			Body:       "body text long enough to rank",
			Stars:      r.stars,
			CreatedAt:  time.Now(),
		}
	}
}

func TestProductContextSurvivesSummarizerOutage(t *testing.T) {
	store, svc := newContextFixture(&flakyProvider{err: errors.New("dial tcp 127.0.0.1:11434: connection refused")})
	customerId, productId, _ := seedPurchase(store)
	seedDirectReviews(store, productId, customerId)

	got, err := svc.BuildProductContext(context.Background(), store.products[productId])
	require.NoError(t, err)

	assert.Equal(t, evidence.PathDirect, got.Path)
	assert.InDelta(t, evidence.DirectConfidence(2), got.Confidence, 1e-9)
	assert.Contains(t, got.Pros, "Boils fast")
	assert.Contains(t, got.Cons, "Handle gets hot")
}

func TestProductContextSurvivesUnparseableSummary(t *testing.T) {
	store, svc := newContextFixture(&flakyProvider{out: "sorry, I cannot help with that"})
	customerId, productId, _ := seedPurchase(store)
	seedDirectReviews(store, productId, customerId)

	got, err := svc.BuildProductContext(context.Background(), store.products[productId])
	require.NoError(t, err)

	assert.Equal(t, evidence.PathDirect, got.Path)
	assert.NotZero(t, got.Confidence)
}

func TestCustomerContextSurvivesSummarizerOutage(t *testing.T) {
	store, svc := newContextFixture(&flakyProvider{err: errors.New("dial tcp 127.0.0.1:11434: connection refused")})
	customerId, productId, _ := seedPurchase(store)
	seedDirectReviews(store, productId, customerId)

	got, err := svc.BuildCustomerContext(context.Background(), store.customers[customerId])
	require.NoError(t, err)

	assert.Equal(t, evidence.PathDirect, got.Path)
	assert.InDelta(t, evidence.DirectConfidence(2), got.Confidence, 1e-9)
	assert.Contains(t, got.PainPoints, "Handle gets hot")
}

func TestProductContextSummaryApplied(t *testing.T) {
	store, svc := newContextFixture(&flakyProvider{
		out: `{"key_features": ["fast boil"], "pros": ["compact"], "cons": []}`,
	})
	customerId, productId, _ := seedPurchase(store)
	seedDirectReviews(store, productId, customerId)

	got, err := svc.BuildProductContext(context.Background(), store.products[productId])
	require.NoError(t, err)

	assert.Equal(t, []string{"fast boil"}, got.KeyFeatures)
	assert.Equal(t, evidence.PathDirect, got.Path)
}
