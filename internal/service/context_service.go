package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"survey-sensei-be/internal/constant"
	"survey-sensei-be/internal/entity"
	"survey-sensei-be/internal/pkg/logger"
	"survey-sensei-be/internal/repository/specification"
	"survey-sensei-be/internal/repository/unitofwork"
	"survey-sensei-be/pkg/embedding"
	"survey-sensei-be/pkg/evidence"
	"survey-sensei-be/pkg/interview/prompt"
	"survey-sensei-be/pkg/interview/question"
	"survey-sensei-be/pkg/llm"
)

// similarSubjectLimit bounds how many neighbors the analogous path borrows
// evidence from.
const similarSubjectLimit = 5

const contextTemperature = 0.3

type IContextService interface {
	BuildProductContext(ctx context.Context, product *entity.Product) (evidence.ProductContext, error)
	BuildCustomerContext(ctx context.Context, customer *entity.Customer) (evidence.CustomerContext, error)
}

// ContextService assembles the evidence-backed contexts handed to the
// question generator. Path selection follows a strict priority: first-party
// reviews, then reviews borrowed from vector-similar subjects, then the
// sparse fallback built from descriptive fields alone.
type ContextService struct {
	uowFactory          unitofwork.RepositoryFactory
	provider            llm.LLMProvider
	embedder            embedding.EmbeddingProvider
	topK                int
	similarityThreshold float64
	log                 logger.ILogger
}

func NewContextService(
	uowFactory unitofwork.RepositoryFactory,
	provider llm.LLMProvider,
	embedder embedding.EmbeddingProvider,
	topK int,
	similarityThreshold float64,
	log logger.ILogger,
) IContextService {
	return &ContextService{
		uowFactory:          uowFactory,
		provider:            provider,
		embedder:            embedder,
		topK:                topK,
		similarityThreshold: similarityThreshold,
		log:                 log,
	}
}

func (s *ContextService) BuildProductContext(ctx context.Context, product *entity.Product) (evidence.ProductContext, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	direct, err := uow.ReviewRepository().FindAll(ctx, specification.ByProductId{ProductId: product.Id})
	if err != nil {
		return evidence.ProductContext{}, err
	}

	var items []evidence.Item
	var confidence float64
	similarCount := 0

	if len(direct) > 0 {
		items = reviewItems(direct, nil, nil)
		confidence = evidence.DirectConfidence(len(direct))
	} else {
		borrowed, neighbors, err := s.borrowProductReviews(ctx, uow, product)
		if err != nil {
			s.log.Warn(constant.ModuleContext, "analogous product search failed, falling back to sparse", map[string]interface{}{
				"product_id": product.Id,
				"error":      err.Error(),
			})
		}
		items = borrowed
		similarCount = neighbors
	}

	path := evidence.ChoosePath(len(direct), len(items))
	switch path {
	case evidence.PathAnalogous:
		confidence = evidence.AnalogousConfidence(similarCount, len(items))
	case evidence.PathSparse:
		confidence = evidence.SparseConfidence(evidence.SparseProfile{
			HasDescription: product.Description != "",
			HasPrice:       product.Price != nil,
			HasRating:      product.Rating != nil,
		})
	}

	ranked := evidence.SelectTopK(items, path, s.topK, time.Now())

	p := prompt.NewContextSummaryBuilder("product", product.Name, product.Description, path, ranked)
	var out evidence.ProductContext
	raw, err := s.provider.Generate(ctx, p.Build(), llm.WithTemperature(contextTemperature))
	if err == nil {
		err = parseContextJSON(raw, &out)
	}
	if err != nil {
		// The evidence reads succeeded, so a summarizer failure degrades to
		// a raw-field context rather than killing the interview start.
		s.log.Warn(constant.ModuleContext, "product summarizer failed, using raw evidence context", map[string]interface{}{
			"product_id": product.Id,
			"error":      err.Error(),
		})
		out = fallbackProductContext(product, ranked)
	}
	out.Path = path
	out.Confidence = confidence

	s.log.Info(constant.ModuleContext, "built product context", map[string]interface{}{
		"product_id": product.Id,
		"path":       string(path),
		"confidence": confidence,
		"evidence":   len(ranked),
	})
	return out, nil
}

func (s *ContextService) BuildCustomerContext(ctx context.Context, customer *entity.Customer) (evidence.CustomerContext, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	direct, err := uow.ReviewRepository().FindAll(ctx, specification.ByCustomerId{CustomerId: customer.Id})
	if err != nil {
		return evidence.CustomerContext{}, err
	}

	var items []evidence.Item
	var confidence float64
	similarCount := 0

	if len(direct) > 0 {
		items = reviewItems(direct, nil, nil)
		confidence = evidence.DirectConfidence(len(direct))
	} else if len(customer.Embedding) > 0 {
		neighbors, err := uow.CustomerRepository().SearchSimilarWithScore(
			ctx, customer.Embedding, similarSubjectLimit, customer.Id, s.similarityThreshold)
		if err != nil {
			s.log.Warn(constant.ModuleContext, "similar customer search failed, falling back to sparse", map[string]interface{}{
				"customer_id": customer.Id,
				"error":       err.Error(),
			})
		} else if len(neighbors) > 0 {
			ids := make([]uuid.UUID, 0, len(neighbors))
			scores := make(map[uuid.UUID]float64, len(neighbors))
			for _, n := range neighbors {
				ids = append(ids, n.Customer.Id)
				scores[n.Customer.Id] = n.Similarity
			}
			borrowed, err := uow.ReviewRepository().FindAll(ctx, specification.ByCustomerIds{CustomerIds: ids})
			if err != nil {
				return evidence.CustomerContext{}, err
			}
			items = reviewItems(borrowed, scores, customerKey)
			similarCount = len(neighbors)
		}
	}

	path := evidence.ChoosePath(len(direct), len(items))
	switch path {
	case evidence.PathAnalogous:
		confidence = evidence.AnalogousConfidence(similarCount, len(items))
	case evidence.PathSparse:
		// No review history anywhere. Skip the model call and hand the
		// generator a generic first-purchase profile.
		return evidence.CustomerContext{
			PurchasePatterns: []string{"first recorded purchase"},
			Expectations:     []string{"product works as described"},
			PrimaryConcerns:  []string{"value for money"},
			PainPoints:       nil,
			Path:             evidence.PathSparse,
			Confidence:       evidence.SparseConfidence(evidence.SparseProfile{}),
		}, nil
	}

	ranked := evidence.SelectTopK(items, path, s.topK, time.Now())

	p := prompt.NewContextSummaryBuilder("customer", customer.Name, "", path, ranked)
	var out evidence.CustomerContext
	raw, err := s.provider.Generate(ctx, p.Build(), llm.WithTemperature(contextTemperature))
	if err == nil {
		err = parseContextJSON(raw, &out)
	}
	if err != nil {
		s.log.Warn(constant.ModuleContext, "customer summarizer failed, using raw evidence context", map[string]interface{}{
			"customer_id": customer.Id,
			"error":       err.Error(),
		})
		out = fallbackCustomerContext(ranked)
	}
	out.Path = path
	out.Confidence = confidence

	s.log.Info(constant.ModuleContext, "built customer context", map[string]interface{}{
		"customer_id": customer.Id,
		"path":        string(path),
		"confidence":  confidence,
		"evidence":    len(ranked),
	})
	return out, nil
}

// borrowProductReviews runs the analogous path for a product: find vector
// neighbors above the threshold, then pull their reviews carrying each
// neighbor's similarity score. Returns the items and the neighbor count.
func (s *ContextService) borrowProductReviews(ctx context.Context, uow unitofwork.UnitOfWork, product *entity.Product) ([]evidence.Item, int, error) {
	queryVector := product.Embedding
	if len(queryVector) == 0 {
		if product.Description == "" {
			return nil, 0, nil
		}
		resp, err := s.embedder.Generate(product.Name+". "+product.Description, constant.TaskTypeQuery)
		if err != nil {
			return nil, 0, err
		}
		queryVector = resp.Embedding.Values
	}

	neighbors, err := uow.ProductRepository().SearchSimilarWithScore(
		ctx, queryVector, similarSubjectLimit, product.Id, s.similarityThreshold)
	if err != nil {
		return nil, 0, err
	}
	if len(neighbors) == 0 {
		return nil, 0, nil
	}

	ids := make([]uuid.UUID, 0, len(neighbors))
	scores := make(map[uuid.UUID]float64, len(neighbors))
	for _, n := range neighbors {
		ids = append(ids, n.Product.Id)
		scores[n.Product.Id] = n.Similarity
	}

	borrowed, err := uow.ReviewRepository().FindAll(ctx, specification.ByProductIds{ProductIds: ids})
	if err != nil {
		return nil, 0, err
	}
	return reviewItems(borrowed, scores, productKey), len(neighbors), nil
}

func productKey(r *entity.Review) uuid.UUID  { return r.ProductId }
func customerKey(r *entity.Review) uuid.UUID { return r.CustomerId }

// reviewItems converts reviews into ranker items. When scores is set, each
// item carries the similarity of the neighbor it was borrowed from.
func reviewItems(reviews []*entity.Review, scores map[uuid.UUID]float64, key func(*entity.Review) uuid.UUID) []evidence.Item {
	items := make([]evidence.Item, 0, len(reviews))
	for _, r := range reviews {
		item := evidence.Item{
			Id:        r.Id,
			Title:     r.Title,
			Body:      r.Body,
			Stars:     r.Stars,
			CreatedAt: r.CreatedAt,
		}
		if scores != nil && key != nil {
			item.Similarity = scores[key(r)]
		}
		items = append(items, item)
	}
	return items
}

// fallbackProductContext distills the ranked evidence without a model: strong
// reviews become pros, weak ones cons, and the description stands in for the
// feature list. Path and confidence are stamped on by the caller.
func fallbackProductContext(product *entity.Product, items []evidence.Item) evidence.ProductContext {
	var out evidence.ProductContext
	if product.Description != "" {
		out.KeyFeatures = []string{product.Description}
	}
	for _, it := range items {
		title := strings.TrimSpace(it.Title)
		if title == "" {
			continue
		}
		switch {
		case it.Stars >= 4:
			out.Pros = append(out.Pros, title)
		case it.Stars <= 2:
			out.Cons = append(out.Cons, title)
		}
	}
	return out
}

func fallbackCustomerContext(items []evidence.Item) evidence.CustomerContext {
	out := evidence.CustomerContext{
		Expectations:    []string{"product works as described"},
		PrimaryConcerns: []string{"value for money"},
	}
	for _, it := range items {
		title := strings.TrimSpace(it.Title)
		if title != "" && it.Stars <= 2 {
			out.PainPoints = append(out.PainPoints, title)
		}
	}
	return out
}

func parseContextJSON(raw string, out interface{}) error {
	cleaned := question.StripCodeFence(raw)
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end <= start {
		return &question.ParseError{Raw: raw, Reason: "no JSON object in model output"}
	}
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), out); err != nil {
		return &question.ParseError{Raw: raw, Reason: "malformed context JSON: " + err.Error()}
	}
	return nil
}
