package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"survey-sensei-be/internal/entity"
	"survey-sensei-be/internal/repository/contract"
	"survey-sensei-be/internal/repository/specification"
	"survey-sensei-be/internal/repository/unitofwork"
	"survey-sensei-be/pkg/evidence"
	"survey-sensei-be/pkg/interview"
	"survey-sensei-be/pkg/interview/question"
	"survey-sensei-be/pkg/interview/synthesis"
)

// In-memory doubles for the persistence and AI boundaries. They apply the
// spec types the services actually use and ignore the rest.

type fakeStore struct {
	products     map[uuid.UUID]*entity.Product
	customers    map[uuid.UUID]*entity.Customer
	transactions map[uuid.UUID]*entity.Transaction
	reviews      map[uuid.UUID]*entity.Review
	sessions     map[uuid.UUID]*entity.SurveySession
	events       []*entity.SurveyEvent
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:     make(map[uuid.UUID]*entity.Product),
		customers:    make(map[uuid.UUID]*entity.Customer),
		transactions: make(map[uuid.UUID]*entity.Transaction),
		reviews:      make(map[uuid.UUID]*entity.Review),
		sessions:     make(map[uuid.UUID]*entity.SurveySession),
	}
}

type fakeFactory struct {
	store *fakeStore
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: f.store}
}

type fakeUow struct {
	store *fakeStore
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) ProductRepository() contract.ProductRepository {
	return &fakeProductRepo{store: u.store}
}
func (u *fakeUow) CustomerRepository() contract.CustomerRepository {
	return &fakeCustomerRepo{store: u.store}
}
func (u *fakeUow) TransactionRepository() contract.TransactionRepository {
	return &fakeTransactionRepo{store: u.store}
}
func (u *fakeUow) ReviewRepository() contract.ReviewRepository {
	return &fakeReviewRepo{store: u.store}
}
func (u *fakeUow) SurveySessionRepository() contract.SurveySessionRepository {
	return &fakeSessionRepo{store: u.store}
}
func (u *fakeUow) SurveyEventRepository() contract.SurveyEventRepository {
	return &fakeEventRepo{store: u.store}
}

func idFromSpecs(specs []specification.Specification) (uuid.UUID, bool) {
	for _, s := range specs {
		if byID, ok := s.(specification.ByID); ok {
			return byID.ID, true
		}
	}
	return uuid.Nil, false
}

type fakeProductRepo struct {
	store *fakeStore
}

func (r *fakeProductRepo) Create(ctx context.Context, p *entity.Product) error {
	r.store.products[p.Id] = p
	return nil
}
func (r *fakeProductRepo) Update(ctx context.Context, p *entity.Product) error {
	r.store.products[p.Id] = p
	return nil
}
func (r *fakeProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.store.products, id)
	return nil
}
func (r *fakeProductRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error) {
	if id, ok := idFromSpecs(specs); ok {
		return r.store.products[id], nil
	}
	return nil, nil
}
func (r *fakeProductRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		out = append(out, p)
	}
	return out, nil
}
func (r *fakeProductRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.store.products)), nil
}
func (r *fakeProductRepo) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, exclude uuid.UUID, threshold float64) ([]*contract.ScoredProduct, error) {
	return nil, nil
}

type fakeCustomerRepo struct {
	store *fakeStore
}

func (r *fakeCustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	r.store.customers[c.Id] = c
	return nil
}
func (r *fakeCustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	r.store.customers[c.Id] = c
	return nil
}
func (r *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.store.customers, id)
	return nil
}
func (r *fakeCustomerRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Customer, error) {
	if id, ok := idFromSpecs(specs); ok {
		return r.store.customers[id], nil
	}
	return nil, nil
}
func (r *fakeCustomerRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Customer, error) {
	out := make([]*entity.Customer, 0, len(r.store.customers))
	for _, c := range r.store.customers {
		out = append(out, c)
	}
	return out, nil
}
func (r *fakeCustomerRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.store.customers)), nil
}
func (r *fakeCustomerRepo) SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, exclude uuid.UUID, threshold float64) ([]*contract.ScoredCustomer, error) {
	return nil, nil
}

type fakeTransactionRepo struct {
	store *fakeStore
}

func (r *fakeTransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	r.store.transactions[t.Id] = t
	return nil
}
func (r *fakeTransactionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.store.transactions, id)
	return nil
}
func (r *fakeTransactionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Transaction, error) {
	if id, ok := idFromSpecs(specs); ok {
		return r.store.transactions[id], nil
	}
	return nil, nil
}
func (r *fakeTransactionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Transaction, error) {
	out := make([]*entity.Transaction, 0, len(r.store.transactions))
	for _, t := range r.store.transactions {
		out = append(out, t)
	}
	return out, nil
}
func (r *fakeTransactionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.store.transactions)), nil
}

type fakeReviewRepo struct {
	store *fakeStore
}

func (r *fakeReviewRepo) Create(ctx context.Context, rev *entity.Review) error {
	r.store.reviews[rev.Id] = rev
	return nil
}
func (r *fakeReviewRepo) Update(ctx context.Context, rev *entity.Review) error {
	r.store.reviews[rev.Id] = rev
	return nil
}
func (r *fakeReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.store.reviews, id)
	return nil
}
func (r *fakeReviewRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Review, error) {
	if id, ok := idFromSpecs(specs); ok {
		return r.store.reviews[id], nil
	}
	return nil, nil
}
func (r *fakeReviewRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Review, error) {
	out := make([]*entity.Review, 0)
	for _, rev := range r.store.reviews {
		if matchReview(rev, specs) {
			out = append(out, rev)
		}
	}
	return out, nil
}
func (r *fakeReviewRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}
func (r *fakeReviewRepo) UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error {
	rev := r.store.reviews[id]
	if rev == nil {
		return fmt.Errorf("review %s not found", id)
	}
	rev.Embedding = embedding
	return nil
}

func matchReview(rev *entity.Review, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByProductId:
			if rev.ProductId != sp.ProductId {
				return false
			}
		case specification.ByCustomerId:
			if rev.CustomerId != sp.CustomerId {
				return false
			}
		}
	}
	return true
}

type fakeSessionRepo struct {
	store *fakeStore
}

func (r *fakeSessionRepo) Create(ctx context.Context, s *entity.SurveySession) error {
	r.store.sessions[s.Id] = s
	return nil
}
func (r *fakeSessionRepo) UpdateVersioned(ctx context.Context, s *entity.SurveySession) error {
	cur, ok := r.store.sessions[s.Id]
	if !ok || cur.Version != s.Version {
		return contract.ErrVersionConflict
	}
	s.Version++
	r.store.sessions[s.Id] = s
	return nil
}
func (r *fakeSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.store.sessions, id)
	return nil
}
func (r *fakeSessionRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SurveySession, error) {
	if id, ok := idFromSpecs(specs); ok {
		return r.store.sessions[id], nil
	}
	for _, s := range specs {
		if byTxn, ok := s.(specification.ByTransactionId); ok {
			for _, sess := range r.store.sessions {
				if sess.TransactionId == byTxn.TransactionId {
					return sess, nil
				}
			}
			return nil, nil
		}
	}
	return nil, nil
}
func (r *fakeSessionRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SurveySession, error) {
	out := make([]*entity.SurveySession, 0, len(r.store.sessions))
	for _, s := range r.store.sessions {
		out = append(out, s)
	}
	return out, nil
}
func (r *fakeSessionRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.store.sessions)), nil
}

type fakeEventRepo struct {
	store *fakeStore
}

func (r *fakeEventRepo) Append(ctx context.Context, ev *entity.SurveyEvent) error {
	seq, _ := r.NextSeq(ctx, ev.SessionId)
	ev.Seq = seq
	r.store.events = append(r.store.events, ev)
	return nil
}
func (r *fakeEventRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SurveyEvent, error) {
	out := make([]*entity.SurveyEvent, 0)
	for _, ev := range r.store.events {
		keep := true
		for _, s := range specs {
			if bySession, ok := s.(specification.BySessionId); ok && ev.SessionId != bySession.SessionId {
				keep = false
			}
		}
		if keep {
			out = append(out, ev)
		}
	}
	return out, nil
}
func (r *fakeEventRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}
func (r *fakeEventRepo) NextSeq(ctx context.Context, sessionId uuid.UUID) (int, error) {
	max := 0
	for _, ev := range r.store.events {
		if ev.SessionId == sessionId && ev.Seq > max {
			max = ev.Seq
		}
	}
	return max + 1, nil
}

type fakeGuard struct {
	busy     bool
	acquired int
	released int
}

func (g *fakeGuard) Acquire(ctx context.Context, sessionId uuid.UUID) (bool, error) {
	if g.busy {
		return false, nil
	}
	g.acquired++
	return true, nil
}
func (g *fakeGuard) Release(ctx context.Context, sessionId uuid.UUID) error {
	g.released++
	return nil
}

// fakeGenerator hands out numbered questions and reports done once doneAfter
// answers exist in the transcript.
type fakeGenerator struct {
	doneAfter int
	calls     int
	forced    int
	err       error
}

func (g *fakeGenerator) Next(ctx context.Context, req question.Request) (question.Result, error) {
	g.calls++
	if g.err != nil {
		return question.Result{}, g.err
	}
	if req.ForceAsk {
		g.forced++
	}
	if !req.ForceAsk && g.doneAfter > 0 && len(req.Transcript) >= g.doneAfter {
		return question.Result{Done: true}, nil
	}
	return question.Result{
		Question: &interview.Question{Text: fmt.Sprintf("Question %d?", len(req.Transcript)+1)},
	}, nil
}

type fakeSynthesizer struct {
	calls int
	band  synthesis.Band
	err   error
}

func (s *fakeSynthesizer) Generate(ctx context.Context, req synthesis.Request) (synthesis.Result, error) {
	s.calls++
	if s.err != nil {
		return synthesis.Result{}, s.err
	}
	candidates := []synthesis.Candidate{
		{Tone: synthesis.ToneEnthusiastic, Title: "Loved it", Body: "Really great experience overall.", Stars: 5, Band: synthesis.BandGood},
		{Tone: synthesis.ToneBalanced, Title: "Solid", Body: "Does the job with a few rough edges.", Stars: 4, Band: synthesis.BandGood},
		{Tone: synthesis.ToneCritical, Title: "Mixed feelings", Body: "Expected more for the price.", Stars: 3, Band: synthesis.BandOkay},
	}
	band := s.band
	if band == "" {
		band = synthesis.OverallBand(candidates)
	}
	return synthesis.Result{SentimentBand: band, Candidates: candidates}, nil
}

type fakeContextService struct{}

func (f *fakeContextService) BuildProductContext(ctx context.Context, p *entity.Product) (evidence.ProductContext, error) {
	return evidence.ProductContext{
		KeyFeatures: []string{"long battery life"},
		Path:        evidence.PathDirect,
		Confidence:  0.75,
	}, nil
}
func (f *fakeContextService) BuildCustomerContext(ctx context.Context, c *entity.Customer) (evidence.CustomerContext, error) {
	return evidence.CustomerContext{
		Expectations: []string{"works out of the box"},
		Path:         evidence.PathSparse,
		Confidence:   0.40,
	}, nil
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type recordingPublisher struct {
	payloads [][]byte
}

func (p *recordingPublisher) Publish(ctx context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

// seedPurchase puts a customer, product, and transaction in the store and
// returns their ids.
func seedPurchase(store *fakeStore) (uuid.UUID, uuid.UUID, uuid.UUID) {
	customerId := uuid.New()
	productId := uuid.New()
	transactionId := uuid.New()

	store.customers[customerId] = &entity.Customer{Id: customerId, Name: "Dana", CreatedAt: time.Now()}
	store.products[productId] = &entity.Product{Id: productId, Name: "Trail Kettle", Description: "Compact camping kettle", CreatedAt: time.Now()}
	store.transactions[transactionId] = &entity.Transaction{
		Id:          transactionId,
		CustomerId:  customerId,
		ProductId:   productId,
		Quantity:    1,
		UnitPrice:   39.90,
		PurchasedAt: time.Now(),
		CreatedAt:   time.Now(),
	}
	return customerId, productId, transactionId
}
