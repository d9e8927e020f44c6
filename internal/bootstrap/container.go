package bootstrap

import (
	"context"
	"log"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"survey-sensei-be/internal/config"
	"survey-sensei-be/internal/controller"
	"survey-sensei-be/internal/pkg/logger"
	"survey-sensei-be/internal/repository/contract"
	"survey-sensei-be/internal/repository/memory"
	redisguard "survey-sensei-be/internal/repository/redis"
	"survey-sensei-be/internal/repository/unitofwork"
	"survey-sensei-be/internal/service"
	"survey-sensei-be/pkg/embedding"
	"survey-sensei-be/pkg/interview"
	"survey-sensei-be/pkg/interview/question"
	"survey-sensei-be/pkg/interview/synthesis"
	"survey-sensei-be/pkg/llm/factory"
	pkgNats "survey-sensei-be/pkg/nats"
)

type Container struct {
	// Controllers
	SurveyController  *controller.SurveyController
	ReviewController  *controller.ReviewController
	ProductController *controller.ProductController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Infrastructure
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	guardTTL := time.Duration(cfg.Survey.GuardTTLSeconds) * time.Second
	var guard contract.SessionGuard
	if cfg.Survey.GuardBackend == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		guard = redisguard.NewSessionGuard(rdb, guardTTL)
		log.Printf("[INFO] Using Session Guard: REDIS")
	} else {
		guard = memory.NewSessionGuard(guardTTL)
		log.Printf("[INFO] Using Session Guard: MEMORY")
	}

	// 5. Interview machinery
	machine := interview.NewMachine(interview.Bounds{
		MinQuestions: cfg.Survey.MinQuestions,
		MaxQuestions: cfg.Survey.MaxQuestions,
		SkipLimit:    cfg.Survey.SkipLimit,
	})
	generator := question.NewLLMGenerator(llmProvider, 0)
	synthesizer := synthesis.NewLLMSynthesizer(llmProvider, 0)

	// 6. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Keys.EmbedReviewTopic, sysLogger)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedReviewTopic,
		uowFactory,
		embeddingProvider,
		sysLogger,
	)

	var eventPublisher service.EventPublisher
	if natsPub != nil {
		eventPublisher = natsPub
	}

	contextService := service.NewContextService(
		uowFactory,
		llmProvider,
		embeddingProvider,
		cfg.Survey.TopKEvidence,
		cfg.Survey.SimilarityThreshold,
		sysLogger,
	)
	surveyService := service.NewSurveyService(
		uowFactory,
		contextService,
		generator,
		machine,
		guard,
		eventPublisher,
		sysLogger,
	)
	reviewService := service.NewReviewService(
		uowFactory,
		synthesizer,
		machine,
		guard,
		publisherService,
		eventPublisher,
		cfg.Survey.CandidateCount,
		sysLogger,
	)
	productService := service.NewProductService(uowFactory, sysLogger)

	// 7. Controllers
	return &Container{
		SurveyController:  controller.NewSurveyController(surveyService),
		ReviewController:  controller.NewReviewController(reviewService),
		ProductController: controller.NewProductController(productService),

		ConsumerService: consumerService,
		Logger:          sysLogger,
	}
}
