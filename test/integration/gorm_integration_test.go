package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survey-sensei-be/internal/entity"
	"survey-sensei-be/internal/repository/contract"
	"survey-sensei-be/internal/repository/specification"
	"survey-sensei-be/internal/repository/unitofwork"
	"survey-sensei-be/pkg/database"
	"survey-sensei-be/pkg/interview"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.ProductRepository())
	assert.NotNil(t, uow.SurveySessionRepository())

	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Product Repository", func(t *testing.T) {
		count, err := uow.ProductRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Product count: %d", count)
	})

	t.Run("Check Survey Event Repository", func(t *testing.T) {
		count, err := uow.SurveyEventRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Survey event count: %d", count)
	})
}

func TestVersionedSessionUpdate(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(gormDB).NewUnitOfWork(ctx)
	sessions := uow.SurveySessionRepository()

	session := &entity.SurveySession{
		Id:            uuid.New(),
		CustomerId:    uuid.New(),
		ProductId:     uuid.New(),
		TransactionId: uuid.New(),
		Status:        interview.StatusInProgress,
		Version:       1,
		CreatedAt:     time.Now(),
	}
	require.NoError(t, sessions.Create(ctx, session))
	defer sessions.Delete(ctx, session.Id)

	// Winner bumps the version.
	session.SkipsUsed = 1
	require.NoError(t, sessions.UpdateVersioned(ctx, session))
	assert.Equal(t, 2, session.Version)

	// A stale copy loses.
	stale := *session
	stale.Version = 1
	err = sessions.UpdateVersioned(ctx, &stale)
	assert.ErrorIs(t, err, contract.ErrVersionConflict)

	reloaded, err := sessions.FindOne(ctx, specification.ByID{ID: session.Id})
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.Equal(t, 2, reloaded.Version)
	assert.Equal(t, 1, reloaded.SkipsUsed)
}

func TestEventSequencePerSession(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)

	ctx := context.Background()
	uow := unitofwork.NewRepositoryFactory(gormDB).NewUnitOfWork(ctx)
	events := uow.SurveyEventRepository()

	sessionId := uuid.New()
	for i := 0; i < 3; i++ {
		err := events.Append(ctx, &entity.SurveyEvent{
			Id:        uuid.New(),
			SessionId: sessionId,
			Type:      "SESSION_STARTED",
			Payload:   map[string]interface{}{"n": i},
			CreatedAt: time.Now(),
		})
		require.NoError(t, err)
	}

	stored, err := events.FindAll(ctx, specification.BySessionId{SessionId: sessionId}, specification.OrderBy{Field: "seq"})
	require.NoError(t, err)
	require.Len(t, stored, 3)
	for i, ev := range stored {
		assert.Equal(t, i+1, ev.Seq)
	}
}
