package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"classboard-be/internal/entity"
	"classboard-be/internal/repository/specification"
	"classboard-be/internal/repository/unitofwork"
	"classboard-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
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

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.LessonRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check Transactional Class Lesson", func(t *testing.T) {
		userId := uuid.New()
		user := &entity.User{
			Id:       userId,
			Email:    "test-integration-" + uuid.New().String() + "@example.com",
			FullName: "Integration Test User",
			Role:     "user",
			Status:   "active",
		}

		err := uow.UserRepository().Create(context.Background(), user)
		assert.NoError(t, err)

		// Transaction Test
		ctx := context.Background()
		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		classId := uuid.New()
		class := &entity.Class{
			Id:        classId,
			Name:      "Integration Class",
			UserId:    userId,
			CreatedAt: time.Now(),
		}
		err = uow.ClassRepository().Create(ctx, class)
		assert.NoError(t, err)

		lessonId := uuid.New()
		lesson := &entity.Lesson{
			Id:        lessonId,
			Name:      "Integration Lesson",
			ClassId:   classId,
			UserId:    userId,
			CreatedAt: time.Now(),
		}
		err = uow.LessonRepository().Create(ctx, lesson)
		assert.NoError(t, err)

		err = uow.LessonRepository().UpdateText(ctx, lessonId, []byte(`[]`))
		assert.NoError(t, err)

		found, err := uow.LessonRepository().FindOne(ctx, specification.ByID{ID: lessonId})
		assert.NoError(t, err)
		assert.NotNil(t, found)

		err = uow.Commit()
		assert.NoError(t, err)

		t.Log("Successfully created Class and Lesson in Transaction")
	})
}
