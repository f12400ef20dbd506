package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/triptrizz/triptrizz-server/internal/models"
	"github.com/triptrizz/triptrizz-server/internal/repository"
	"github.com/triptrizz/triptrizz-server/pkg/logger"
	"github.com/triptrizz/triptrizz-server/pkg/queue"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a named in-memory database so every connection in gorm's
// pool sees the same tables.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(repository.AllModels()...))
	return db
}

type stubPublisher struct {
	events []queue.Event
}

func (p *stubPublisher) Publish(_ context.Context, _ string, value interface{}) error {
	if event, ok := value.(queue.Event); ok {
		p.events = append(p.events, event)
	}
	return nil
}

func seedUser(t *testing.T, db *gorm.DB, id string) *models.User {
	t.Helper()
	user := &models.User{
		ID:       id,
		Username: id,
		Email:    id + "@example.com",
		Password: "hashed",
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func newRelationshipService(t *testing.T, db *gorm.DB) (*RelationshipService, *stubPublisher) {
	t.Helper()
	pub := &stubPublisher{}
	svc := NewRelationshipService(
		db,
		repository.NewRelationshipRepository(db),
		repository.NewBlockRepository(db),
		repository.NewUserRepository(db),
		pub,
		logger.NewLogger(),
	)
	return svc, pub
}

func newMatchService(t *testing.T, db *gorm.DB) (*MatchService, *stubPublisher) {
	t.Helper()
	pub := &stubPublisher{}
	svc := NewMatchService(
		repository.NewMatchRepository(db),
		repository.NewChatRepository(db),
		repository.NewBlockRepository(db),
		repository.NewUserRepository(db),
		pub,
		logger.NewLogger(),
	)
	return svc, pub
}

func newEngagementService(t *testing.T, db *gorm.DB) (*EngagementService, *stubPublisher) {
	t.Helper()
	pub := &stubPublisher{}
	svc := NewEngagementService(
		db,
		repository.NewLikeRepository(db),
		repository.NewForumRepository(db),
		repository.NewUserRepository(db),
		pub,
		logger.NewLogger(),
	)
	return svc, pub
}
