package app

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ndrewpacheco/warbler/internal/logger"
	"github.com/ndrewpacheco/warbler/internal/model"
	"github.com/ndrewpacheco/warbler/internal/pkg/passhash"
	"github.com/ndrewpacheco/warbler/internal/platform/database/databasetest"
	"github.com/ndrewpacheco/warbler/internal/repository"
)

type memoryStats struct {
	mu          sync.Mutex
	entries     map[uint]model.UserStats
	invalidated []uint
}

func newMemoryStats() *memoryStats {
	return &memoryStats{entries: make(map[uint]model.UserStats)}
}

func (m *memoryStats) GetStats(_ context.Context, userID uint) (model.UserStats, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.entries[userID]
	return s, ok, nil
}

func (m *memoryStats) SetStats(_ context.Context, userID uint, stats model.UserStats) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[userID] = stats
	return nil
}

func (m *memoryStats) Invalidate(_ context.Context, userIDs ...uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range userIDs {
		delete(m.entries, id)
		m.invalidated = append(m.invalidated, id)
	}
	return nil
}

type recordingPublisher struct {
	mu         sync.Mutex
	activities []model.Activity
	err        error
}

func (p *recordingPublisher) Publish(_ context.Context, a model.Activity) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.activities = append(p.activities, a)
	return p.err
}

type fixture struct {
	db        *gorm.DB
	auth      *AuthService
	social    *SocialService
	messages  *MessageService
	users     *UserService
	activity  *ActivityService
	stats     *memoryStats
	publisher *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := databasetest.New(t)

	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	followRepo := repository.NewFollowRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	stats := newMemoryStats()
	publisher := &recordingPublisher{}
	effects := Effects{Stats: stats, Publisher: publisher, Log: logger.Discard()}

	auth := NewAuthService(userRepo, passhash.NewBcrypt(bcrypt.MinCost), "test-secret", time.Hour)
	social := NewSocialService(userRepo, followRepo, messageRepo, effects)
	messages := NewMessageService(messageRepo, effects)

	return &fixture{
		db:        db,
		auth:      auth,
		social:    social,
		messages:  messages,
		users:     NewUserService(userRepo, auth, social, messages, effects),
		activity:  NewActivityService(activityRepo, followRepo),
		stats:     stats,
		publisher: publisher,
	}
}

func (f *fixture) signup(t *testing.T, n int) *model.User {
	t.Helper()
	user, err := f.auth.Signup(context.Background(), SignupInput{
		Username: fmt.Sprintf("testuser%d", n),
		Email:    fmt.Sprintf("test%d@test.com", n),
		Password: "HASHED_PASSWORD",
	})
	if err != nil {
		t.Fatalf("signup user %d: %v", n, err)
	}
	return user
}

func (f *fixture) count(t *testing.T, m interface{}) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(m).Count(&n).Error; err != nil {
		t.Fatalf("count %T: %v", m, err)
	}
	return n
}
