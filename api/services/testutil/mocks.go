package testutil

import (
	"context"
	"io"
	"testing"
	"tierboard/api/dto"
	leaderboardrepo "tierboard/api/repositories/leaderboard"
	"tierboard/pkg/database/models"
	"time"

	"github.com/stretchr/testify/mock"
)

// DefaultTimerCtx is the type of the contexts created with a timeout.
const DefaultTimerCtx = "*context.timerCtx"

// Assert the expectations of all mocks.
func VerifyAllMocks(t *testing.T, mocks ...any) {
	t.Helper()

	for _, m := range mocks {
		if mockObj, ok := m.(interface{ AssertExpectations(mock.TestingT) bool }); ok {
			mockObj.AssertExpectations(t)
		}
	}
}

// ============================================================================
// Repository mocks.
// ============================================================================

type MockLeaderboardRepository struct {
	mock.Mock
}

func (m *MockLeaderboardRepository) List(ctx context.Context) ([]*models.Leaderboard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Leaderboard), args.Error(1)
}

func (m *MockLeaderboardRepository) GetByID(ctx context.Context, id string) (*models.Leaderboard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Leaderboard), args.Error(1)
}

func (m *MockLeaderboardRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockLeaderboardRepository) Create(ctx context.Context, leaderboard *models.Leaderboard) error {
	args := m.Called(ctx, leaderboard)
	return args.Error(0)
}

func (m *MockLeaderboardRepository) Update(ctx context.Context, id string, update *leaderboardrepo.LeaderboardUpdate) (*models.Leaderboard, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Leaderboard), args.Error(1)
}

func (m *MockLeaderboardRepository) Delete(ctx context.Context, id string) ([]string, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) ListByLeaderboard(ctx context.Context, leaderboardID string) ([]*models.Member, error) {
	args := m.Called(ctx, leaderboardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Member), args.Error(1)
}

func (m *MockMemberRepository) GetByID(ctx context.Context, id string) (*models.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockMemberRepository) Create(ctx context.Context, member *models.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) Update(ctx context.Context, id string, fields map[string]any) (*models.Member, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockMemberRepository) Delete(ctx context.Context, id string) (*models.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockMemberRepository) CountByLeaderboardIDs(ctx context.Context, leaderboardIDs []string) (map[string]int64, error) {
	args := m.Called(ctx, leaderboardIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockMemberRepository) DeleteOrphans(ctx context.Context) ([]*models.Member, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Member), args.Error(1)
}

// ============================================================================
// Storage and cache mocks.
// ============================================================================

type MockAvatarStore struct {
	mock.Mock
}

func (m *MockAvatarStore) Save(ctx context.Context, filename string, contentType string, body io.Reader, size int64) (string, error) {
	args := m.Called(ctx, filename, contentType, body, size)
	return args.String(0), args.Error(1)
}

func (m *MockAvatarStore) Delete(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

type MockDirectoryCache struct {
	mock.Mock
}

func (m *MockDirectoryCache) GetList(ctx context.Context) []*dto.LeaderboardSummary {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]*dto.LeaderboardSummary)
}

func (m *MockDirectoryCache) SetList(ctx context.Context, list []*dto.LeaderboardSummary) {
	m.Called(ctx, list)
}

func (m *MockDirectoryCache) GetLeaderboard(ctx context.Context, id string) *dto.Leaderboard {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*dto.Leaderboard)
}

func (m *MockDirectoryCache) SetLeaderboard(ctx context.Context, leaderboard *dto.Leaderboard) {
	m.Called(ctx, leaderboard)
}

func (m *MockDirectoryCache) Invalidate(ctx context.Context, ids ...string) {
	m.Called(ctx, ids)
}

// MemCache mock implementation.
type MockMemCache[T any] struct {
	mock.Mock
}

func (m *MockMemCache[T]) Close() {
	m.Called()
}

func (m *MockMemCache[T]) Set(key string, value T, ttl time.Duration) {
	m.Called(key, value, ttl)
}

func (m *MockMemCache[T]) Get(key string) T {
	args := m.Called(key)
	if args.Get(0) == nil {
		var zero T
		return zero
	}
	return args.Get(0).(T)
}

func (m *MockMemCache[T]) Delete(key string) {
	m.Called(key)
}

// Redis client mock implementation.
type MockDirectoryRedisClient struct {
	mock.Mock
}

func (m *MockDirectoryRedisClient) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockDirectoryRedisClient) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockDirectoryRedisClient) Del(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}
