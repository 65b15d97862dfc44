package leaderboardservice

import (
	"tierboard/api/services/testutil"
	"tierboard/pkg/database/models"
	"time"

	"gorm.io/gorm"
)

type testMocks struct {
	leaderboards *testutil.MockLeaderboardRepository
	members      *testutil.MockMemberRepository
	cache        *testutil.MockDirectoryCache
	avatars      *testutil.MockAvatarStore
}

func (m *testMocks) all() []any {
	return []any{m.leaderboards, m.members, m.cache, m.avatars}
}

// Helper to initialize the mocks.
func setupTestService() (*LeaderboardService, *testMocks) {
	mocks := &testMocks{
		leaderboards: new(testutil.MockLeaderboardRepository),
		members:      new(testutil.MockMemberRepository),
		cache:        new(testutil.MockDirectoryCache),
		avatars:      new(testutil.MockAvatarStore),
	}

	service := &LeaderboardService{
		db:                    new(gorm.DB),
		cache:                 mocks.cache,
		avatars:               mocks.avatars,
		LeaderboardRepository: mocks.leaderboards,
		MemberRepository:      mocks.members,
	}

	return service, mocks
}

// Ids have the uuid form the service accepts.
const (
	boardID     = "9e8d7c6b-5a49-4382-9170-6f5e4d3c2b1a"
	missingID   = "8d7c6b5a-4938-4271-8069-5e4d3c2b1a09"
	malformedID = "ghost"
)

func ptr[T any](v T) *T {
	return &v
}

var createdAt = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

// Create a Gold/Silver leaderboard, with the tiers stored out of order.
func createRepoLeaderboard(id string) *models.Leaderboard {
	return &models.Leaderboard{
		ID:        id,
		Name:      "Board " + id,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
		Tiers: []models.Tier{
			{ID: id + "-silver", LeaderboardID: id, Name: "Silver", Color: "#C0C0C0", SortOrder: 1, Position: 1},
			{ID: id + "-gold", LeaderboardID: id, Name: "Gold", Color: "#FFD700", SortOrder: 0, Position: 0},
		},
	}
}
