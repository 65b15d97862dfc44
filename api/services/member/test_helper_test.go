package memberservice

import (
	"bytes"
	"tierboard/api/filters"
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
func setupTestService() (*MemberService, *testMocks) {
	mocks := &testMocks{
		leaderboards: new(testutil.MockLeaderboardRepository),
		members:      new(testutil.MockMemberRepository),
		cache:        new(testutil.MockDirectoryCache),
		avatars:      new(testutil.MockAvatarStore),
	}

	service := &MemberService{
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
	leaderboardID = "5f0c1a4e-3b2d-4c6e-8f7a-9b0c1d2e3f40"
	memberID      = "7a1b2c3d-4e5f-4a6b-8c7d-8e9f0a1b2c3d"
	memberA       = "0a6e2c1f-7d3b-4e8a-9c5f-1b2d3e4f5a60"
	memberB       = "1b7f3d20-8e4c-4f9b-8d60-2c3e4f5a6b71"
	memberC       = "2c804e31-9f5d-4a0c-9e71-3d4f5a6b7c82"
	missingID     = "3d915f42-a06e-4b1d-8f82-4e5a6b7c8d93"
	malformedID   = "ghost"
)

func ptr[T any](v T) *T {
	return &v
}

var createdAt = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func createRepoMember(id string, rankName string, order int) *models.Member {
	return &models.Member{
		ID:            id,
		LeaderboardID: leaderboardID,
		Name:          "Member " + id,
		AvatarPath:    "/uploads/" + id + ".png",
		RankName:      rankName,
		SortOrder:     order,
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
}

func createAvatar(filename string, contentType string, size int) *filters.AvatarFile {
	return &filters.AvatarFile{
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(size),
		Content:     bytes.NewReader(make([]byte, size)),
	}
}
