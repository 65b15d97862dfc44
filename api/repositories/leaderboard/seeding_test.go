package repositories

import (
	"testing"
	"tierboard/pkg/database/models"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var seedTime = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

// seedLeaderboard inserts a Gold/Silver leaderboard created at the given offset from seedTime.
func seedLeaderboard(t *testing.T, db *gorm.DB, name string, offset time.Duration) *models.Leaderboard {
	t.Helper()

	leaderboard := &models.Leaderboard{
		Name:      name,
		CreatedAt: seedTime.Add(offset),
		Tiers: []models.Tier{
			{Name: "Silver", Color: "#C0C0C0", SortOrder: 1, Position: 1},
			{Name: "Gold", Color: "#FFD700", SortOrder: 0, Position: 0},
		},
	}
	require.NoError(t, db.Create(leaderboard).Error)

	return leaderboard
}

func seedMember(t *testing.T, db *gorm.DB, leaderboardID string, name string, rankName string) *models.Member {
	t.Helper()

	member := &models.Member{
		LeaderboardID: leaderboardID,
		Name:          name,
		AvatarPath:    "/uploads/" + name + ".png",
		RankName:      rankName,
	}
	require.NoError(t, db.Create(member).Error)

	return member
}

func tierByName(tiers []models.Tier, name string) *models.Tier {
	for i := range tiers {
		if tiers[i].Name == name {
			return &tiers[i]
		}
	}
	return nil
}

func memberRank(t *testing.T, db *gorm.DB, id string) string {
	t.Helper()

	var member models.Member
	require.NoError(t, db.Where("id = ?", id).First(&member).Error)
	return member.RankName
}
