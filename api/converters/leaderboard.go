package converters

import (
	"cmp"
	"slices"
	"tierboard/api/dto"
	"tierboard/pkg/database/models"
)

// SortTiers orders the tiers by sort order, keeping the request order on ties.
func SortTiers(tiers []models.Tier) []models.Tier {
	sorted := slices.Clone(tiers)
	slices.SortStableFunc(sorted, func(a, b models.Tier) int {
		if c := cmp.Compare(a.SortOrder, b.SortOrder); c != 0 {
			return c
		}
		return cmp.Compare(a.Position, b.Position)
	})
	return sorted
}

// ConvertLeaderboard builds the aggregate DTO with sorted ranks.
func ConvertLeaderboard(leaderboard *models.Leaderboard) *dto.Leaderboard {
	tiers := SortTiers(leaderboard.Tiers)

	ranks := make([]dto.Rank, 0, len(tiers))
	for _, tier := range tiers {
		ranks = append(ranks, dto.Rank{
			ID:    tier.ID,
			Name:  tier.Name,
			Color: tier.Color,
			Order: tier.SortOrder,
		})
	}

	return &dto.Leaderboard{
		ID:          leaderboard.ID,
		Name:        leaderboard.Name,
		Description: leaderboard.Description,
		Ranks:       ranks,
		CreatedAt:   leaderboard.CreatedAt,
		UpdatedAt:   leaderboard.UpdatedAt,
	}
}

// ConvertLeaderboardSummaries pairs each leaderboard with its member count.
// Leaderboards missing from counts have no members.
func ConvertLeaderboardSummaries(leaderboards []*models.Leaderboard, counts map[string]int64) []*dto.LeaderboardSummary {
	result := make([]*dto.LeaderboardSummary, 0, len(leaderboards))
	for _, leaderboard := range leaderboards {
		result = append(result, &dto.LeaderboardSummary{
			Leaderboard: *ConvertLeaderboard(leaderboard),
			MemberCount: counts[leaderboard.ID],
		})
	}
	return result
}
